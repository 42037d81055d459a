package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/jinji/internal/devserver"
	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
	"github.com/nao1215/jinji/pkg/apiclient"
	"github.com/nao1215/jinji/pkg/credstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordNotifier は通知を記録するテスト用Notifier。
type recordNotifier struct {
	messages []string
	levels   []notify.Level
}

func (r *recordNotifier) Notify(message string, level notify.Level) {
	r.messages = append(r.messages, message)
	r.levels = append(r.levels, level)
}

func (r *recordNotifier) reset() {
	r.messages = nil
	r.levels = nil
}

// testAppDeps はテスト用アプリケーションの依存をまとめたもの。
type testAppDeps struct {
	notifier *recordNotifier
	store    *credstore.Memory
	out      *bytes.Buffer
}

// setupApp は開発用サーバーに接続するCLIアプリケーションを構築する。
func setupApp(t *testing.T) (*App, *testAppDeps) {
	t.Helper()

	server, err := devserver.NewServer(devserver.Config{
		Port:        "0",
		DBPath:      ":memory:",
		TokenSecret: "cli-test-secret",
		Seed:        true,
	})
	if err != nil {
		t.Fatalf("開発用サーバーの構築に失敗: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	deps := &testAppDeps{
		notifier: &recordNotifier{},
		store:    credstore.NewMemory(),
		out:      &bytes.Buffer{},
	}
	gateway := apiclient.New(ts.URL, deps.store, NewSessionNavigator(deps.notifier))
	client := hrapi.NewClient(gateway, deps.store)
	return New(client, deps.notifier, deps.out), deps
}

// login はデモユーザーでログインするヘルパー関数。
func login(t *testing.T, app *App) {
	t.Helper()

	err := app.Run(context.Background(), []string{"login", "-username", "demo", "-password", "demo-password"})
	if err != nil {
		t.Fatalf("ログインに失敗: %v", err)
	}
}

// TestAppLogin はloginコマンドを検証する。
func TestAppLogin(t *testing.T) {
	t.Parallel()

	t.Run("デモユーザーでログインできること", func(t *testing.T) {
		t.Parallel()

		app, deps := setupApp(t)
		login(t, app)

		if len(deps.notifier.messages) != 1 || !strings.Contains(deps.notifier.messages[0], "ログインしました") {
			t.Errorf("通知 = %v", deps.notifier.messages)
		}
		if deps.notifier.levels[0] != notify.LevelSuccess {
			t.Errorf("レベル = %v, want success", deps.notifier.levels[0])
		}
	})

	t.Run("誤ったパスワードでDRFのエラーメッセージが返ること", func(t *testing.T) {
		t.Parallel()

		app, _ := setupApp(t)
		err := app.Run(context.Background(), []string{"login", "-username", "demo", "-password", "wrong"})

		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("エラー型 = %T, want *apiclient.Error", err)
		}
		if apiErr.Message != "Unable to log in with provided credentials." {
			t.Errorf("message = %q", apiErr.Message)
		}
	})

	t.Run("資格情報なしの実行が使い方エラーになること", func(t *testing.T) {
		t.Parallel()

		app, _ := setupApp(t)
		err := app.Run(context.Background(), []string{"login"})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("err = %v, want ErrUsage", err)
		}
	})
}

// TestAppWhoami はwhoamiコマンドを検証する。
func TestAppWhoami(t *testing.T) {
	t.Parallel()

	t.Run("ログイン後にキャッシュからユーザーを表示できること", func(t *testing.T) {
		t.Parallel()

		app, deps := setupApp(t)
		login(t, app)

		if err := app.Run(context.Background(), []string{"whoami"}); err != nil {
			t.Fatalf("whoamiに失敗: %v", err)
		}
		if !strings.Contains(deps.out.String(), "demo") {
			t.Errorf("出力にユーザー名が含まれない: %q", deps.out.String())
		}
	})

	t.Run("未ログインでは案内だけ表示すること", func(t *testing.T) {
		t.Parallel()

		app, deps := setupApp(t)
		if err := app.Run(context.Background(), []string{"whoami"}); err != nil {
			t.Fatalf("whoamiに失敗: %v", err)
		}
		if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "ログインしていません" {
			t.Errorf("通知 = %v", deps.notifier.messages)
		}
	})

	t.Run("壊れたキャッシュをキャッシュなしとして扱うこと", func(t *testing.T) {
		t.Parallel()

		app, deps := setupApp(t)
		login(t, app)
		if err := deps.store.Set(credstore.KeyUserData, "{broken json"); err != nil {
			t.Fatalf("キャッシュの差し替えに失敗: %v", err)
		}
		deps.notifier.reset()

		if err := app.Run(context.Background(), []string{"whoami"}); err != nil {
			t.Fatalf("whoamiに失敗: %v", err)
		}
		if len(deps.notifier.messages) != 1 || deps.notifier.messages[0] != "ログインしていません" {
			t.Errorf("通知 = %v", deps.notifier.messages)
		}
	})
}

// TestAppEmployees はemployeesコマンドを検証する。
func TestAppEmployees(t *testing.T) {
	t.Parallel()

	t.Run("シードされた従業員が一覧に表示されること", func(t *testing.T) {
		t.Parallel()

		app, deps := setupApp(t)
		login(t, app)

		if err := app.Run(context.Background(), []string{"employees", "list"}); err != nil {
			t.Fatalf("一覧の取得に失敗: %v", err)
		}
		if !strings.Contains(deps.out.String(), "EMP-0001") {
			t.Errorf("出力にシード従業員が含まれない: %q", deps.out.String())
		}
	})

	t.Run("作成が通知されること", func(t *testing.T) {
		t.Parallel()

		app, deps := setupApp(t)
		login(t, app)

		err := app.Run(context.Background(), []string{
			"employees", "create",
			"-number", "EMP-9000",
			"-first-name", "花子",
			"-last-name", "佐藤",
			"-email", "hanako@example.com",
		})
		if err != nil {
			t.Fatalf("作成に失敗: %v", err)
		}
		last := deps.notifier.messages[len(deps.notifier.messages)-1]
		if !strings.Contains(last, "EMP-9000") {
			t.Errorf("通知 = %q", last)
		}
	})
}

// TestAppSessionExpiry は認証切れ時の通知を検証する。
func TestAppSessionExpiry(t *testing.T) {
	t.Parallel()

	app, deps := setupApp(t)
	login(t, app)
	deps.out.Reset()
	deps.notifier.reset()

	// 無効なトークンに差し替えて認証切れを再現する
	if err := deps.store.Set(credstore.KeyAuthToken, "expired-token"); err != nil {
		t.Fatalf("トークンの差し替えに失敗: %v", err)
	}

	if err := app.Run(context.Background(), []string{"employees", "list"}); err != nil {
		t.Fatalf("認証切れがエラーを返した: %v", err)
	}
	if len(deps.notifier.messages) != 1 || !strings.Contains(deps.notifier.messages[0], "セッションの有効期限が切れました") {
		t.Errorf("通知 = %v", deps.notifier.messages)
	}
	if deps.notifier.levels[0] != notify.LevelDanger {
		t.Errorf("レベル = %v, want danger", deps.notifier.levels[0])
	}
	if deps.out.String() != "" {
		t.Errorf("認証切れ時に一覧が出力された: %q", deps.out.String())
	}
}

// TestAppUnknownCommand は不明なコマンドの扱いを検証する。
func TestAppUnknownCommand(t *testing.T) {
	t.Parallel()

	app, deps := setupApp(t)
	err := app.Run(context.Background(), []string{"bogus"})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
	if !strings.Contains(deps.out.String(), "不明なコマンド") {
		t.Errorf("出力 = %q", deps.out.String())
	}
}
