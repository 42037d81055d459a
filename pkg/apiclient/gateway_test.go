package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nao1215/jinji/pkg/credstore"
)

// recordedRequest はテストサーバーが受け取ったリクエスト情報を保持する構造体。
type recordedRequest struct {
	// Method はHTTPメソッド。
	Method string
	// Path はリクエストパス。
	Path string
	// Body はリクエストボディ。
	Body []byte
	// Headers はリクエストヘッダー。
	Headers http.Header
}

// recordNavigator はNavigate呼び出しを記録するテスト用Navigator。
type recordNavigator struct {
	// paths はNavigateに渡されたパスの履歴。
	paths []string
}

// Navigate は遷移先パスを記録する。
func (n *recordNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}

// newTestGateway は指定ハンドラのテストサーバーに接続するGatewayを生成する。
func newTestGateway(t *testing.T, handler http.HandlerFunc) (*Gateway, *credstore.Memory, *recordNavigator, *recordedRequest) {
	t.Helper()

	var received recordedRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Method = r.Method
		received.Path = r.URL.Path
		received.Body, _ = io.ReadAll(r.Body)
		received.Headers = r.Header.Clone()
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	store := credstore.NewMemory()
	navigator := &recordNavigator{}
	gateway := New(ts.URL, store, navigator,
		WithLogger(log.New(io.Discard, "", 0)),
	)
	return gateway, store, navigator, &received
}

// TestGatewayHeaders はリクエストヘッダーの構築を検証する。
func TestGatewayHeaders(t *testing.T) {
	t.Parallel()

	t.Run("認証トークンが保存されている場合Authorizationヘッダーが付与されること", func(t *testing.T) {
		t.Parallel()

		gateway, store, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{}`)
		})
		if err := credstore.SaveSession(store, "abc123", `{}`); err != nil {
			t.Fatalf("セッションの保存に失敗: %v", err)
		}

		if _, err := gateway.Get(context.Background(), "employees/"); err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}

		if got := received.Headers.Get("Authorization"); got != "Token abc123" {
			t.Errorf("Authorization = %q, want %q", got, "Token abc123")
		}
		if got := received.Headers.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want %q", got, "application/json")
		}
	})

	t.Run("認証トークンが未保存の場合Authorizationヘッダーが付与されないこと", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{}`)
		})

		if _, err := gateway.Get(context.Background(), "employees/"); err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}

		if _, ok := received.Headers["Authorization"]; ok {
			t.Errorf("Authorizationヘッダーが付与されている: %q", received.Headers.Get("Authorization"))
		}
	})

	t.Run("CSRFトークンCookieが存在する場合X-CSRFTokenヘッダーが付与されること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{}`)
		})
		origin, err := url.Parse(gateway.baseURL)
		if err != nil {
			t.Fatalf("ベースURLのパースに失敗: %v", err)
		}
		gateway.jar.SetCookies(origin, []*http.Cookie{{Name: "csrftoken", Value: "csrf-value"}})

		if _, err := gateway.Get(context.Background(), "employees/"); err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}

		if got := received.Headers.Get("X-CSRFToken"); got != "csrf-value" {
			t.Errorf("X-CSRFToken = %q, want %q", got, "csrf-value")
		}
	})

	t.Run("呼び出し側のヘッダー上書きが既定ヘッダーより優先されること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{}`)
		})

		_, err := gateway.Get(context.Background(), "employees/",
			WithHeader("Content-Type", "text/plain"),
		)
		if err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}

		if got := received.Headers.Get("Content-Type"); got != "text/plain" {
			t.Errorf("Content-Type = %q, want %q", got, "text/plain")
		}
	})
}

// TestGatewayDispatch はリクエストの送信先とボディの構築を検証する。
func TestGatewayDispatch(t *testing.T) {
	t.Parallel()

	t.Run("エンドポイントにAPIルートが前置されること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{}`)
		})

		if _, err := gateway.Get(context.Background(), "employees/"); err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}

		if received.Path != "/api/employees/" {
			t.Errorf("Path = %q, want %q", received.Path, "/api/employees/")
		}
	})

	t.Run("Postがボディを指定メソッドでJSONシリアライズして送信すること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{}`)
		})

		body := map[string]string{"name": "総務部"}
		if _, err := gateway.Post(context.Background(), "departments/", body); err != nil {
			t.Fatalf("Post()でエラーが発生: %v", err)
		}

		if received.Method != http.MethodPost {
			t.Errorf("Method = %q, want %q", received.Method, http.MethodPost)
		}
		var sent map[string]string
		if err := json.Unmarshal(received.Body, &sent); err != nil {
			t.Fatalf("リクエストボディのパースに失敗: %v", err)
		}
		if sent["name"] != "総務部" {
			t.Errorf("body name = %q, want %q", sent["name"], "総務部")
		}
	})

	t.Run("PutとPatchが対応するメソッドで送信すること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, `{}`)
		})

		if _, err := gateway.Put(context.Background(), "tasks/1/", map[string]string{"status": "DONE"}); err != nil {
			t.Fatalf("Put()でエラーが発生: %v", err)
		}
		if received.Method != http.MethodPut {
			t.Errorf("Method = %q, want %q", received.Method, http.MethodPut)
		}

		if _, err := gateway.Patch(context.Background(), "tasks/1/", map[string]string{"status": "DONE"}); err != nil {
			t.Fatalf("Patch()でエラーが発生: %v", err)
		}
		if received.Method != http.MethodPatch {
			t.Errorf("Method = %q, want %q", received.Method, http.MethodPatch)
		}
	})

	t.Run("GetとDeleteがボディなしで送信すること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, received := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		if _, err := gateway.Delete(context.Background(), "tasks/1/"); err != nil {
			t.Fatalf("Delete()でエラーが発生: %v", err)
		}
		if received.Method != http.MethodDelete {
			t.Errorf("Method = %q, want %q", received.Method, http.MethodDelete)
		}
		if len(received.Body) != 0 {
			t.Errorf("リクエストボディが空でない: %q", received.Body)
		}
	})
}

// TestGatewayAuthExpiry は認証失効時の処理を検証する。
func TestGatewayAuthExpiry(t *testing.T) {
	t.Parallel()

	for _, statusCode := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		statusCode := statusCode
		t.Run(http.StatusText(statusCode)+"で資格情報が破棄されログインページへ遷移すること", func(t *testing.T) {
			t.Parallel()

			gateway, store, navigator, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(statusCode)
				io.WriteString(w, `{"detail":"Invalid token."}`)
			})
			if err := credstore.SaveSession(store, "expired-token", `{"first_name":"太郎"}`); err != nil {
				t.Fatalf("セッションの保存に失敗: %v", err)
			}

			result, err := gateway.Get(context.Background(), "employees/")
			if err != nil {
				t.Fatalf("認証失効がエラーとして返された: %v", err)
			}
			if result != nil {
				t.Errorf("認証失効時の結果がnilでない: %s", result)
			}

			token, _ := credstore.Token(store)
			if token != "" {
				t.Errorf("認証トークンが残っている: %q", token)
			}
			userData, _ := credstore.UserData(store)
			if userData != "" {
				t.Errorf("ユーザー情報が残っている: %q", userData)
			}
			if len(navigator.paths) != 1 || navigator.paths[0] != "/api-auth/login/" {
				t.Errorf("遷移先 = %v, want [/api-auth/login/]", navigator.paths)
			}
		})
	}
}

// TestGatewayErrorClassification は非2xxレスポンスのエラー正規化を検証する。
func TestGatewayErrorClassification(t *testing.T) {
	t.Parallel()

	t.Run("JSONエラーボディのdetailフィールドがメッセージになること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"detail":"入力値が不正です"}`)
		})

		_, err := gateway.Post(context.Background(), "leaves/", map[string]string{})
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*Error型のエラーが返されなかった: %v", err)
		}
		if apiErr.Message != "入力値が不正です" {
			t.Errorf("Message = %q, want %q", apiErr.Message, "入力値が不正です")
		}
		if apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusBadRequest)
		}
	})

	t.Run("非JSONボディの場合HTTP errorメッセージになること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `<html>Internal Server Error</html>`)
		})

		_, err := gateway.Get(context.Background(), "employees/")
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("*Error型のエラーが返されなかった: %v", err)
		}
		if apiErr.Message != "HTTP error 500" {
			t.Errorf("Message = %q, want %q", apiErr.Message, "HTTP error 500")
		}
	})

	t.Run("失敗時に診断ログへメソッドとエンドポイントが出力されること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"detail":"bad"}`)
		})
		var logBuf bytes.Buffer
		gateway.logger = log.New(&logBuf, "", 0)

		if _, err := gateway.Get(context.Background(), "employees/"); err == nil {
			t.Fatal("エラーが返されなかった")
		}

		logged := logBuf.String()
		if !strings.Contains(logged, "method=GET") || !strings.Contains(logged, "endpoint=employees/") {
			t.Errorf("診断ログにメソッドとエンドポイントが含まれない: %q", logged)
		}
	})

	t.Run("ネットワーク障害がエラーとして返されること", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemory()
		gateway := New("http://127.0.0.1:1", store, &recordNavigator{},
			WithLogger(log.New(io.Discard, "", 0)),
		)

		if _, err := gateway.Get(context.Background(), "employees/"); err == nil {
			t.Fatal("ネットワーク障害がエラーとして返されなかった")
		}
	})
}

// TestGatewayNoContent は204レスポンスの処理を検証する。
func TestGatewayNoContent(t *testing.T) {
	t.Parallel()

	t.Run("204の場合ボディをパースせずnilを返すこと", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			// 204は本来ボディを持たないが、非JSONボディが残っていても
			// パースを試みないことを確認する
			w.WriteHeader(http.StatusNoContent)
		})

		result, err := gateway.Delete(context.Background(), "tasks/1/")
		if err != nil {
			t.Fatalf("Delete()でエラーが発生: %v", err)
		}
		if result != nil {
			t.Errorf("結果がnilでない: %s", result)
		}
	})
}

// TestGatewaySuccess は2xxレスポンスの処理を検証する。
func TestGatewaySuccess(t *testing.T) {
	t.Parallel()

	t.Run("JSONレスポンスボディがそのまま返されること", func(t *testing.T) {
		t.Parallel()

		gateway, _, _, _ := newTestGateway(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id":"emp-1","first_name":"太郎"}`)
		})

		result, err := gateway.Get(context.Background(), "employees/emp-1/")
		if err != nil {
			t.Fatalf("Get()でエラーが発生: %v", err)
		}

		var decoded struct {
			ID        string `json:"id"`
			FirstName string `json:"first_name"`
		}
		if err := json.Unmarshal(result, &decoded); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if decoded.ID != "emp-1" || decoded.FirstName != "太郎" {
			t.Errorf("decoded = %+v, want {emp-1 太郎}", decoded)
		}
	})
}
