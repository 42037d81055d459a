package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
	"github.com/nao1215/jinji/pkg/apiclient"
)

// App はCLIアプリケーション本体。
type App struct {
	// client は人事管理APIの型付きクライアント。
	client *hrapi.Client
	// notifier は操作結果の通知先。
	notifier notify.Notifier
	// out は一覧や詳細の出力先。通常はos.Stdout。
	out io.Writer
}

// New はCLIアプリケーションを生成する。
func New(client *hrapi.Client, notifier notify.Notifier, out io.Writer) *App {
	return &App{client: client, notifier: notifier, out: out}
}

// ErrUsage はコマンドの使い方が誤っている場合に返す。
// 呼び出し側はこのエラーを通知せず、終了コードのみ非ゼロにする。
var ErrUsage = errors.New("コマンドの使い方が誤っています")

// Run はサブコマンドを実行する。argsはプログラム名を除いた引数列。
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return ErrUsage
	}

	command, rest := args[0], args[1:]
	switch command {
	case "login":
		return a.runLogin(ctx, rest)
	case "logout":
		return a.runLogout(ctx)
	case "register":
		return a.runRegister(ctx, rest)
	case "whoami":
		return a.runWhoami(ctx, rest)
	case "employees":
		return a.runEmployees(ctx, rest)
	case "attendance":
		return a.runAttendance(ctx, rest)
	case "leaves":
		return a.runLeaves(ctx, rest)
	case "tasks":
		return a.runTasks(ctx, rest)
	case "payslips":
		return a.runPayslips(ctx, rest)
	case "notifications":
		return a.runNotifications(ctx, rest)
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		fmt.Fprintf(a.out, "不明なコマンド: %s\n\n", command)
		a.printUsage()
		return ErrUsage
	}
}

// printUsage は使い方を表示する。
func (a *App) printUsage() {
	fmt.Fprint(a.out, `使い方: jinji <コマンド> [オプション]

コマンド:
  login          ログインしてセッションを保存する
  logout         ログアウトしてセッションを破棄する
  register       新規ユーザーを登録する
  whoami         ログイン中のユーザーを表示する
  employees      従業員を管理する (list / get / create / update / delete)
  attendance     勤怠を管理する (list / clock-in / clock-out)
  leaves         休暇申請を管理する (list / create / approve / reject)
  tasks          タスクを管理する (list / get / create / complete)
  payslips       給与明細を参照する (list / get)
  notifications  通知を参照する (list / unread / read)

環境変数:
  JINJI_SERVER       APIサーバーのURL (既定: http://localhost:8580)
  JINJI_CREDENTIALS  資格情報データベースのパス
`)
}

// sessionNavigator は認証切れ時のログイン画面遷移をCLI向けに翻訳する。
// Webフロントエンドの画面遷移に相当する操作として、再ログインを促す通知を表示する。
type sessionNavigator struct {
	notifier notify.Notifier
}

// NewSessionNavigator は認証切れを通知で伝えるNavigatorを生成する。
func NewSessionNavigator(notifier notify.Notifier) apiclient.Navigator {
	return &sessionNavigator{notifier: notifier}
}

// Navigate は遷移の代わりに再ログインを促す通知を表示する。
func (n *sessionNavigator) Navigate(path string) {
	n.notifier.Notify("セッションの有効期限が切れました。再度ログインしてください。", notify.LevelDanger)
}
