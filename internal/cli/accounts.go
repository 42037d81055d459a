package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
)

// runLogin はログインしてセッションを保存する。
func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("username", "", "ユーザー名")
	password := fs.String("password", "", "パスワード")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(a.out, "login には -username と -password が必要です")
		return ErrUsage
	}

	user, err := a.client.Accounts.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("%s %sとしてログインしました", user.LastName, user.FirstName), notify.LevelSuccess)
	return nil
}

// runLogout はログアウトしてセッションを破棄する。
func (a *App) runLogout(ctx context.Context) error {
	if err := a.client.Accounts.Logout(ctx); err != nil {
		// サーバーへの通知に失敗してもローカルのセッションは破棄済み
		a.notifier.Notify("ログアウトしました（サーバーへの通知には失敗）", notify.LevelInfo)
		return nil
	}
	a.notifier.Notify("ログアウトしました", notify.LevelSuccess)
	return nil
}

// runRegister は新規ユーザーを登録する。
func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("username", "", "ユーザー名")
	password := fs.String("password", "", "パスワード")
	email := fs.String("email", "", "メールアドレス")
	firstName := fs.String("first-name", "", "名")
	lastName := fs.String("last-name", "", "姓")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(a.out, "register には -username と -password が必要です")
		return ErrUsage
	}

	user, err := a.client.Accounts.Register(ctx, hrapi.RegisterRequest{
		Username:  *username,
		Password:  *password,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("ユーザー %s を登録しました", user.Username), notify.LevelSuccess)
	return nil
}

// runWhoami はログイン中のユーザーを表示する。
// 既定ではキャッシュから表示し、-remoteでサーバーから最新を取得する。
func (a *App) runWhoami(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(a.out)
	remote := fs.Bool("remote", false, "サーバーから最新のユーザー情報を取得する")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	var user *hrapi.User
	var err error
	if *remote {
		user, err = a.client.Accounts.CurrentUser(ctx)
	} else {
		user, err = a.client.Accounts.CachedUser()
	}
	if err != nil {
		return err
	}
	if user == nil {
		a.notifier.Notify("ログインしていません", notify.LevelInfo)
		return nil
	}

	fmt.Fprintf(a.out, "ユーザー名: %s\n", user.Username)
	fmt.Fprintf(a.out, "氏名:       %s %s\n", user.LastName, user.FirstName)
	fmt.Fprintf(a.out, "メール:     %s\n", user.Email)
	fmt.Fprintf(a.out, "役割:       %s\n", user.Role)
	if user.Profile.Avatar != "" {
		fmt.Fprintf(a.out, "アバター:   %s\n", user.Profile.Avatar)
	}
	return nil
}
