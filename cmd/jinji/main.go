// 人事管理APIを操作するCLIのエントリポイント。
// ログインセッションをローカルのSQLiteデータベースに保存し、
// 従業員・勤怠・休暇・タスク・給与明細・通知の各リソースを操作する。
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/jinji/internal/cli"
	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
	"github.com/nao1215/jinji/pkg/apiclient"
	"github.com/nao1215/jinji/pkg/credstore"
)

func main() {
	os.Exit(run())
}

func run() int {
	notifier := notify.NewConsole(os.Stderr, os.Getenv("NO_COLOR") == "")

	storePath, err := credentialsPath()
	if err != nil {
		notifier.Notify(fmt.Sprintf("資格情報の保存先を決定できません: %v", err), notify.LevelDanger)
		return 1
	}
	store, err := credstore.OpenSQLite(storePath)
	if err != nil {
		notifier.Notify(fmt.Sprintf("資格情報データベースを開けません: %v", err), notify.LevelDanger)
		return 1
	}
	defer store.Close()

	serverURL := getEnvOr("JINJI_SERVER", "http://localhost:8580")
	gateway := apiclient.New(serverURL, store, cli.NewSessionNavigator(notifier))
	client := hrapi.NewClient(gateway, store)
	app := cli.New(client, notifier, os.Stdout)

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			notifier.Notify(err.Error(), notify.LevelDanger)
		}
		return 1
	}
	return 0
}

// credentialsPath は資格情報データベースのパスを返す。
// JINJI_CREDENTIALSで上書きできる。既定はユーザー設定ディレクトリ配下。
func credentialsPath() (string, error) {
	if path := os.Getenv("JINJI_CREDENTIALS"); path != "" {
		return path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "jinji")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.db"), nil
}

// getEnvOr は環境変数の値を返す。未設定の場合はフォールバック値を返す。
func getEnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
