// 開発用人事管理APIサーバーのエントリポイント。
// 本番バックエンドと同じJSON契約を持つスタブサーバーをSQLiteで動かし、
// CLIやフロントエンドの開発・動作確認に使用する。
package main

import (
	"log"
	"os"
	"strings"

	"github.com/nao1215/jinji/internal/devserver"
)

func main() {
	config := devserver.Config{
		Port:           getEnvOr("PORT", "8580"),
		DBPath:         getEnvOr("JINJI_DB_PATH", "jinji-dev.db"),
		TokenSecret:    getEnvOr("JINJI_TOKEN_SECRET", "dev-secret-change-me"),
		AllowedOrigins: splitOrigins(os.Getenv("JINJI_ALLOWED_ORIGINS")),
		Seed:           os.Getenv("JINJI_SEED") != "false",
	}

	server, err := devserver.NewServer(config)
	if err != nil {
		log.Fatalf("開発用サーバーの初期化に失敗: %v", err)
	}

	log.Printf("開発用人事管理APIサーバーを起動します: :%s (DB: %s)", config.Port, config.DBPath)
	if err := server.Run(); err != nil {
		log.Fatalf("開発用サーバーの起動に失敗: %v", err)
	}
}

// getEnvOr は環境変数の値を返す。未設定の場合はフォールバック値を返す。
func getEnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// splitOrigins はカンマ区切りのオリジン一覧を分割する。
func splitOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
