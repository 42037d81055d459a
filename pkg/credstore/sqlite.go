package credstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// スキーマ定義。credentialsテーブルは単純なキーバリュー構造。
const schema = `
CREATE TABLE IF NOT EXISTS credentials (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// SQLite はSQLiteをバックエンドとする資格情報ストア。
// CLIの実行をまたいでセッションを保持するために使用する。
type SQLite struct {
	db *sql.DB
}

// OpenSQLite は指定パスのSQLiteデータベースを開き、スキーマを初期化する。
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get はキーに対応する値を返す。未設定の場合は空文字列を返す。
func (s *SQLite) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("資格情報の取得に失敗: %w", err)
	}
	return value, nil
}

// Set はキーに値を保存する。既存の値は上書きされる。
func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("資格情報の保存に失敗: %w", err)
	}
	return nil
}

// Remove はキーを削除する。未設定のキーに対しては何もしない。
func (s *SQLite) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("資格情報の削除に失敗: %w", err)
	}
	return nil
}
