package devserver

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/google/uuid"

	"github.com/nao1215/jinji/pkg/migration"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// initSchema はSQLiteデータベースにスキーマ移行を適用する。
func initSchema(db *sql.DB) error {
	return migration.Apply(db, migrationFS, "migrations")
}

// seedDemoData は開発用のデモデータを投入する。
// デモユーザーが既に存在する場合は何もしない（再起動しても増殖しない）。
func seedDemoData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'demo'`).Scan(&count); err != nil {
		return fmt.Errorf("デモユーザーの確認に失敗: %w", err)
	}
	if count > 0 {
		return nil
	}

	userID := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, avatar_url, role)
		VALUES (?, 'demo', 'demo@example.com', ?, '太郎', '人事', 'https://example.com/avatars/demo.png', 'HR_ADMIN')
	`, userID, hashPassword("demo-password"))
	if err != nil {
		return fmt.Errorf("デモユーザーの作成に失敗: %w", err)
	}

	employees := []struct {
		number, firstName, lastName, email, department, designation string
	}{
		{"EMP-0001", "太郎", "人事", "demo@example.com", "人事部", "マネージャー"},
		{"EMP-0002", "花子", "佐藤", "hanako@example.com", "開発部", "エンジニア"},
		{"EMP-0003", "次郎", "鈴木", "jiro@example.com", "営業部", "営業担当"},
	}
	for _, e := range employees {
		_, err := db.Exec(`
			INSERT INTO employees (id, employee_number, first_name, last_name, email, department, designation, hire_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, '2024-04-01')
		`, uuid.New().String(), e.number, e.firstName, e.lastName, e.email, e.department, e.designation)
		if err != nil {
			return fmt.Errorf("デモ従業員の作成に失敗: %w", err)
		}
	}

	_, err = db.Exec(`
		INSERT INTO notifications (id, user_id, title, message)
		VALUES (?, ?, 'ようこそ', 'jinji開発サーバーへようこそ。')
	`, uuid.New().String(), userID)
	if err != nil {
		return fmt.Errorf("デモ通知の作成に失敗: %w", err)
	}
	return nil
}
