// Package migration はSQLiteデータベースのスキーマ移行を管理する。
// embedされたSQLファイルを番号順に適用し、適用済みバージョンを
// schema_migrationsテーブルで追跡する。
package migration

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strconv"
	"strings"
)

// script は1つの移行スクリプト。ファイル名形式: 0001_description.sql
type script struct {
	version int
	name    string
	path    string
}

// Apply はdir配下の移行スクリプトを番号順に適用する。
// 適用済みのバージョンはスキップするため、何度呼んでも安全。
func Apply(db *sql.DB, fsys fs.FS, dir string) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("移行管理テーブルの作成に失敗: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("適用済みバージョンの取得に失敗: %w", err)
	}

	scripts, err := collectScripts(fsys, dir)
	if err != nil {
		return fmt.Errorf("移行スクリプトの収集に失敗: %w", err)
	}

	for _, s := range scripts {
		if applied[s.version] {
			continue
		}
		if err := applyScript(db, fsys, s); err != nil {
			return fmt.Errorf("移行 %04d_%s の適用に失敗: %w", s.version, s.name, err)
		}
		log.Printf("[migration] %04d_%s を適用しました", s.version, s.name)
	}
	return nil
}

// appliedVersions は適用済みの移行バージョンの集合を返す。
func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// collectScripts はdir配下の.sqlファイルを収集してバージョン順に並べる。
// 番号で始まらないファイルは無視する。
func collectScripts(fsys fs.FS, dir string) ([]script, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	scripts := make([]script, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		prefix, rest, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		scripts = append(scripts, script{
			version: version,
			name:    strings.TrimSuffix(rest, ".sql"),
			path:    dir + "/" + entry.Name(),
		})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].version < scripts[j].version })
	return scripts, nil
}

// applyScript は1つの移行スクリプトをトランザクション内で適用し、
// バージョンを記録する。
func applyScript(db *sql.DB, fsys fs.FS, s script) error {
	content, err := fs.ReadFile(fsys, s.path)
	if err != nil {
		return fmt.Errorf("スクリプトの読み込みに失敗: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(string(content)); err != nil {
		return fmt.Errorf("SQLの実行に失敗: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, s.version); err != nil {
		return fmt.Errorf("バージョンの記録に失敗: %w", err)
	}
	return tx.Commit()
}
