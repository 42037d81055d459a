package credstore

import "sync"

const (
	// KeyAuthToken は認証トークンを保存するキー。
	KeyAuthToken = "authToken"
	// KeyUserData はJSONエンコード済みユーザー情報を保存するキー。
	KeyUserData = "userData"
)

// Store はキーバリュー形式の資格情報ストアを表す。
// 各操作は単独でアトミックに実行される。未設定のキーに対するGetは
// 空文字列を返し、Removeは何もしない（冪等）。
type Store interface {
	// Get はキーに対応する値を返す。未設定の場合は空文字列を返す。
	Get(key string) (string, error)
	// Set はキーに値を保存する。既存の値は上書きされる。
	Set(key, value string) error
	// Remove はキーを削除する。未設定のキーに対しては何もしない。
	Remove(key string) error
}

// Memory はテスト用のインメモリストア。
// 複数ゴルーチンからの同時アクセスに対して安全である。
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory は新しいインメモリストアを生成する。
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get はキーに対応する値を返す。未設定の場合は空文字列を返す。
func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set はキーに値を保存する。
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove はキーを削除する。
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
