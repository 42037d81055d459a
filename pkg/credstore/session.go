package credstore

import "fmt"

// SaveSession は認証トークンとユーザー情報をペアで保存する。
// どちらか一方だけが保存される状態を作らないため、トークンの保存に
// 失敗した場合はユーザー情報を保存しない。
func SaveSession(s Store, token string, userJSON string) error {
	if err := s.Set(KeyAuthToken, token); err != nil {
		return fmt.Errorf("認証トークンの保存に失敗: %w", err)
	}
	if err := s.Set(KeyUserData, userJSON); err != nil {
		// トークンだけが残る状態を避けるため巻き戻す
		_ = s.Remove(KeyAuthToken)
		return fmt.Errorf("ユーザー情報の保存に失敗: %w", err)
	}
	return nil
}

// Token は保存済みの認証トークンを返す。未保存の場合は空文字列を返す。
func Token(s Store) (string, error) {
	return s.Get(KeyAuthToken)
}

// UserData は保存済みのJSONエンコード済みユーザー情報を返す。
// 未保存の場合は空文字列を返す。
func UserData(s Store) (string, error) {
	return s.Get(KeyUserData)
}

// ClearSession は認証トークンとユーザー情報をペアで削除する。
// 既に削除済みの場合も成功する（冪等）。一方の削除に失敗しても
// もう一方の削除は試みる。
func ClearSession(s Store) error {
	tokenErr := s.Remove(KeyAuthToken)
	userErr := s.Remove(KeyUserData)
	if tokenErr != nil {
		return fmt.Errorf("認証トークンの削除に失敗: %w", tokenErr)
	}
	if userErr != nil {
		return fmt.Errorf("ユーザー情報の削除に失敗: %w", userErr)
	}
	return nil
}
