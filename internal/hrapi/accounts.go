package hrapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nao1215/jinji/pkg/apiclient"
	"github.com/nao1215/jinji/pkg/credstore"
)

// AccountsService は認証とユーザー情報のAPIを扱う。
// ログイン成功時にセッション（トークンとユーザー情報）をストアへ保存し、
// ログアウト時に破棄する。
type AccountsService struct {
	gateway *apiclient.Gateway
	store   credstore.Store
}

// User は人事管理システムのユーザー。
type User struct {
	// ID はユーザーの一意識別子。
	ID string `json:"id"`
	// Username はログインに使用するユーザー名。
	Username string `json:"username"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// FirstName は名。
	FirstName string `json:"first_name"`
	// LastName は姓。
	LastName string `json:"last_name"`
	// Role は役割（HR_ADMIN / MANAGER / EMPLOYEE）。
	Role string `json:"role"`
	// Profile はプロフィール情報。
	Profile Profile `json:"profile"`
}

// Profile はユーザーのプロフィール情報。
type Profile struct {
	// Avatar はアバター画像のURL。
	Avatar string `json:"avatar"`
}

// RegisterRequest は新規ユーザー登録のリクエスト。
type RegisterRequest struct {
	// Username はログインに使用するユーザー名。必須。
	Username string `json:"username"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Password はパスワード。必須。
	Password string `json:"password"`
	// FirstName は名。
	FirstName string `json:"first_name"`
	// LastName は姓。
	LastName string `json:"last_name"`
}

// Login はユーザー名とパスワードで認証し、セッションを保存する。
// ユーザー情報はサーバーが返したJSONのままストアへ保存する。
func (s *AccountsService) Login(ctx context.Context, username, password string) (*User, error) {
	raw, err := s.gateway.Post(ctx, "auth/login/", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var resp struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("ログインレスポンスのデシリアライズに失敗: %w", err)
	}
	if err := credstore.SaveSession(s.store, resp.Token, string(resp.User)); err != nil {
		return nil, fmt.Errorf("セッションの保存に失敗: %w", err)
	}

	var user User
	if err := json.Unmarshal(resp.User, &user); err != nil {
		return nil, fmt.Errorf("ユーザー情報のデシリアライズに失敗: %w", err)
	}
	return &user, nil
}

// Logout はサーバーへログアウトを通知し、セッションを破棄する。
// サーバーへの通知が失敗してもセッションは必ず破棄する。
func (s *AccountsService) Logout(ctx context.Context) error {
	_, apiErr := s.gateway.Post(ctx, "auth/logout/", nil)
	if err := credstore.ClearSession(s.store); err != nil {
		return fmt.Errorf("セッションの破棄に失敗: %w", err)
	}
	return apiErr
}

// Register は新規ユーザーを登録する。セッションは保存しない。
func (s *AccountsService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	raw, err := s.gateway.Post(ctx, "auth/register/", req)
	if err != nil {
		return nil, err
	}
	return decode[User](raw)
}

// CurrentUser は認証済みユーザーの最新情報をサーバーから取得する。
func (s *AccountsService) CurrentUser(ctx context.Context) (*User, error) {
	raw, err := s.gateway.Get(ctx, "users/me/")
	if err != nil {
		return nil, err
	}
	return decode[User](raw)
}

// CachedUser はストアにキャッシュされたユーザー情報を返す。
// キャッシュが存在しない、または読み取れない形式の場合はnilとnilを返す。
func (s *AccountsService) CachedUser() (*User, error) {
	data, err := credstore.UserData(s.store)
	if err != nil {
		return nil, fmt.Errorf("キャッシュの読み取りに失敗: %w", err)
	}
	if data == "" {
		return nil, nil
	}
	var user User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		// 壊れたキャッシュはキャッシュなしと同じ扱いにする
		return nil, nil
	}
	return &user, nil
}
