package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/nao1215/jinji/pkg/credstore"
)

const (
	// apiRoot はすべてのエンドポイントに前置されるAPIルートパス。
	apiRoot = "/api/"
	// loginPath は認証失効時の遷移先ログインページ。
	loginPath = "/api-auth/login/"
	// csrfCookieName はCSRFトークンを保持するCookieの名前（Django標準）。
	csrfCookieName = "csrftoken"
	// csrfHeaderName はCSRFトークンを送信するヘッダー名（Django標準）。
	csrfHeaderName = "X-CSRFToken"
	// authScheme はAuthorizationヘッダーの認証スキーム（DRFトークン認証）。
	authScheme = "Token "
)

// Doer はHTTPリクエストを実行するトランスポートを表す。
// *http.Clientがこのインターフェースを満たす。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Navigator は認証失効時にユーザーをログインページへ遷移させる。
// ブラウザにおけるwindow.location書き換えに相当する。
type Navigator interface {
	// Navigate は指定パスへの遷移を指示する。
	Navigate(path string)
}

// Gateway は人事管理APIへのリクエストゲートウェイ。
// ヘッダー付与、レスポンス分類、エラー正規化を一手に担う。
type Gateway struct {
	// baseURL はAPIサーバーのオリジン（例: "http://localhost:8080"）。
	baseURL string
	// transport はHTTPリクエストの実行に使うトランスポート。
	transport Doer
	// jar はCSRFトークンCookieの読み取りに使うCookieジャー。
	jar http.CookieJar
	// store はセッション資格情報の読み書きに使うストア。
	store credstore.Store
	// navigator は認証失効時の遷移先。
	navigator Navigator
	// logger は失敗時の診断ログ出力先。
	logger *log.Logger
}

// Option はGatewayの生成時オプション。
type Option func(*Gateway)

// WithTransport はHTTPトランスポートを差し替える。テストでの利用を想定する。
func WithTransport(transport Doer) Option {
	return func(g *Gateway) { g.transport = transport }
}

// WithCookieJar はCSRFトークンCookieの読み取り元を差し替える。
func WithCookieJar(jar http.CookieJar) Option {
	return func(g *Gateway) { g.jar = jar }
}

// WithLogger は診断ログの出力先を差し替える。
func WithLogger(logger *log.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// New は新しいGatewayを生成する。
// baseURLにはAPIサーバーのオリジンを指定する。既定のトランスポートは
// タイムアウトを設定しない。処理時間を制限したい場合は呼び出し側が
// contextで期限を指定する。
func New(baseURL string, store credstore.Store, navigator Navigator, opts ...Option) *Gateway {
	// cookiejar.Newはオプションがnilの場合エラーを返さない
	jar, _ := cookiejar.New(nil)

	g := &Gateway{
		baseURL:   baseURL,
		transport: &http.Client{Jar: jar},
		jar:       jar,
		store:     store,
		navigator: navigator,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequestOption はリクエスト単位のオプション。
type RequestOption func(*http.Request)

// WithHeader はリクエストヘッダーを上書きする。
// 既定ヘッダーとキーが衝突した場合は指定した値が優先される。
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) { req.Header.Set(key, value) }
}

// Get は指定エンドポイントへGETリクエストを送信する。
func (g *Gateway) Get(ctx context.Context, endpoint string, opts ...RequestOption) (json.RawMessage, error) {
	return g.do(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post は指定エンドポイントへbodyをJSONシリアライズしてPOSTリクエストを送信する。
func (g *Gateway) Post(ctx context.Context, endpoint string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return g.do(ctx, http.MethodPost, endpoint, body, opts)
}

// Put は指定エンドポイントへbodyをJSONシリアライズしてPUTリクエストを送信する。
func (g *Gateway) Put(ctx context.Context, endpoint string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return g.do(ctx, http.MethodPut, endpoint, body, opts)
}

// Patch は指定エンドポイントへbodyをJSONシリアライズしてPATCHリクエストを送信する。
func (g *Gateway) Patch(ctx context.Context, endpoint string, body any, opts ...RequestOption) (json.RawMessage, error) {
	return g.do(ctx, http.MethodPatch, endpoint, body, opts)
}

// Delete は指定エンドポイントへDELETEリクエストを送信する。
func (g *Gateway) Delete(ctx context.Context, endpoint string, opts ...RequestOption) (json.RawMessage, error) {
	return g.do(ctx, http.MethodDelete, endpoint, nil, opts)
}

// do はすべてのリクエストの共通処理。
//
// レスポンスは次のように分類される。
//   - 401/403: 資格情報を破棄してログインページへ遷移し、(nil, nil)を返す
//   - その他の非2xx: エラーボディからメッセージを抽出した*Errorを返す
//   - 204: ボディを読まずに(nil, nil)を返す
//   - その他の2xx: JSONレスポンスボディをそのまま返す
//
// endpointには先頭スラッシュなしの相対パス（例: "employees/"）を指定する。
// 認証失効時を除くすべての失敗は診断ログを出力したうえで呼び出し元へ返す。
func (g *Gateway) do(ctx context.Context, method, endpoint string, body any, opts []RequestOption) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			g.logFailure(method, endpoint, err)
			return nil, fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+apiRoot+endpoint, bodyReader)
	if err != nil {
		g.logFailure(method, endpoint, err)
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	if err := g.setDefaultHeaders(req); err != nil {
		g.logFailure(method, endpoint, err)
		return nil, err
	}
	// 呼び出し側のヘッダー上書きは既定ヘッダーより優先される
	for _, opt := range opts {
		opt(req)
	}

	resp, err := g.transport.Do(req)
	if err != nil {
		g.logFailure(method, endpoint, err)
		return nil, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// 認証失効: 資格情報を破棄してログインページへ遷移する。
		// 呼び出し元へはエラーを返さない（遷移が結果のすべて）。
		if err := credstore.ClearSession(g.store); err != nil {
			g.logFailure(method, endpoint, err)
		}
		g.logger.Printf("認証が失効しました。ログインページへ遷移します: method=%s endpoint=%s", method, endpoint)
		g.navigator.Navigate(loginPath)
		return nil, nil

	case resp.StatusCode == http.StatusNoContent:
		return nil, nil

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := parseAPIError(resp.StatusCode, respBody)
		g.logFailure(method, endpoint, apiErr)
		return nil, apiErr

	default:
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			g.logFailure(method, endpoint, err)
			return nil, fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)
		}
		return respBody, nil
	}
}

// setDefaultHeaders は既定のリクエストヘッダーを設定する。
// Content-Typeは常に、CSRFトークンはCookieに存在する場合のみ、
// 認証トークンはストアに保存されている場合のみ付与する。
func (g *Gateway) setDefaultHeaders(req *http.Request) error {
	req.Header.Set("Content-Type", "application/json")

	if token := g.csrfToken(); token != "" {
		req.Header.Set(csrfHeaderName, token)
	}

	authToken, err := credstore.Token(g.store)
	if err != nil {
		return fmt.Errorf("認証トークンの読み取りに失敗: %w", err)
	}
	if authToken != "" {
		req.Header.Set("Authorization", authScheme+authToken)
	}
	return nil
}

// csrfToken はAPIオリジンに対するCSRFトークンCookieの値を返す。
// Cookieが存在しない場合は空文字列を返す。
func (g *Gateway) csrfToken() string {
	if g.jar == nil {
		return ""
	}
	origin, err := url.Parse(g.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range g.jar.Cookies(origin) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// logFailure はリクエスト失敗時の診断ログを出力する。
func (g *Gateway) logFailure(method, endpoint string, err error) {
	g.logger.Printf("APIリクエストに失敗: method=%s endpoint=%s error=%v", method, endpoint, err)
}
