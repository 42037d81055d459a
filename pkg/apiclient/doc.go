// Package apiclient は人事管理APIへのHTTP JSONリクエストを行うゲートウェイを提供する。
//
// すべてのリクエストに共通ヘッダー（Content-Type、CSRFトークン、認証トークン）を
// 付与し、HTTPレスポンスを分類して単一のエラー型に正規化する。
// 認証失効（401/403）を検出した場合は資格情報を破棄してログインページへ
// 遷移させる。リトライやリクエストのキューイングはこの層では行わない。
package apiclient
