// Package middleware は開発用人事管理APIサーバーで使用するGinミドルウェアを提供する。
//
// トークン認証の検証、CSRF対策、パニックリカバリ、CORS設定を含む。
// エラーレスポンスはDjango REST Framework互換の {"detail": "..."} 形式で返す。
package middleware
