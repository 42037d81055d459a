// Package credstore はセッション資格情報（認証トークンとユーザー情報）の
// 永続化ストアを提供する。
//
// ブラウザのlocalStorageに相当するキーバリューストアであり、本番環境では
// SQLiteに、テストではインメモリ実装に差し替えられる。認証トークンと
// キャッシュ済みユーザー情報は必ずペアで保存・削除される。
package credstore
