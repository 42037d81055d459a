// Package devserver は人事管理APIの開発用スタンドインサーバーを提供する。
//
// 本番の人事管理バックエンドに接続できない環境でクライアントツールキットを
// 動かすためのサーバーであり、Django REST Framework互換の形式で
// 認証・従業員・勤怠・休暇・タスク・給与明細・通知のエンドポイントを提供する。
// データはSQLiteに保存する。承認フローや給与計算などの業務ルールは持たない。
package devserver
