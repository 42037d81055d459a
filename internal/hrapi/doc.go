// Package hrapi は人事管理APIの型付きクライアントを提供する。
// pkg/apiclientのGatewayの上に、従業員・勤怠・休暇・タスク・給与明細・通知の
// 各リソースに対応したサービスを構築する。
// 各サービスのメソッドは、認証切れでGatewayがリダイレクトした場合に
// nilとnilのエラーを返す。呼び出し側はnilレスポンスを認証切れとして扱う。
package hrapi
