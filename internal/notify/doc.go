// Package notify はユーザー向けの通知表示を提供する。
// Webフロントエンドのトースト通知に相当するもので、
// CLIでは端末への色付き出力として実装する。
package notify
