// Package cli は人事管理APIを操作するコマンドラインインタフェースを提供する。
// Webフロントエンドの画面操作に相当する機能をサブコマンドとして実装する。
package cli
