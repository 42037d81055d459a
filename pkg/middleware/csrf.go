package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// csrfCookieName はCSRFトークンを保持するCookieの名前（Django標準）。
	// クライアントがJavaScript等から読み取れるよう、HttpOnlyではない。
	csrfCookieName = "csrftoken"
	// csrfHeaderName はリクエストヘッダーからCSRFトークンを読み取る際のヘッダー名。
	csrfHeaderName = "X-CSRFToken"
	// csrfCookieMaxAge はCSRFトークンCookieの有効期間（秒）。
	csrfCookieMaxAge = 86400
)

// CSRF はCSRFトークンの発行・検証を行うGinミドルウェアを返す。
// 安全なメソッド（GET, HEAD, OPTIONS）は検証をスキップし、CSRFトークン
// Cookieが未設定であれば発行する。状態変更メソッドはCookieとヘッダーの
// トークン一致を必須とする（ダブルサブミットCookie方式）。
// トークン認証（Authorizationヘッダー）を使用するリクエストはCookieセッション
// ではないため検証対象外とする。
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			ensureCSRFCookie(c)
			c.Next()
			return
		}

		// トークン認証のリクエストはCSRF攻撃の対象にならない
		if c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		cookieToken, err := c.Cookie(csrfCookieName)
		if err != nil || cookieToken == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "CSRF Failed: CSRF cookie not set.",
			})
			return
		}

		headerToken := c.GetHeader(csrfHeaderName)
		if headerToken == "" || headerToken != cookieToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "CSRF Failed: CSRF token missing or incorrect.",
			})
			return
		}

		c.Next()
	}
}

// isSafeMethod は副作用を持たないHTTPメソッドかどうかを判定する。
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ensureCSRFCookie はCSRFトークンCookieが未設定の場合に発行する。
func ensureCSRFCookie(c *gin.Context) {
	if token, err := c.Cookie(csrfCookieName); err == nil && token != "" {
		return
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// トークンを発行できない場合はCookieなしで続行する
		return
	}
	c.SetCookie(csrfCookieName, hex.EncodeToString(buf), csrfCookieMaxAge, "/", "", false, false)
}
