package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/jinji/pkg/middleware"
)

// notificationResponse は通知のJSONレスポンス構造。
type notificationResponse struct {
	// ID は通知の一意識別子。
	ID string `json:"id"`
	// Title は通知のタイトル。
	Title string `json:"title"`
	// Message は通知メッセージ。
	Message string `json:"message"`
	// IsRead は既読状態。
	IsRead bool `json:"is_read"`
	// CreatedAt は作成日時（RFC3339形式）。
	CreatedAt string `json:"created_at"`
}

// listNotifications は認証済みユーザーの通知一覧を取得する共通処理。
// unreadOnlyがtrueの場合は未読のみ返す。
func (s *Server) listNotifications(c *gin.Context, unreadOnly bool) {
	userID := middleware.GetUserID(c)
	query := `SELECT id, title, message, is_read, created_at FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "通知一覧の取得に失敗しました"})
		return
	}
	defer rows.Close()

	notifications := make([]notificationResponse, 0)
	for rows.Next() {
		var n notificationResponse
		var isRead int
		var createdAt time.Time
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &isRead, &createdAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "通知レコードの読み取りに失敗しました"})
			return
		}
		n.IsRead = isRead != 0
		n.CreatedAt = createdAt.Format(time.RFC3339)
		notifications = append(notifications, n)
	}
	c.JSON(http.StatusOK, notifications)
}

// handleListNotifications は認証済みユーザーの全通知を返すハンドラを返す。
func (s *Server) handleListNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.listNotifications(c, false)
	}
}

// handleListUnreadNotifications は認証済みユーザーの未読通知を返すハンドラを返す。
func (s *Server) handleListUnreadNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.listNotifications(c, true)
	}
}

// handleMarkNotificationRead は通知を既読にするハンドラを返す。
// 他ユーザーの通知は既読にできない。
func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		result, err := s.db.Exec(`
			UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?
		`, c.Param("id"), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "通知の更新に失敗しました"})
			return
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
