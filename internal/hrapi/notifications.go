package hrapi

import (
	"context"

	"github.com/nao1215/jinji/pkg/apiclient"
)

// NotificationsService は通知のAPIを扱う。
// 通知は認証済みユーザー自身のものだけが対象になる。
type NotificationsService struct {
	gateway *apiclient.Gateway
}

// Notification はユーザーへの通知。
type Notification struct {
	// ID は通知の一意識別子。
	ID string `json:"id"`
	// Title は通知のタイトル。
	Title string `json:"title"`
	// Message は通知の本文。
	Message string `json:"message"`
	// IsRead は既読かどうか。
	IsRead bool `json:"is_read"`
	// CreatedAt は作成日時（RFC3339形式）。
	CreatedAt string `json:"created_at"`
}

// List は通知の一覧を取得する。既読・未読の両方を含む。
func (s *NotificationsService) List(ctx context.Context) ([]Notification, error) {
	raw, err := s.gateway.Get(ctx, "notifications/")
	if err != nil {
		return nil, err
	}
	return decodeList[Notification](raw)
}

// Unread は未読の通知一覧を取得する。
func (s *NotificationsService) Unread(ctx context.Context) ([]Notification, error) {
	raw, err := s.gateway.Get(ctx, "notifications/unread/")
	if err != nil {
		return nil, err
	}
	return decodeList[Notification](raw)
}

// MarkRead は通知を既読にする。
func (s *NotificationsService) MarkRead(ctx context.Context, id string) error {
	_, err := s.gateway.Put(ctx, "notifications/"+id+"/read/", nil)
	return err
}
