package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
)

// runNotifications は通知サブコマンドを実行する。
func (a *App) runNotifications(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "notifications には list / unread / read のいずれかを指定します")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return a.runNotificationsList(ctx, false)
	case "unread":
		return a.runNotificationsList(ctx, true)
	case "read":
		return a.runNotificationsRead(ctx, args[1:])
	default:
		fmt.Fprintf(a.out, "不明なnotificationsサブコマンド: %s\n", args[0])
		return ErrUsage
	}
}

func (a *App) runNotificationsList(ctx context.Context, unreadOnly bool) error {
	var notifications []hrapi.Notification
	var err error
	if unreadOnly {
		notifications, err = a.client.Notifications.Unread(ctx)
	} else {
		notifications, err = a.client.Notifications.List(ctx)
	}
	if err != nil {
		return err
	}
	if notifications == nil {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tタイトル\t本文\t既読")
	for _, n := range notifications {
		read := "未読"
		if n.IsRead {
			read = "既読"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Message, read)
	}
	return w.Flush()
}

func (a *App) runNotificationsRead(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "notifications read には通知IDを1つ指定します")
		return ErrUsage
	}

	if err := a.client.Notifications.MarkRead(ctx, args[0]); err != nil {
		return err
	}
	a.notifier.Notify("通知を既読にしました", notify.LevelSuccess)
	return nil
}
