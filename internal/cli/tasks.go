package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
)

// runTasks はタスクサブコマンドを実行する。
func (a *App) runTasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "tasks には list / get / create / complete のいずれかを指定します")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return a.runTasksList(ctx, args[1:])
	case "get":
		return a.runTasksGet(ctx, args[1:])
	case "create":
		return a.runTasksCreate(ctx, args[1:])
	case "complete":
		return a.runTasksComplete(ctx, args[1:])
	default:
		fmt.Fprintf(a.out, "不明なtasksサブコマンド: %s\n", args[0])
		return ErrUsage
	}
}

func (a *App) runTasksList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	status := fs.String("status", "", "タスク状態で絞り込む (TODO / IN_PROGRESS / DONE)")
	assignee := fs.String("assignee", "", "担当者IDで絞り込む")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	tasks, err := a.client.Tasks.List(ctx, hrapi.TaskFilter{
		Status:     *status,
		AssigneeID: *assignee,
	})
	if err != nil {
		return err
	}
	if tasks == nil {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tタイトル\t期限\t状態")
	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", task.ID, task.Title, task.DueDate, task.Status)
	}
	return w.Flush()
}

func (a *App) runTasksGet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "tasks get にはタスクIDを1つ指定します")
		return ErrUsage
	}

	task, err := a.client.Tasks.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	fmt.Fprintf(a.out, "ID:       %s\n", task.ID)
	fmt.Fprintf(a.out, "タイトル: %s\n", task.Title)
	fmt.Fprintf(a.out, "詳細:     %s\n", task.Description)
	fmt.Fprintf(a.out, "担当者:   %s\n", task.AssigneeID)
	fmt.Fprintf(a.out, "期限:     %s\n", task.DueDate)
	fmt.Fprintf(a.out, "状態:     %s\n", task.Status)
	return nil
}

func (a *App) runTasksCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	title := fs.String("title", "", "タスクのタイトル")
	description := fs.String("description", "", "タスクの詳細説明")
	assignee := fs.String("assignee", "", "担当する従業員のID")
	dueDate := fs.String("due", "", "期限日 (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *title == "" {
		fmt.Fprintln(a.out, "tasks create には -title が必要です")
		return ErrUsage
	}

	task, err := a.client.Tasks.Create(ctx, hrapi.CreateTaskRequest{
		Title:       *title,
		Description: *description,
		AssigneeID:  *assignee,
		DueDate:     *dueDate,
	})
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("タスクを作成しました (ID: %s)", task.ID), notify.LevelSuccess)
	return nil
}

func (a *App) runTasksComplete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "tasks complete にはタスクIDを1つ指定します")
		return ErrUsage
	}

	task, err := a.client.Tasks.Complete(ctx, args[0])
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("タスク「%s」を完了しました", task.Title), notify.LevelSuccess)
	return nil
}
