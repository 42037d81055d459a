package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
)

// runLeaves は休暇申請サブコマンドを実行する。
func (a *App) runLeaves(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "leaves には list / create / approve / reject のいずれかを指定します")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return a.runLeavesList(ctx, args[1:])
	case "create":
		return a.runLeavesCreate(ctx, args[1:])
	case "approve":
		return a.runLeavesDecide(ctx, args[1:], true)
	case "reject":
		return a.runLeavesDecide(ctx, args[1:], false)
	default:
		fmt.Fprintf(a.out, "不明なleavesサブコマンド: %s\n", args[0])
		return ErrUsage
	}
}

func (a *App) runLeavesList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaves list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	status := fs.String("status", "", "申請状態で絞り込む (PENDING / APPROVED / REJECTED)")
	employee := fs.String("employee", "", "従業員IDで絞り込む")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	leaves, err := a.client.Leaves.List(ctx, hrapi.LeaveFilter{
		Status:     *status,
		EmployeeID: *employee,
	})
	if err != nil {
		return err
	}
	if leaves == nil {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t従業員ID\t種別\t期間\t状態")
	for _, l := range leaves {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s〜%s\t%s\n", l.ID, l.EmployeeID, l.LeaveType, l.StartDate, l.EndDate, l.Status)
	}
	return w.Flush()
}

func (a *App) runLeavesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaves create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	employee := fs.String("employee", "", "従業員ID")
	leaveType := fs.String("type", "ANNUAL", "休暇種別 (ANNUAL / SICK / UNPAID)")
	startDate := fs.String("start", "", "開始日 (YYYY-MM-DD)")
	endDate := fs.String("end", "", "終了日 (YYYY-MM-DD)")
	reason := fs.String("reason", "", "申請理由")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *employee == "" || *startDate == "" || *endDate == "" {
		fmt.Fprintln(a.out, "leaves create には -employee、-start、-end が必要です")
		return ErrUsage
	}

	leave, err := a.client.Leaves.Create(ctx, hrapi.CreateLeaveRequest{
		EmployeeID: *employee,
		LeaveType:  *leaveType,
		StartDate:  *startDate,
		EndDate:    *endDate,
		Reason:     *reason,
	})
	if err != nil {
		return err
	}
	if leave == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("休暇を申請しました (ID: %s)", leave.ID), notify.LevelSuccess)
	return nil
}

func (a *App) runLeavesDecide(ctx context.Context, args []string, approve bool) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "approve / reject には申請IDを1つ指定します")
		return ErrUsage
	}

	var leave *hrapi.LeaveRequest
	var err error
	if approve {
		leave, err = a.client.Leaves.Approve(ctx, args[0])
	} else {
		leave, err = a.client.Leaves.Reject(ctx, args[0])
	}
	if err != nil {
		return err
	}
	if leave == nil {
		return nil
	}

	if approve {
		a.notifier.Notify("休暇申請を承認しました", notify.LevelSuccess)
	} else {
		a.notifier.Notify("休暇申請を却下しました", notify.LevelInfo)
	}
	return nil
}
