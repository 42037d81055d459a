package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
)

// runAttendance は勤怠サブコマンドを実行する。
func (a *App) runAttendance(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "attendance には list / clock-in / clock-out のいずれかを指定します")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return a.runAttendanceList(ctx, args[1:])
	case "clock-in":
		return a.runClock(ctx, args[1:], true)
	case "clock-out":
		return a.runClock(ctx, args[1:], false)
	default:
		fmt.Fprintf(a.out, "不明なattendanceサブコマンド: %s\n", args[0])
		return ErrUsage
	}
}

func (a *App) runAttendanceList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("attendance list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	employee := fs.String("employee", "", "従業員IDで絞り込む")
	date := fs.String("date", "", "勤務日で絞り込む (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	records, err := a.client.Attendance.List(ctx, hrapi.AttendanceFilter{
		EmployeeID: *employee,
		Date:       *date,
	})
	if err != nil {
		return err
	}
	if records == nil {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "勤務日\t従業員ID\t出勤\t退勤\t状態")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.WorkDate, r.EmployeeID, r.ClockInAt, r.ClockOutAt, r.Status)
	}
	return w.Flush()
}

func (a *App) runClock(ctx context.Context, args []string, clockIn bool) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "clock-in / clock-out には従業員IDを1つ指定します")
		return ErrUsage
	}

	var record *hrapi.AttendanceRecord
	var err error
	if clockIn {
		record, err = a.client.Attendance.ClockIn(ctx, args[0])
	} else {
		record, err = a.client.Attendance.ClockOut(ctx, args[0])
	}
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	if clockIn {
		a.notifier.Notify(fmt.Sprintf("出勤を打刻しました (%s)", record.ClockInAt), notify.LevelSuccess)
	} else {
		a.notifier.Notify(fmt.Sprintf("退勤を打刻しました (%s)", record.ClockOutAt), notify.LevelSuccess)
	}
	return nil
}
