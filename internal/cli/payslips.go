package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nao1215/jinji/internal/hrapi"
)

// runPayslips は給与明細サブコマンドを実行する。
func (a *App) runPayslips(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "payslips には list / get のいずれかを指定します")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return a.runPayslipsList(ctx, args[1:])
	case "get":
		return a.runPayslipsGet(ctx, args[1:])
	default:
		fmt.Fprintf(a.out, "不明なpayslipsサブコマンド: %s\n", args[0])
		return ErrUsage
	}
}

func (a *App) runPayslipsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("payslips list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	employee := fs.String("employee", "", "従業員IDで絞り込む")
	period := fs.String("period", "", "支給対象期間で絞り込む (YYYY-MM)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	payslips, err := a.client.Payslips.List(ctx, hrapi.PayslipFilter{
		EmployeeID: *employee,
		Period:     *period,
	})
	if err != nil {
		return err
	}
	if payslips == nil {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t従業員ID\t期間\t総支給額\t差引支給額")
	for _, p := range payslips {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.EmployeeID, p.Period, p.GrossPay, p.NetPay)
	}
	return w.Flush()
}

func (a *App) runPayslipsGet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "payslips get には給与明細IDを1つ指定します")
		return ErrUsage
	}

	payslip, err := a.client.Payslips.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if payslip == nil {
		return nil
	}

	fmt.Fprintf(a.out, "ID:         %s\n", payslip.ID)
	fmt.Fprintf(a.out, "従業員ID:   %s\n", payslip.EmployeeID)
	fmt.Fprintf(a.out, "期間:       %s\n", payslip.Period)
	fmt.Fprintf(a.out, "総支給額:   %s\n", payslip.GrossPay)
	fmt.Fprintf(a.out, "差引支給額: %s\n", payslip.NetPay)
	fmt.Fprintf(a.out, "発行日時:   %s\n", payslip.IssuedAt)
	return nil
}
