package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nao1215/jinji/internal/hrapi"
	"github.com/nao1215/jinji/internal/notify"
)

// runEmployees は従業員サブコマンドを実行する。
func (a *App) runEmployees(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "employees には list / get / create / update / delete のいずれかを指定します")
		return ErrUsage
	}

	switch args[0] {
	case "list":
		return a.runEmployeesList(ctx, args[1:])
	case "get":
		return a.runEmployeesGet(ctx, args[1:])
	case "create":
		return a.runEmployeesCreate(ctx, args[1:])
	case "update":
		return a.runEmployeesUpdate(ctx, args[1:])
	case "delete":
		return a.runEmployeesDelete(ctx, args[1:])
	default:
		fmt.Fprintf(a.out, "不明なemployeesサブコマンド: %s\n", args[0])
		return ErrUsage
	}
}

func (a *App) runEmployeesList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("employees list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	status := fs.String("status", "", "在籍状態で絞り込む (ACTIVE / ON_LEAVE / TERMINATED)")
	department := fs.String("department", "", "部署名で絞り込む")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	employees, err := a.client.Employees.List(ctx, hrapi.EmployeeFilter{
		Status:     *status,
		Department: *department,
	})
	if err != nil {
		return err
	}
	if employees == nil {
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "社員番号\t氏名\t部署\t役職\t状態")
	for _, e := range employees {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
			e.EmployeeNumber, e.LastName, e.FirstName, e.Department, e.Designation, e.Status)
	}
	return w.Flush()
}

func (a *App) runEmployeesGet(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "employees get には従業員IDを1つ指定します")
		return ErrUsage
	}

	employee, err := a.client.Employees.Get(ctx, args[0])
	if err != nil {
		return err
	}
	if employee == nil {
		return nil
	}

	fmt.Fprintf(a.out, "ID:       %s\n", employee.ID)
	fmt.Fprintf(a.out, "社員番号: %s\n", employee.EmployeeNumber)
	fmt.Fprintf(a.out, "氏名:     %s %s\n", employee.LastName, employee.FirstName)
	fmt.Fprintf(a.out, "メール:   %s\n", employee.Email)
	fmt.Fprintf(a.out, "部署:     %s\n", employee.Department)
	fmt.Fprintf(a.out, "役職:     %s\n", employee.Designation)
	fmt.Fprintf(a.out, "状態:     %s\n", employee.Status)
	fmt.Fprintf(a.out, "入社日:   %s\n", employee.HireDate)
	return nil
}

func (a *App) runEmployeesCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("employees create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	number := fs.String("number", "", "社員番号")
	firstName := fs.String("first-name", "", "名")
	lastName := fs.String("last-name", "", "姓")
	email := fs.String("email", "", "メールアドレス")
	department := fs.String("department", "", "部署名")
	designation := fs.String("designation", "", "役職名")
	hireDate := fs.String("hire-date", "", "入社日 (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *number == "" {
		fmt.Fprintln(a.out, "employees create には -number が必要です")
		return ErrUsage
	}

	employee, err := a.client.Employees.Create(ctx, hrapi.EmployeeRequest{
		EmployeeNumber: *number,
		FirstName:      *firstName,
		LastName:       *lastName,
		Email:          *email,
		Department:     *department,
		Designation:    *designation,
		HireDate:       *hireDate,
	})
	if err != nil {
		return err
	}
	if employee == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("従業員 %s を登録しました (ID: %s)", employee.EmployeeNumber, employee.ID), notify.LevelSuccess)
	return nil
}

func (a *App) runEmployeesUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("employees update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	department := fs.String("department", "", "部署名")
	designation := fs.String("designation", "", "役職名")
	status := fs.String("status", "", "在籍状態")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.out, "employees update には従業員IDを1つ指定します")
		return ErrUsage
	}

	// 指定されたフラグのみを更新対象にする
	fields := map[string]any{}
	if *department != "" {
		fields["department"] = *department
	}
	if *designation != "" {
		fields["designation"] = *designation
	}
	if *status != "" {
		fields["status"] = *status
	}
	if len(fields) == 0 {
		fmt.Fprintln(a.out, "employees update には更新するフィールドを1つ以上指定します")
		return ErrUsage
	}

	employee, err := a.client.Employees.UpdatePartial(ctx, fs.Arg(0), fields)
	if err != nil {
		return err
	}
	if employee == nil {
		return nil
	}
	a.notifier.Notify(fmt.Sprintf("従業員 %s を更新しました", employee.EmployeeNumber), notify.LevelSuccess)
	return nil
}

func (a *App) runEmployeesDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "employees delete には従業員IDを1つ指定します")
		return ErrUsage
	}

	if err := a.client.Employees.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.notifier.Notify("従業員を削除しました", notify.LevelSuccess)
	return nil
}
