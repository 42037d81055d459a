package hrapi

import (
	"context"

	"github.com/nao1215/jinji/pkg/apiclient"
)

// PayslipsService は給与明細のAPIを扱う。
type PayslipsService struct {
	gateway *apiclient.Gateway
}

// Payslip は1期間分の給与明細。
// 金額は丸め誤差を避けるため文字列で扱う。
type Payslip struct {
	// ID は給与明細の一意識別子。
	ID string `json:"id"`
	// EmployeeID は従業員のID。
	EmployeeID string `json:"employee"`
	// Period は支給対象期間（YYYY-MM形式）。
	Period string `json:"period"`
	// GrossPay は総支給額。
	GrossPay string `json:"gross_pay"`
	// NetPay は差引支給額。
	NetPay string `json:"net_pay"`
	// IssuedAt は発行日時（RFC3339形式）。
	IssuedAt string `json:"issued_at"`
}

// PayslipFilter は給与明細一覧の絞り込み条件。空文字列の条件は無視される。
type PayslipFilter struct {
	// EmployeeID は従業員IDでの絞り込み。
	EmployeeID string
	// Period は支給対象期間での絞り込み（YYYY-MM形式）。
	Period string
}

// List は給与明細の一覧を取得する。
func (s *PayslipsService) List(ctx context.Context, filter PayslipFilter) ([]Payslip, error) {
	endpoint := withQuery("payslips/", map[string]string{
		"employee": filter.EmployeeID,
		"period":   filter.Period,
	})
	raw, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeList[Payslip](raw)
}

// Get は給与明細をIDで取得する。
func (s *PayslipsService) Get(ctx context.Context, id string) (*Payslip, error) {
	raw, err := s.gateway.Get(ctx, "payslips/"+id+"/")
	if err != nil {
		return nil, err
	}
	return decode[Payslip](raw)
}
