package devserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// payslipResponse は給与明細のJSONレスポンス構造。
// 金額は桁落ちを避けるため文字列表現とする（本番バックエンドと同じ）。
type payslipResponse struct {
	// ID は給与明細の一意識別子。
	ID string `json:"id"`
	// EmployeeID は対象従業員のID。
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

// scanPayslip は1行分の給与明細レコードを読み取る。
func scanPayslip(row interface{ Scan(...any) error }) (payslipResponse, error) {
	var p payslipResponse
	var issuedAt time.Time
	if err := row.Scan(&p.ID, &p.EmployeeID, &p.Period, &p.GrossPay, &p.NetPay, &issuedAt); err != nil {
		return payslipResponse{}, err
	}
	p.IssuedAt = issuedAt.Format(time.RFC3339)
	return p, nil
}

const payslipColumns = `id, employee_id, period, gross_pay, net_pay, issued_at`

// handleListPayslips は給与明細一覧を返すハンドラを返す。
// employeeとperiodのクエリパラメータで絞り込みできる。
func (s *Server) handleListPayslips() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT ` + payslipColumns + ` FROM payslips WHERE 1=1`
		args := []any{}
		if employee := c.Query("employee"); employee != "" {
			query += ` AND employee_id = ?`
			args = append(args, employee)
		}
		if period := c.Query("period"); period != "" {
			query += ` AND period = ?`
			args = append(args, period)
		}
		query += ` ORDER BY period DESC`

		rows, err := s.db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "給与明細一覧の取得に失敗しました"})
			return
		}
		defer rows.Close()

		payslips := make([]payslipResponse, 0)
		for rows.Next() {
			p, err := scanPayslip(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "給与明細レコードの読み取りに失敗しました"})
				return
			}
			payslips = append(payslips, p)
		}
		c.JSON(http.StatusOK, payslips)
	}
}

// handleGetPayslip は給与明細を1件返すハンドラを返す。
func (s *Server) handleGetPayslip() gin.HandlerFunc {
	return func(c *gin.Context) {
		row := s.db.QueryRow(`SELECT `+payslipColumns+` FROM payslips WHERE id = ?`, c.Param("id"))
		p, err := scanPayslip(row)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "給与明細の取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
