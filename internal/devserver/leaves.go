package devserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// leaveResponse は休暇申請のJSONレスポンス構造。
type leaveResponse struct {
	// ID は休暇申請の一意識別子。
	ID string `json:"id"`
	// EmployeeID は申請した従業員のID。
	EmployeeID string `json:"employee"`
	// LeaveType は休暇種別（ANNUAL / SICK / UNPAID等）。
	LeaveType string `json:"leave_type"`
	// StartDate は開始日（YYYY-MM-DD形式）。
	StartDate string `json:"start_date"`
	// EndDate は終了日（YYYY-MM-DD形式）。
	EndDate string `json:"end_date"`
	// Reason は申請理由。
	Reason string `json:"reason"`
	// Status は申請状態（PENDING / APPROVED / REJECTED）。
	Status string `json:"status"`
}

// scanLeave は1行分の休暇申請レコードを読み取る。
func scanLeave(row interface{ Scan(...any) error }) (leaveResponse, error) {
	var l leaveResponse
	err := row.Scan(&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Reason, &l.Status)
	return l, err
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, reason, status`

// handleListLeaves は休暇申請一覧を返すハンドラを返す。
// statusとemployeeのクエリパラメータで絞り込みできる。
func (s *Server) handleListLeaves() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE 1=1`
		args := []any{}
		if status := c.Query("status"); status != "" {
			query += ` AND status = ?`
			args = append(args, status)
		}
		if employee := c.Query("employee"); employee != "" {
			query += ` AND employee_id = ?`
			args = append(args, employee)
		}
		query += ` ORDER BY created_at DESC`

		rows, err := s.db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "休暇申請一覧の取得に失敗しました"})
			return
		}
		defer rows.Close()

		leaves := make([]leaveResponse, 0)
		for rows.Next() {
			l, err := scanLeave(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "休暇申請レコードの読み取りに失敗しました"})
				return
			}
			leaves = append(leaves, l)
		}
		c.JSON(http.StatusOK, leaves)
	}
}

// handleCreateLeave は休暇申請を作成するハンドラを返す。
func (s *Server) handleCreateLeave() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			EmployeeID string `json:"employee"`
			LeaveType  string `json:"leave_type"`
			StartDate  string `json:"start_date"`
			EndDate    string `json:"end_date"`
			Reason     string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "リクエストボディが不正です"})
			return
		}
		if req.EmployeeID == "" || req.LeaveType == "" || req.StartDate == "" || req.EndDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "従業員ID・休暇種別・開始日・終了日は必須です"})
			return
		}
		if req.EndDate < req.StartDate {
			c.JSON(http.StatusBadRequest, gin.H{
				"non_field_errors": []string{"終了日は開始日以降でなければなりません"},
			})
			return
		}

		id := uuid.New().String()
		_, err := s.db.Exec(`
			INSERT INTO leave_requests (id, employee_id, leave_type, start_date, end_date, reason)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate, req.Reason)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "休暇申請の作成に失敗しました"})
			return
		}

		row := s.db.QueryRow(`SELECT `+leaveColumns+` FROM leave_requests WHERE id = ?`, id)
		l, err := scanLeave(row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "休暇申請の取得に失敗しました"})
			return
		}
		c.JSON(http.StatusCreated, l)
	}
}

// handleDecideLeave は休暇申請を承認または却下するハンドラを返す。
// PENDING状態の申請のみ決定できる。
func (s *Server) handleDecideLeave(decision string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		row := s.db.QueryRow(`SELECT `+leaveColumns+` FROM leave_requests WHERE id = ?`, id)
		l, err := scanLeave(row)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "休暇申請の取得に失敗しました"})
			return
		}
		if l.Status != "PENDING" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "この申請は既に決定済みです"})
			return
		}

		if _, err := s.db.Exec(`UPDATE leave_requests SET status = ? WHERE id = ?`, decision, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "休暇申請の更新に失敗しました"})
			return
		}
		l.Status = decision
		c.JSON(http.StatusOK, l)
	}
}
