package devserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// attendanceResponse は勤怠レコードのJSONレスポンス構造。
type attendanceResponse struct {
	// ID は勤怠レコードの一意識別子。
	ID string `json:"id"`
	// EmployeeID は対象従業員のID。
	EmployeeID string `json:"employee"`
	// WorkDate は勤務日（YYYY-MM-DD形式）。
	WorkDate string `json:"date"`
	// ClockInAt は出勤時刻（RFC3339形式、未打刻は空文字列）。
	ClockInAt string `json:"clock_in_at"`
	// ClockOutAt は退勤時刻（RFC3339形式、未打刻は空文字列）。
	ClockOutAt string `json:"clock_out_at"`
	// Status は勤怠状態（PRESENT / ABSENT / ON_LEAVE）。
	Status string `json:"status"`
}

// handleListAttendance は勤怠レコード一覧を返すハンドラを返す。
// employeeとdateのクエリパラメータで絞り込みできる。
func (s *Server) handleListAttendance() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT id, employee_id, work_date, clock_in_at, clock_out_at, status
			FROM attendance_records WHERE 1=1`
		args := []any{}
		if employee := c.Query("employee"); employee != "" {
			query += ` AND employee_id = ?`
			args = append(args, employee)
		}
		if date := c.Query("date"); date != "" {
			query += ` AND work_date = ?`
			args = append(args, date)
		}
		query += ` ORDER BY work_date DESC`

		rows, err := s.db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "勤怠一覧の取得に失敗しました"})
			return
		}
		defer rows.Close()

		records := make([]attendanceResponse, 0)
		for rows.Next() {
			var r attendanceResponse
			if err := rows.Scan(&r.ID, &r.EmployeeID, &r.WorkDate, &r.ClockInAt, &r.ClockOutAt, &r.Status); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "勤怠レコードの読み取りに失敗しました"})
				return
			}
			records = append(records, r)
		}
		c.JSON(http.StatusOK, records)
	}
}

// clockRequest は出退勤打刻のリクエスト構造。
type clockRequest struct {
	// EmployeeID は打刻する従業員のID。
	EmployeeID string `json:"employee"`
}

// handleClockIn は出勤打刻を処理するハンドラを返す。
// 同一従業員・同一日の二重打刻はエラーとする。
func (s *Server) handleClockIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req clockRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "従業員IDは必須です"})
			return
		}

		now := time.Now()
		_, err := s.db.Exec(`
			INSERT INTO attendance_records (id, employee_id, work_date, clock_in_at, status)
			VALUES (?, ?, ?, ?, 'PRESENT')
		`, uuid.New().String(), req.EmployeeID, now.Format("2006-01-02"), now.Format(time.RFC3339))
		if err != nil {
			// 同一日のUNIQUE制約違反を含む
			c.JSON(http.StatusBadRequest, gin.H{"detail": "既に出勤打刻済みです"})
			return
		}

		var r attendanceResponse
		err = s.db.QueryRow(`
			SELECT id, employee_id, work_date, clock_in_at, clock_out_at, status
			FROM attendance_records WHERE employee_id = ? AND work_date = ?
		`, req.EmployeeID, now.Format("2006-01-02")).
			Scan(&r.ID, &r.EmployeeID, &r.WorkDate, &r.ClockInAt, &r.ClockOutAt, &r.Status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "勤怠レコードの取得に失敗しました"})
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

// handleClockOut は退勤打刻を処理するハンドラを返す。
// 当日の出勤レコードがない場合はエラーとする。
func (s *Server) handleClockOut() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req clockRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.EmployeeID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "従業員IDは必須です"})
			return
		}

		now := time.Now()
		var r attendanceResponse
		err := s.db.QueryRow(`
			SELECT id, employee_id, work_date, clock_in_at, clock_out_at, status
			FROM attendance_records WHERE employee_id = ? AND work_date = ?
		`, req.EmployeeID, now.Format("2006-01-02")).
			Scan(&r.ID, &r.EmployeeID, &r.WorkDate, &r.ClockInAt, &r.ClockOutAt, &r.Status)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "本日の出勤打刻がありません"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "勤怠レコードの取得に失敗しました"})
			return
		}

		r.ClockOutAt = now.Format(time.RFC3339)
		if _, err := s.db.Exec(`UPDATE attendance_records SET clock_out_at = ? WHERE id = ?`, r.ClockOutAt, r.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "勤怠レコードの更新に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, r)
	}
}
