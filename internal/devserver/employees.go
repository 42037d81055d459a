package devserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// employeeResponse は従業員のJSONレスポンス構造。
type employeeResponse struct {
	// ID は従業員の一意識別子。
	ID string `json:"id"`
	// EmployeeNumber は社員番号。
	EmployeeNumber string `json:"employee_number"`
	// FirstName は名。
	FirstName string `json:"first_name"`
	// LastName は姓。
	LastName string `json:"last_name"`
	// Email はメールアドレス。
	Email string `json:"email"`
	// Department は所属部署名。
	Department string `json:"department"`
	// Designation は役職名。
	Designation string `json:"designation"`
	// Status は在籍状態（ACTIVE / ON_LEAVE / TERMINATED）。
	Status string `json:"status"`
	// HireDate は入社日（YYYY-MM-DD形式）。
	HireDate string `json:"hire_date"`
}

// employeeRequest は従業員の作成・更新リクエスト構造。
type employeeRequest struct {
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Designation    string `json:"designation"`
	Status         string `json:"status"`
	HireDate       string `json:"hire_date"`
}

// scanEmployee は1行分の従業員レコードを読み取る。
func scanEmployee(row interface{ Scan(...any) error }) (employeeResponse, error) {
	var e employeeResponse
	err := row.Scan(&e.ID, &e.EmployeeNumber, &e.FirstName, &e.LastName,
		&e.Email, &e.Department, &e.Designation, &e.Status, &e.HireDate)
	return e, err
}

const employeeColumns = `id, employee_number, first_name, last_name, email, department, designation, status, hire_date`

// handleListEmployees は従業員一覧を返すハンドラを返す。
// statusとdepartmentのクエリパラメータで絞り込みできる。
func (s *Server) handleListEmployees() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
		args := []any{}
		if status := c.Query("status"); status != "" {
			query += ` AND status = ?`
			args = append(args, status)
		}
		if department := c.Query("department"); department != "" {
			query += ` AND department = ?`
			args = append(args, department)
		}
		query += ` ORDER BY employee_number`

		rows, err := s.db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員一覧の取得に失敗しました"})
			return
		}
		defer rows.Close()

		employees := make([]employeeResponse, 0)
		for rows.Next() {
			e, err := scanEmployee(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員レコードの読み取りに失敗しました"})
				return
			}
			employees = append(employees, e)
		}
		c.JSON(http.StatusOK, employees)
	}
}

// handleGetEmployee は従業員を1件返すハンドラを返す。
func (s *Server) handleGetEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		row := s.db.QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, c.Param("id"))
		e, err := scanEmployee(row)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員の取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// handleCreateEmployee は従業員を新規作成するハンドラを返す。
func (s *Server) handleCreateEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req employeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "リクエストボディが不正です"})
			return
		}
		if req.EmployeeNumber == "" || req.LastName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "社員番号と姓は必須です"})
			return
		}
		if req.Status == "" {
			req.Status = "ACTIVE"
		}

		id := uuid.New().String()
		_, err := s.db.Exec(`
			INSERT INTO employees (id, employee_number, first_name, last_name, email, department, designation, status, hire_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, req.EmployeeNumber, req.FirstName, req.LastName, req.Email,
			req.Department, req.Designation, req.Status, req.HireDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "従業員の作成に失敗しました"})
			return
		}

		row := s.db.QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
		e, err := scanEmployee(row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員の取得に失敗しました"})
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// handleUpdateEmployee は従業員を更新するハンドラを返す。
// PUTとPATCHの両方に対応し、指定されたフィールドのみ更新する。
func (s *Server) handleUpdateEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		row := s.db.QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
		current, err := scanEmployee(row)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員の取得に失敗しました"})
			return
		}

		// 未指定フィールドは現在値を維持する
		req := employeeRequest{
			EmployeeNumber: current.EmployeeNumber,
			FirstName:      current.FirstName,
			LastName:       current.LastName,
			Email:          current.Email,
			Department:     current.Department,
			Designation:    current.Designation,
			Status:         current.Status,
			HireDate:       current.HireDate,
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "リクエストボディが不正です"})
			return
		}

		_, err = s.db.Exec(`
			UPDATE employees
			SET employee_number = ?, first_name = ?, last_name = ?, email = ?,
			    department = ?, designation = ?, status = ?, hire_date = ?
			WHERE id = ?
		`, req.EmployeeNumber, req.FirstName, req.LastName, req.Email,
			req.Department, req.Designation, req.Status, req.HireDate, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員の更新に失敗しました"})
			return
		}

		row = s.db.QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
		updated, err := scanEmployee(row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員の取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// handleDeleteEmployee は従業員を削除するハンドラを返す。
func (s *Server) handleDeleteEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.db.Exec(`DELETE FROM employees WHERE id = ?`, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "従業員の削除に失敗しました"})
			return
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
