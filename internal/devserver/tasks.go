package devserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// taskResponse はタスクのJSONレスポンス構造。
type taskResponse struct {
	// ID はタスクの一意識別子。
	ID string `json:"id"`
	// Title はタスクのタイトル。
	Title string `json:"title"`
	// Description はタスクの詳細説明。
	Description string `json:"description"`
	// AssigneeID は担当従業員のID（未割り当ては空文字列）。
	AssigneeID string `json:"assignee"`
	// Status はタスク状態（TODO / IN_PROGRESS / DONE）。
	Status string `json:"status"`
	// DueDate は期限日（YYYY-MM-DD形式、未設定は空文字列）。
	DueDate string `json:"due_date"`
}

// scanTask は1行分のタスクレコードを読み取る。
func scanTask(row interface{ Scan(...any) error }) (taskResponse, error) {
	var t taskResponse
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.AssigneeID, &t.Status, &t.DueDate)
	return t, err
}

const taskColumns = `id, title, description, assignee_id, status, due_date`

// handleListTasks はタスク一覧を返すハンドラを返す。
// statusとassigneeのクエリパラメータで絞り込みできる。
func (s *Server) handleListTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
		args := []any{}
		if status := c.Query("status"); status != "" {
			query += ` AND status = ?`
			args = append(args, status)
		}
		if assignee := c.Query("assignee"); assignee != "" {
			query += ` AND assignee_id = ?`
			args = append(args, assignee)
		}
		query += ` ORDER BY created_at DESC`

		rows, err := s.db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスク一覧の取得に失敗しました"})
			return
		}
		defer rows.Close()

		tasks := make([]taskResponse, 0)
		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスクレコードの読み取りに失敗しました"})
				return
			}
			tasks = append(tasks, t)
		}
		c.JSON(http.StatusOK, tasks)
	}
}

// handleGetTask はタスクを1件返すハンドラを返す。
func (s *Server) handleGetTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, c.Param("id"))
		t, err := scanTask(row)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスクの取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// handleCreateTask はタスクを新規作成するハンドラを返す。
func (s *Server) handleCreateTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			AssigneeID  string `json:"assignee"`
			DueDate     string `json:"due_date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "タイトルは必須です"})
			return
		}

		id := uuid.New().String()
		_, err := s.db.Exec(`
			INSERT INTO tasks (id, title, description, assignee_id, due_date)
			VALUES (?, ?, ?, ?, ?)
		`, id, req.Title, req.Description, req.AssigneeID, req.DueDate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスクの作成に失敗しました"})
			return
		}

		row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
		t, err := scanTask(row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスクの取得に失敗しました"})
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

// handleCompleteTask はタスクを完了状態にするハンドラを返す。
func (s *Server) handleCompleteTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.db.Exec(`UPDATE tasks SET status = 'DONE' WHERE id = ?`, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスクの更新に失敗しました"})
			return
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
			return
		}

		row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, c.Param("id"))
		t, err := scanTask(row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "タスクの取得に失敗しました"})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}
