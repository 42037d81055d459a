package hrapi

import (
	"context"

	"github.com/nao1215/jinji/pkg/apiclient"
)

// TasksService はタスク管理のAPIを扱う。
type TasksService struct {
	gateway *apiclient.Gateway
}

// Task は従業員に割り当てられたタスク。
type Task struct {
	// ID はタスクの一意識別子。
	ID string `json:"id"`
	// Title はタスクのタイトル。
	Title string `json:"title"`
	// Description はタスクの詳細説明。
	Description string `json:"description"`
	// AssigneeID は担当する従業員のID。
	AssigneeID string `json:"assignee"`
	// Status はタスク状態（TODO / IN_PROGRESS / DONE）。
	Status string `json:"status"`
	// DueDate は期限日（YYYY-MM-DD形式）。
	DueDate string `json:"due_date"`
}

// CreateTaskRequest はタスクの作成リクエスト。
type CreateTaskRequest struct {
	// Title はタスクのタイトル。必須。
	Title string `json:"title"`
	// Description はタスクの詳細説明。
	Description string `json:"description"`
	// AssigneeID は担当する従業員のID。
	AssigneeID string `json:"assignee"`
	// DueDate は期限日（YYYY-MM-DD形式）。
	DueDate string `json:"due_date"`
}

// TaskFilter はタスク一覧の絞り込み条件。空文字列の条件は無視される。
type TaskFilter struct {
	// Status はタスク状態での絞り込み。
	Status string
	// AssigneeID は担当者IDでの絞り込み。
	AssigneeID string
}

// List はタスクの一覧を取得する。
func (s *TasksService) List(ctx context.Context, filter TaskFilter) ([]Task, error) {
	endpoint := withQuery("tasks/", map[string]string{
		"status":   filter.Status,
		"assignee": filter.AssigneeID,
	})
	raw, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeList[Task](raw)
}

// Get はタスクをIDで取得する。
func (s *TasksService) Get(ctx context.Context, id string) (*Task, error) {
	raw, err := s.gateway.Get(ctx, "tasks/"+id+"/")
	if err != nil {
		return nil, err
	}
	return decode[Task](raw)
}

// Create はタスクを作成する。タスクはTODO状態で登録される。
func (s *TasksService) Create(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	raw, err := s.gateway.Post(ctx, "tasks/", req)
	if err != nil {
		return nil, err
	}
	return decode[Task](raw)
}

// Complete はタスクをDONE状態にする。
func (s *TasksService) Complete(ctx context.Context, id string) (*Task, error) {
	raw, err := s.gateway.Post(ctx, "tasks/"+id+"/complete/", nil)
	if err != nil {
		return nil, err
	}
	return decode[Task](raw)
}
