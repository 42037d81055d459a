package hrapi

import (
	"context"

	"github.com/nao1215/jinji/pkg/apiclient"
)

// EmployeesService は従業員管理のAPIを扱う。
type EmployeesService struct {
	gateway *apiclient.Gateway
}

// Employee は従業員のレコード。
type Employee struct {
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

// EmployeeRequest は従業員の作成・更新リクエスト。
type EmployeeRequest struct {
	// EmployeeNumber は社員番号。作成時は必須。
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Designation    string `json:"designation"`
	Status         string `json:"status,omitempty"`
	HireDate       string `json:"hire_date"`
}

// EmployeeFilter は従業員一覧の絞り込み条件。空文字列の条件は無視される。
type EmployeeFilter struct {
	// Status は在籍状態での絞り込み。
	Status string
	// Department は所属部署での絞り込み。
	Department string
}

// List は従業員の一覧を取得する。
func (s *EmployeesService) List(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	endpoint := withQuery("employees/", map[string]string{
		"status":     filter.Status,
		"department": filter.Department,
	})
	raw, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeList[Employee](raw)
}

// Get は従業員をIDで取得する。
func (s *EmployeesService) Get(ctx context.Context, id string) (*Employee, error) {
	raw, err := s.gateway.Get(ctx, "employees/"+id+"/")
	if err != nil {
		return nil, err
	}
	return decode[Employee](raw)
}

// Create は従業員を登録する。
func (s *EmployeesService) Create(ctx context.Context, req EmployeeRequest) (*Employee, error) {
	raw, err := s.gateway.Post(ctx, "employees/", req)
	if err != nil {
		return nil, err
	}
	return decode[Employee](raw)
}

// Update は従業員の全フィールドを置き換える。
func (s *EmployeesService) Update(ctx context.Context, id string, req EmployeeRequest) (*Employee, error) {
	raw, err := s.gateway.Put(ctx, "employees/"+id+"/", req)
	if err != nil {
		return nil, err
	}
	return decode[Employee](raw)
}

// UpdatePartial は指定したフィールドのみを更新する。
// fieldsのキーはJSONフィールド名（例: "designation"）。
func (s *EmployeesService) UpdatePartial(ctx context.Context, id string, fields map[string]any) (*Employee, error) {
	raw, err := s.gateway.Patch(ctx, "employees/"+id+"/", fields)
	if err != nil {
		return nil, err
	}
	return decode[Employee](raw)
}

// Delete は従業員を削除する。
func (s *EmployeesService) Delete(ctx context.Context, id string) error {
	_, err := s.gateway.Delete(ctx, "employees/"+id+"/")
	return err
}
