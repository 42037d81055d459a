package hrapi

import (
	"context"

	"github.com/nao1215/jinji/pkg/apiclient"
)

// LeavesService は休暇申請のAPIを扱う。
type LeavesService struct {
	gateway *apiclient.Gateway
}

// LeaveRequest は休暇申請のレコード。
type LeaveRequest struct {
	// ID は休暇申請の一意識別子。
	ID string `json:"id"`
	// EmployeeID は申請した従業員のID。
	EmployeeID string `json:"employee"`
	// LeaveType は休暇種別（ANNUAL / SICK / UNPAID）。
	LeaveType string `json:"leave_type"`
	// StartDate は休暇開始日（YYYY-MM-DD形式）。
	StartDate string `json:"start_date"`
	// EndDate は休暇終了日（YYYY-MM-DD形式）。
	EndDate string `json:"end_date"`
	// Reason は申請理由。
	Reason string `json:"reason"`
	// Status は申請状態（PENDING / APPROVED / REJECTED）。
	Status string `json:"status"`
}

// CreateLeaveRequest は休暇申請の作成リクエスト。
type CreateLeaveRequest struct {
	// EmployeeID は申請する従業員のID。必須。
	EmployeeID string `json:"employee"`
	// LeaveType は休暇種別。必須。
	LeaveType string `json:"leave_type"`
	// StartDate は休暇開始日（YYYY-MM-DD形式）。必須。
	StartDate string `json:"start_date"`
	// EndDate は休暇終了日（YYYY-MM-DD形式）。開始日以降であること。必須。
	EndDate string `json:"end_date"`
	// Reason は申請理由。
	Reason string `json:"reason"`
}

// LeaveFilter は休暇申請一覧の絞り込み条件。空文字列の条件は無視される。
type LeaveFilter struct {
	// Status は申請状態での絞り込み。
	Status string
	// EmployeeID は従業員IDでの絞り込み。
	EmployeeID string
}

// List は休暇申請の一覧を取得する。
func (s *LeavesService) List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error) {
	endpoint := withQuery("leaves/", map[string]string{
		"status":   filter.Status,
		"employee": filter.EmployeeID,
	})
	raw, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeList[LeaveRequest](raw)
}

// Create は休暇申請を作成する。申請はPENDING状態で登録される。
func (s *LeavesService) Create(ctx context.Context, req CreateLeaveRequest) (*LeaveRequest, error) {
	raw, err := s.gateway.Post(ctx, "leaves/", req)
	if err != nil {
		return nil, err
	}
	return decode[LeaveRequest](raw)
}

// Approve はPENDING状態の休暇申請を承認する。
func (s *LeavesService) Approve(ctx context.Context, id string) (*LeaveRequest, error) {
	raw, err := s.gateway.Post(ctx, "leaves/"+id+"/approve/", nil)
	if err != nil {
		return nil, err
	}
	return decode[LeaveRequest](raw)
}

// Reject はPENDING状態の休暇申請を却下する。
func (s *LeavesService) Reject(ctx context.Context, id string) (*LeaveRequest, error) {
	raw, err := s.gateway.Post(ctx, "leaves/"+id+"/reject/", nil)
	if err != nil {
		return nil, err
	}
	return decode[LeaveRequest](raw)
}
