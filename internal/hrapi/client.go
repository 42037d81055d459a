package hrapi

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nao1215/jinji/pkg/apiclient"
	"github.com/nao1215/jinji/pkg/credstore"
)

// Client は人事管理APIの型付きクライアント。
// リソースごとのサービスをまとめて保持する。
type Client struct {
	// Accounts は認証とユーザー情報のサービス。
	Accounts *AccountsService
	// Employees は従業員管理のサービス。
	Employees *EmployeesService
	// Attendance は勤怠管理のサービス。
	Attendance *AttendanceService
	// Leaves は休暇申請のサービス。
	Leaves *LeavesService
	// Tasks はタスク管理のサービス。
	Tasks *TasksService
	// Payslips は給与明細のサービス。
	Payslips *PayslipsService
	// Notifications は通知のサービス。
	Notifications *NotificationsService
}

// NewClient は人事管理APIクライアントを生成する。
// storeはAccountsServiceがセッションの保存と破棄に使用する。
func NewClient(gateway *apiclient.Gateway, store credstore.Store) *Client {
	return &Client{
		Accounts:      &AccountsService{gateway: gateway, store: store},
		Employees:     &EmployeesService{gateway: gateway},
		Attendance:    &AttendanceService{gateway: gateway},
		Leaves:        &LeavesService{gateway: gateway},
		Tasks:         &TasksService{gateway: gateway},
		Payslips:      &PayslipsService{gateway: gateway},
		Notifications: &NotificationsService{gateway: gateway},
	}
}

// decode はAPIレスポンスを指定した型にデシリアライズする。
// rawがnilの場合（認証切れまたは204）はnilとnilを返す。
func decode[T any](raw json.RawMessage) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("レスポンスのデシリアライズに失敗: %w", err)
	}
	return &v, nil
}

// decodeList はAPIレスポンスをスライスにデシリアライズする。
// rawがnilの場合はnilとnilを返す。
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	if raw == nil {
		return nil, nil
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("レスポンスのデシリアライズに失敗: %w", err)
	}
	return v, nil
}

// withQuery はエンドポイントにクエリパラメータを付与する。
// 空の値は付与しない。
func withQuery(endpoint string, params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		if value != "" {
			values.Set(key, value)
		}
	}
	if len(values) == 0 {
		return endpoint
	}
	return endpoint + "?" + values.Encode()
}
