package hrapi

import (
	"context"

	"github.com/nao1215/jinji/pkg/apiclient"
)

// AttendanceService は勤怠管理のAPIを扱う。
type AttendanceService struct {
	gateway *apiclient.Gateway
}

// AttendanceRecord は1日分の勤怠レコード。
type AttendanceRecord struct {
	// ID は勤怠レコードの一意識別子。
	ID string `json:"id"`
	// EmployeeID は従業員のID。
	EmployeeID string `json:"employee"`
	// WorkDate は勤務日（YYYY-MM-DD形式）。
	WorkDate string `json:"date"`
	// ClockInAt は出勤打刻時刻（RFC3339形式）。
	ClockInAt string `json:"clock_in_at"`
	// ClockOutAt は退勤打刻時刻（RFC3339形式）。未打刻の場合は空文字列。
	ClockOutAt string `json:"clock_out_at"`
	// Status は勤怠状態（PRESENT / ABSENT / HALF_DAY）。
	Status string `json:"status"`
}

// AttendanceFilter は勤怠一覧の絞り込み条件。空文字列の条件は無視される。
type AttendanceFilter struct {
	// EmployeeID は従業員IDでの絞り込み。
	EmployeeID string
	// Date は勤務日での絞り込み（YYYY-MM-DD形式）。
	Date string
}

// List は勤怠レコードの一覧を取得する。
func (s *AttendanceService) List(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, error) {
	endpoint := withQuery("attendance/", map[string]string{
		"employee": filter.EmployeeID,
		"date":     filter.Date,
	})
	raw, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeList[AttendanceRecord](raw)
}

// ClockIn は従業員の出勤を打刻する。
// 同一日の二重打刻はサーバー側でエラーになる。
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID string) (*AttendanceRecord, error) {
	raw, err := s.gateway.Post(ctx, "attendance/clock-in/", map[string]string{
		"employee": employeeID,
	})
	if err != nil {
		return nil, err
	}
	return decode[AttendanceRecord](raw)
}

// ClockOut は従業員の退勤を打刻する。
// 当日の出勤打刻が存在しない場合はサーバー側でエラーになる。
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID string) (*AttendanceRecord, error) {
	raw, err := s.gateway.Post(ctx, "attendance/clock-out/", map[string]string{
		"employee": employeeID,
	})
	if err != nil {
		return nil, err
	}
	return decode[AttendanceRecord](raw)
}
