package model

import (
	"fmt"
	"time"
)

// PublicHoliday 公共假期
type PublicHoliday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// CoverageMethod 年假顶班方式
type CoverageMethod string

const (
	CoverageAutoSwap    CoverageMethod = "auto-swap"    // 自动同角色顶班
	CoverageTempStaff   CoverageMethod = "temp-staff"   // 临时工顶班
	CoverageDecideLater CoverageMethod = "decide-later" // 稍后决定
)

// TempStaffConfig 临时工配置
type TempStaffConfig struct {
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	StartTime  string  `json:"start_time"` // HH:MM
	EndTime    string  `json:"end_time"`   // HH:MM
	HourlyRate float64 `json:"hourly_rate"`
	Notes      string  `json:"notes,omitempty"`
}

// AnnualLeaveRecord 年假记录（每人每天一条，不使用日期区间）
type AnnualLeaveRecord struct {
	StaffID        string           `json:"staff_id"`
	Date           time.Time        `json:"date"`
	CoverageMethod CoverageMethod   `json:"coverage_method,omitempty"`
	SwapID         string           `json:"swap_id,omitempty"`
	TempStaff      *TempStaffConfig `json:"temp_staff,omitempty"`
	Reason         string           `json:"reason,omitempty"`
}

// SwapRecord 显式双向换班记录
//
// StaffID1 在 Date1 请假，由 StaffID2 顶班；
// 作为交换，StaffID1 在 Date2 顶 StaffID2 的班。
type SwapRecord struct {
	ID        string    `json:"id"` // 由双方员工与日期确定性生成
	StaffID1  string    `json:"staff_id_1"`
	Date1     time.Time `json:"date_1"`
	StaffID2  string    `json:"staff_id_2"`
	Date2     time.Time `json:"date_2"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSwapID 生成确定性换班ID
func NewSwapID(staffID1 string, date1 time.Time, staffID2 string, date2 time.Time) string {
	return fmt.Sprintf("swap-%s-%s-%s-%s", staffID1, DateKey(date1), staffID2, DateKey(date2))
}
