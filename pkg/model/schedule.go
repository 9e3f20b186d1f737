package model

import "time"

// SwapKind 换班条目的类型
type SwapKind string

const (
	SwapCovering    SwapKind = "covering"     // 替他人顶班
	SwapOriginalOff SwapKind = "original_off" // 原班次被换走后的休息
)

// SwapInfo 换班/顶班的审计信息
type SwapInfo struct {
	OriginalStaffID   string   `json:"original_staff_id"`
	OriginalStaffName string   `json:"original_staff_name"`
	SwapType          SwapKind `json:"swap_type"`
	CoveringStaffID   string   `json:"covering_staff_id,omitempty"`
	CoveringStaffName string   `json:"covering_staff_name,omitempty"`
}

// StaffDaySchedule 单个员工单天的排班结果
//
// 工时追踪四元组只在公共假期入账时初始化，再分配完成后满足不变量：
// OriginalBankedHours == TotalReallocatedHours + RemainingUnallocatedHours
type StaffDaySchedule struct {
	Event   EventType        `json:"event"`
	Details *ShiftDefinition `json:"details"`
	Warning string           `json:"warning,omitempty"`

	// 工时追踪（仅 PH 入账日存在）
	BankedHours               *float64 `json:"banked_hours,omitempty"`                // 当前仍入账的小时数（再分配后的剩余）
	OriginalBankedHours       *float64 `json:"original_banked_hours,omitempty"`       // 假期当天原本入账的小时数
	TotalReallocatedHours     *float64 `json:"total_reallocated_hours,omitempty"`     // 成功再分配的小时数
	RemainingUnallocatedHours *float64 `json:"remaining_unallocated_hours,omitempty"` // 无法再分配的小时数

	// 换班/顶班审计
	IsSwapCoverage bool      `json:"is_swap_coverage,omitempty"` // 本条目是替他人顶班
	IsSwapResult   bool      `json:"is_swap_result,omitempty"`   // 本条目是换班的结果
	SwapInfo       *SwapInfo `json:"swap_info,omitempty"`

	// 临时工顶班
	TempStaffName string `json:"temp_staff_name,omitempty"`
}

// InitHourTracking 公共假期入账时初始化工时追踪
func (s *StaffDaySchedule) InitHourTracking(banked float64) {
	zero := 0.0
	b := banked
	s.BankedHours = &b
	orig := banked
	s.OriginalBankedHours = &orig
	s.TotalReallocatedHours = &zero
	remaining := 0.0
	s.RemainingUnallocatedHours = &remaining
}

// UpdateHourTracking 再分配完成后更新工时追踪
// 只有剩余未分配的小时数继续保持入账状态
func (s *StaffDaySchedule) UpdateHourTracking(reallocated, remaining float64) {
	if s.OriginalBankedHours == nil {
		return
	}
	r := reallocated
	s.TotalReallocatedHours = &r
	rem := remaining
	s.RemainingUnallocatedHours = &rem
	banked := remaining
	s.BankedHours = &banked
}

// BankedHoursValue 返回当前入账小时数（未入账返回 0）
func (s *StaffDaySchedule) BankedHoursValue() float64 {
	if s.BankedHours == nil {
		return 0
	}
	return *s.BankedHours
}

// DailyTotalHours 返回当天总工时（含再分配）
func (s *StaffDaySchedule) DailyTotalHours() float64 {
	if s.Details == nil {
		return 0
	}
	return s.Details.TotalHours()
}

// Clone 深拷贝单天排班条目（用于换班前快照）
func (s *StaffDaySchedule) Clone() *StaffDaySchedule {
	if s == nil {
		return nil
	}
	out := *s
	out.Details = s.Details.Clone()
	if s.Details != nil {
		out.Details.ReallocatedHours = s.Details.ReallocatedHours
	}
	if s.SwapInfo != nil {
		info := *s.SwapInfo
		out.SwapInfo = &info
	}
	copyFloat := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	out.BankedHours = copyFloat(s.BankedHours)
	out.OriginalBankedHours = copyFloat(s.OriginalBankedHours)
	out.TotalReallocatedHours = copyFloat(s.TotalReallocatedHours)
	out.RemainingUnallocatedHours = copyFloat(s.RemainingUnallocatedHours)
	return &out
}

// ScheduledDay 日历中的一天及全体员工的排班
type ScheduledDay struct {
	Date           time.Time                    `json:"date"`
	IsCurrentMonth bool                         `json:"is_current_month"`
	Staff          map[string]*StaffDaySchedule `json:"staff"`
}

// DateKey 返回当天的规范日期键
func (d *ScheduledDay) DateKey() string {
	return DateKey(d.Date)
}

// WeeklyHourLog 员工单周工时汇总（派生数据，不持久化）
type WeeklyHourLog struct {
	StaffID        string  `json:"staff_id"`
	WeekNumber     int     `json:"week_number"` // ISO 周号
	TargetHours    float64 `json:"target_hours"`
	ScheduledHours float64 `json:"scheduled_hours"` // 基础 + 再分配
	BankedHours    float64 `json:"banked_hours"`    // 仍未消化的入账小时
}
