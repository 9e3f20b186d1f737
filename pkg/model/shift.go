package model

import "time"

// ShiftType 班次时长类别
type ShiftType string

const (
	Shift11h ShiftType = "11h"
	Shift9h  ShiftType = "9h"
	Shift8h  ShiftType = "8h"
	Shift7h  ShiftType = "7h"
)

// ShiftTiming 班次时段
type ShiftTiming string

const (
	TimingEarly ShiftTiming = "early" // 早班
	TimingLate  ShiftTiming = "late"  // 晚班
	TimingNone  ShiftTiming = ""      // 全天班（无早晚之分）
)

// ShiftDefinition 班次定义
//
// 模式表中的班次对象是不可变模板；每一天的排班持有自己的克隆。
// ReallocatedHours 只在克隆上累加，绝不回写模板。
type ShiftDefinition struct {
	Type             ShiftType   `json:"type"`
	Timing           ShiftTiming `json:"timing,omitempty"`
	StartTime        string      `json:"start_time"` // HH:MM
	EndTime          string      `json:"end_time"`   // HH:MM
	WorkHours        float64     `json:"work_hours"`
	ReallocatedHours float64     `json:"reallocated_hours,omitempty"` // 从公共假期再分配过来的小时数
}

// Clone 深拷贝班次定义，防止模板被意外修改
// ReallocatedHours 不拷贝：每次生成排班都从零开始累加
func (s *ShiftDefinition) Clone() *ShiftDefinition {
	if s == nil {
		return nil
	}
	return &ShiftDefinition{
		Type:      s.Type,
		Timing:    s.Timing,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		WorkHours: s.WorkHours,
	}
}

// TotalHours 返回班次总工时（基础 + 再分配）
func (s *ShiftDefinition) TotalHours() float64 {
	if s == nil {
		return 0
	}
	return s.WorkHours + s.ReallocatedHours
}

// ShiftPattern 双周轮换班表之一，按 ISO 周号奇偶选择
type ShiftPattern struct {
	ID          int                                          `json:"id"`
	DailyShifts map[string]map[time.Weekday]*ShiftDefinition `json:"daily_shifts"`
}

// ShiftFor 返回员工某星期几的班次模板（可能为 nil 表示休息）
// 返回的是模板指针，使用前必须 Clone
func (p *ShiftPattern) ShiftFor(staffID string, day time.Weekday) *ShiftDefinition {
	shifts, ok := p.DailyShifts[staffID]
	if !ok {
		return nil
	}
	return shifts[day]
}
