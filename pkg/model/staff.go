package model

import "time"

// StaffMember 药房员工（静态花名册数据，生成排班时只读）
type StaffMember struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Role           Role           `json:"role"`
	WeeklyHours    float64        `json:"weekly_hours"`     // 每周目标工时
	DefaultOffDays []time.Weekday `json:"default_off_days"` // 默认休息日
}

// IsOffDay 检查某星期几是否为默认休息日
func (s *StaffMember) IsOffDay(day time.Weekday) bool {
	for _, d := range s.DefaultOffDays {
		if d == day {
			return true
		}
	}
	return false
}

// SameRole 检查两名员工是否同角色
func (s *StaffMember) SameRole(other *StaffMember) bool {
	return other != nil && s.Role == other.Role
}
