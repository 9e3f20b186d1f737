// Package roster 提供药房的静态花名册与双周轮换班表
package roster

import (
	"time"

	"github.com/yaopai/yaopai/pkg/model"
)

// Roster 花名册：员工列表 + 两套轮换班表
type Roster struct {
	Staff    []*model.StaffMember
	Patterns [2]*model.ShiftPattern

	byID map[string]*model.StaffMember
}

// New 创建花名册
func New(staff []*model.StaffMember, patterns [2]*model.ShiftPattern) *Roster {
	r := &Roster{
		Staff:    staff,
		Patterns: patterns,
		byID:     make(map[string]*model.StaffMember, len(staff)),
	}
	for _, s := range staff {
		r.byID[s.ID] = s
	}
	return r
}

// StaffByID 按ID查找员工
func (r *Roster) StaffByID(id string) *model.StaffMember {
	return r.byID[id]
}

// StaffName 按ID查找员工姓名（找不到时返回ID本身）
func (r *Roster) StaffName(id string) string {
	if s := r.byID[id]; s != nil {
		return s.Name
	}
	return id
}

// PatternForWeek 按 ISO 周号奇偶选择班表
func (r *Roster) PatternForWeek(isoWeek int) *model.ShiftPattern {
	return r.Patterns[isoWeek%2]
}

// SameRoleColleagues 返回与指定员工同角色的其他员工（保持花名册顺序）
func (r *Roster) SameRoleColleagues(staffID string) []*model.StaffMember {
	self := r.byID[staffID]
	if self == nil {
		return nil
	}
	var out []*model.StaffMember
	for _, s := range r.Staff {
		if s.ID != staffID && s.Role == self.Role {
			out = append(out, s)
		}
	}
	return out
}

// 班次定义模板
var (
	shift11h = &model.ShiftDefinition{Type: model.Shift11h, StartTime: "09:15", EndTime: "21:45", WorkHours: 11}

	shift9hEarly = &model.ShiftDefinition{Type: model.Shift9h, Timing: model.TimingEarly, StartTime: "09:15", EndTime: "19:15", WorkHours: 9}
	shift9hLate  = &model.ShiftDefinition{Type: model.Shift9h, Timing: model.TimingLate, StartTime: "11:45", EndTime: "21:45", WorkHours: 9}

	shift8hEarly = &model.ShiftDefinition{Type: model.Shift8h, Timing: model.TimingEarly, StartTime: "09:15", EndTime: "18:15", WorkHours: 8}
	shift8hLate  = &model.ShiftDefinition{Type: model.Shift8h, Timing: model.TimingLate, StartTime: "12:45", EndTime: "21:45", WorkHours: 8}

	shift7hEarly = &model.ShiftDefinition{Type: model.Shift7h, Timing: model.TimingEarly, StartTime: "09:15", EndTime: "17:15", WorkHours: 7}
	shift7hLate  = &model.ShiftDefinition{Type: model.Shift7h, Timing: model.TimingLate, StartTime: "14:45", EndTime: "21:45", WorkHours: 7}
)

// defaultStaff 默认员工花名册
func defaultStaff() []*model.StaffMember {
	return []*model.StaffMember{
		{
			ID:             "fatimah",
			Name:           "Fatimah",
			Role:           model.RolePharmacist,
			WeeklyHours:    45,
			DefaultOffDays: []time.Weekday{time.Sunday, time.Saturday},
		},
		{
			ID:             "mathilda",
			Name:           "Mathilda",
			Role:           model.RoleAssistant,
			WeeklyHours:    45,
			DefaultOffDays: []time.Weekday{time.Monday, time.Tuesday},
		},
		{
			ID:             "pah",
			Name:           "Pah",
			Role:           model.RoleAssistant,
			WeeklyHours:    45,
			DefaultOffDays: []time.Weekday{time.Monday, time.Tuesday},
		},
		{
			ID:             "amal",
			Name:           "Amal",
			Role:           model.RolePharmacist,
			WeeklyHours:    32,
			DefaultOffDays: []time.Weekday{time.Wednesday, time.Thursday, time.Friday},
		},
	}
}

// defaultPatterns 默认双周轮换班表
// Patterns[isoWeek%2] 选择：偶数周用 0 号班表，奇数周用 1 号班表
func defaultPatterns() [2]*model.ShiftPattern {
	pattern0 := &model.ShiftPattern{
		ID: 0,
		DailyShifts: map[string]map[time.Weekday]*model.ShiftDefinition{
			"fatimah": {
				time.Monday:    shift11h,
				time.Tuesday:   shift11h,
				time.Wednesday: shift8hEarly,
				time.Thursday:  shift8hEarly,
				time.Friday:    shift7hEarly,
			},
			"mathilda": {
				time.Wednesday: shift11h,
				time.Thursday:  shift9hEarly,
				time.Friday:    shift9hEarly,
				time.Saturday:  shift9hEarly,
				time.Sunday:    shift7hLate,
			},
			"pah": {
				time.Wednesday: shift9hLate,
				time.Thursday:  shift9hLate,
				time.Friday:    shift9hLate,
				time.Saturday:  shift9hLate,
				time.Sunday:    shift9hEarly,
			},
			"amal": {
				time.Monday:   shift8hLate,
				time.Tuesday:  shift8hLate,
				time.Saturday: shift8hLate,
				time.Sunday:   shift8hLate,
			},
		},
	}

	pattern1 := &model.ShiftPattern{
		ID: 1,
		DailyShifts: map[string]map[time.Weekday]*model.ShiftDefinition{
			"fatimah": {
				time.Monday:    shift11h,
				time.Tuesday:   shift11h,
				time.Wednesday: shift8hEarly,
				time.Thursday:  shift8hEarly,
				time.Friday:    shift7hLate,
			},
			"mathilda": {
				time.Wednesday: shift9hLate,
				time.Thursday:  shift9hLate,
				time.Friday:    shift9hLate,
				time.Saturday:  shift9hLate,
				time.Sunday:    shift9hEarly,
			},
			"pah": {
				time.Wednesday: shift11h,
				time.Thursday:  shift9hEarly,
				time.Friday:    shift9hEarly,
				time.Saturday:  shift9hEarly,
				time.Sunday:    shift7hLate,
			},
			"amal": {
				time.Monday:    shift8hEarly,
				time.Tuesday:   shift8hEarly,
				time.Saturday:  shift8hEarly,
				time.Sunday:    shift8hEarly,
			},
		},
	}

	return [2]*model.ShiftPattern{pattern0, pattern1}
}

// Default 返回默认花名册（药房当前编制）
func Default() *Roster {
	return New(defaultStaff(), defaultPatterns())
}
