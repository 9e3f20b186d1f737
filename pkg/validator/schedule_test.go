package validator

import (
	"testing"
	"time"

	"github.com/yaopai/yaopai/pkg/engine"
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

var july = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newChecker() *Checker {
	return NewChecker(roster.Default(), engine.DefaultLimits())
}

func TestCheck_引擎输出无违规(t *testing.T) {
	r := roster.Default()
	holidays := []model.PublicHoliday{
		{Date: date(2025, 7, 7)},
		{Date: date(2025, 7, 9)},
	}
	leave := []model.AnnualLeaveRecord{{StaffID: "fatimah", Date: date(2025, 7, 16)}}
	schedule := engine.New(r).Generate(july, holidays, leave, nil)

	if violations := newChecker().Check(schedule); len(violations) != 0 {
		t.Errorf("引擎输出不应有违规, got %+v", violations)
	}
}

func TestCheckEntry_违规识别(t *testing.T) {
	checker := newChecker()

	tests := []struct {
		name  string
		entry *model.StaffDaySchedule
		want  ViolationType
	}{
		{
			"超过单日上限",
			&model.StaffDaySchedule{
				Event:   model.EventShift,
				Details: &model.ShiftDefinition{StartTime: "09:15", WorkHours: 9, ReallocatedHours: 3},
			},
			ViolationDailyCap,
		},
		{
			"超过单班追加上限",
			&model.StaffDaySchedule{
				Event:   model.EventShift,
				Details: &model.ShiftDefinition{StartTime: "09:15", WorkHours: 6, ReallocatedHours: 5},
			},
			ViolationExtraCap,
		},
		{
			"追加后超出营业时间",
			&model.StaffDaySchedule{
				Event:   model.EventShift,
				Details: &model.ShiftDefinition{StartTime: "14:45", WorkHours: 7, ReallocatedHours: 1},
			},
			ViolationWindow,
		},
		{
			"年假日保留班次",
			&model.StaffDaySchedule{
				Event:   model.EventAL,
				Details: &model.ShiftDefinition{StartTime: "09:15", WorkHours: 8},
			},
			ViolationLeaveShift,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := &model.ScheduledDay{
				Date:  date(2025, 7, 9),
				Staff: map[string]*model.StaffDaySchedule{"fatimah": tt.entry},
			}
			violations := checker.Check([]*model.ScheduledDay{day})

			found := false
			for _, v := range violations {
				if v.Type == tt.want {
					found = true
					if v.StaffID != "fatimah" || v.Date != "2025-07-09" {
						t.Errorf("违规定位 = %s/%s, expected fatimah/2025-07-09", v.StaffID, v.Date)
					}
					if v.Message == "" {
						t.Error("违规必须带说明")
					}
				}
			}
			if !found {
				t.Errorf("未识别出 %s, got %+v", tt.want, violations)
			}
		})
	}
}

func TestCheckEntry_跨角色顶班(t *testing.T) {
	checker := newChecker()

	day := &model.ScheduledDay{
		Date: date(2025, 7, 9),
		Staff: map[string]*model.StaffDaySchedule{
			// 助理替药剂师顶班
			"mathilda": {
				Event:          model.EventShift,
				Details:        &model.ShiftDefinition{StartTime: "09:15", WorkHours: 8},
				IsSwapCoverage: true,
				SwapInfo:       &model.SwapInfo{OriginalStaffID: "fatimah", SwapType: model.SwapCovering},
			},
		},
	}

	violations := checker.Check([]*model.ScheduledDay{day})
	if len(violations) != 1 || violations[0].Type != ViolationRole {
		t.Fatalf("violations = %+v, expected 单条 role 违规", violations)
	}
}

func TestCheckEntry_同角色顶班通过(t *testing.T) {
	checker := newChecker()

	day := &model.ScheduledDay{
		Date: date(2025, 7, 9),
		Staff: map[string]*model.StaffDaySchedule{
			"amal": {
				Event:          model.EventShift,
				Details:        &model.ShiftDefinition{StartTime: "09:15", WorkHours: 8},
				IsSwapCoverage: true,
				SwapInfo:       &model.SwapInfo{OriginalStaffID: "fatimah", SwapType: model.SwapCovering},
			},
		},
	}

	if violations := checker.Check([]*model.ScheduledDay{day}); len(violations) != 0 {
		t.Errorf("同角色顶班不应有违规: %+v", violations)
	}
}

func TestCheckEntry_四元组守恒(t *testing.T) {
	checker := newChecker()

	entry := &model.StaffDaySchedule{Event: model.EventPH}
	entry.InitHourTracking(11)
	entry.UpdateHourTracking(8, 3)

	day := &model.ScheduledDay{
		Date:  date(2025, 7, 7),
		Staff: map[string]*model.StaffDaySchedule{"fatimah": entry},
	}

	if violations := checker.Check([]*model.ScheduledDay{day}); len(violations) != 0 {
		t.Fatalf("守恒的四元组不应有违规: %+v", violations)
	}

	// 人为破坏守恒
	broken := 5.0
	entry.TotalReallocatedHours = &broken
	violations := checker.Check([]*model.ScheduledDay{day})
	if len(violations) != 1 || violations[0].Type != ViolationConservation {
		t.Fatalf("violations = %+v, expected 单条 conservation 违规", violations)
	}
}
