package model

import (
	"testing"
	"time"
)

func TestShiftDefinition_Clone(t *testing.T) {
	template := &ShiftDefinition{
		Type:             Shift9h,
		Timing:           TimingLate,
		StartTime:        "11:45",
		EndTime:          "21:45",
		WorkHours:        9,
		ReallocatedHours: 2,
	}

	clone := template.Clone()

	// 模板克隆从零开始累加再分配工时
	if clone.ReallocatedHours != 0 {
		t.Errorf("克隆 ReallocatedHours = %v, expected 0", clone.ReallocatedHours)
	}
	if clone.Type != Shift9h || clone.StartTime != "11:45" || clone.WorkHours != 9 {
		t.Errorf("克隆字段不完整: %+v", clone)
	}

	// 改写克隆不影响模板
	clone.ReallocatedHours = 4
	if template.ReallocatedHours != 2 {
		t.Errorf("模板被改写: %v", template.ReallocatedHours)
	}
}

func TestShiftDefinition_CloneNil(t *testing.T) {
	var s *ShiftDefinition
	if s.Clone() != nil {
		t.Error("nil 班次的克隆应为 nil")
	}
}

func TestShiftDefinition_TotalHours(t *testing.T) {
	tests := []struct {
		name     string
		shift    *ShiftDefinition
		expected float64
	}{
		{"无追加", &ShiftDefinition{WorkHours: 8}, 8},
		{"含追加", &ShiftDefinition{WorkHours: 8, ReallocatedHours: 3}, 11},
		{"nil班次", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shift.TotalHours(); got != tt.expected {
				t.Errorf("TotalHours() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestShiftPattern_ShiftFor(t *testing.T) {
	pattern := &ShiftPattern{
		ID: 0,
		DailyShifts: map[string]map[time.Weekday]*ShiftDefinition{
			"fatimah": {
				time.Monday: {Type: Shift11h, WorkHours: 11},
			},
		},
	}

	if shift := pattern.ShiftFor("fatimah", time.Monday); shift == nil || shift.WorkHours != 11 {
		t.Errorf("ShiftFor(fatimah, 周一) = %+v, expected 11小时班", shift)
	}
	if shift := pattern.ShiftFor("fatimah", time.Sunday); shift != nil {
		t.Error("休息日应返回 nil")
	}
	if shift := pattern.ShiftFor("ghost", time.Monday); shift != nil {
		t.Error("未知员工应返回 nil")
	}
}

func TestNewSwapID(t *testing.T) {
	date1 := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	date2 := time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)

	id := NewSwapID("fatimah", date1, "mathilda", date2)
	want := "swap-fatimah-2025-07-14-mathilda-2025-07-16"
	if id != want {
		t.Errorf("NewSwapID = %s, expected %s", id, want)
	}

	// 确定性：相同输入永远得到相同ID
	if again := NewSwapID("fatimah", date1, "mathilda", date2); again != id {
		t.Error("相同输入应生成相同ID")
	}
}
