package engine

import (
	"testing"

	"github.com/yaopai/yaopai/pkg/model"
)

func TestLimits_BreakTime(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name     string
		hours    float64
		expected float64
	}{
		{"7小时班", 7, 1.0},
		{"9小时班", 9, 1.0},
		{"刚好11小时", 11, 1.5},
		{"超过11小时", 12, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := limits.BreakTime(tt.hours); got != tt.expected {
				t.Errorf("BreakTime(%v) = %v, expected %v", tt.hours, got, tt.expected)
			}
		})
	}
}

func TestLimits_ValidateAddition(t *testing.T) {
	limits := DefaultLimits()

	tests := []struct {
		name           string
		shift          *model.ShiftDefinition
		hoursToAdd     float64
		wantOK         bool
		wantMaxAllowed float64
	}{
		{
			"早班追加2小时",
			&model.ShiftDefinition{StartTime: "09:15", WorkHours: 8},
			2, true, 0,
		},
		{
			"超过单日上限",
			&model.ShiftDefinition{StartTime: "09:15", WorkHours: 9, ReallocatedHours: 1},
			2, false, 1,
		},
		{
			"单日已满一小时不剩",
			&model.ShiftDefinition{StartTime: "09:15", WorkHours: 11},
			1, false, 0,
		},
		{
			"超过单班追加上限",
			&model.ShiftDefinition{StartTime: "09:15", WorkHours: 6, ReallocatedHours: 3},
			2, false, 1,
		},
		{
			"晚班追加后超出营业时间",
			&model.ShiftDefinition{StartTime: "14:45", WorkHours: 7},
			1, false, 0,
		},
		{
			"早班追加到刚好关门",
			&model.ShiftDefinition{StartTime: "09:15", WorkHours: 7, ReallocatedHours: 2},
			2, true, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := limits.ValidateAddition(tt.shift, tt.hoursToAdd)
			if check.OK != tt.wantOK {
				t.Fatalf("OK = %v, expected %v (reason: %s)", check.OK, tt.wantOK, check.Reason)
			}
			if !check.OK && check.MaxAllowed != tt.wantMaxAllowed {
				t.Errorf("MaxAllowed = %v, expected %v", check.MaxAllowed, tt.wantMaxAllowed)
			}
			if !check.OK && check.Reason == "" {
				t.Error("校验失败时必须给出原因")
			}
		})
	}
}

func TestLimits_营业时间窗口含休息时间(t *testing.T) {
	limits := DefaultLimits()

	// 7小时早班 09:15 开工，追加满4小时后总工时11，
	// 休息升到1.5小时，预计下班 21:45 恰好是关门时间
	shift := &model.ShiftDefinition{StartTime: "09:15", WorkHours: 7}
	if check := limits.ValidateAddition(shift, 4); !check.OK {
		t.Errorf("追加4小时应通过: %s", check.Reason)
	}

	// 起点晚15分钟就会超出
	late := &model.ShiftDefinition{StartTime: "09:30", WorkHours: 7}
	check := limits.ValidateAddition(late, 4)
	if check.OK {
		t.Error("09:30 开工追加4小时应超出营业时间")
	}
	if check.MaxAllowed != 0 {
		t.Errorf("营业时间不满足时 MaxAllowed = %v, expected 0", check.MaxAllowed)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"09:15", 555, false},
		{"21:45", 1305, false},
		{"00:00", 0, false},
		{"915", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClock(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseClock(%q) = %d, expected %d", tt.input, got, tt.want)
			}
		})
	}
}
