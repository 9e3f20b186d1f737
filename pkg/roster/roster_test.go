package roster

import (
	"testing"
	"time"

	"github.com/yaopai/yaopai/pkg/model"
)

func TestDefault_花名册完整性(t *testing.T) {
	r := Default()

	if len(r.Staff) != 4 {
		t.Fatalf("员工数 = %d, expected 4", len(r.Staff))
	}

	// 两名药剂师、两名助理
	roles := make(map[model.Role]int)
	for _, s := range r.Staff {
		roles[s.Role]++
	}
	if roles[model.RolePharmacist] != 2 || roles[model.RoleAssistant] != 2 {
		t.Errorf("角色分布 = %v, expected 各2人", roles)
	}
}

func TestDefault_班表基础工时等于周目标(t *testing.T) {
	r := Default()

	// 两套班表下每位员工的基础工时都应恰好等于周目标工时
	for pi, pattern := range r.Patterns {
		for _, staff := range r.Staff {
			var total float64
			for d := time.Sunday; d <= time.Saturday; d++ {
				if shift := pattern.ShiftFor(staff.ID, d); shift != nil {
					total += shift.WorkHours
				}
			}
			if total != staff.WeeklyHours {
				t.Errorf("班表%d %s 基础工时 = %v, expected %v", pi, staff.ID, total, staff.WeeklyHours)
			}
		}
	}
}

func TestDefault_班表与默认休息日一致(t *testing.T) {
	r := Default()

	for pi, pattern := range r.Patterns {
		for _, staff := range r.Staff {
			for _, off := range staff.DefaultOffDays {
				if pattern.ShiftFor(staff.ID, off) != nil {
					t.Errorf("班表%d %s 在默认休息日 %v 有排班", pi, staff.ID, off)
				}
			}
		}
	}
}

func TestPatternForWeek(t *testing.T) {
	r := Default()

	tests := []struct {
		name    string
		isoWeek int
		wantID  int
	}{
		{"偶数周用0号班表", 28, 0},
		{"奇数周用1号班表", 27, 1},
		{"第52周", 52, 0},
		{"第1周", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.PatternForWeek(tt.isoWeek).ID; got != tt.wantID {
				t.Errorf("PatternForWeek(%d).ID = %d, expected %d", tt.isoWeek, got, tt.wantID)
			}
		})
	}
}

func TestStaffByID(t *testing.T) {
	r := Default()

	if staff := r.StaffByID("fatimah"); staff == nil || staff.Name != "Fatimah" {
		t.Errorf("StaffByID(fatimah) = %+v, expected Fatimah", staff)
	}
	if staff := r.StaffByID("ghost"); staff != nil {
		t.Error("未知ID应返回 nil")
	}
}

func TestStaffName(t *testing.T) {
	r := Default()

	if got := r.StaffName("amal"); got != "Amal" {
		t.Errorf("StaffName(amal) = %s, expected Amal", got)
	}
	// 找不到时回退为ID本身
	if got := r.StaffName("ghost"); got != "ghost" {
		t.Errorf("StaffName(ghost) = %s, expected ghost", got)
	}
}

func TestSameRoleColleagues(t *testing.T) {
	r := Default()

	tests := []struct {
		staffID string
		want    []string
	}{
		{"fatimah", []string{"amal"}},
		{"amal", []string{"fatimah"}},
		{"mathilda", []string{"pah"}},
		{"pah", []string{"mathilda"}},
	}

	for _, tt := range tests {
		t.Run(tt.staffID, func(t *testing.T) {
			colleagues := r.SameRoleColleagues(tt.staffID)
			if len(colleagues) != len(tt.want) {
				t.Fatalf("同事数 = %d, expected %d", len(colleagues), len(tt.want))
			}
			for i, c := range colleagues {
				if c.ID != tt.want[i] {
					t.Errorf("colleagues[%d] = %s, expected %s", i, c.ID, tt.want[i])
				}
			}
		})
	}

	if got := r.SameRoleColleagues("ghost"); got != nil {
		t.Error("未知员工应返回 nil")
	}
}

func TestPublicHolidays2025(t *testing.T) {
	holidays := PublicHolidays2025()

	if len(holidays) != 11 {
		t.Fatalf("假期数 = %d, expected 11", len(holidays))
	}
	for _, h := range holidays {
		if h.Date.Year() != 2025 {
			t.Errorf("%s 不在2025年", h.Name)
		}
		if h.Name == "" {
			t.Errorf("%s 假期缺少名称", model.DateKey(h.Date))
		}
	}

	// 国庆日是固定锚点
	found := false
	for _, h := range holidays {
		if model.DateKey(h.Date) == "2025-08-31" && h.Name == "Merdeka Day" {
			found = true
		}
	}
	if !found {
		t.Error("缺少 Merdeka Day (2025-08-31)")
	}
}

func TestDefault_班次模板时段合法(t *testing.T) {
	r := Default()

	for pi, pattern := range r.Patterns {
		for staffID, shifts := range pattern.DailyShifts {
			for day, shift := range shifts {
				start, err := time.Parse(model.ClockLayout, shift.StartTime)
				if err != nil {
					t.Fatalf("班表%d %s %v 起点非法: %v", pi, staffID, day, err)
				}
				end, err := time.Parse(model.ClockLayout, shift.EndTime)
				if err != nil {
					t.Fatalf("班表%d %s %v 终点非法: %v", pi, staffID, day, err)
				}
				// 时段跨度 = 工时 + 休息（1或1.5小时）
				span := end.Sub(start).Hours()
				breakTime := span - shift.WorkHours
				if breakTime != 1 && breakTime != 1.5 {
					t.Errorf("班表%d %s %v 休息时间 = %v, expected 1 或 1.5", pi, staffID, day, breakTime)
				}
			}
		}
	}
}
