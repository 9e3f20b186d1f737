package engine

import (
	"testing"
	"time"
)

func TestIsoWeek(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"2025年7月7日", date(2025, 7, 7), 28},
		{"2025年7月1日", date(2025, 7, 1), 27},
		{"跨年归入次年第1周", date(2024, 12, 30), 1},
		{"年初归入上年末周", date(2027, 1, 1), 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isoWeek(tt.date); got != tt.want {
				t.Errorf("isoWeek(%s) = %d, expected %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestStartEndOfISOWeek(t *testing.T) {
	tests := []struct {
		name      string
		date      time.Time
		wantStart string
		wantEnd   string
	}{
		{"周三", date(2025, 7, 9), "2025-07-07", "2025-07-13"},
		{"周一自身", date(2025, 7, 7), "2025-07-07", "2025-07-13"},
		{"周日归入本周", date(2025, 7, 13), "2025-07-07", "2025-07-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startOfISOWeek(tt.date).Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("startOfISOWeek = %s, expected %s", got, tt.wantStart)
			}
			if got := endOfISOWeek(tt.date).Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("endOfISOWeek = %s, expected %s", got, tt.wantEnd)
			}
		})
	}
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		month     time.Time
		wantDays  int
		wantFirst string
		wantLast  string
	}{
		{"2025年7月", date(2025, 7, 1), 35, "2025-06-30", "2025-08-03"},
		{"2025年9月刚好整周", date(2025, 9, 1), 35, "2025-09-01", "2025-10-05"},
		{"2026年2月从周日开始", date(2026, 2, 1), 35, "2026-01-26", "2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := monthGrid(tt.month)
			if len(grid) != tt.wantDays {
				t.Fatalf("len(grid) = %d, expected %d", len(grid), tt.wantDays)
			}
			if got := grid[0].Format("2006-01-02"); got != tt.wantFirst {
				t.Errorf("首日 = %s, expected %s", got, tt.wantFirst)
			}
			if got := grid[len(grid)-1].Format("2006-01-02"); got != tt.wantLast {
				t.Errorf("末日 = %s, expected %s", got, tt.wantLast)
			}
			if grid[0].Weekday() != time.Monday {
				t.Error("网格必须从周一开始")
			}
			if grid[len(grid)-1].Weekday() != time.Sunday {
				t.Error("网格必须到周日结束")
			}
		})
	}
}

func TestIsCurrentMonth(t *testing.T) {
	target := date(2025, 7, 1)
	if !IsCurrentMonth(date(2025, 7, 31), target) {
		t.Error("7月31日应属于7月")
	}
	if IsCurrentMonth(date(2025, 6, 30), target) {
		t.Error("6月30日不应属于7月")
	}
	if IsCurrentMonth(date(2024, 7, 15), target) {
		t.Error("不同年份的同月不应匹配")
	}
}
