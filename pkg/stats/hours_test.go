package stats

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

func TestCalculateWeeklyHours_无假期月份(t *testing.T) {
	r := roster.Default()
	schedule := engine.New(r).Generate(july, nil, nil, nil)

	logs := CalculateWeeklyHours(schedule, r)

	// 网格覆盖5个ISO周 × 4名员工
	if len(logs) != 20 {
		t.Fatalf("len(logs) = %d, expected 20", len(logs))
	}

	// 无假期时每周实际工时等于周目标工时
	for _, log := range logs {
		if log.ScheduledHours != log.TargetHours {
			t.Errorf("%s 第%d周 = %v, expected %v", log.StaffID, log.WeekNumber, log.ScheduledHours, log.TargetHours)
		}
		if log.BankedHours != 0 {
			t.Errorf("%s 第%d周入账 = %v, expected 0", log.StaffID, log.WeekNumber, log.BankedHours)
		}
	}
}

func TestCalculateWeeklyHours_假期周含再分配(t *testing.T) {
	r := roster.Default()
	holidays := []model.PublicHoliday{{Date: date(2025, 7, 7)}}
	schedule := engine.New(r).Generate(july, holidays, nil, nil)

	// 假期周的11小时入账再分配后，Fatimah 第28周实际工时回到44小时
	got := StaffWeeklyHours(schedule, r, "fatimah", 28)
	if got < 44 || got > 45 {
		t.Errorf("第28周工时 = %v, expected 44-45", got)
	}

	// 未受影响的员工照常
	if got := StaffWeeklyHours(schedule, r, "pah", 28); got != 45 {
		t.Errorf("pah 第28周工时 = %v, expected 45", got)
	}
}

func TestStaffWeeklyHours_查不到返回零(t *testing.T) {
	r := roster.Default()
	schedule := engine.New(r).Generate(july, nil, nil, nil)

	if got := StaffWeeklyHours(schedule, r, "ghost", 28); got != 0 {
		t.Errorf("未知员工 = %v, expected 0", got)
	}
	if got := StaffWeeklyHours(schedule, r, "fatimah", 99); got != 0 {
		t.Errorf("不存在的周 = %v, expected 0", got)
	}
}
