// Package scenario 提供场景测试
package scenario

import (
	"testing"
	"time"

	"github.com/yaopai/yaopai/pkg/engine"
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
	"github.com/yaopai/yaopai/pkg/stats"
	"github.com/yaopai/yaopai/pkg/validator"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestPharmacyFullMonth 整月综合场景：公共假期 + 年假 + 临时工 + 显式换班
func TestPharmacyFullMonth(t *testing.T) {
	r := roster.Default()
	eng := engine.New(r)
	july := day(2025, 7, 1)

	holidays := []model.PublicHoliday{
		{Date: day(2025, 7, 7), Name: "Hari Raya Haji"},
	}
	leave := []model.AnnualLeaveRecord{
		// 同角色顶班
		{StaffID: "fatimah", Date: day(2025, 7, 9)},
		// 临时工顶班
		{
			StaffID:        "mathilda",
			Date:           day(2025, 7, 17),
			CoverageMethod: model.CoverageTempStaff,
			TempStaff:      &model.TempStaffConfig{Name: "Siti", Role: "Assistant Pharmacist", StartTime: "09:15", EndTime: "19:15"},
		},
	}
	swaps := []model.SwapRecord{
		{
			ID:       model.NewSwapID("fatimah", day(2025, 7, 21), "amal", day(2025, 7, 23)),
			StaffID1: "fatimah",
			Date1:    day(2025, 7, 21),
			StaffID2: "amal",
			Date2:    day(2025, 7, 23),
		},
	}

	schedule := eng.Generate(july, holidays, leave, swaps)

	// 网格完整：5个整周
	if len(schedule) != 35 {
		t.Fatalf("len(schedule) = %d, expected 35", len(schedule))
	}

	// 一致性校验全部通过
	checker := validator.NewChecker(r, engine.DefaultLimits())
	if violations := checker.Check(schedule); len(violations) != 0 {
		t.Errorf("排班存在违规: %+v", violations)
	}

	// 覆盖统计
	analyzer := stats.NewAnalyzer(r)
	report := analyzer.Analyze(schedule, july)
	t.Logf("上班: %d  休息: %d  年假: %d  公共假期: %d",
		report.ShiftDays, report.OffDays, report.LeaveDays, report.HolidayDays)
	t.Logf("入账: %.1fh  再分配: %.1fh  未消化: %.1fh",
		report.BankedHours, report.ReallocatedHours, report.ResidualHours)

	if report.LeaveDays != 1 {
		t.Errorf("LeaveDays = %d, expected 1（临时工顶班日不算年假日）", report.LeaveDays)
	}
	if report.TempAssignments != 1 {
		t.Errorf("TempAssignments = %d, expected 1", report.TempAssignments)
	}
	if report.ReallocatedHours+report.ResidualHours != report.BankedHours {
		t.Errorf("入账工时不守恒: %v + %v != %v",
			report.ReallocatedHours, report.ResidualHours, report.BankedHours)
	}
	if len(report.Gaps) != 0 {
		t.Errorf("不应有顶班缺口: %+v", report.Gaps)
	}

	// 工时均衡
	balance := stats.NewBalanceAnalyzer(r).Analyze(schedule)
	t.Logf("平均达标率: %.1f%%  基尼系数: %.3f", balance.AvgFulfillment, balance.WorkloadGini)
	if balance.WorkloadGini > 0.2 {
		t.Errorf("WorkloadGini = %v, 工时分布过于不均", balance.WorkloadGini)
	}
}

// TestPharmacyHolidayWeek 假期周工时回补场景
func TestPharmacyHolidayWeek(t *testing.T) {
	r := roster.Default()
	july := day(2025, 7, 1)
	holidays := []model.PublicHoliday{{Date: day(2025, 7, 7)}}

	schedule := engine.Generate(july, holidays, nil, nil)

	// 全周有班的员工工时应被补回到目标附近；
	// Amal 的晚班无法追加（营业时间限制），入账会落到相邻周，不在此断言
	logs := stats.CalculateWeeklyHours(schedule, r)
	for _, log := range logs {
		if log.WeekNumber != 28 || log.StaffID == "amal" {
			continue
		}
		total := log.ScheduledHours + log.BankedHours
		if total < log.TargetHours-1 || total > log.TargetHours {
			t.Errorf("%s 第28周 实际+入账 = %v, expected 接近目标 %v",
				log.StaffID, total, log.TargetHours)
		}
	}

	// Amal 的8小时入账应在当月内全部消化
	var amalBanked, amalRealloc float64
	for _, d := range schedule {
		if entry := d.Staff["amal"]; entry != nil && entry.OriginalBankedHours != nil {
			amalBanked += *entry.OriginalBankedHours
			amalRealloc += *entry.TotalReallocatedHours
		}
	}
	if amalBanked != 8 || amalRealloc != 8 {
		t.Errorf("amal 入账/再分配 = %v/%v, expected 8/8", amalBanked, amalRealloc)
	}
}

// TestPharmacyYearBoundary 跨年月份排班不崩溃且保持网格完整
func TestPharmacyYearBoundary(t *testing.T) {
	december := day(2025, 12, 1)
	holidays := []model.PublicHoliday{{Date: day(2025, 12, 25), Name: "Christmas"}}

	schedule := engine.Generate(december, holidays, nil, nil)

	if len(schedule)%7 != 0 {
		t.Errorf("len(schedule) = %d, expected 整周", len(schedule))
	}
	if schedule[0].Date.Weekday() != time.Monday {
		t.Error("网格必须从周一开始")
	}
	if schedule[len(schedule)-1].Date.Weekday() != time.Sunday {
		t.Error("网格必须到周日结束")
	}

	// 12月网格跨入2026年1月，日期保持严格递增
	for i := 1; i < len(schedule); i++ {
		if !schedule[i].Date.After(schedule[i-1].Date) {
			t.Fatalf("日期乱序: %s -> %s", schedule[i-1].DateKey(), schedule[i].DateKey())
		}
	}

	checker := validator.NewChecker(roster.Default(), engine.DefaultLimits())
	if violations := checker.Check(schedule); len(violations) != 0 {
		t.Errorf("跨年排班存在违规: %+v", violations)
	}
}
