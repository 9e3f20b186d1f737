package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

// CoverageReport 月度排班覆盖情况汇总
type CoverageReport struct {
	Month string `json:"month"` // YYYY-MM

	// 整体员工日分布
	TotalStaffDays int `json:"total_staff_days"` // 当月员工日总数
	ShiftDays      int `json:"shift_days"`       // 上班
	OffDays        int `json:"off_days"`         // 休息
	LeaveDays      int `json:"leave_days"`       // 年假
	HolidayDays    int `json:"holiday_days"`     // 公共假期（入账）

	// 顶班与换班
	SwapCoverages   int `json:"swap_coverages"`   // 替他人顶班的条目数
	TempAssignments int `json:"temp_assignments"` // 临时工顶班的条目数

	// 工时入账与再分配
	BankedHours      float64 `json:"banked_hours"`      // 当月入账总小时（原始）
	ReallocatedHours float64 `json:"reallocated_hours"` // 成功再分配的小时
	ResidualHours    float64 `json:"residual_hours"`    // 无法再分配的小时

	// 问题识别
	Gaps         []Gap                  `json:"gaps,omitempty"` // 顶班缺口
	WarningCount int                    `json:"warning_count"`  // 带警告的员工日条目数
	DailyStaffing map[string]DayStaffing `json:"daily_staffing"` // 每日在岗情况
}

// Gap 顶班缺口：年假获批但无人顶班
type Gap struct {
	Date    string `json:"date"`
	StaffID string `json:"staff_id"`
	Warning string `json:"warning"`
}

// DayStaffing 单日在岗情况
type DayStaffing struct {
	Date       string  `json:"date"`
	Working    int     `json:"working"`     // 在岗人数（含顶班与临时工）
	TotalHours float64 `json:"total_hours"` // 在岗总工时（含再分配）
}

// Analyzer 排班结果分析器
type Analyzer struct {
	roster *roster.Roster
}

// NewAnalyzer 创建排班结果分析器
func NewAnalyzer(r *roster.Roster) *Analyzer {
	return &Analyzer{roster: r}
}

// Analyze 汇总目标月份的覆盖情况（只统计当月的天，不含网格里的邻月补齐天）
func (a *Analyzer) Analyze(schedule []*model.ScheduledDay, targetMonth time.Time) *CoverageReport {
	report := &CoverageReport{
		Month:         targetMonth.Format("2006-01"),
		DailyStaffing: make(map[string]DayStaffing),
	}

	for _, day := range schedule {
		if !day.IsCurrentMonth {
			continue
		}

		staffing := DayStaffing{Date: day.DateKey()}

		for _, staff := range a.roster.Staff {
			entry := day.Staff[staff.ID]
			if entry == nil {
				continue
			}
			report.TotalStaffDays++

			switch entry.Event {
			case model.EventShift:
				report.ShiftDays++
				staffing.Working++
				staffing.TotalHours += entry.DailyTotalHours()
			case model.EventOFF:
				report.OffDays++
			case model.EventAL:
				report.LeaveDays++
			case model.EventPH:
				report.HolidayDays++
			}

			if entry.IsSwapCoverage {
				report.SwapCoverages++
			}
			if entry.TempStaffName != "" {
				report.TempAssignments++
			}
			if entry.OriginalBankedHours != nil {
				report.BankedHours += *entry.OriginalBankedHours
			}
			if entry.TotalReallocatedHours != nil {
				report.ReallocatedHours += *entry.TotalReallocatedHours
			}
			if entry.RemainingUnallocatedHours != nil {
				report.ResidualHours += *entry.RemainingUnallocatedHours
			}
			if entry.Warning != "" {
				report.WarningCount++
				if entry.Event == model.EventAL {
					report.Gaps = append(report.Gaps, Gap{
						Date:    day.DateKey(),
						StaffID: staff.ID,
						Warning: entry.Warning,
					})
				}
			}
		}

		report.DailyStaffing[staffing.Date] = staffing
	}

	return report
}

// GenerateReport 生成可读的覆盖情况报告
func (a *Analyzer) GenerateReport(report *CoverageReport) string {
	out := fmt.Sprintf("=== %s 排班覆盖报告 ===\n\n", report.Month)

	out += "【员工日分布】\n"
	out += fmt.Sprintf("  上班: %d  休息: %d  年假: %d  公共假期: %d\n\n",
		report.ShiftDays, report.OffDays, report.LeaveDays, report.HolidayDays)

	out += "【工时入账】\n"
	out += fmt.Sprintf("  入账: %.1fh  已再分配: %.1fh  未消化: %.1fh\n\n",
		report.BankedHours, report.ReallocatedHours, report.ResidualHours)

	out += "【顶班情况】\n"
	out += fmt.Sprintf("  同事顶班: %d  临时工: %d\n", report.SwapCoverages, report.TempAssignments)

	if len(report.Gaps) > 0 {
		out += "\n【顶班缺口】\n"
		gaps := make([]Gap, len(report.Gaps))
		copy(gaps, report.Gaps)
		sort.Slice(gaps, func(i, j int) bool { return gaps[i].Date < gaps[j].Date })
		for _, gap := range gaps {
			out += fmt.Sprintf("  - %s %s: %s\n", gap.Date, a.roster.StaffName(gap.StaffID), gap.Warning)
		}
	}

	return out
}
