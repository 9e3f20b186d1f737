// Package stats 提供排班结果的派生统计，供分析与报表使用
package stats

import (
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

// CalculateWeeklyHours 按 ISO 周汇总每个员工的实际工时
//
// scheduledHours 包含基础班次工时与再分配工时；
// bankedHours 是该周仍未消化的入账小时（再分配后的剩余）。
// 返回顺序按日期与花名册顺序首次出现的先后排列。
func CalculateWeeklyHours(schedule []*model.ScheduledDay, r *roster.Roster) []model.WeeklyHourLog {
	type key struct {
		staffID string
		week    int
	}
	index := make(map[key]int)
	var logs []model.WeeklyHourLog

	for _, day := range schedule {
		_, week := day.Date.ISOWeek()

		for _, staff := range r.Staff {
			k := key{staffID: staff.ID, week: week}
			idx, ok := index[k]
			if !ok {
				idx = len(logs)
				index[k] = idx
				logs = append(logs, model.WeeklyHourLog{
					StaffID:     staff.ID,
					WeekNumber:  week,
					TargetHours: staff.WeeklyHours,
				})
			}

			entry := day.Staff[staff.ID]
			if entry == nil {
				continue
			}
			if entry.Event == model.EventShift && entry.Details != nil {
				logs[idx].ScheduledHours += entry.Details.TotalHours()
			}
			if banked := entry.BankedHoursValue(); banked > 0 {
				logs[idx].BankedHours += banked
			}
		}
	}

	return logs
}

// StaffWeeklyHours 返回指定员工在指定 ISO 周的实际工时（基础 + 再分配）
func StaffWeeklyHours(schedule []*model.ScheduledDay, r *roster.Roster, staffID string, weekNumber int) float64 {
	for _, log := range CalculateWeeklyHours(schedule, r) {
		if log.StaffID == staffID && log.WeekNumber == weekNumber {
			return log.ScheduledHours
		}
	}
	return 0
}
