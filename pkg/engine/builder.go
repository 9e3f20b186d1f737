package engine

import (
	"time"

	"github.com/yaopai/yaopai/pkg/model"
)

// snapshotKey 员工日快照键：员工ID-日期
func snapshotKey(staffID string, date time.Time) string {
	return staffID + "-" + model.DateKey(date)
}

// buildDays 按轮换班表铺出日网格，并保留每个员工日条目的原始快照
//
// 快照在任何年假/换班改写之前采集，换班调解阶段只读快照、不读
// 可能已被改写的网格。公共假期当天原本要上班的员工工时入账。
func (e *Engine) buildDays(targetMonth time.Time, holidays []model.PublicHoliday) ([]*model.ScheduledDay, map[string]*model.StaffDaySchedule) {
	holidaySet := make(map[string]bool, len(holidays))
	for _, ph := range holidays {
		holidaySet[model.DateKey(ph.Date)] = true
	}

	dates := monthGrid(targetMonth)
	days := make([]*model.ScheduledDay, 0, len(dates))
	snapshots := make(map[string]*model.StaffDaySchedule, len(dates)*len(e.roster.Staff))

	for _, date := range dates {
		pattern := e.roster.PatternForWeek(isoWeek(date))
		day := &model.ScheduledDay{
			Date:           date,
			IsCurrentMonth: sameMonth(date, targetMonth),
			Staff:          make(map[string]*model.StaffDaySchedule, len(e.roster.Staff)),
		}
		isHoliday := holidaySet[model.DateKey(date)]

		for _, staff := range e.roster.Staff {
			shift := pattern.ShiftFor(staff.ID, date.Weekday()).Clone()

			var entry *model.StaffDaySchedule
			switch {
			case isHoliday && shift != nil:
				// 原本要上班：工时入账，班次细节保留作参考
				entry = &model.StaffDaySchedule{Event: model.EventPH, Details: shift}
				entry.InitHourTracking(shift.WorkHours)
			case shift != nil:
				entry = &model.StaffDaySchedule{Event: model.EventShift, Details: shift}
			default:
				entry = &model.StaffDaySchedule{Event: model.EventOFF}
			}

			day.Staff[staff.ID] = entry
			snapshots[snapshotKey(staff.ID, date)] = entry.Clone()
		}

		days = append(days, day)
	}

	return days, snapshots
}
