package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/yaopai/yaopai/pkg/model"
)

// maxHoursPerRound 单轮单班最多追加的小时数，保证多班之间分配均匀
const maxHoursPerRound = 2

// reallocateBankedHours 把公共假期入账的工时分回同一员工的其他班次
//
// 按 ISO 周逐周处理每个员工的入账工时，三个阶段：
// 同周班次优先、同月其余班次按距离假期远近、最后逐小时轮询兜底。
// 完成后更新假期当天的工时追踪四元组，分不完的部分附警告。
func (e *Engine) reallocateBankedHours(days []*model.ScheduledDay) {
	weeks := make(map[int][]*model.ScheduledDay)
	var weekNumbers []int
	for _, day := range days {
		week := isoWeek(day.Date)
		if _, ok := weeks[week]; !ok {
			weekNumbers = append(weekNumbers, week)
		}
		weeks[week] = append(weeks[week], day)
	}

	for _, weekNumber := range weekNumbers {
		for _, staff := range e.roster.Staff {
			e.reallocateStaffWeek(days, weeks[weekNumber], weekNumber, staff)
		}
	}
}

// reallocateStaffWeek 处理单个员工在单周内入账的全部工时
func (e *Engine) reallocateStaffWeek(schedule, week []*model.ScheduledDay, weekNumber int, staff *model.StaffMember) {
	var totalBanked float64
	var holidayDays []*model.ScheduledDay
	for _, day := range week {
		entry := day.Staff[staff.ID]
		if entry == nil {
			continue
		}
		if banked := entry.BankedHoursValue(); banked > 0 {
			totalBanked += banked
			holidayDays = append(holidayDays, day)
		}
	}
	if totalBanked == 0 || len(holidayDays) == 0 {
		return
	}

	holidayDate := holidayDays[0].Date

	// 第一阶段：同 ISO 周内的其他班次
	var weekShifts []*model.ScheduledDay
	for _, day := range week {
		if entry := day.Staff[staff.ID]; entry != nil && entry.Event == model.EventShift && entry.Details != nil {
			weekShifts = append(weekShifts, day)
		}
	}

	remaining := totalBanked
	if len(weekShifts) > 0 {
		remaining = e.distributeHours(remaining, weekShifts, staff, holidayDate)
	}

	// 第二阶段：同月其余周的班次，按与假期的日历距离排序
	if remaining > 0 {
		var monthShifts []*model.ScheduledDay
		for _, day := range schedule {
			if !sameMonth(day.Date, holidayDate) || isoWeek(day.Date) == weekNumber {
				continue
			}
			if entry := day.Staff[staff.ID]; entry != nil && entry.Event == model.EventShift && entry.Details != nil {
				monthShifts = append(monthShifts, day)
			}
		}
		if len(monthShifts) > 0 {
			sort.SliceStable(monthShifts, func(i, j int) bool {
				di := monthShifts[i].Date.Sub(holidayDate)
				dj := monthShifts[j].Date.Sub(holidayDate)
				if di < 0 {
					di = -di
				}
				if dj < 0 {
					dj = -dj
				}
				return di < dj
			})
			remaining = e.distributeHours(remaining, monthShifts, staff, holidayDate)
		}
	}

	// 把分配结果按入账顺序摊回各假期日，保证每天的四元组自洽：
	// originalBankedHours == totalReallocatedHours + remainingUnallocatedHours
	reallocPool := totalBanked - remaining
	for _, phDay := range holidayDays {
		entry := phDay.Staff[staff.ID]
		if entry == nil || entry.OriginalBankedHours == nil {
			continue
		}
		original := *entry.OriginalBankedHours
		placed := math.Min(original, reallocPool)
		reallocPool -= placed
		left := original - placed
		entry.UpdateHourTracking(placed, left)
		if left > 0 {
			entry.Warning = fmt.Sprintf("Could not reallocate %s of %s banked hours.",
				formatHours(left), formatHours(original))
			e.log.ReallocationResidual(staff.ID, phDay.DateKey(), left, original)
		}
	}
}

// distributeHours 按周工时缺口加权分配入账小时，返回仍未分出的小时数
//
// 假期所在周优先，其余按周号距离排序；每周最多补到该员工的周目标工时。
// 缺口分配后仍有剩余时退回逐小时均匀分配兜底。
func (e *Engine) distributeHours(hoursToDistribute float64, availableShifts []*model.ScheduledDay, staff *model.StaffMember, holidayDate time.Time) float64 {
	if hoursToDistribute <= 0 || len(availableShifts) == 0 {
		return hoursToDistribute
	}

	holidayWeek := isoWeek(holidayDate)

	shiftsByWeek := make(map[int][]*model.ScheduledDay)
	for _, day := range availableShifts {
		week := isoWeek(day.Date)
		shiftsByWeek[week] = append(shiftsByWeek[week], day)
	}

	weekNumbers := make([]int, 0, len(shiftsByWeek))
	for week := range shiftsByWeek {
		weekNumbers = append(weekNumbers, week)
	}
	sort.SliceStable(weekNumbers, func(i, j int) bool {
		a, b := weekNumbers[i], weekNumbers[j]
		if a == holidayWeek {
			return true
		}
		if b == holidayWeek {
			return false
		}
		return absInt(a-holidayWeek) < absInt(b-holidayWeek)
	})

	remaining := hoursToDistribute

	for _, week := range weekNumbers {
		if remaining <= 0 {
			break
		}
		weekShifts := shiftsByWeek[week]

		var currentWeeklyHours float64
		for _, day := range weekShifts {
			if entry := day.Staff[staff.ID]; entry != nil && entry.Event == model.EventShift && entry.Details != nil {
				currentWeeklyHours += entry.Details.TotalHours()
			}
		}

		deficit := math.Max(0, staff.WeeklyHours-currentWeeklyHours)
		hoursForWeek := math.Min(remaining, deficit)
		if hoursForWeek > 0 {
			undistributed := e.distributeHoursInWeek(weekShifts, staff.ID, hoursForWeek)
			remaining -= hoursForWeek - undistributed
		}
	}

	if remaining > 0 {
		remaining = e.distributeHoursEvenly(availableShifts, staff.ID, remaining)
	}

	return remaining
}

// distributeHoursInWeek 在单周内按剩余容量从大到小分配工时
//
// 每轮每班最多追加 2 小时，轮到没有班次能再接收时停止。
// 每次追加都重新过一遍安全校验，校验失败但仍有余量时按余量追加。
// 返回未能分出的小时数。
func (e *Engine) distributeHoursInWeek(weekShifts []*model.ScheduledDay, staffID string, hoursToDistribute float64) float64 {
	remaining := hoursToDistribute

	type candidate struct {
		details  *model.ShiftDefinition
		capacity float64
	}
	var candidates []*candidate
	for _, day := range weekShifts {
		entry := day.Staff[staffID]
		if entry == nil || entry.Event != model.EventShift || entry.Details == nil {
			continue
		}
		capacity := e.limits.MaxDailyHours - entry.Details.TotalHours()
		if capacity > 0 {
			candidates = append(candidates, &candidate{details: entry.Details, capacity: capacity})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].capacity > candidates[j].capacity
	})

	if len(candidates) == 0 {
		return remaining
	}

	for remaining > 0 && len(candidates) > 0 {
		var distributedThisRound float64

		for _, c := range candidates {
			if remaining <= 0 {
				break
			}

			hoursToAdd := math.Min(math.Min(remaining, c.capacity), maxHoursPerRound)
			if hoursToAdd <= 0 {
				continue
			}

			check := e.limits.ValidateAddition(c.details, hoursToAdd)
			switch {
			case check.OK:
				c.details.ReallocatedHours += hoursToAdd
				c.capacity -= hoursToAdd
				remaining -= hoursToAdd
				distributedThisRound += hoursToAdd
			case check.MaxAllowed > 0:
				// 按校验允许的余量追加
				c.details.ReallocatedHours += check.MaxAllowed
				c.capacity -= check.MaxAllowed
				remaining -= check.MaxAllowed
				distributedThisRound += check.MaxAllowed
			}
		}

		// 剔除已无容量的班次
		alive := candidates[:0]
		for _, c := range candidates {
			if c.capacity > 0 {
				alive = append(alive, c)
			}
		}
		candidates = alive

		if distributedThisRound == 0 {
			break
		}
	}

	return remaining
}

// distributeHoursEvenly 兜底：逐小时轮询所有候选班次
// 迭代次数上限为班次数 × 单班追加上限，防止死循环
func (e *Engine) distributeHoursEvenly(availableShifts []*model.ScheduledDay, staffID string, hoursToDistribute float64) float64 {
	remaining := hoursToDistribute
	shiftIndex := 0
	maxAttempts := int(float64(len(availableShifts)) * e.limits.MaxExtraHoursPerShift)

	for attempts := 0; remaining > 0 && len(availableShifts) > 0 && attempts < maxAttempts; attempts++ {
		day := availableShifts[shiftIndex%len(availableShifts)]
		shiftIndex++

		entry := day.Staff[staffID]
		if entry == nil || entry.Event != model.EventShift || entry.Details == nil {
			continue
		}

		if check := e.limits.ValidateAddition(entry.Details, 1); check.OK {
			entry.Details.ReallocatedHours++
			remaining--
		}
	}

	return remaining
}

// formatHours 把小时数格式化为最短十进制表示（1 而不是 1.0）
func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
