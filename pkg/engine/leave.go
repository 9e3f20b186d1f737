package engine

import (
	"fmt"

	"github.com/yaopai/yaopai/pkg/logger"
	"github.com/yaopai/yaopai/pkg/model"
)

// resolveLeave 处理年假记录：同角色顶班、临时工顶班或记录缺口警告
//
// 年假优先级最高，即使当天是公共假期也按年假处理（不入账工时）。
// 年假从不拒绝：找不到顶班人时照样批假，只附缺口警告。
func (e *Engine) resolveLeave(days []*model.ScheduledDay, leave []model.AnnualLeaveRecord) {
	if len(leave) == 0 {
		return
	}

	// 同日也在休年假的员工集合，顶班搜索时排除
	onLeave := make(map[string]bool, len(leave))
	byDate := make(map[string][]model.AnnualLeaveRecord)
	for _, rec := range leave {
		onLeave[snapshotKey(rec.StaffID, rec.Date)] = true
		byDate[model.DateKey(rec.Date)] = append(byDate[model.DateKey(rec.Date)], rec)
	}

	for _, day := range days {
		for _, rec := range byDate[day.DateKey()] {
			e.resolveLeaveDay(day, rec, onLeave)
		}
	}
}

// resolveLeaveDay 处理单条年假记录
func (e *Engine) resolveLeaveDay(day *model.ScheduledDay, rec model.AnnualLeaveRecord, onLeave map[string]bool) {
	staff := e.roster.StaffByID(rec.StaffID)
	if staff == nil {
		logger.Warn().
			Str("staff_id", rec.StaffID).
			Str("date", day.DateKey()).
			Msg("年假记录指向未知员工")
		return
	}

	pattern := e.roster.PatternForWeek(isoWeek(day.Date))
	originalShift := pattern.ShiftFor(staff.ID, day.Date.Weekday())

	// 原本就休息：直接批假，无需找人顶班
	if originalShift == nil {
		day.Staff[staff.ID] = &model.StaffDaySchedule{Event: model.EventAL}
		return
	}

	// 临时工顶班：请假人的班位显示为临时工上班，跳过同事顶班搜索
	if rec.CoverageMethod == model.CoverageTempStaff && rec.TempStaff != nil {
		day.Staff[staff.ID] = &model.StaffDaySchedule{
			Event: model.EventShift,
			Details: &model.ShiftDefinition{
				Type:      originalShift.Type,
				Timing:    originalShift.Timing,
				StartTime: rec.TempStaff.StartTime,
				EndTime:   rec.TempStaff.EndTime,
				WorkHours: originalShift.WorkHours,
			},
			TempStaffName: rec.TempStaff.Name,
		}
		return
	}

	covered := e.findCoverage(day, staff, originalShift, onLeave)

	entry := &model.StaffDaySchedule{Event: model.EventAL}
	if !covered {
		entry.Warning = fmt.Sprintf("Coverage gap: No available %s to cover annual leave request", staff.Role)
		e.log.CoverageGap(staff.ID, day.DateKey(), string(staff.Role))
	}
	day.Staff[staff.ID] = entry
}

// findCoverage 为请假人寻找同角色顶班人
//
// 第一轮优先找当天休息的同事，把请假人的班次原样派给对方；
// 第二轮允许原班工时不超过请假人班次的同事换过来顶班，仅限药剂师角色
// （助理药剂师的操作灵活度不足，不参与换班顶岗）。
func (e *Engine) findCoverage(day *model.ScheduledDay, requester *model.StaffMember, originalShift *model.ShiftDefinition, onLeave map[string]bool) bool {
	pattern := e.roster.PatternForWeek(isoWeek(day.Date))
	colleagues := e.roster.SameRoleColleagues(requester.ID)

	assign := func(cover *model.StaffMember) {
		day.Staff[cover.ID] = &model.StaffDaySchedule{
			Event:          model.EventShift,
			Details:        originalShift.Clone(),
			IsSwapCoverage: true,
			SwapInfo: &model.SwapInfo{
				OriginalStaffID:   requester.ID,
				OriginalStaffName: requester.Name,
				SwapType:          model.SwapCovering,
			},
		}
	}

	// 第一轮：当天休息的同事
	for _, cover := range colleagues {
		if onLeave[snapshotKey(cover.ID, day.Date)] {
			continue
		}
		if pattern.ShiftFor(cover.ID, day.Date.Weekday()) != nil {
			continue
		}
		if entry := day.Staff[cover.ID]; entry != nil && entry.IsSwapCoverage {
			continue // 已经在替别人顶班
		}
		if e.useDynamicOffDays && !canGiveUpOffDay(cover, day.Date.Weekday()) {
			continue
		}
		assign(cover)
		return true
	}

	// 第二轮：仅限药剂师的有限换班
	if requester.Role != model.RolePharmacist {
		return false
	}
	for _, cover := range colleagues {
		if onLeave[snapshotKey(cover.ID, day.Date)] {
			continue
		}
		if entry := day.Staff[cover.ID]; entry != nil && entry.IsSwapCoverage {
			continue
		}
		coverShift := pattern.ShiftFor(cover.ID, day.Date.Weekday())
		if coverShift == nil {
			continue
		}
		if coverShift.WorkHours <= originalShift.WorkHours {
			assign(cover)
			return true
		}
	}

	return false
}
