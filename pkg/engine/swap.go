package engine

import (
	"github.com/yaopai/yaopai/pkg/model"
)

// reconcileSwaps 按换班前快照处理显式换班记录
//
// date1 是请假日：staffID2 接下 staffID1 的原班次；
// date2 是还班日：staffID1 接下 staffID2 的原班次，staffID2 换得休息。
// 改写只读取网格构建阶段的快照，不读可能已被改写的当前网格。
// 四个员工日组合中任意一个缺少快照时整条换班跳过，不做部分应用。
func (e *Engine) reconcileSwaps(days []*model.ScheduledDay, snapshots map[string]*model.StaffDaySchedule, swaps []model.SwapRecord) {
	if len(swaps) == 0 {
		return
	}

	byDate := make(map[string]*model.ScheduledDay, len(days))
	for _, day := range days {
		byDate[day.DateKey()] = day
	}

	for _, swap := range swaps {
		day1 := byDate[model.DateKey(swap.Date1)]
		day2 := byDate[model.DateKey(swap.Date2)]
		if day1 == nil || day2 == nil {
			e.log.SwapSkipped(swap.ID, "日期不在排班范围内")
			continue
		}

		staff1Day1 := snapshots[snapshotKey(swap.StaffID1, swap.Date1)]
		staff2Day1 := snapshots[snapshotKey(swap.StaffID2, swap.Date1)]
		staff1Day2 := snapshots[snapshotKey(swap.StaffID1, swap.Date2)]
		staff2Day2 := snapshots[snapshotKey(swap.StaffID2, swap.Date2)]
		if staff1Day1 == nil || staff2Day1 == nil || staff1Day2 == nil || staff2Day2 == nil {
			e.log.SwapSkipped(swap.ID, "缺少换班前快照")
			continue
		}

		// date1：顶班人接下请假人的原班次
		day1.Staff[swap.StaffID2] = e.coverageEntry(staff1Day1, swap.StaffID1)

		// date1：请假人自己的班位
		// 年假条目直接移除（顶班已显示），否则改为休息
		if live := day1.Staff[swap.StaffID1]; live != nil && live.Event == model.EventAL {
			delete(day1.Staff, swap.StaffID1)
		} else {
			day1.Staff[swap.StaffID1] = &model.StaffDaySchedule{Event: model.EventOFF}
		}

		// date2：请假人接下顶班人的原班次
		day2.Staff[swap.StaffID1] = e.coverageEntry(staff2Day2, swap.StaffID2)

		// date2：顶班人换得休息
		day2.Staff[swap.StaffID2] = &model.StaffDaySchedule{
			Event:        model.EventOFF,
			IsSwapResult: true,
			SwapInfo: &model.SwapInfo{
				OriginalStaffID:   swap.StaffID2,
				OriginalStaffName: e.roster.StaffName(swap.StaffID2),
				CoveringStaffID:   swap.StaffID1,
				CoveringStaffName: e.roster.StaffName(swap.StaffID1),
				SwapType:          model.SwapOriginalOff,
			},
		}
	}
}

// coverageEntry 基于原班次快照生成顶班条目
// 工时入账信息不随班次转给顶班人，假期班次顶班时按普通班次处理
func (e *Engine) coverageEntry(snapshot *model.StaffDaySchedule, originalStaffID string) *model.StaffDaySchedule {
	entry := snapshot.Clone()
	entry.Warning = ""
	entry.BankedHours = nil
	entry.OriginalBankedHours = nil
	entry.TotalReallocatedHours = nil
	entry.RemainingUnallocatedHours = nil
	if entry.Event == model.EventPH && entry.Details != nil {
		entry.Event = model.EventShift
	}
	entry.IsSwapCoverage = true
	entry.SwapInfo = &model.SwapInfo{
		OriginalStaffID:   originalStaffID,
		OriginalStaffName: e.roster.StaffName(originalStaffID),
		SwapType:          model.SwapCovering,
	}
	return entry
}
