package model

import (
	"testing"
	"time"
)

func TestStaffDaySchedule_HourTracking(t *testing.T) {
	entry := &StaffDaySchedule{Event: EventPH}
	entry.InitHourTracking(11)

	if *entry.BankedHours != 11 || *entry.OriginalBankedHours != 11 {
		t.Fatalf("入账初始化 = %v/%v, expected 11/11", *entry.BankedHours, *entry.OriginalBankedHours)
	}
	if *entry.TotalReallocatedHours != 0 || *entry.RemainingUnallocatedHours != 0 {
		t.Fatal("初始化时再分配与剩余都应为0")
	}

	entry.UpdateHourTracking(8, 3)

	if *entry.TotalReallocatedHours != 8 {
		t.Errorf("TotalReallocatedHours = %v, expected 8", *entry.TotalReallocatedHours)
	}
	if *entry.RemainingUnallocatedHours != 3 {
		t.Errorf("RemainingUnallocatedHours = %v, expected 3", *entry.RemainingUnallocatedHours)
	}
	// 只有剩余部分继续保持入账
	if *entry.BankedHours != 3 {
		t.Errorf("BankedHours = %v, expected 3", *entry.BankedHours)
	}
	// 四元组守恒
	if *entry.OriginalBankedHours != *entry.TotalReallocatedHours+*entry.RemainingUnallocatedHours {
		t.Error("original != reallocated + remaining")
	}
}

func TestStaffDaySchedule_UpdateHourTracking_未初始化时不生效(t *testing.T) {
	entry := &StaffDaySchedule{Event: EventShift}
	entry.UpdateHourTracking(5, 0)

	if entry.TotalReallocatedHours != nil || entry.BankedHours != nil {
		t.Error("未入账的条目不应生成工时追踪")
	}
}

func TestStaffDaySchedule_BankedHoursValue(t *testing.T) {
	entry := &StaffDaySchedule{Event: EventOFF}
	if got := entry.BankedHoursValue(); got != 0 {
		t.Errorf("未入账 BankedHoursValue = %v, expected 0", got)
	}

	entry.InitHourTracking(8)
	if got := entry.BankedHoursValue(); got != 8 {
		t.Errorf("BankedHoursValue = %v, expected 8", got)
	}
}

func TestStaffDaySchedule_Clone(t *testing.T) {
	original := &StaffDaySchedule{
		Event: EventShift,
		Details: &ShiftDefinition{
			Type: Shift8h, StartTime: "09:15", EndTime: "18:15", WorkHours: 8, ReallocatedHours: 2,
		},
		SwapInfo: &SwapInfo{OriginalStaffID: "fatimah", SwapType: SwapCovering},
	}
	original.InitHourTracking(8)

	clone := original.Clone()

	// 克隆后互不影响
	clone.Details.ReallocatedHours = 4
	clone.SwapInfo.OriginalStaffID = "amal"
	*clone.BankedHours = 0

	if original.Details.ReallocatedHours != 2 {
		t.Errorf("原条目追加工时被改写: %v", original.Details.ReallocatedHours)
	}
	if original.SwapInfo.OriginalStaffID != "fatimah" {
		t.Errorf("原条目 SwapInfo 被改写: %s", original.SwapInfo.OriginalStaffID)
	}
	if *original.BankedHours != 8 {
		t.Errorf("原条目入账小时被改写: %v", *original.BankedHours)
	}
}

func TestStaffDaySchedule_Clone_保留再分配工时(t *testing.T) {
	// 快照必须完整保留当时的追加工时（与班次模板的 Clone 语义不同）
	original := &StaffDaySchedule{
		Event:   EventShift,
		Details: &ShiftDefinition{Type: Shift7h, WorkHours: 7, ReallocatedHours: 3},
	}

	clone := original.Clone()
	if clone.Details.ReallocatedHours != 3 {
		t.Errorf("克隆追加工时 = %v, expected 3", clone.Details.ReallocatedHours)
	}
}

func TestStaffDaySchedule_CloneNil(t *testing.T) {
	var entry *StaffDaySchedule
	if entry.Clone() != nil {
		t.Error("nil 条目的克隆应为 nil")
	}
}

func TestScheduledDay_DateKey(t *testing.T) {
	day := &ScheduledDay{Date: time.Date(2025, 7, 7, 15, 30, 0, 0, time.UTC)}
	if got := day.DateKey(); got != "2025-07-07" {
		t.Errorf("DateKey() = %s, expected 2025-07-07", got)
	}
}
