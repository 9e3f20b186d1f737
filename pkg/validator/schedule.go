// Package validator 对生成后的排班做一致性校验
package validator

import (
	"fmt"

	"github.com/yaopai/yaopai/pkg/engine"
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationDailyCap     ViolationType = "daily_cap"     // 超过单日工时上限
	ViolationExtraCap     ViolationType = "extra_cap"     // 超过单班追加上限
	ViolationWindow       ViolationType = "window"        // 超出营业时间
	ViolationConservation ViolationType = "conservation"  // 工时追踪四元组不守恒
	ViolationRole         ViolationType = "role"          // 跨角色顶班
	ViolationLeaveShift   ViolationType = "leave_shift"   // 年假日仍保留原班次
)

// Violation 校验发现的违规
type Violation struct {
	Type    ViolationType `json:"type"`
	StaffID string        `json:"staff_id"`
	Date    string        `json:"date"`
	Message string        `json:"message"`
}

// Checker 排班一致性检查器
type Checker struct {
	roster *roster.Roster
	limits engine.Limits
}

// NewChecker 创建排班一致性检查器
func NewChecker(r *roster.Roster, limits engine.Limits) *Checker {
	return &Checker{roster: r, limits: limits}
}

// Check 校验整份排班，返回全部违规（空切片表示通过）
func (c *Checker) Check(schedule []*model.ScheduledDay) []Violation {
	var violations []Violation

	for _, day := range schedule {
		for staffID, entry := range day.Staff {
			violations = append(violations, c.checkEntry(day, staffID, entry)...)
		}
	}

	return violations
}

// checkEntry 校验单个员工日条目
func (c *Checker) checkEntry(day *model.ScheduledDay, staffID string, entry *model.StaffDaySchedule) []Violation {
	var out []Violation

	add := func(t ViolationType, format string, args ...interface{}) {
		out = append(out, Violation{
			Type:    t,
			StaffID: staffID,
			Date:    day.DateKey(),
			Message: fmt.Sprintf(format, args...),
		})
	}

	if entry.Event == model.EventShift && entry.Details != nil {
		details := entry.Details

		if details.TotalHours() > c.limits.MaxDailyHours {
			add(ViolationDailyCap, "总工时 %gh 超过单日上限 %gh", details.TotalHours(), c.limits.MaxDailyHours)
		}
		if details.ReallocatedHours > c.limits.MaxExtraHoursPerShift {
			add(ViolationExtraCap, "再分配 %gh 超过单班追加上限 %gh", details.ReallocatedHours, c.limits.MaxExtraHoursPerShift)
		}

		// 带再分配工时的班次必须仍然落在营业时间内（追加 0 小时做窗口复核）。
		// 前两道关卡已单独校验过，这里只在它们通过时复核窗口，避免重复报告
		if details.ReallocatedHours > 0 &&
			details.TotalHours() <= c.limits.MaxDailyHours &&
			details.ReallocatedHours <= c.limits.MaxExtraHoursPerShift {
			if check := c.limits.ValidateAddition(details, 0); !check.OK {
				add(ViolationWindow, "班次超出营业时间: %s", check.Reason)
			}
		}

		// 顶班条目必须由同角色员工承担
		if entry.IsSwapCoverage && entry.SwapInfo != nil {
			cover := c.roster.StaffByID(staffID)
			original := c.roster.StaffByID(entry.SwapInfo.OriginalStaffID)
			if cover != nil && original != nil && cover.Role != original.Role {
				add(ViolationRole, "%s（%s）替 %s（%s）顶班，角色不一致",
					cover.Name, cover.Role, original.Name, original.Role)
			}
		}
	}

	// 年假日不允许保留原班次（顶班或临时工属于 Shift，请假人本人必须是 AL）
	if entry.Event == model.EventAL && entry.Details != nil {
		add(ViolationLeaveShift, "年假条目仍带班次细节")
	}

	// 工时追踪四元组守恒
	if entry.OriginalBankedHours != nil {
		original := *entry.OriginalBankedHours
		var reallocated, remaining float64
		if entry.TotalReallocatedHours != nil {
			reallocated = *entry.TotalReallocatedHours
		}
		if entry.RemainingUnallocatedHours != nil {
			remaining = *entry.RemainingUnallocatedHours
		}
		if diff := original - (reallocated + remaining); diff > 1e-9 || diff < -1e-9 {
			add(ViolationConservation, "入账 %gh != 再分配 %gh + 剩余 %gh", original, reallocated, remaining)
		}
	}

	return out
}
