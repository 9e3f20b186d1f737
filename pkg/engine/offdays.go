package engine

import (
	"time"

	"github.com/yaopai/yaopai/pkg/model"
)

// OffDayOptions 动态休息日调整的约束
type OffDayOptions struct {
	PreserveConsecutiveDays bool // 是否要求保留连休
	MinimumConsecutiveDays  int  // 最短连休天数
}

// DefaultOffDayOptions 返回默认约束：保留至少两天连休
func DefaultOffDayOptions() OffDayOptions {
	return OffDayOptions{
		PreserveConsecutiveDays: true,
		MinimumConsecutiveDays:  2,
	}
}

// AlternativeOffDays 在员工必须于 dayToWork 上班时计算替代休息日集合
//
// 先尝试直接去掉该天，剩余休息日仍满足最短连休要求则采用；
// 否则把默认休息模式整体平移 ±1 天再试；都不行时返回去掉该天的集合。
// 纯函数，不修改传入的集合。
func AlternativeOffDays(staff *model.StaffMember, current map[time.Weekday]bool, dayToWork time.Weekday, opts OffDayOptions) map[time.Weekday]bool {
	out := make(map[time.Weekday]bool, len(current))
	for d := range current {
		out[d] = true
	}
	delete(out, dayToWork)

	if !opts.PreserveConsecutiveDays || hasConsecutiveDays(out, opts.MinimumConsecutiveDays) {
		return out
	}

	for _, shift := range []int{-1, 1} {
		shifted := make(map[time.Weekday]bool, len(staff.DefaultOffDays))
		for _, d := range staff.DefaultOffDays {
			nd := time.Weekday((int(d) + shift + 7) % 7)
			if nd != dayToWork {
				shifted[nd] = true
			}
		}
		if hasConsecutiveDays(shifted, opts.MinimumConsecutiveDays) {
			return shifted
		}
	}

	return out
}

// hasConsecutiveDays 判断休息日集合是否包含指定长度的连休
// 周日到周一视为连续（跨周环形判断）
func hasConsecutiveDays(days map[time.Weekday]bool, required int) bool {
	if required <= 1 {
		return len(days) >= required
	}
	if len(days) < required {
		return false
	}

	run := 0
	for i := 0; i < 14; i++ {
		if days[time.Weekday(i%7)] {
			run++
			if run >= required {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// canGiveUpOffDay 判断员工放弃某个休息日顶班后是否仍保有最短连休
func canGiveUpOffDay(staff *model.StaffMember, dayToWork time.Weekday) bool {
	current := make(map[time.Weekday]bool, len(staff.DefaultOffDays))
	for _, d := range staff.DefaultOffDays {
		current[d] = true
	}
	opts := DefaultOffDayOptions()
	alt := AlternativeOffDays(staff, current, dayToWork, opts)
	return hasConsecutiveDays(alt, opts.MinimumConsecutiveDays)
}
