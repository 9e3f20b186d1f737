package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yaopai/yaopai/pkg/model"
)

// Limits 排班安全限制
type Limits struct {
	MaxDailyHours         float64 // 单日工时硬上限
	MaxExtraHoursPerShift float64 // 单个班次可追加的再分配小时上限
	MinBreakHours         float64 // 两班之间的最短间隔（预留）
	OperationalStart      string  // 药房开门时间 HH:MM
	OperationalEnd        string  // 药房关门时间 HH:MM
}

// DefaultLimits 返回药房默认安全限制
func DefaultLimits() Limits {
	return Limits{
		MaxDailyHours:         11,
		MaxExtraHoursPerShift: 4,
		MinBreakHours:         12,
		OperationalStart:      "09:15",
		OperationalEnd:        "21:45",
	}
}

// AdditionCheck 追加工时的校验结果
// 校验失败时 MaxAllowed 给出仍可安全追加的最大小时数
type AdditionCheck struct {
	OK         bool
	Reason     string
	MaxAllowed float64
}

// BreakTime 按总工时计算休息时间
// 11 小时以上的班次休息 1.5 小时，其余班次休息 1 小时
func (l Limits) BreakTime(totalWorkHours float64) float64 {
	if totalWorkHours >= 11 {
		return 1.5
	}
	return 1.0
}

// ValidateAddition 校验向班次追加再分配小时是否满足安全限制
//
// 三道关卡依次检查：单日硬上限、单班追加上限、营业时间窗口。
// 前两道失败时给出仍可追加的最大小时数；营业时间不满足则一小时也不能加。
func (l Limits) ValidateAddition(shift *model.ShiftDefinition, hoursToAdd float64) AdditionCheck {
	base := shift.WorkHours
	current := shift.ReallocatedHours
	newTotal := base + current + hoursToAdd

	if newTotal > l.MaxDailyHours {
		return AdditionCheck{
			Reason: fmt.Sprintf("超过单日上限 %gh（当前 %gh，尝试追加 %gh）",
				l.MaxDailyHours, base+current, hoursToAdd),
			MaxAllowed: math.Max(0, l.MaxDailyHours-(base+current)),
		}
	}

	if current+hoursToAdd > l.MaxExtraHoursPerShift {
		return AdditionCheck{
			Reason: fmt.Sprintf("超过单班追加上限 %gh（已追加 %gh，尝试追加 %gh）",
				l.MaxExtraHoursPerShift, current, hoursToAdd),
			MaxAllowed: math.Max(0, l.MaxExtraHoursPerShift-current),
		}
	}

	if ok, reason := l.withinOperationalWindow(shift, hoursToAdd); !ok {
		return AdditionCheck{Reason: reason, MaxAllowed: 0}
	}

	return AdditionCheck{OK: true}
}

// withinOperationalWindow 校验追加工时后班次（含休息时间）不超出营业时间
func (l Limits) withinOperationalWindow(shift *model.ShiftDefinition, hoursToAdd float64) (bool, string) {
	totalWork := shift.WorkHours + shift.ReallocatedHours + hoursToAdd
	breakTime := l.BreakTime(totalWork)

	start, err := parseClock(shift.StartTime)
	if err != nil {
		return false, err.Error()
	}
	opEnd, err := parseClock(l.OperationalEnd)
	if err != nil {
		return false, err.Error()
	}

	end := start + int(math.Round((totalWork+breakTime)*60))
	if end > opEnd {
		return false, fmt.Sprintf("追加后超出营业时间（预计下班 %s 含 %gh 休息，限制 %s）",
			formatClock(end), breakTime, l.OperationalEnd)
	}
	return true, ""
}

// parseClock 把 HH:MM 解析成当天分钟数
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("非法时间格式: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("非法时间格式: %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("非法时间格式: %q", s)
	}
	return hour*60 + minute, nil
}

// formatClock 把当天分钟数格式化为 HH:MM
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
