package stats

import (
	"math"
	"sort"

	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

// BalanceMetrics 工时均衡指标
type BalanceMetrics struct {
	// 工时均衡性
	WorkloadGini     float64 `json:"workload_gini"`     // 达标率基尼系数 (0=完全均衡)
	WorkloadStdDev   float64 `json:"workload_std_dev"`  // 达标率标准差
	AvgFulfillment   float64 `json:"avg_fulfillment"`   // 平均达标率 (%)
	MaxFulfillment   float64 `json:"max_fulfillment"`   // 最高达标率
	MinFulfillment   float64 `json:"min_fulfillment"`   // 最低达标率

	// 加班（再分配）分布
	ExtraHoursGini float64 `json:"extra_hours_gini"` // 再分配小时基尼系数

	// 员工级别统计
	StaffStats []StaffStat `json:"staff_stats"`
}

// StaffStat 单个员工的月度工时统计
type StaffStat struct {
	StaffID       string  `json:"staff_id"`
	StaffName     string  `json:"staff_name"`
	TargetHours   float64 `json:"target_hours"`    // 按周目标折算的月度目标
	TotalHours    float64 `json:"total_hours"`     // 实际工时（基础 + 再分配）
	ExtraHours    float64 `json:"extra_hours"`     // 再分配工时
	ShiftCount    int     `json:"shift_count"`     // 班次数
	LateShifts    int     `json:"late_shifts"`     // 晚班数
	WeekendShifts int     `json:"weekend_shifts"`  // 周末班数
	Fulfillment   float64 `json:"fulfillment"`     // 达标率 (%)
}

// BalanceAnalyzer 工时均衡分析器
//
// 达标率按周计算再平均：每周 实际工时/目标工时，避免跨月整周被重复计入。
type BalanceAnalyzer struct {
	roster *roster.Roster
}

// NewBalanceAnalyzer 创建工时均衡分析器
func NewBalanceAnalyzer(r *roster.Roster) *BalanceAnalyzer {
	return &BalanceAnalyzer{roster: r}
}

// Analyze 分析排班的工时均衡性
func (b *BalanceAnalyzer) Analyze(schedule []*model.ScheduledDay) *BalanceMetrics {
	if len(schedule) == 0 || len(b.roster.Staff) == 0 {
		return &BalanceMetrics{}
	}

	stats := make([]StaffStat, 0, len(b.roster.Staff))
	weekCount := countISOWeeks(schedule)

	for _, staff := range b.roster.Staff {
		stat := StaffStat{
			StaffID:     staff.ID,
			StaffName:   staff.Name,
			TargetHours: staff.WeeklyHours * float64(weekCount),
		}

		for _, day := range schedule {
			entry := day.Staff[staff.ID]
			if entry == nil || entry.Event != model.EventShift || entry.Details == nil {
				continue
			}
			stat.TotalHours += entry.Details.TotalHours()
			stat.ExtraHours += entry.Details.ReallocatedHours
			stat.ShiftCount++
			if entry.Details.Timing == model.TimingLate {
				stat.LateShifts++
			}
			if wd := day.Date.Weekday(); wd == 0 || wd == 6 {
				stat.WeekendShifts++
			}
		}

		if stat.TargetHours > 0 {
			stat.Fulfillment = stat.TotalHours / stat.TargetHours * 100
		}
		stats = append(stats, stat)
	}

	fulfillment := make([]float64, len(stats))
	extra := make([]float64, len(stats))
	for i, s := range stats {
		fulfillment[i] = s.Fulfillment
		extra[i] = s.ExtraHours
	}

	avg := mean(fulfillment)
	maxF, minF := valueRange(fulfillment)

	return &BalanceMetrics{
		WorkloadGini:   gini(fulfillment),
		WorkloadStdDev: math.Sqrt(variance(fulfillment, avg)),
		AvgFulfillment: avg,
		MaxFulfillment: maxF,
		MinFulfillment: minF,
		ExtraHoursGini: gini(extra),
		StaffStats:     stats,
	}
}

// countISOWeeks 统计排班覆盖的 ISO 周数
func countISOWeeks(schedule []*model.ScheduledDay) int {
	weeks := make(map[int]bool)
	for _, day := range schedule {
		_, week := day.Date.ISOWeek()
		weeks[week] = true
	}
	return len(weeks)
}

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance 计算方差
func variance(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(values))
}

// valueRange 返回最大值与最小值
func valueRange(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return max, min
}

// gini 计算基尼系数（0=完全均衡，1=完全不均衡）
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum, weightedSum float64
	for i, v := range sorted {
		sum += v
		weightedSum += float64(i+1) * v
	}
	if sum == 0 {
		return 0
	}

	return (2*weightedSum - float64(n+1)*sum) / (float64(n) * sum)
}
