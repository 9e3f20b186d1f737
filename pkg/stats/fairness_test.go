package stats

import (
	"testing"

	"github.com/yaopai/yaopai/pkg/engine"
	"github.com/yaopai/yaopai/pkg/roster"
)

func TestBalanceAnalyzer_无假期月份完全均衡(t *testing.T) {
	r := roster.Default()
	schedule := engine.New(r).Generate(july, nil, nil, nil)

	metrics := NewBalanceAnalyzer(r).Analyze(schedule)

	// 所有员工按班表满额上班：达标率一致，基尼系数为0
	if metrics.WorkloadGini > 1e-9 {
		t.Errorf("WorkloadGini = %v, expected 0", metrics.WorkloadGini)
	}
	if metrics.AvgFulfillment != 100 {
		t.Errorf("AvgFulfillment = %v, expected 100", metrics.AvgFulfillment)
	}
	if metrics.MaxFulfillment != metrics.MinFulfillment {
		t.Errorf("达标率区间 = [%v, %v], expected 一致", metrics.MinFulfillment, metrics.MaxFulfillment)
	}
	if metrics.ExtraHoursGini != 0 {
		t.Errorf("ExtraHoursGini = %v, expected 0", metrics.ExtraHoursGini)
	}

	if len(metrics.StaffStats) != 4 {
		t.Fatalf("len(StaffStats) = %d, expected 4", len(metrics.StaffStats))
	}
	for _, stat := range metrics.StaffStats {
		if stat.TotalHours != stat.TargetHours {
			t.Errorf("%s 实际 %v != 目标 %v", stat.StaffID, stat.TotalHours, stat.TargetHours)
		}
		if stat.ExtraHours != 0 {
			t.Errorf("%s 追加工时 = %v, expected 0", stat.StaffID, stat.ExtraHours)
		}
	}
}

func TestBalanceAnalyzer_晚班与周末班计数(t *testing.T) {
	r := roster.Default()
	schedule := engine.New(r).Generate(july, nil, nil, nil)

	metrics := NewBalanceAnalyzer(r).Analyze(schedule)

	var fatimah, pah *StaffStat
	for i := range metrics.StaffStats {
		switch metrics.StaffStats[i].StaffID {
		case "fatimah":
			fatimah = &metrics.StaffStats[i]
		case "pah":
			pah = &metrics.StaffStats[i]
		}
	}
	if fatimah == nil || pah == nil {
		t.Fatal("统计缺少员工")
	}

	// Fatimah 周末固定休息
	if fatimah.WeekendShifts != 0 {
		t.Errorf("fatimah 周末班 = %d, expected 0", fatimah.WeekendShifts)
	}
	// Pah 每周六日都上班，5个完整周
	if pah.WeekendShifts != 10 {
		t.Errorf("pah 周末班 = %d, expected 10", pah.WeekendShifts)
	}
	if pah.LateShifts == 0 {
		t.Error("pah 应有晚班")
	}
}

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"完全均衡", []float64{10, 10, 10, 10}, 0},
		{"空集合", nil, 0},
		{"全零", []float64{0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gini(tt.values); got != tt.want {
				t.Errorf("gini(%v) = %v, expected %v", tt.values, got, tt.want)
			}
		})
	}

	// 完全集中时趋近 (n-1)/n
	if got := gini([]float64{0, 0, 0, 12}); got != 0.75 {
		t.Errorf("gini(集中分布) = %v, expected 0.75", got)
	}
}

func TestBalanceAnalyzer_空输入(t *testing.T) {
	r := roster.Default()
	metrics := NewBalanceAnalyzer(r).Analyze(nil)

	if metrics.WorkloadGini != 0 || len(metrics.StaffStats) != 0 {
		t.Errorf("空排班应返回零值指标: %+v", metrics)
	}
}
