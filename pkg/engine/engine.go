// Package engine 实现药房排班生成引擎
//
// 生成流程是严格有序的四个阶段，后一阶段依赖前一阶段的改写结果：
//  1. 日网格构建：按双周轮换班表铺底，公共假期当天入账工时，同时采集换班前快照
//  2. 年假处理：同角色顶班或临时工顶班，无人可顶时批假并记录缺口警告
//  3. 换班调解：按快照交换两名员工的两个班次，快照不全则整条跳过
//  4. 入账工时再分配：三阶段把假期入账工时分回同一员工的其他班次
//
// 引擎对输入是纯函数：无 I/O、无共享可变状态，同一实例可被并发调用。
// 排班冲突从不抛错，全部降级为挂在员工日条目上的警告字符串。
package engine

import (
	"time"

	"github.com/yaopai/yaopai/pkg/logger"
	"github.com/yaopai/yaopai/pkg/model"
	"github.com/yaopai/yaopai/pkg/roster"
)

// Engine 排班引擎
type Engine struct {
	roster *roster.Roster
	limits Limits
	log    *logger.EngineLogger

	useDynamicOffDays bool
}

// Option 引擎可选配置
type Option func(*Engine)

// WithLimits 覆盖默认安全限制
func WithLimits(l Limits) Option {
	return func(e *Engine) { e.limits = l }
}

// WithDynamicOffDays 开启顶班时的连休保护：
// 候选人放弃休息日顶班后必须仍保有最短连休，否则换下一位候选人
func WithDynamicOffDays() Option {
	return func(e *Engine) { e.useDynamicOffDays = true }
}

// New 创建排班引擎
func New(r *roster.Roster, opts ...Option) *Engine {
	e := &Engine{
		roster: r,
		limits: DefaultLimits(),
		log:    logger.NewEngineLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Roster 返回引擎使用的花名册
func (e *Engine) Roster() *roster.Roster {
	return e.roster
}

// Generate 生成目标月份的排班
//
// 返回覆盖整月的完整周序列（从首周周一到末周周日），按日期升序。
// holidays/leave/swaps 由调用方持有并在每次调用时整体传入，引擎不保存状态。
func (e *Engine) Generate(targetMonth time.Time, holidays []model.PublicHoliday, leave []model.AnnualLeaveRecord, swaps []model.SwapRecord) []*model.ScheduledDay {
	start := time.Now()

	days, snapshots := e.buildDays(targetMonth, holidays)
	e.log.StartGeneration(targetMonth.Format("2006-01"), len(e.roster.Staff), len(days))

	e.resolveLeave(days, leave)
	e.reconcileSwaps(days, snapshots, swaps)
	e.reallocateBankedHours(days)

	e.log.GenerationComplete(targetMonth.Format("2006-01"), time.Since(start), countWarnings(days))
	return days
}

// countWarnings 统计带警告的员工日条目数
func countWarnings(days []*model.ScheduledDay) int {
	n := 0
	for _, day := range days {
		for _, entry := range day.Staff {
			if entry.Warning != "" {
				n++
			}
		}
	}
	return n
}

// Generate 用默认花名册与默认安全限制生成排班
func Generate(targetMonth time.Time, holidays []model.PublicHoliday, leave []model.AnnualLeaveRecord, swaps []model.SwapRecord) []*model.ScheduledDay {
	return New(roster.Default()).Generate(targetMonth, holidays, leave, swaps)
}
