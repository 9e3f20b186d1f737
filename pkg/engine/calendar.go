package engine

import "time"

// isoWeek 返回日期的 ISO 周号
func isoWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// startOfISOWeek 返回所在 ISO 周的星期一
func startOfISOWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// endOfISOWeek 返回所在 ISO 周的星期日
func endOfISOWeek(t time.Time) time.Time {
	offset := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}

// monthGrid 返回覆盖目标月份的完整周日期序列
// 从首周周一开始，到末周周日结束，保证日历网格完整
func monthGrid(targetMonth time.Time) []time.Time {
	year, month, _ := targetMonth.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, targetMonth.Location())
	last := first.AddDate(0, 1, -1)

	start := startOfISOWeek(first)
	end := endOfISOWeek(last)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// sameMonth 判断两个日期是否属于同一个月
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsCurrentMonth 判断日期是否属于目标月份
func IsCurrentMonth(date, targetMonth time.Time) bool {
	return sameMonth(date, targetMonth)
}
