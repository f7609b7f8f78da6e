package scheduler

import "time"

// atHour 返回 t 所在日期（按 loc）的 hour:00
func atHour(t time.Time, loc *time.Location, hour int) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, loc)
}

// daysBetween 返回两个日期之间相差的天数，只比较日期部分
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
