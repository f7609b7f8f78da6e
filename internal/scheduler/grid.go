package scheduler

import (
	"math"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

const DaysPerWeek = 7

// WeekStartOf 返回 t 所在周的周一 00:00（按 loc）
func WeekStartOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7 // 周一为 0
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
}

// Grid 是一周的 7 列 × N 行时间格坐标系，本身不保存任何条目
type Grid struct {
	WeekStart   time.Time
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// Placement 是条目在网格中的位置
type Placement struct {
	Day       int `json:"day"`
	StartSlot int `json:"startSlot"`
	Span      int `json:"span"`
}

// Cell 是指针所在的网格坐标
type Cell struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// NewGrid 构建包含 t 的那一周的网格
func (p *Parameters) NewGrid(t time.Time) *Grid {
	return &Grid{
		WeekStart:   WeekStartOf(t, p.Location),
		StartHour:   p.GridStartHour,
		EndHour:     p.GridEndHour,
		SlotMinutes: p.SlotMinutes,
	}
}

func (g *Grid) location() *time.Location {
	return g.WeekStart.Location()
}

func (g *Grid) slotDuration() time.Duration {
	return time.Duration(g.SlotMinutes) * time.Minute
}

// SlotsPerDay 返回每天的格子数
func (g *Grid) SlotsPerDay() int {
	return (g.EndHour - g.StartHour) * 60 / g.SlotMinutes
}

// WeekEnd 返回下一周的周一 00:00
func (g *Grid) WeekEnd() time.Time {
	return g.WeekStart.AddDate(0, 0, DaysPerWeek)
}

// SlotToTime 将 (day, slot) 转换为时间戳，不做越界处理
func (g *Grid) SlotToTime(day, slot int) time.Time {
	d := g.WeekStart.AddDate(0, 0, day)
	base := time.Date(d.Year(), d.Month(), d.Day(), g.StartHour, 0, 0, 0, g.location())
	return base.Add(time.Duration(slot) * g.slotDuration())
}

// PlacementOf 计算条目在网格中的位置。
// 不在本周的条目仍会得到（可能为负或过大的）Day，由展示层负责裁剪
func (g *Grid) PlacementOf(entry domain.ScheduleEntry) Placement {
	start := entry.StartAt.In(g.location())
	day := daysBetween(g.WeekStart, start)

	slot := float64(g.SlotMinutes)
	startMins := float64(start.Hour()*60+start.Minute()-g.StartHour*60) + float64(start.Second())/60
	startSlot := max(0, int(math.Floor(startMins/slot)))

	endMins := startMins + entry.EndAt.Sub(entry.StartAt).Minutes()
	span := int(math.Ceil(endMins/slot)) - startSlot
	span = max(1, min(span, g.SlotsPerDay()))

	return Placement{
		Day:       day,
		StartSlot: startSlot,
		Span:      span,
	}
}

// Contains 判断条目的开始时间是否落在 [WeekStart, WeekStart+7d) 内
func (g *Grid) Contains(entry domain.ScheduleEntry) bool {
	return !entry.StartAt.Before(g.WeekStart) && entry.StartAt.Before(g.WeekEnd())
}

// EntriesInWeek 过滤出本周的条目，保持原有顺序
func (g *Grid) EntriesInWeek(entries []domain.ScheduleEntry) []domain.ScheduleEntry {
	result := make([]domain.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		if g.Contains(entry) {
			result = append(result, entry)
		}
	}
	return result
}

// CellAt 将指针在网格内的像素坐标映射为网格坐标，并限制在网格范围内
func (g *Grid) CellAt(x, y, width, height float64) Cell {
	total := g.SlotsPerDay()

	col, row := 0, 0
	if width > 0 {
		col = int(math.Floor(x / width * DaysPerWeek))
	}
	if height > 0 {
		row = int(math.Floor(y / height * float64(total)))
	}

	return Cell{
		Day:  clamp(col, 0, DaysPerWeek-1),
		Slot: clamp(row, 0, total-1),
	}
}
