package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

type GestureKind string

const (
	GestureMove         GestureKind = "move"
	GestureResizeTop    GestureKind = "resize-top"
	GestureResizeBottom GestureKind = "resize-bottom"
)

func ParseGestureKind(s string) (GestureKind, error) {
	switch kind := GestureKind(s); kind {
	case GestureMove, GestureResizeTop, GestureResizeBottom:
		return kind, nil
	default:
		return "", fmt.Errorf("不支持的操作类型 %q", s)
	}
}

// Gesture 记录一次拖动开始时的条目状态，整个过程中所在的天固定不变
type Gesture struct {
	Kind   GestureKind
	Origin domain.ScheduleEntry
	Day    int
}

// BeginGesture 在指针按下时调用
func (g *Grid) BeginGesture(entry domain.ScheduleEntry, kind GestureKind) *Gesture {
	return &Gesture{
		Kind:   kind,
		Origin: entry,
		Day:    g.PlacementOf(entry).Day,
	}
}

// ApplyGesture 根据当前指针所在的格子重新计算条目的时间，每次指针移动都可以调用。
// cell.Day 会被忽略，不支持跨天拖动
func (g *Grid) ApplyGesture(gesture *Gesture, cell Cell, policy ResizePolicy) domain.ScheduleEntry {
	entry := gesture.Origin
	slot := g.slotDuration()

	switch gesture.Kind {
	case GestureMove:
		// 保持原有时长，按格子四舍五入，至少一格
		n := int(math.Round(float64(entry.EndAt.Sub(entry.StartAt)) / float64(slot)))
		n = max(n, 1)
		start := g.SlotToTime(gesture.Day, cell.Slot)
		entry.StartAt = start.UTC()
		entry.EndAt = start.Add(time.Duration(n) * slot).UTC()
	case GestureResizeTop:
		start := g.SlotToTime(gesture.Day, cell.Slot)
		if policy == ResizeStrict && !start.Before(entry.EndAt) {
			start = entry.EndAt.Add(-slot)
		}
		entry.StartAt = start.UTC()
	case GestureResizeBottom:
		// 结束时间不包含指针所在的格子
		end := g.SlotToTime(gesture.Day, cell.Slot+1)
		if policy == ResizeStrict && !end.After(entry.StartAt) {
			end = entry.StartAt.Add(slot)
		}
		entry.EndAt = end.UTC()
	}

	return entry
}
