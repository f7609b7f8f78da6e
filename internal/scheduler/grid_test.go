package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

func newTestGrid() *Grid {
	return DefaultParameters().NewGrid(monday(12, 0))
}

func TestWeekStartOf(t *testing.T) {
	want := monday(0, 0)

	assert.True(t, WeekStartOf(monday(0, 0), time.UTC).Equal(want))
	assert.True(t, WeekStartOf(time.Date(2024, 1, 3, 15, 4, 5, 0, time.UTC), time.UTC).Equal(want))
	assert.True(t, WeekStartOf(time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC), time.UTC).Equal(want))
	assert.True(t, WeekStartOf(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), time.UTC).Equal(want.AddDate(0, 0, 7)))
}

func TestWeekStartOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)

	// UTC 周日 20:00 在 UTC+8 已经是下周一
	got := WeekStartOf(time.Date(2024, 1, 7, 20, 0, 0, 0, time.UTC), loc)

	assert.True(t, got.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, loc)))
}

func TestGridDimensions(t *testing.T) {
	g := newTestGrid()

	assert.Equal(t, 24, g.SlotsPerDay())
	assert.True(t, g.WeekEnd().Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)))
}

func TestSlotToTime(t *testing.T) {
	g := newTestGrid()

	assert.True(t, g.SlotToTime(0, 0).Equal(monday(8, 0)))
	assert.True(t, g.SlotToTime(2, 3).Equal(time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC)))
	// 不做越界处理
	assert.True(t, g.SlotToTime(0, 30).Equal(monday(23, 0)))
	assert.True(t, g.SlotToTime(0, -2).Equal(monday(7, 0)))
}

func TestPlacementRoundTrip(t *testing.T) {
	g := newTestGrid()

	for day := 0; day < DaysPerWeek; day++ {
		for slot := 0; slot < g.SlotsPerDay(); slot++ {
			entry := domain.ScheduleEntry{
				StartAt: g.SlotToTime(day, slot),
				EndAt:   g.SlotToTime(day, slot+1),
			}
			assert.Equal(t, Placement{Day: day, StartSlot: slot, Span: 1}, g.PlacementOf(entry))
		}
	}
}

func TestPlacementOf(t *testing.T) {
	g := newTestGrid()

	tests := []struct {
		name  string
		entry domain.ScheduleEntry
		want  Placement
	}{
		{
			name:  "普通条目",
			entry: domain.ScheduleEntry{StartAt: monday(9, 0), EndAt: monday(11, 0)},
			want:  Placement{Day: 0, StartSlot: 2, Span: 4},
		},
		{
			name:  "不整齐的时间向外取整",
			entry: domain.ScheduleEntry{StartAt: monday(9, 10), EndAt: monday(10, 5)},
			want:  Placement{Day: 0, StartSlot: 2, Span: 3},
		},
		{
			name:  "早于网格开始",
			entry: domain.ScheduleEntry{StartAt: monday(7, 0), EndAt: monday(8, 30)},
			want:  Placement{Day: 0, StartSlot: 0, Span: 1},
		},
		{
			name:  "零时长至少占一格",
			entry: domain.ScheduleEntry{StartAt: monday(10, 0), EndAt: monday(10, 0)},
			want:  Placement{Day: 0, StartSlot: 4, Span: 1},
		},
		{
			name:  "倒置条目至少占一格",
			entry: domain.ScheduleEntry{StartAt: monday(12, 0), EndAt: monday(10, 0)},
			want:  Placement{Day: 0, StartSlot: 8, Span: 1},
		},
		{
			name:  "超长条目封顶",
			entry: domain.ScheduleEntry{StartAt: monday(8, 0), EndAt: monday(8, 0).Add(30 * time.Hour)},
			want:  Placement{Day: 0, StartSlot: 0, Span: 24},
		},
		{
			name:  "上一周",
			entry: domain.ScheduleEntry{StartAt: monday(9, 0).AddDate(0, 0, -1), EndAt: monday(10, 0).AddDate(0, 0, -1)},
			want:  Placement{Day: -1, StartSlot: 2, Span: 2},
		},
		{
			name:  "周日",
			entry: domain.ScheduleEntry{StartAt: monday(19, 30).AddDate(0, 0, 6), EndAt: monday(20, 0).AddDate(0, 0, 6)},
			want:  Placement{Day: 6, StartSlot: 23, Span: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.PlacementOf(tt.entry))
		})
	}
}

func TestEntriesInWeek(t *testing.T) {
	g := newTestGrid()

	entries := []domain.ScheduleEntry{
		{JobID: 1, StartAt: monday(0, 0), EndAt: monday(1, 0)},
		{JobID: 2, StartAt: monday(0, 0).Add(-time.Minute), EndAt: monday(1, 0)},
		{JobID: 3, StartAt: g.WeekEnd(), EndAt: g.WeekEnd().Add(time.Hour)},
		{JobID: 4, StartAt: g.WeekEnd().Add(-time.Minute), EndAt: g.WeekEnd().Add(time.Hour)},
	}

	got := g.EntriesInWeek(entries)

	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].JobID)
	assert.Equal(t, int64(4), got[1].JobID)
}

func TestCellAt(t *testing.T) {
	g := newTestGrid()

	assert.Equal(t, Cell{Day: 1, Slot: 5}, g.CellAt(150, 110, 700, 480))
	assert.Equal(t, Cell{Day: 0, Slot: 0}, g.CellAt(-10, -10, 700, 480))
	assert.Equal(t, Cell{Day: 6, Slot: 23}, g.CellAt(800, 480, 700, 480))
	assert.Equal(t, Cell{Day: 0, Slot: 0}, g.CellAt(100, 100, 0, 0))
}
