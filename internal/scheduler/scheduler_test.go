package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func miles(v float64) *float64 {
	return &v
}

// 2024-01-01 是周一
func monday(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestScheduleNextHour(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(10, 0)))

	entries := s.Schedule([]*domain.Job{{ID: 1, Distance: miles(70)}}, nil)

	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].JobID)
	assert.True(t, entries[0].StartAt.Equal(monday(11, 0)))
	assert.True(t, entries[0].EndAt.Equal(monday(14, 0)))
	assert.Nil(t, entries[0].Note)
}

func TestScheduleNotBeforeWorkdayStart(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(6, 30)))

	entries := s.Schedule([]*domain.Job{{ID: 1}}, nil)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].StartAt.Equal(monday(9, 0)))
	assert.True(t, entries[0].EndAt.Equal(monday(11, 0)))
}

func TestScheduleRollsOverToNextDay(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(15, 20)))

	jobs := []*domain.Job{
		{ID: 1, Distance: miles(70)}, // 3 小时，16:00 开始会超过 18:00
		{ID: 2},                      // 2 小时
	}
	entries := s.Schedule(jobs, nil)

	require.Len(t, entries, 2)
	tuesday := monday(0, 0).AddDate(0, 0, 1)
	assert.True(t, entries[0].StartAt.Equal(tuesday.Add(9*time.Hour)))
	assert.True(t, entries[0].EndAt.Equal(tuesday.Add(12*time.Hour)))
	assert.True(t, entries[1].StartAt.Equal(tuesday.Add(12*time.Hour)))
	assert.True(t, entries[1].EndAt.Equal(tuesday.Add(14*time.Hour)))
}

func TestScheduleEndingAtWorkdayEndStaysSameDay(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(14, 59)))

	entries := s.Schedule([]*domain.Job{{ID: 1, Distance: miles(70)}}, nil)

	require.Len(t, entries, 1)
	assert.True(t, entries[0].StartAt.Equal(monday(15, 0)))
	assert.True(t, entries[0].EndAt.Equal(monday(18, 0)))
}

func TestScheduleLateNightStartsNextMorning(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(22, 10)))

	entries := s.Schedule([]*domain.Job{{ID: 1}}, nil)

	require.Len(t, entries, 1)
	tuesday := monday(0, 0).AddDate(0, 0, 1)
	assert.True(t, entries[0].StartAt.Equal(tuesday.Add(9*time.Hour)))
}

func TestScheduleJustBeforeMidnightStartsAtWorkdayStart(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(23, 10)))

	entries := s.Schedule([]*domain.Job{{ID: 1}, {ID: 2}, {ID: 3}}, nil)

	require.Len(t, entries, 3)
	tuesday := monday(0, 0).AddDate(0, 0, 1)
	for i, entry := range entries {
		start := tuesday.Add(time.Duration(9+2*i) * time.Hour)
		assert.True(t, entry.StartAt.Equal(start), "entry %d starts at %v", i, entry.StartAt)
		assert.True(t, entry.EndAt.Equal(start.Add(2*time.Hour)))
	}
}

func TestSchedulePacksBackToBack(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(8, 0)))

	jobs := []*domain.Job{
		{ID: 1, Distance: miles(35)},
		{ID: 2, Distance: miles(70)},
		{ID: 3},
	}
	entries := s.Schedule(jobs, nil)

	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i].StartAt.Equal(entries[i-1].EndAt))
	}
	assert.True(t, entries[2].EndAt.Equal(monday(16, 0)))
}

func TestScheduleIsIdempotent(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(10, 0)))

	jobs := []*domain.Job{
		{ID: 1, Distance: miles(70)},
		{ID: 2, Distance: miles(200)},
		{ID: 3},
	}

	first := s.Schedule(jobs, nil)
	second := s.Schedule(jobs, first)

	assert.Equal(t, first, second)
}

func TestScheduleKeepsExistingEntries(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(10, 0)))

	note := "手动安排"
	existing := []domain.ScheduleEntry{
		{JobID: 1, StartAt: monday(11, 0), EndAt: monday(12, 0), Note: &note},
	}
	jobs := []*domain.Job{{ID: 1}, {ID: 2}, {ID: 2}}

	entries := s.Schedule(jobs, existing)

	require.Len(t, entries, 2)
	assert.Equal(t, existing[0], entries[0])
	assert.Equal(t, int64(2), entries[1].JobID)
	// 不检查和已有条目的冲突
	assert.True(t, entries[1].StartAt.Equal(monday(11, 0)))
}

func TestScheduleNoCandidates(t *testing.T) {
	s := New(DefaultParameters(), fixedNow(monday(10, 0)))

	assert.Empty(t, s.Schedule(nil, nil))

	existing := []domain.ScheduleEntry{{JobID: 7, StartAt: monday(9, 0), EndAt: monday(10, 0)}}
	assert.Equal(t, existing, s.Schedule([]*domain.Job{{ID: 7}}, existing))
}

func TestScheduleDistancePriority(t *testing.T) {
	p := DefaultParameters()
	p.Priority = PriorityDistance
	s := New(p, fixedNow(monday(8, 0)))

	jobs := []*domain.Job{
		{ID: 1, Distance: miles(200)},
		{ID: 2, Distance: miles(35)},
		{ID: 3, Distance: miles(35)},
	}
	entries := s.Schedule(jobs, nil)

	require.Len(t, entries, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{entries[0].JobID, entries[1].JobID, entries[2].JobID})
}

func TestScheduleUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	p := DefaultParameters()
	p.Location = loc
	// 本地时间 周一 10:00
	s := New(p, fixedNow(time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC)))

	entries := s.Schedule([]*domain.Job{{ID: 1}}, nil)

	require.Len(t, entries, 1)
	assert.Equal(t, time.UTC, entries[0].StartAt.Location())
	assert.True(t, entries[0].StartAt.Equal(time.Date(2024, 1, 1, 11, 0, 0, 0, loc)))
}
