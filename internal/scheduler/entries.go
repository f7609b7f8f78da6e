package scheduler

import (
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

// AddEntry 手动添加条目，默认为当天 09:00 开始的两小时
func (p *Parameters) AddEntry(entries []domain.ScheduleEntry, jobID int64, day time.Time, note *string) ([]domain.ScheduleEntry, domain.ScheduleEntry) {
	start := atHour(day, p.Location, DefaultEntryStartHour)
	entry := domain.ScheduleEntry{
		JobID:   jobID,
		StartAt: start.UTC(),
		EndAt:   start.Add(DefaultEntryDuration).UTC(),
		Note:    note,
	}

	return append(entries, entry), entry
}

// RemoveEntry 按 (jobID, startAt) 删除条目，没有匹配时原样返回
func RemoveEntry(entries []domain.ScheduleEntry, jobID int64, startAt time.Time) ([]domain.ScheduleEntry, bool) {
	result := make([]domain.ScheduleEntry, 0, len(entries))
	removed := false

	for _, entry := range entries {
		if entry.SameKey(jobID, startAt) {
			removed = true
			continue
		}
		result = append(result, entry)
	}

	return result, removed
}

// FindEntry 按 (jobID, startAt) 查找条目的下标，找不到返回 -1
func FindEntry(entries []domain.ScheduleEntry, jobID int64, startAt time.Time) int {
	for i, entry := range entries {
		if entry.SameKey(jobID, startAt) {
			return i
		}
	}
	return -1
}
