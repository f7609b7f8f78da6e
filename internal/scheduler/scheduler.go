package scheduler

import (
	"sort"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

// AutoScheduler 将尚未排班的任务依次紧密排入工作时间内
type AutoScheduler struct {
	parameters *Parameters
	now        func() time.Time
}

func New(parameters *Parameters, now func() time.Time) *AutoScheduler {
	if now == nil {
		now = time.Now
	}

	return &AutoScheduler{
		parameters: parameters,
		now:        now,
	}
}

// Schedule 返回 existing 加上新排入条目后的完整列表（按追加顺序）。
// 已经出现在 existing 中的任务不会被重复排班，
// 也不会检查与其他条目的冲突，冲突交给 DetectConflicts 标记
func (s *AutoScheduler) Schedule(jobs []*domain.Job, existing []domain.ScheduleEntry) []domain.ScheduleEntry {
	result := make([]domain.ScheduleEntry, len(existing), len(existing)+len(jobs))
	copy(result, existing)

	// 找出还没有排班的任务
	scheduled := make(map[int64]struct{}, len(existing))
	for _, entry := range existing {
		scheduled[entry.JobID] = struct{}{}
	}

	candidates := make([]*domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if job == nil {
			continue
		}
		if _, exists := scheduled[job.ID]; exists {
			continue
		}
		// 同一批次中重复出现的任务也只排一次
		scheduled[job.ID] = struct{}{}
		candidates = append(candidates, job)
	}

	if len(candidates) == 0 {
		return result
	}

	if s.parameters.Priority == PriorityDistance {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Miles() < candidates[j].Miles()
		})
	}

	cursor := s.initialCursor()
	for _, job := range candidates {
		duration := s.parameters.EstimateDuration(job.Miles())
		start, end := s.place(cursor, duration)

		result = append(result, domain.ScheduleEntry{
			JobID:   job.ID,
			StartAt: start.UTC(),
			EndAt:   end.UTC(),
			Note:    nil,
		})

		// 下一个任务紧接着上一个任务开始
		cursor = end
	}

	return result
}

// initialCursor 为下一个整点，但不早于该整点所在日期的工作开始时间
func (s *AutoScheduler) initialCursor() time.Time {
	loc := s.parameters.Location
	now := s.now().In(loc)

	cursor := time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, 0, 0, 0, loc)
	// 23 点之后下一个整点已经是第二天，需要按 cursor 所在的那天比较
	earliest := atHour(cursor, loc, s.parameters.WorkdayStartHour)
	if cursor.Before(earliest) {
		cursor = earliest
	}

	return cursor
}

// place 在 cursor 当天放不下时顺延到下一天的工作开始时间
func (s *AutoScheduler) place(cursor time.Time, duration time.Duration) (time.Time, time.Time) {
	loc := s.parameters.Location

	start := cursor.In(loc)
	end := start.Add(duration)

	if end.After(atHour(start, loc, s.parameters.WorkdayEndHour)) {
		next := start.AddDate(0, 0, 1)
		start = atHour(next, loc, s.parameters.WorkdayStartHour)
		end = start.Add(duration)
	}

	return start, end
}
