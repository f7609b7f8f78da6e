package utils

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/scheduler"
)

// ValidateScheduleEntries 检查联合键 (jobID, startAt) 是否重复；
// strict 策略下还要求每个条目的结束时间晚于开始时间
func ValidateScheduleEntries(entries []domain.ScheduleEntry, policy scheduler.ResizePolicy) error {
	for i, entry := range entries {
		if entry.StartAt.IsZero() || entry.EndAt.IsZero() {
			return fmt.Errorf("条目 %d 缺少开始或结束时间", i)
		}
		if policy == scheduler.ResizeStrict && !entry.EndAt.After(entry.StartAt) {
			return fmt.Errorf("条目 %d 的结束时间必须晚于开始时间", i)
		}

		for j := i + 1; j < len(entries); j++ {
			if entries[j].SameKey(entry.JobID, entry.StartAt) {
				return fmt.Errorf("条目 %d 和条目 %d 的任务与开始时间相同", i, j)
			}
		}
	}

	return nil
}

// ValidateEntriesWithJobs 检查所有条目引用的任务都属于该司机
func ValidateEntriesWithJobs(entries []domain.ScheduleEntry, jobs []*domain.Job) error {
	owned := make(map[int64]struct{}, len(jobs))
	for _, job := range jobs {
		owned[job.ID] = struct{}{}
	}

	for i, entry := range entries {
		if _, ok := owned[entry.JobID]; !ok {
			return fmt.Errorf("条目 %d 引用的任务 %d 不存在", i, entry.JobID)
		}
	}

	return nil
}

// ParseDate 按 YYYY-MM-DD 解析日期，时区为 loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的日期 %q，格式应为 YYYY-MM-DD", s)
	}
	return t, nil
}
