package scheduler

import (
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

// Overlaps 判断两个半开区间 [start, end) 是否相交，首尾相接不算冲突
func Overlaps(a, b domain.ScheduleEntry) bool {
	return a.StartAt.Before(b.EndAt) && b.StartAt.Before(a.EndAt)
}

// DetectConflicts 返回与 entries 一一对应的冲突标记。
// 只比较星期几相同的条目，调用方应先按周过滤，且只传入同一个司机的条目
func DetectConflicts(entries []domain.ScheduleEntry, loc *time.Location) []bool {
	conflicts := make([]bool, len(entries))

	for i := 0; i < len(entries); i++ {
		iDay := entries[i].StartAt.In(loc).Weekday()

		for j := i + 1; j < len(entries); j++ {
			if entries[j].StartAt.In(loc).Weekday() != iDay {
				continue
			}
			if Overlaps(entries[i], entries[j]) {
				conflicts[i] = true
				conflicts[j] = true
			}
		}
	}

	return conflicts
}
