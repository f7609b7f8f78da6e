package domain

import "time"

// ScheduleEntry 是某个司机为某个任务占用的一段时间，
// 删除时以 (JobID, StartAt) 作为联合键
type ScheduleEntry struct {
	JobID   int64     `json:"jobID"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Note    *string   `json:"note"`
}

// SameKey 判断两个条目的联合键是否一致
func (e ScheduleEntry) SameKey(jobID int64, startAt time.Time) bool {
	return e.JobID == jobID && e.StartAt.Equal(startAt)
}
