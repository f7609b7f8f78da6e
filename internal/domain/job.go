package domain

import "time"

type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusAccepted  JobStatus = "accepted"
	JobStatusPickedUp  JobStatus = "picked_up"
	JobStatusInTransit JobStatus = "in_transit"
	JobStatusDelivered JobStatus = "delivered"
	JobStatusCancelled JobStatus = "cancelled"
)

// ActiveJobStatuses 为仍需要司机安排时间的阶段
var ActiveJobStatuses = []JobStatus{
	JobStatusAccepted,
	JobStatusPickedUp,
	JobStatusInTransit,
}

type Job struct {
	ID       int64     `json:"id"`
	Status   JobStatus `json:"status"`
	Distance *float64  `json:"distance"` // 英里，可能为空
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Vehicle  string    `json:"vehicle"`
	DriverID *int64    `json:"driverID"`

	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Miles 返回行程距离，缺失时视为 0
func (j *Job) Miles() float64 {
	if j.Distance == nil {
		return 0
	}
	return *j.Distance
}
