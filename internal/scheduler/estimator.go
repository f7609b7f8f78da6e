package scheduler

import (
	"math"
	"time"
)

// EstimateHours 根据行程距离（英里）估算任务占用的小时数:
// 已知距离按平均速度计算，未知或为 0 时按 1 小时计算，再加上装卸缓冲，
// 最后限制在 [MinHours, MaxHours] 之间
func (p *Parameters) EstimateHours(distance float64) float64 {
	driveHours := 1.0
	if distance > 0 {
		driveHours = distance / p.AverageSpeedMPH
	}

	hours := driveHours + p.BufferHours
	return math.Min(math.Max(hours, p.MinHours), p.MaxHours)
}

// EstimateDuration 返回排班时实际占用的时长（向上取整到整小时）
func (p *Parameters) EstimateDuration(distance float64) time.Duration {
	return time.Duration(math.Ceil(p.EstimateHours(distance))) * time.Hour
}

// EstimateHours 使用默认参数估算
func EstimateHours(distance float64) float64 {
	return DefaultParameters().EstimateHours(distance)
}
