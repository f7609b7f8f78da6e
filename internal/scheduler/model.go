package scheduler

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/config"
)

// ResizePolicy 决定调整上下边界时是否允许开始时间越过结束时间
type ResizePolicy string

const (
	ResizeStrict     ResizePolicy = "strict"     // 至少保留一个时间格
	ResizePermissive ResizePolicy = "permissive" // 允许暂时倒置
)

// Priority 决定自动排班时候选任务的顺序
type Priority string

const (
	PriorityFIFO     Priority = "fifo"     // 按传入顺序
	PriorityDistance Priority = "distance" // 短途优先（稳定排序）
)

// 手动添加条目时的默认时间窗口
const (
	DefaultEntryStartHour = 9
	DefaultEntryDuration  = 2 * time.Hour
)

// 排班参数
type Parameters struct {
	Location *time.Location

	GridStartHour int // 网格起始小时
	GridEndHour   int // 网格结束小时
	SlotMinutes   int // 每格分钟数

	WorkdayStartHour int // 自动排班最早开始时间
	WorkdayEndHour   int // 自动排班最晚结束时间

	AverageSpeedMPH float64
	BufferHours     float64
	MinHours        float64
	MaxHours        float64

	ResizePolicy ResizePolicy
	Priority     Priority
}

func DefaultParameters() *Parameters {
	return &Parameters{
		Location:         time.UTC,
		GridStartHour:    8,
		GridEndHour:      20,
		SlotMinutes:      30,
		WorkdayStartHour: 9,
		WorkdayEndHour:   18,
		AverageSpeedMPH:  35,
		BufferHours:      0.5,
		MinHours:         1,
		MaxHours:         10,
		ResizePolicy:     ResizePermissive,
		Priority:         PriorityFIFO,
	}
}

// NewParameters 从配置中构建排班参数
func NewParameters(cfg *config.Config) (*Parameters, error) {
	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("无效的时区 %q: %w", cfg.Scheduler.Timezone, err)
	}

	p := &Parameters{
		Location:         loc,
		GridStartHour:    cfg.Scheduler.GridStartHour,
		GridEndHour:      cfg.Scheduler.GridEndHour,
		SlotMinutes:      cfg.Scheduler.SlotMinutes,
		WorkdayStartHour: cfg.Scheduler.WorkdayStartHour,
		WorkdayEndHour:   cfg.Scheduler.WorkdayEndHour,
		AverageSpeedMPH:  cfg.Scheduler.AverageSpeedMPH,
		BufferHours:      cfg.Scheduler.BufferHours,
		MinHours:         cfg.Scheduler.MinHours,
		MaxHours:         cfg.Scheduler.MaxHours,
		ResizePolicy:     ResizePolicy(cfg.Scheduler.ResizePolicy),
		Priority:         Priority(cfg.Scheduler.Priority),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parameters) Validate() error {
	if p.GridStartHour < 0 || p.GridEndHour > 24 || p.GridStartHour >= p.GridEndHour {
		return fmt.Errorf("网格时间范围 %d-%d 无效", p.GridStartHour, p.GridEndHour)
	}
	if p.SlotMinutes <= 0 || 60%p.SlotMinutes != 0 {
		return fmt.Errorf("时间格长度 %d 分钟无效，必须能整除 60", p.SlotMinutes)
	}
	if p.WorkdayStartHour < 0 || p.WorkdayEndHour > 24 || p.WorkdayStartHour >= p.WorkdayEndHour {
		return fmt.Errorf("工作时间范围 %d-%d 无效", p.WorkdayStartHour, p.WorkdayEndHour)
	}
	if p.AverageSpeedMPH <= 0 {
		return fmt.Errorf("平均速度必须大于 0")
	}
	if p.MinHours <= 0 || p.MinHours > p.MaxHours {
		return fmt.Errorf("时长范围 %v-%v 无效", p.MinHours, p.MaxHours)
	}
	switch p.ResizePolicy {
	case ResizeStrict, ResizePermissive:
	default:
		return fmt.Errorf("不支持的调整策略 %q", p.ResizePolicy)
	}
	switch p.Priority {
	case PriorityFIFO, PriorityDistance:
	default:
		return fmt.Errorf("不支持的排序策略 %q", p.Priority)
	}
	return nil
}
