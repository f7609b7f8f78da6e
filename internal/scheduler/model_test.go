package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/config"
)

func TestNewParameters(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.Timezone = "UTC"
	cfg.Scheduler.GridStartHour = 8
	cfg.Scheduler.GridEndHour = 20
	cfg.Scheduler.SlotMinutes = 15
	cfg.Scheduler.WorkdayStartHour = 9
	cfg.Scheduler.WorkdayEndHour = 18
	cfg.Scheduler.AverageSpeedMPH = 35
	cfg.Scheduler.BufferHours = 0.5
	cfg.Scheduler.MinHours = 1
	cfg.Scheduler.MaxHours = 10
	cfg.Scheduler.ResizePolicy = "strict"
	cfg.Scheduler.Priority = "fifo"

	p, err := NewParameters(cfg)

	require.NoError(t, err)
	assert.Equal(t, "UTC", p.Location.String())
	assert.Equal(t, ResizeStrict, p.ResizePolicy)
	assert.Equal(t, 48, p.NewGrid(monday(0, 0)).SlotsPerDay())
}

func TestNewParametersInvalidTimezone(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.Timezone = "Mars/Olympus"

	_, err := NewParameters(cfg)

	assert.Error(t, err)
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Parameters)
	}{
		{"网格范围倒置", func(p *Parameters) { p.GridStartHour = 20; p.GridEndHour = 8 }},
		{"时间格不能整除", func(p *Parameters) { p.SlotMinutes = 25 }},
		{"工作时间倒置", func(p *Parameters) { p.WorkdayStartHour = 18; p.WorkdayEndHour = 9 }},
		{"速度为零", func(p *Parameters) { p.AverageSpeedMPH = 0 }},
		{"时长范围无效", func(p *Parameters) { p.MinHours = 11 }},
		{"未知调整策略", func(p *Parameters) { p.ResizePolicy = "loose" }},
		{"未知排序策略", func(p *Parameters) { p.Priority = "urgent" }},
	}

	assert.NoError(t, DefaultParameters().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.modify(p)
			assert.Error(t, p.Validate())
		})
	}
}
