package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimateHours(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"未知距离", 0, 1.5},
		{"负数距离", -20, 1.5},
		{"非数字", math.NaN(), 1.5},
		{"一小时车程", 35, 1.5},
		{"两小时车程", 70, 2.5},
		{"短途不足一小时", 1, 1},
		{"长途封顶", 350, 10},
		{"超长途封顶", 5000, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateHours(tt.distance), 1e-9)
		})
	}
}

func TestEstimateDurationRoundsUp(t *testing.T) {
	p := DefaultParameters()

	assert.Equal(t, 2*time.Hour, p.EstimateDuration(0))
	assert.Equal(t, 3*time.Hour, p.EstimateDuration(70))
	assert.Equal(t, time.Hour, p.EstimateDuration(10))
	assert.Equal(t, 10*time.Hour, p.EstimateDuration(1000))
}
