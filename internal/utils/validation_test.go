package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/scheduler"
)

func entryAt(jobID int64, hour, hours int) domain.ScheduleEntry {
	start := time.Date(2024, time.January, 1, hour, 0, 0, 0, time.UTC)
	return domain.ScheduleEntry{
		JobID:   jobID,
		StartAt: start,
		EndAt:   start.Add(time.Duration(hours) * time.Hour),
	}
}

func TestValidateScheduleEntries(t *testing.T) {
	entries := []domain.ScheduleEntry{entryAt(1, 9, 2), entryAt(1, 13, 2), entryAt(2, 9, 1)}
	assert.NoError(t, ValidateScheduleEntries(entries, scheduler.ResizeStrict))
	assert.NoError(t, ValidateScheduleEntries(nil, scheduler.ResizeStrict))
}

func TestValidateScheduleEntriesDuplicateKey(t *testing.T) {
	entries := []domain.ScheduleEntry{entryAt(1, 9, 2), entryAt(1, 9, 3)}
	assert.Error(t, ValidateScheduleEntries(entries, scheduler.ResizePermissive))
}

func TestValidateScheduleEntriesInverted(t *testing.T) {
	inverted := entryAt(1, 9, 2)
	inverted.StartAt, inverted.EndAt = inverted.EndAt, inverted.StartAt
	entries := []domain.ScheduleEntry{inverted}

	assert.Error(t, ValidateScheduleEntries(entries, scheduler.ResizeStrict))
	assert.NoError(t, ValidateScheduleEntries(entries, scheduler.ResizePermissive))
}

func TestValidateScheduleEntriesMissingTime(t *testing.T) {
	entries := []domain.ScheduleEntry{{JobID: 1}}
	assert.Error(t, ValidateScheduleEntries(entries, scheduler.ResizePermissive))
}

func TestValidateEntriesWithJobs(t *testing.T) {
	jobs := []*domain.Job{{ID: 1}, {ID: 2}}

	assert.NoError(t, ValidateEntriesWithJobs([]domain.ScheduleEntry{entryAt(1, 9, 1), entryAt(2, 11, 1)}, jobs))
	assert.Error(t, ValidateEntriesWithJobs([]domain.ScheduleEntry{entryAt(3, 9, 1)}, jobs))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-03", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("03/01/2024", time.UTC)
	assert.Error(t, err)
}
