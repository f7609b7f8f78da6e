package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

func newRedisStoreMock() (*RedisScheduleStore, redismock.ClientMock) {
	client, mock := redismock.NewClientMock()

	cfg := &config.Config{}
	cfg.Redis.OperationExpiration = 5

	return NewRedisScheduleStore(cfg, client), mock
}

func TestRedisScheduleStoreLoadMissingKey(t *testing.T) {
	store, mock := newRedisStoreMock()
	mock.ExpectGet("schedule_entries_3").RedisNil()

	entries, err := store.Load(3)

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleStoreLoad(t *testing.T) {
	store, mock := newRedisStoreMock()
	mock.ExpectGet("schedule_entries_3").
		SetVal(`[{"jobID":1,"startAt":"2024-01-01T17:00:00+08:00","endAt":"2024-01-01T19:00:00+08:00","note":"先打电话"}]`)

	entries, err := store.Load(3)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), entries[0].StartAt)
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC), entries[0].EndAt)
	require.NotNil(t, entries[0].Note)
	assert.Equal(t, "先打电话", *entries[0].Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleStoreLoadCorruptValue(t *testing.T) {
	store, mock := newRedisStoreMock()
	mock.ExpectGet("schedule_entries_3").SetVal(`not json`)

	_, err := store.Load(3)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleStoreLoadWrapsErrors(t *testing.T) {
	store, mock := newRedisStoreMock()
	redisErr := errors.New("connection refused")
	mock.ExpectGet("schedule_entries_3").SetErr(redisErr)

	_, err := store.Load(3)

	require.Error(t, err)
	assert.ErrorIs(t, err, redisErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleStoreSave(t *testing.T) {
	store, mock := newRedisStoreMock()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		{JobID: 1, StartAt: start, EndAt: start.Add(2 * time.Hour)},
	}
	payload, err := EncodeScheduleEntries(entries)
	require.NoError(t, err)
	mock.ExpectSet("schedule_entries_3", payload, 0).SetVal("OK")

	require.NoError(t, store.Save(3, entries))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleStoreSaveEmpty(t *testing.T) {
	store, mock := newRedisStoreMock()
	mock.ExpectSet("schedule_entries_3", []byte("[]"), 0).SetVal("OK")

	require.NoError(t, store.Save(3, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisScheduleStoreSaveWrapsErrors(t *testing.T) {
	store, mock := newRedisStoreMock()
	redisErr := errors.New("READONLY")
	mock.ExpectSet("schedule_entries_3", []byte("[]"), 0).SetErr(redisErr)

	err := store.Save(3, []domain.ScheduleEntry{})

	require.Error(t, err)
	assert.ErrorIs(t, err, redisErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
