package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/config"
	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

// ScheduleStore 负责读写某个司机的排班条目
type ScheduleStore interface {
	Load(ownerID int64) ([]domain.ScheduleEntry, error)
	Save(ownerID int64, entries []domain.ScheduleEntry) error
}

// PostgresScheduleStore 以数据库为后端
type PostgresScheduleStore struct {
	repo *Repository
}

func NewPostgresScheduleStore(repo *Repository) *PostgresScheduleStore {
	return &PostgresScheduleStore{repo: repo}
}

func (s *PostgresScheduleStore) Load(ownerID int64) ([]domain.ScheduleEntry, error) {
	entries, err := s.repo.GetScheduleEntriesByDriverID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("从数据库读取司机 %d 的排班失败: %w", ownerID, err)
	}
	return entries, nil
}

func (s *PostgresScheduleStore) Save(ownerID int64, entries []domain.ScheduleEntry) error {
	if err := s.repo.ReplaceScheduleEntries(ownerID, entries); err != nil {
		return fmt.Errorf("向数据库保存司机 %d 的排班失败: %w", ownerID, err)
	}
	return nil
}

// RedisScheduleStore 以 redis 作为本地键值存储，整个条目列表序列化为一个 JSON
type RedisScheduleStore struct {
	cfg    *config.Config
	client *redis.Client
}

func NewRedisScheduleStore(cfg *config.Config, client *redis.Client) *RedisScheduleStore {
	return &RedisScheduleStore{cfg: cfg, client: client}
}

func ScheduleKey(ownerID int64) string {
	return fmt.Sprintf("schedule_entries_%d", ownerID)
}

func (s *RedisScheduleStore) Load(ownerID int64) ([]domain.ScheduleEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Redis.OperationExpiration)*time.Second)
	defer cancel()

	raw, err := s.client.Get(ctx, ScheduleKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 没有保存过，视为空列表
			return []domain.ScheduleEntry{}, nil
		}
		return nil, fmt.Errorf("从 redis 读取司机 %d 的排班失败: %w", ownerID, err)
	}

	return DecodeScheduleEntries(raw)
}

func (s *RedisScheduleStore) Save(ownerID int64, entries []domain.ScheduleEntry) error {
	payload, err := EncodeScheduleEntries(entries)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := s.client.Set(ctx, ScheduleKey(ownerID), payload, 0).Err(); err != nil {
		return fmt.Errorf("向 redis 保存司机 %d 的排班失败: %w", ownerID, err)
	}

	return nil
}

func EncodeScheduleEntries(entries []domain.ScheduleEntry) ([]byte, error) {
	if entries == nil {
		entries = []domain.ScheduleEntry{}
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("序列化排班条目失败: %w", err)
	}
	return payload, nil
}

func DecodeScheduleEntries(raw []byte) ([]domain.ScheduleEntry, error) {
	entries := []domain.ScheduleEntry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("反序列化排班条目失败: %w", err)
	}

	for i := range entries {
		entries[i].StartAt = entries[i].StartAt.UTC()
		entries[i].EndAt = entries[i].EndAt.UTC()
	}

	return entries, nil
}
