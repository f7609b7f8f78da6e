package handler

import (
	"errors"
	"log/slog"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

// loadEntries 先读数据库，失败时退回 redis
func (h *Handler) loadEntries(driverID int64) ([]domain.ScheduleEntry, error) {
	entries, err := h.primaryStore.Load(driverID)
	if err == nil {
		return entries, nil
	}
	if h.fallbackStore == nil {
		return nil, err
	}

	slog.Warn("读取排班失败，改为从本地存储读取", "driverID", driverID, "error", err)
	fallbackEntries, fallbackErr := h.fallbackStore.Load(driverID)
	if fallbackErr != nil {
		return nil, errors.Join(err, fallbackErr)
	}

	return fallbackEntries, nil
}

// saveEntries 写入数据库并尽力同步到 redis；
// 数据库写入失败时只写 redis，此时 fallback 为 true
func (h *Handler) saveEntries(driverID int64, entries []domain.ScheduleEntry) (fallback bool, err error) {
	err = h.primaryStore.Save(driverID, entries)
	if err == nil {
		if h.fallbackStore != nil {
			if mirrorErr := h.fallbackStore.Save(driverID, entries); mirrorErr != nil {
				slog.Warn("同步排班到本地存储失败", "driverID", driverID, "error", mirrorErr)
			}
		}
		return false, nil
	}
	if h.fallbackStore == nil {
		return false, err
	}

	slog.Warn("保存排班失败，改为保存到本地存储", "driverID", driverID, "error", err)
	if fallbackErr := h.fallbackStore.Save(driverID, entries); fallbackErr != nil {
		return false, errors.Join(err, fallbackErr)
	}

	return true, nil
}

func saveMessage(fallback bool, msg string) string {
	if fallback {
		return msg + "（数据库不可用，已暂存到本地）"
	}
	return msg
}
