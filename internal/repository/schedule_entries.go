package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

// GetScheduleEntriesByDriverID 按保存时的顺序返回该司机的所有排班条目
func (r *Repository) GetScheduleEntriesByDriverID(driverID int64) ([]domain.ScheduleEntry, error) {
	query := `
		SELECT job_id, start_at, end_at, note
		FROM schedule_entries
		WHERE driver_id = $1
		ORDER BY position
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ScheduleEntry, 0)
	for rows.Next() {
		var entry domain.ScheduleEntry
		var note sql.NullString

		if err := rows.Scan(&entry.JobID, &entry.StartAt, &entry.EndAt, &note); err != nil {
			return nil, err
		}

		entry.StartAt = entry.StartAt.UTC()
		entry.EndAt = entry.EndAt.UTC()
		if note.Valid {
			entry.Note = &note.String
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ReplaceScheduleEntries 在一个事务中用 entries 覆盖该司机原有的排班条目
func (r *Repository) ReplaceScheduleEntries(driverID int64, entries []domain.ScheduleEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先将之前的条目删除
	query := `DELETE FROM schedule_entries WHERE driver_id = $1`
	if _, err := tx.ExecContext(ctx, query, driverID); err != nil {
		return err
	}

	for i, entry := range entries {
		query := `
			INSERT INTO schedule_entries (driver_id, job_id, start_at, end_at, note, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		args := []any{driverID, entry.JobID, entry.StartAt.UTC(), entry.EndAt.UTC(), entry.Note, i}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
