package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

const jobColumns = `id, status, distance, title, company, vehicle, driver_id, created_at, version`

func scanJob(scanner interface{ Scan(dest ...any) error }) (*domain.Job, error) {
	var row struct {
		distance sql.NullFloat64
		driverID sql.NullInt64
	}

	job := &domain.Job{}
	dst := []any{&job.ID, &job.Status, &row.distance, &job.Title, &job.Company, &job.Vehicle, &row.driverID, &job.CreatedAt, &job.Version}
	if err := scanner.Scan(dst...); err != nil {
		return nil, err
	}

	if row.distance.Valid {
		job.Distance = &row.distance.Float64
	}
	if row.driverID.Valid {
		job.DriverID = &row.driverID.Int64
	}

	return job, nil
}

func (r *Repository) queryJobs(query string, args ...any) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// GetActiveJobsByDriverID 返回分配给该司机且仍处于进行中阶段的任务，按创建时间排序
func (r *Repository) GetActiveJobsByDriverID(driverID int64) ([]*domain.Job, error) {
	placeholders := make([]string, len(domain.ActiveJobStatuses))
	args := []any{driverID}
	for i, status := range domain.ActiveJobStatuses {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, status)
	}

	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE driver_id = $1 AND status IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY created_at, id
	`

	return r.queryJobs(query, args...)
}

// GetJobsByDriverID 返回分配给该司机的所有任务，导出日历时用于补充标题
func (r *Repository) GetJobsByDriverID(driverID int64) ([]*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE driver_id = $1
		ORDER BY created_at, id
	`

	return r.queryJobs(query, driverID)
}

func (r *Repository) CreateJob(job *domain.Job) error {
	query := `
		INSERT INTO jobs (status, distance, title, company, vehicle, driver_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{job.Status, job.Distance, job.Title, job.Company, job.Vehicle, job.DriverID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt, &job.Version); err != nil {
		return err
	}

	return nil
}
