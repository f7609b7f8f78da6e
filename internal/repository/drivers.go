package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/driver-planner/backend/internal/domain"
)

func (r *Repository) GetDriverByID(id int64) (*domain.Driver, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, is_active, created_at, version
		FROM drivers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	driver := &domain.Driver{
		ID: id,
	}

	dst := []any{&driver.Username, &driver.PasswordHash, &driver.FullName, &driver.Email, &driver.Role, &driver.IsActive, &driver.CreatedAt, &driver.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return driver, nil
}

func (r *Repository) GetAllDrivers() ([]*domain.Driver, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, is_active, created_at, version
		FROM drivers WHERE role = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.RoleDriver)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		driver := &domain.Driver{}
		dst := []any{&driver.ID, &driver.Username, &driver.PasswordHash, &driver.FullName, &driver.Email, &driver.Role, &driver.IsActive, &driver.CreatedAt, &driver.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *Repository) CreateDriver(driver *domain.Driver) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO drivers (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	args := []any{driver.Username, driver.PasswordHash, driver.FullName, driver.Email, driver.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&driver.ID, &driver.IsActive, &driver.CreatedAt, &driver.Version); err != nil {
		return err
	}

	return nil
}
