package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/dberrors"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, department.Name).Scan(&department.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_name_key") {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	var department models.Department
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM departments WHERE id = $1`, id).Scan(
		&department.ID,
		&department.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves all departments ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.ID, &department.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE departments SET name = $1 WHERE id = $2`,
		department.Name, department.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "departments_name_key") {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// Delete deletes a department by ID. Departments referenced by users or
// courses are refused rather than cascaded.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	var hasRelations bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE department_id = $1)
			OR EXISTS(SELECT 1 FROM courses WHERE department_id = $1)`,
		id).Scan(&hasRelations)
	if err != nil {
		return fmt.Errorf("error checking related entities: %w", err)
	}

	if hasRelations {
		return apperrors.ErrDepartmentHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}
