package employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeTypeNotFound = errors.New("employee type not found")
	ErrJobNotFound          = errors.New("job not found")
)

// UpsertInput is the payload for Upsert. Manager links are attached separately with SetManager.
type UpsertInput struct {
	OrganizationID       uuid.UUID
	EmployeeID           string
	FirstName            string
	LastName             string
	HireDate             time.Time
	EndEmploymentDate    *time.Time
	PositionTitle        string
	EmployeeTypeSlug     string
	JobSlug              string
	DefaultWeeklyHours   float64
	ScheduledWeeklyHours float64
	FlatfileRecordID     string
	Address              *models.Address
}

// Repository handles employee persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates an employees repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

const employeeColumns = `id, organization_id, employee_id, first_name, last_name, hire_date, end_employment_date,
	position_title, employee_type_id, job_id, manager_id, default_weekly_hours, scheduled_weekly_hours,
	COALESCE(flatfile_record_id,''), created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.OrganizationID, &e.EmployeeID, &e.FirstName, &e.LastName, &e.HireDate, &e.EndEmploymentDate,
		&e.PositionTitle, &e.EmployeeTypeID, &e.JobID, &e.ManagerID, &e.DefaultWeeklyHours, &e.ScheduledWeeklyHours,
		&e.FlatfileRecordID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Upsert creates the employee keyed by (organization, employee id) or updates the synced fields in place.
// Optional columns that arrive blank keep their stored value. The address is connected in the same transaction.
func (r *Repository) Upsert(ctx context.Context, in UpsertInput) (*models.Employee, error) {
	var out *models.Employee
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		var typeID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM employee_types WHERE slug = $1`, in.EmployeeTypeSlug).Scan(&typeID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %q", ErrEmployeeTypeNotFound, in.EmployeeTypeSlug)
		}
		if err != nil {
			return fmt.Errorf("lookup employee type: %w", err)
		}

		var jobID *uuid.UUID
		if in.JobSlug != "" {
			var id uuid.UUID
			err := tx.QueryRow(ctx, `SELECT id FROM jobs WHERE organization_id = $1 AND slug = $2`, in.OrganizationID, in.JobSlug).Scan(&id)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: %q", ErrJobNotFound, in.JobSlug)
			}
			if err != nil {
				return fmt.Errorf("lookup job: %w", err)
			}
			jobID = &id
		}

		const q = `INSERT INTO employees (organization_id, employee_id, first_name, last_name, hire_date, end_employment_date,
			position_title, employee_type_id, job_id, default_weekly_hours, scheduled_weekly_hours, flatfile_record_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12,''))
			ON CONFLICT (organization_id, employee_id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				hire_date = EXCLUDED.hire_date,
				end_employment_date = COALESCE(EXCLUDED.end_employment_date, employees.end_employment_date),
				position_title = EXCLUDED.position_title,
				employee_type_id = EXCLUDED.employee_type_id,
				job_id = COALESCE(EXCLUDED.job_id, employees.job_id),
				default_weekly_hours = EXCLUDED.default_weekly_hours,
				scheduled_weekly_hours = EXCLUDED.scheduled_weekly_hours,
				flatfile_record_id = COALESCE(EXCLUDED.flatfile_record_id, employees.flatfile_record_id),
				updated_at = NOW()
			RETURNING ` + employeeColumns
		emp, err := scanEmployee(tx.QueryRow(ctx, q, in.OrganizationID, in.EmployeeID, in.FirstName, in.LastName, in.HireDate,
			in.EndEmploymentDate, in.PositionTitle, typeID, jobID, in.DefaultWeeklyHours, in.ScheduledWeeklyHours, in.FlatfileRecordID))
		if err != nil {
			return fmt.Errorf("upsert employee: %w", err)
		}

		if in.Address != nil && in.Address.AddressLine1 != "" {
			if err := connectAddress(ctx, tx, emp.ID, in.Address); err != nil {
				return err
			}
		}
		out = emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// connectAddress finds or creates the shared address row and links it to the employee.
func connectAddress(ctx context.Context, tx pgx.Tx, employeeID uuid.UUID, a *models.Address) error {
	const upsertAddress = `INSERT INTO addresses (address_line_1, address_line_2, city, state, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (address_line_1, address_line_2, city, state, postal_code, country)
		DO UPDATE SET address_line_1 = EXCLUDED.address_line_1
		RETURNING id`
	var addressID uuid.UUID
	if err := tx.QueryRow(ctx, upsertAddress, a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode, a.Country).Scan(&addressID); err != nil {
		return fmt.Errorf("upsert address: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO employee_addresses (employee_id, address_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		employeeID, addressID); err != nil {
		return fmt.Errorf("connect address: %w", err)
	}
	return nil
}

// SetManager links the employee to the manager with the given business id in the same organization.
// It returns false without error when the manager does not exist.
func (r *Repository) SetManager(ctx context.Context, orgID uuid.UUID, employeeID, managerEmployeeID string) (bool, error) {
	const q = `UPDATE employees e SET manager_id = m.id, updated_at = NOW()
		FROM employees m
		WHERE e.organization_id = $1 AND e.employee_id = $2
		  AND m.organization_id = $1 AND m.employee_id = $3
		  AND m.id <> e.id`
	tag, err := r.db.Exec(ctx, q, orgID, employeeID, managerEmployeeID)
	if err != nil {
		return false, fmt.Errorf("set manager: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindByEmployeeID returns an employee by business id within an organization.
func (r *Repository) FindByEmployeeID(ctx context.Context, orgID uuid.UUID, employeeID string) (*models.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees WHERE organization_id = $1 AND employee_id = $2`
	return scanEmployee(r.db.QueryRow(ctx, q, orgID, employeeID))
}

// GetByID returns an employee by surrogate id, scoped to the organization.
func (r *Repository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees WHERE organization_id = $1 AND id = $2`
	return scanEmployee(r.db.QueryRow(ctx, q, orgID, id))
}

// List returns an organization's employees ordered by last and first name.
func (r *Repository) List(ctx context.Context, orgID uuid.UUID) ([]*models.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees WHERE organization_id = $1 ORDER BY last_name, first_name`
	rows, err := r.db.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
