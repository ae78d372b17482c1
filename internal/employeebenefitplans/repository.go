package employeebenefitplans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

var ErrEnrollmentNotFound = errors.New("employee benefit plan not found")

// CreateInput is the payload for CreateOrIgnore.
type CreateInput struct {
	EmployeeID            uuid.UUID
	BenefitPlanID         uuid.UUID
	CurrentlyEnrolled     bool
	CoverageBeginDate     time.Time
	EmployeerContribution decimal.Decimal
	BenefitCoverageType   string
	FlatfileRecordID      string
}

// Repository handles employee benefit plan persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates an employee benefit plans repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

const enrollmentColumns = `id, employee_id, benefit_plan_id, currently_enrolled, coverage_begin_date,
	employeer_contribution, benefit_coverage_type, COALESCE(flatfile_record_id,''), created_at, updated_at`

func scanEnrollment(row pgx.Row) (*models.EmployeeBenefitPlan, error) {
	var e models.EmployeeBenefitPlan
	err := row.Scan(&e.ID, &e.EmployeeID, &e.BenefitPlanID, &e.CurrentlyEnrolled, &e.CoverageBeginDate,
		&e.EmployeerContribution, &e.BenefitCoverageType, &e.FlatfileRecordID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

// CreateOrIgnore inserts the enrollment for (employee, plan). An existing row is left
// untouched and returned with created=false.
func (r *Repository) CreateOrIgnore(ctx context.Context, in CreateInput) (*models.EmployeeBenefitPlan, bool, error) {
	const q = `INSERT INTO employee_benefit_plans
		(employee_id, benefit_plan_id, currently_enrolled, coverage_begin_date, employeer_contribution, benefit_coverage_type, flatfile_record_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,''))
		ON CONFLICT (employee_id, benefit_plan_id) DO NOTHING
		RETURNING ` + enrollmentColumns
	e, err := scanEnrollment(r.db.QueryRow(ctx, q, in.EmployeeID, in.BenefitPlanID, in.CurrentlyEnrolled,
		in.CoverageBeginDate, in.EmployeerContribution, in.BenefitCoverageType, in.FlatfileRecordID))
	if err == nil {
		return e, true, nil
	}
	if !errors.Is(err, ErrEnrollmentNotFound) {
		return nil, false, fmt.Errorf("create employee benefit plan: %w", err)
	}
	existing, err := r.Get(ctx, in.EmployeeID, in.BenefitPlanID)
	if err != nil {
		return nil, false, fmt.Errorf("load existing employee benefit plan: %w", err)
	}
	return existing, false, nil
}

// Get returns the enrollment for (employee, plan).
func (r *Repository) Get(ctx context.Context, employeeID, planID uuid.UUID) (*models.EmployeeBenefitPlan, error) {
	q := `SELECT ` + enrollmentColumns + ` FROM employee_benefit_plans WHERE employee_id = $1 AND benefit_plan_id = $2`
	return scanEnrollment(r.db.QueryRow(ctx, q, employeeID, planID))
}

// ListByEmployee returns all enrollments of an employee scoped to the organization.
func (r *Repository) ListByEmployee(ctx context.Context, orgID, employeeID uuid.UUID) ([]*models.EmployeeBenefitPlan, error) {
	q := `SELECT ebp.id, ebp.employee_id, ebp.benefit_plan_id, ebp.currently_enrolled, ebp.coverage_begin_date,
		ebp.employeer_contribution, ebp.benefit_coverage_type, COALESCE(ebp.flatfile_record_id,''), ebp.created_at, ebp.updated_at
		FROM employee_benefit_plans ebp
		JOIN employees e ON e.id = ebp.employee_id
		WHERE e.organization_id = $1 AND ebp.employee_id = $2
		ORDER BY ebp.coverage_begin_date`
	rows, err := r.db.Query(ctx, q, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.EmployeeBenefitPlan
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
