package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BenefitPlan is a benefit plan offered by an organization, unique by slug.
type BenefitPlan struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EmployeeBenefitPlan is an employee's enrollment in a benefit plan.
// At most one row exists per (EmployeeID, BenefitPlanID).
type EmployeeBenefitPlan struct {
	ID                    uuid.UUID       `json:"id"`
	EmployeeID            uuid.UUID       `json:"employee_id"`
	BenefitPlanID         uuid.UUID       `json:"benefit_plan_id"`
	CurrentlyEnrolled     bool            `json:"currently_enrolled"`
	CoverageBeginDate     time.Time       `json:"coverage_begin_date"`
	EmployeerContribution decimal.Decimal `json:"employeer_contribution"`
	BenefitCoverageType   string          `json:"benefit_coverage_type"`
	FlatfileRecordID      string          `json:"flatfile_record_id,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
