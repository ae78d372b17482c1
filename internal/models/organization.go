package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant every synced row belongs to.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizationStats counts the synced rows of one organization.
type OrganizationStats struct {
	Employees            int64      `json:"employees"`
	Jobs                 int64      `json:"jobs"`
	BenefitPlans         int64      `json:"benefit_plans"`
	EmployeeBenefitPlans int64      `json:"employee_benefit_plans"`
	LastSyncedAt         *time.Time `json:"last_synced_at,omitempty"`
}
