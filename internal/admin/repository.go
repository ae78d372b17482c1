package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

// PurgeResult counts the rows removed per table.
type PurgeResult struct {
	EmployeeBenefitPlans int64 `json:"employee_benefit_plans"`
	Employees            int64 `json:"employees"`
	Jobs                 int64 `json:"jobs"`
	BenefitPlans         int64 `json:"benefit_plans"`
	Snapshots            int   `json:"snapshots"`
}

// Repository removes synced data of an organization.
type Repository struct {
	db database.DB
}

// NewRepository creates an admin repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

// Purge deletes every synced entity of the organization in one transaction, children first.
// Users, spaces and the activity log are kept.
func (r *Repository) Purge(ctx context.Context, orgID uuid.UUID) (PurgeResult, error) {
	var res PurgeResult
	steps := []struct {
		q   string
		out *int64
	}{
		{`DELETE FROM employee_benefit_plans ebp USING employees e WHERE ebp.employee_id = e.id AND e.organization_id = $1`, &res.EmployeeBenefitPlans},
		{`DELETE FROM employees WHERE organization_id = $1`, &res.Employees},
		{`DELETE FROM jobs WHERE organization_id = $1`, &res.Jobs},
		{`DELETE FROM benefit_plans WHERE organization_id = $1`, &res.BenefitPlans},
	}
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, s := range steps {
			tag, err := tx.Exec(ctx, s.q, orgID)
			if err != nil {
				return err
			}
			*s.out = tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return PurgeResult{}, fmt.Errorf("purge organization data: %w", err)
	}
	return res, nil
}
