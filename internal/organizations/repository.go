package organizations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

var ErrOrganizationNotFound = errors.New("organization not found")

// Repository handles organization persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates an organizations repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

// GetByID returns an organization by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	const q = `SELECT id, name, created_at, updated_at FROM organizations WHERE id = $1`
	var org models.Organization
	err := r.db.QueryRow(ctx, q, id).Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Rename updates the organization's display name.
func (r *Repository) Rename(ctx context.Context, id uuid.UUID, name string) (*models.Organization, error) {
	const q = `UPDATE organizations SET name = $2, updated_at = NOW() WHERE id = $1
		RETURNING id, name, created_at, updated_at`
	var org models.Organization
	err := r.db.QueryRow(ctx, q, id, name).Scan(&org.ID, &org.Name, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Stats counts synced rows and finds the latest sync action.
func (r *Repository) Stats(ctx context.Context, orgID uuid.UUID) (*models.OrganizationStats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM employees WHERE organization_id = $1),
		(SELECT COUNT(*) FROM jobs WHERE organization_id = $1),
		(SELECT COUNT(*) FROM benefit_plans WHERE organization_id = $1),
		(SELECT COUNT(*) FROM employee_benefit_plans ebp
			JOIN employees e ON e.id = ebp.employee_id WHERE e.organization_id = $1),
		(SELECT MAX(created_at) FROM actions WHERE organization_id = $1 AND type <> 'file-feed-event')`
	var s models.OrganizationStats
	err := r.db.QueryRow(ctx, q, orgID).Scan(&s.Employees, &s.Jobs, &s.BenefitPlans, &s.EmployeeBenefitPlans, &s.LastSyncedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Member is a user of the organization as listed by GET /organization/members.
type Member struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	AddedAt  time.Time `json:"added_at"`
}

// ListMembers returns the organization's users, oldest first.
func (r *Repository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]Member, error) {
	const q = `SELECT id, email, full_name, role, created_at FROM users WHERE organization_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.Email, &m.FullName, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
