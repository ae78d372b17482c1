package benefitplans

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
	"github.com/FlatFilers/HCMShow-sub000/pkg/utils"
)

var (
	ErrBenefitPlanNotFound = errors.New("benefit plan not found")
	ErrEmptySlug           = errors.New("benefit plan slug is empty")
)

// UpsertInput is the payload for Upsert. Slug may be blank, in which case it is derived from Name.
type UpsertInput struct {
	OrganizationID uuid.UUID
	Slug           string
	Name           string
}

// Repository handles benefit plan persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates a benefit plans repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates the plan keyed by (organization, slug) or refreshes its name.
func (r *Repository) Upsert(ctx context.Context, in UpsertInput) (*models.BenefitPlan, error) {
	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Name)
	}
	if slug == "" {
		return nil, ErrEmptySlug
	}
	const q = `INSERT INTO benefit_plans (organization_id, slug, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, slug) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING id, organization_id, slug, name, created_at, updated_at`
	var p models.BenefitPlan
	err := r.db.QueryRow(ctx, q, in.OrganizationID, slug, in.Name).
		Scan(&p.ID, &p.OrganizationID, &p.Slug, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert benefit plan: %w", err)
	}
	return &p, nil
}

// GetBySlug returns a plan by slug within the organization.
func (r *Repository) GetBySlug(ctx context.Context, orgID uuid.UUID, slug string) (*models.BenefitPlan, error) {
	const q = `SELECT id, organization_id, slug, name, created_at, updated_at FROM benefit_plans WHERE organization_id = $1 AND slug = $2`
	var p models.BenefitPlan
	err := r.db.QueryRow(ctx, q, orgID, slug).Scan(&p.ID, &p.OrganizationID, &p.Slug, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBenefitPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the organization's benefit plans ordered by name.
func (r *Repository) List(ctx context.Context, orgID uuid.UUID) ([]*models.BenefitPlan, error) {
	rows, err := r.db.Query(ctx, `SELECT id, organization_id, slug, name, created_at, updated_at
		FROM benefit_plans WHERE organization_id = $1 ORDER BY name`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.BenefitPlan
	for rows.Next() {
		var p models.BenefitPlan
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Slug, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
