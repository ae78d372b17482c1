package jobs

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

var ErrJobNotFound = errors.New("job not found")

// UpsertInput is the payload for Upsert.
type UpsertInput struct {
	OrganizationID   uuid.UUID
	Slug             string
	Name             string
	EffectiveDate    time.Time
	IsInactive       bool
	JobFamilySlug    string
	FlatfileRecordID string
}

// Repository handles job persistence.
type Repository struct {
	db database.DB
}

// NewRepository creates a jobs repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

const jobColumns = `id, organization_id, slug, name, effective_date, is_inactive, job_family_id, COALESCE(flatfile_record_id,''), created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(&j.ID, &j.OrganizationID, &j.Slug, &j.Name, &j.EffectiveDate, &j.IsInactive, &j.JobFamilyID, &j.FlatfileRecordID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

// Upsert creates the job keyed by (organization, slug) or updates it in place.
// The job family is connected only when a family with that slug exists; otherwise the stored link is kept.
func (r *Repository) Upsert(ctx context.Context, in UpsertInput) (*models.Job, error) {
	const q = `INSERT INTO jobs (organization_id, slug, name, effective_date, is_inactive, job_family_id, flatfile_record_id)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT id FROM job_families WHERE organization_id = $1 AND slug = NULLIF($6,'')),
			NULLIF($7,''))
		ON CONFLICT (organization_id, slug) DO UPDATE SET
			name = EXCLUDED.name,
			effective_date = EXCLUDED.effective_date,
			is_inactive = EXCLUDED.is_inactive,
			job_family_id = COALESCE(EXCLUDED.job_family_id, jobs.job_family_id),
			flatfile_record_id = COALESCE(EXCLUDED.flatfile_record_id, jobs.flatfile_record_id),
			updated_at = NOW()
		RETURNING ` + jobColumns
	j, err := scanJob(r.db.QueryRow(ctx, q, in.OrganizationID, in.Slug, in.Name, in.EffectiveDate, in.IsInactive, in.JobFamilySlug, in.FlatfileRecordID))
	if err != nil {
		return nil, fmt.Errorf("upsert job: %w", err)
	}
	return j, nil
}

// GetByID returns a job by id within the organization.
func (r *Repository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE organization_id = $1 AND id = $2`
	return scanJob(r.db.QueryRow(ctx, q, orgID, id))
}

// List returns the organization's jobs ordered by name.
func (r *Repository) List(ctx context.Context, orgID uuid.UUID) ([]*models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE organization_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, j)
	}
	return list, rows.Err()
}
