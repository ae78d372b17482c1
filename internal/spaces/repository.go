package spaces

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

var ErrSpaceNotFound = errors.New("space not found")

// Repository maps Flatfile spaces to their owning user and organization.
type Repository struct {
	db database.DB
}

// NewRepository creates a spaces repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

const spaceColumns = `id, flatfile_space_id, user_id, organization_id, type, COALESCE(guest_link,''), created_at, updated_at`

func scanSpace(row pgx.Row) (*models.Space, error) {
	var s models.Space
	var typ string
	err := row.Scan(&s.ID, &s.FlatfileSpaceID, &s.UserID, &s.OrganizationID, &typ, &s.GuestLink, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	s.Type = models.SpaceType(typ)
	return &s, nil
}

// Create stores a space. A user holds at most one space per type.
func (r *Repository) Create(ctx context.Context, s *models.Space) (*models.Space, error) {
	const q = `INSERT INTO spaces (flatfile_space_id, user_id, organization_id, type, guest_link)
		VALUES ($1, $2, $3, $4, NULLIF($5,''))
		RETURNING ` + spaceColumns
	out, err := scanSpace(r.db.QueryRow(ctx, q, s.FlatfileSpaceID, s.UserID, s.OrganizationID, string(s.Type), s.GuestLink))
	if err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}
	return out, nil
}

// GetByFlatfileID resolves an external space id.
func (r *Repository) GetByFlatfileID(ctx context.Context, flatfileSpaceID string) (*models.Space, error) {
	return scanSpace(r.db.QueryRow(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE flatfile_space_id = $1`, flatfileSpaceID))
}

// GetForUser returns the user's space of type t.
func (r *Repository) GetForUser(ctx context.Context, userID uuid.UUID, t models.SpaceType) (*models.Space, error) {
	return scanSpace(r.db.QueryRow(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE user_id = $1 AND type = $2`, userID, string(t)))
}
