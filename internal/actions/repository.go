package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

var ErrActionNotFound = errors.New("action not found")

// CreateParams is the payload for Create.
type CreateParams struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Type           models.ActionType
	Description    string
	Metadata       map[string]any
}

// Repository is the append-only activity log.
type Repository struct {
	db database.DB
}

// NewRepository creates an actions repository.
func NewRepository(db database.DB) *Repository {
	return &Repository{db: db}
}

const actionColumns = `id, type, description, metadata, user_id, organization_id, created_at`

func scanAction(row pgx.Row) (*models.Action, error) {
	var a models.Action
	var typ string
	var meta []byte
	if err := row.Scan(&a.ID, &typ, &a.Description, &meta, &a.UserID, &a.OrganizationID, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActionNotFound
		}
		return nil, err
	}
	a.Type = models.ActionType(typ)
	a.Metadata = json.RawMessage(meta)
	return &a, nil
}

// Create appends an action. metadata.seen defaults to false when not given.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*models.Action, error) {
	meta := make(map[string]any, len(p.Metadata)+1)
	for k, v := range p.Metadata {
		meta[k] = v
	}
	if _, ok := meta[models.ActionMetaSeen]; !ok {
		meta[models.ActionMetaSeen] = false
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal action metadata: %w", err)
	}
	const q = `INSERT INTO actions (type, description, metadata, user_id, organization_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + actionColumns
	a, err := scanAction(r.db.QueryRow(ctx, q, string(p.Type), p.Description, raw, p.UserID, p.OrganizationID))
	if err != nil {
		return nil, fmt.Errorf("create action: %w", err)
	}
	return a, nil
}

// GetByID returns an action within the organization.
func (r *Repository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Action, error) {
	return scanAction(r.db.QueryRow(ctx, `SELECT `+actionColumns+` FROM actions WHERE organization_id = $1 AND id = $2`, orgID, id))
}

// ListByOrganization returns the most recent actions first.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID, limit int) ([]*models.Action, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return r.list(ctx, `SELECT `+actionColumns+` FROM actions WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2`, orgID, limit)
}

// ListUnseen returns the user's actions whose metadata.seen is not true, oldest first.
func (r *Repository) ListUnseen(ctx context.Context, orgID, userID uuid.UUID) ([]*models.Action, error) {
	return r.list(ctx, `SELECT `+actionColumns+` FROM actions
		WHERE organization_id = $1 AND user_id = $2 AND COALESCE((metadata->>'seen')::boolean, false) = false
		ORDER BY created_at ASC`, orgID, userID)
}

// MarkSeen flips metadata.seen to true for the given actions. Returns rows updated.
func (r *Repository) MarkSeen(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.db.Exec(ctx, `UPDATE actions SET metadata = jsonb_set(metadata, '{seen}', 'true'::jsonb, true)
		WHERE organization_id = $1 AND id = ANY($2)`, orgID, ids)
	if err != nil {
		return 0, fmt.Errorf("mark actions seen: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]*models.Action, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// SnapshotKey extracts metadata.snapshotKey, if any.
func SnapshotKey(a *models.Action) string {
	var meta map[string]any
	if err := json.Unmarshal(a.Metadata, &meta); err != nil {
		return ""
	}
	key, _ := meta[models.ActionMetaSnapshotKey].(string)
	return key
}
