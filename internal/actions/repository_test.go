package actions

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
)

var actionCols = []string{"id", "type", "description", "metadata", "user_id", "organization_id", "created_at"}

func TestRepository_Create_DefaultsSeen(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID, orgID, id := uuid.New(), uuid.New(), uuid.New()
	wantMeta := []byte(`{"seen":false,"successfullySynced":3,"totalRecords":4}`)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO actions`)).
		WithArgs("sync-records", "Synced 3 of 4 records", wantMeta, userID, orgID).
		WillReturnRows(pgxmock.NewRows(actionCols).
			AddRow(id, "sync-records", "Synced 3 of 4 records", wantMeta, userID, orgID, time.Now()))

	a, err := NewRepository(mock).Create(context.Background(), CreateParams{
		UserID:         userID,
		OrganizationID: orgID,
		Type:           models.ActionTypeSyncRecords,
		Description:    "Synced 3 of 4 records",
		Metadata:       map[string]any{"totalRecords": 4, "successfullySynced": 3},
	})
	require.NoError(t, err)
	require.Equal(t, models.ActionTypeSyncRecords, a.Type)

	var meta map[string]any
	require.NoError(t, json.Unmarshal(a.Metadata, &meta))
	require.Equal(t, false, meta["seen"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkSeen(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	orgID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	mock.ExpectExec(regexp.QuoteMeta(`jsonb_set(metadata, '{seen}'`)).
		WithArgs(orgID, ids).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := NewRepository(mock).MarkSeen(context.Background(), orgID, ids)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkSeen_NoIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	n, err := NewRepository(mock).MarkSeen(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSnapshotKey(t *testing.T) {
	a := &models.Action{Metadata: json.RawMessage(`{"seen":true,"snapshotKey":"snapshots/x/workbook/a.json"}`)}
	require.Equal(t, "snapshots/x/workbook/a.json", SnapshotKey(a))
	require.Empty(t, SnapshotKey(&models.Action{Metadata: json.RawMessage(`{}`)}))
}
