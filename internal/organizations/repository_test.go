package organizations

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM organizations WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).GetByID(context.Background(), id)
	require.ErrorIs(t, err, ErrOrganizationNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_StatsBeforeFirstSync(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	orgID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MAX(created_at) FROM actions`)).
		WithArgs(orgID).
		WillReturnRows(pgxmock.NewRows([]string{"employees", "jobs", "benefit_plans", "enrollments", "last_synced_at"}).
			AddRow(int64(0), int64(0), int64(0), int64(0), nil))

	stats, err := NewRepository(mock).Stats(context.Background(), orgID)
	require.NoError(t, err)
	require.Zero(t, stats.Employees)
	require.Nil(t, stats.LastSyncedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
