package spaces

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/FlatFilers/HCMShow-sub000/internal/models"
)

var spaceCols = []string{"id", "flatfile_space_id", "user_id", "organization_id", "type", "guest_link", "created_at", "updated_at"}

func TestRepository_GetByFlatfileID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id, userID, orgID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE flatfile_space_id = $1`)).
		WithArgs("us_sp_1").
		WillReturnRows(pgxmock.NewRows(spaceCols).AddRow(id, "us_sp_1", userID, orgID, "file-feed", "", now, now))

	s, err := NewRepository(mock).GetByFlatfileID(context.Background(), "us_sp_1")
	require.NoError(t, err)
	require.Equal(t, models.SpaceTypeFileFeed, s.Type)
	require.Equal(t, orgID, s.OrganizationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetForUser_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND type = $2`)).
		WithArgs(userID, "embed").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).GetForUser(context.Background(), userID, models.SpaceTypeEmbed)
	require.ErrorIs(t, err, ErrSpaceNotFound)
}
