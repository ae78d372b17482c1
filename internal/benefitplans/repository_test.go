package benefitplans

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestRepository_Upsert_DerivesSlugFromName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	orgID, planID := uuid.New(), uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO benefit_plans`)).
		WithArgs(orgID, "gold-medical-ppo", "Gold Medical (PPO)").
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "slug", "name", "created_at", "updated_at"}).
			AddRow(planID, orgID, "gold-medical-ppo", "Gold Medical (PPO)", now, now))

	p, err := NewRepository(mock).Upsert(context.Background(), UpsertInput{OrganizationID: orgID, Name: "Gold Medical (PPO)"})
	require.NoError(t, err)
	require.Equal(t, "gold-medical-ppo", p.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_EmptySlug(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewRepository(mock).Upsert(context.Background(), UpsertInput{OrganizationID: uuid.New(), Name: "!!!"})
	require.ErrorIs(t, err, ErrEmptySlug)
}
