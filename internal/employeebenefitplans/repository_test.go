package employeebenefitplans

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var enrollmentCols = []string{"id", "employee_id", "benefit_plan_id", "currently_enrolled", "coverage_begin_date",
	"employeer_contribution", "benefit_coverage_type", "flatfile_record_id", "created_at", "updated_at"}

func newInput() CreateInput {
	return CreateInput{
		EmployeeID:            uuid.New(),
		BenefitPlanID:         uuid.New(),
		CurrentlyEnrolled:     true,
		CoverageBeginDate:     time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EmployeerContribution: decimal.RequireFromString("150.50"),
		BenefitCoverageType:   "Medical",
		FlatfileRecordID:      "us_rc_1",
	}
}

func TestRepository_CreateOrIgnore_Creates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	in := newInput()
	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT (employee_id, benefit_plan_id) DO NOTHING`)).
		WithArgs(in.EmployeeID, in.BenefitPlanID, true, in.CoverageBeginDate, in.EmployeerContribution, "Medical", "us_rc_1").
		WillReturnRows(pgxmock.NewRows(enrollmentCols).
			AddRow(id, in.EmployeeID, in.BenefitPlanID, true, in.CoverageBeginDate, in.EmployeerContribution, "Medical", "us_rc_1", now, now))

	e, created, err := NewRepository(mock).CreateOrIgnore(context.Background(), in)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, id, e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateOrIgnore_KeepsExisting(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	in := newInput()
	in.CurrentlyEnrolled = false
	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO employee_benefit_plans`)).
		WithArgs(in.EmployeeID, in.BenefitPlanID, false, in.CoverageBeginDate, in.EmployeerContribution, "Medical", "us_rc_1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM employee_benefit_plans WHERE employee_id = $1 AND benefit_plan_id = $2`)).
		WithArgs(in.EmployeeID, in.BenefitPlanID).
		WillReturnRows(pgxmock.NewRows(enrollmentCols).
			AddRow(id, in.EmployeeID, in.BenefitPlanID, true, in.CoverageBeginDate, in.EmployeerContribution, "Medical", "us_rc_0", now, now))

	e, created, err := NewRepository(mock).CreateOrIgnore(context.Background(), in)
	require.NoError(t, err)
	require.False(t, created)
	require.True(t, e.CurrentlyEnrolled)
	require.NoError(t, mock.ExpectationsWereMet())
}
