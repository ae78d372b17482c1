package employees

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

var employeeCols = []string{"id", "organization_id", "employee_id", "first_name", "last_name", "hire_date", "end_employment_date",
	"position_title", "employee_type_id", "job_id", "manager_id", "default_weekly_hours", "scheduled_weekly_hours",
	"flatfile_record_id", "created_at", "updated_at"}

func TestRepository_Upsert_CreatesWithAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	orgID, typeID, empID, addrID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	hire := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM employee_types WHERE slug = $1`)).
		WithArgs("ft").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(typeID))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO employees`)).
		WithArgs(orgID, "E1", "Ada", "Lovelace", hire, pgxmock.AnyArg(), "Engineer", typeID, pgxmock.AnyArg(), 40.0, 40.0, "us_rc_1").
		WillReturnRows(pgxmock.NewRows(employeeCols).
			AddRow(empID, orgID, "E1", "Ada", "Lovelace", hire, nil, "Engineer", typeID, nil, nil, 40.0, 40.0, "us_rc_1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO addresses`)).
		WithArgs("1 Main St", "", "Denver", "CO", "80202", "US").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(addrID))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO employee_addresses`)).
		WithArgs(empID, addrID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	emp, err := repo.Upsert(context.Background(), UpsertInput{
		OrganizationID:       orgID,
		EmployeeID:           "E1",
		FirstName:            "Ada",
		LastName:             "Lovelace",
		HireDate:             hire,
		PositionTitle:        "Engineer",
		EmployeeTypeSlug:     "ft",
		DefaultWeeklyHours:   40,
		ScheduledWeeklyHours: 40,
		FlatfileRecordID:     "us_rc_1",
		Address:              &models.Address{AddressLine1: "1 Main St", City: "Denver", State: "CO", PostalCode: "80202", Country: "US"},
	})
	require.NoError(t, err)
	require.Equal(t, empID, emp.ID)
	require.Nil(t, emp.ManagerID)
	require.True(t, emp.HireDate.Equal(hire))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_UnknownEmployeeType(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM employee_types`)).
		WithArgs("xx").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = NewRepository(mock).Upsert(context.Background(), UpsertInput{OrganizationID: uuid.New(), EmployeeID: "E1", EmployeeTypeSlug: "xx"})
	require.ErrorIs(t, err, ErrEmployeeTypeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Upsert_UnknownJob(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	orgID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM employee_types`)).
		WithArgs("ft").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM jobs`)).
		WithArgs(orgID, "ENG-1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err = NewRepository(mock).Upsert(context.Background(), UpsertInput{OrganizationID: orgID, EmployeeID: "E1", EmployeeTypeSlug: "ft", JobSlug: "ENG-1"})
	require.ErrorIs(t, err, ErrJobNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetManager(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	orgID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employees e SET manager_id = m.id`)).
		WithArgs(orgID, "E2", "E1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE employees e SET manager_id = m.id`)).
		WithArgs(orgID, "E3", "GHOST").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewRepository(mock)
	linked, err := repo.SetManager(context.Background(), orgID, "E2", "E1")
	require.NoError(t, err)
	require.True(t, linked)

	linked, err = repo.SetManager(context.Background(), orgID, "E3", "GHOST")
	require.NoError(t, err)
	require.False(t, linked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmployeeID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	orgID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM employees WHERE organization_id = $1 AND employee_id = $2`)).
		WithArgs(orgID, "E9").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewRepository(mock).FindByEmployeeID(context.Background(), orgID, "E9")
	require.ErrorIs(t, err, ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
