package recordsync

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/FlatFilers/HCMShow-sub000/internal/actions"
	"github.com/FlatFilers/HCMShow-sub000/internal/benefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employeebenefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employees"
	"github.com/FlatFilers/HCMShow-sub000/internal/jobs"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/records"
	"github.com/FlatFilers/HCMShow-sub000/pkg/utils"
)

var errSpaceNotFound = errors.New("space not found")

func rec(id string, values map[string]any) records.Record {
	r := records.Record{ID: id, Values: make(map[string]records.Field, len(values))}
	for k, v := range values {
		r.Values[k] = records.Field{Value: v, Valid: true}
	}
	return r
}

type fakeSource struct {
	sheets map[string][]records.Record
	err    error
}

func (f *fakeSource) RecordsBySheetName(_ context.Context, _ string, name string) ([]records.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sheets[name], nil
}

type fakeSpaces struct {
	spaces map[models.SpaceType]*models.Space
}

func (f *fakeSpaces) GetForUser(_ context.Context, _ uuid.UUID, t models.SpaceType) (*models.Space, error) {
	s, ok := f.spaces[t]
	if !ok {
		return nil, errSpaceNotFound
	}
	return s, nil
}

type fakeJobs struct {
	mu     sync.Mutex
	bySlug map[string]*models.Job
}

func (f *fakeJobs) Upsert(_ context.Context, in jobs.UpsertInput) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.bySlug[in.Slug]
	if !ok {
		j = &models.Job{ID: uuid.New(), OrganizationID: in.OrganizationID, Slug: in.Slug}
		f.bySlug[in.Slug] = j
	}
	j.Name, j.EffectiveDate, j.IsInactive = in.Name, in.EffectiveDate, in.IsInactive
	return j, nil
}

func (f *fakeJobs) has(slug string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.bySlug[slug]
	return ok
}

// fakeEmployees mirrors the repository: keyed by employee id, types ft/pt only.
type fakeEmployees struct {
	mu     sync.Mutex
	jobs   *fakeJobs
	byID   map[string]*models.Employee
	upsert int
}

func (f *fakeEmployees) Upsert(_ context.Context, in employees.UpsertInput) (*models.Employee, error) {
	if in.EmployeeTypeSlug != "ft" && in.EmployeeTypeSlug != "pt" {
		return nil, employees.ErrEmployeeTypeNotFound
	}
	if in.JobSlug != "" && !f.jobs.has(in.JobSlug) {
		return nil, employees.ErrJobNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsert++
	e, ok := f.byID[in.EmployeeID]
	if !ok {
		e = &models.Employee{ID: uuid.New(), OrganizationID: in.OrganizationID, EmployeeID: in.EmployeeID}
		f.byID[in.EmployeeID] = e
	}
	e.FirstName, e.LastName, e.HireDate = in.FirstName, in.LastName, in.HireDate
	e.PositionTitle = in.PositionTitle
	e.DefaultWeeklyHours, e.ScheduledWeeklyHours = in.DefaultWeeklyHours, in.ScheduledWeeklyHours
	return e, nil
}

func (f *fakeEmployees) SetManager(_ context.Context, _ uuid.UUID, employeeID, managerEmployeeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[employeeID]
	m, mok := f.byID[managerEmployeeID]
	if !ok || !mok {
		return false, nil
	}
	id := m.ID
	e.ManagerID = &id
	return true, nil
}

func (f *fakeEmployees) FindByEmployeeID(_ context.Context, _ uuid.UUID, employeeID string) (*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[employeeID]
	if !ok {
		return nil, employees.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployees) get(employeeID string) *models.Employee {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[employeeID]
}

type fakePlans struct {
	mu     sync.Mutex
	bySlug map[string]*models.BenefitPlan
}

func (f *fakePlans) Upsert(_ context.Context, in benefitplans.UpsertInput) (*models.BenefitPlan, error) {
	slug := in.Slug
	if slug == "" {
		slug = utils.Slugify(in.Name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.bySlug[slug]
	if !ok {
		p = &models.BenefitPlan{ID: uuid.New(), OrganizationID: in.OrganizationID, Slug: slug}
		f.bySlug[slug] = p
	}
	p.Name = in.Name
	return p, nil
}

type enrollmentKey struct{ employee, plan uuid.UUID }

type fakeEnrollments struct {
	mu   sync.Mutex
	rows map[enrollmentKey]*models.EmployeeBenefitPlan
}

func (f *fakeEnrollments) CreateOrIgnore(_ context.Context, in employeebenefitplans.CreateInput) (*models.EmployeeBenefitPlan, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := enrollmentKey{in.EmployeeID, in.BenefitPlanID}
	if e, ok := f.rows[k]; ok {
		return e, false, nil
	}
	e := &models.EmployeeBenefitPlan{
		ID:                    uuid.New(),
		EmployeeID:            in.EmployeeID,
		BenefitPlanID:         in.BenefitPlanID,
		CurrentlyEnrolled:     in.CurrentlyEnrolled,
		CoverageBeginDate:     in.CoverageBeginDate,
		EmployeerContribution: in.EmployeerContribution,
		BenefitCoverageType:   in.BenefitCoverageType,
	}
	f.rows[k] = e
	return e, true, nil
}

type fakeActions struct {
	mu      sync.Mutex
	created []actions.CreateParams
}

func (f *fakeActions) Create(_ context.Context, p actions.CreateParams) (*models.Action, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	return &models.Action{ID: uuid.New(), Type: p.Type, Description: p.Description}, nil
}

type fakeArchiver struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeArchiver) PutJSON(_ context.Context, key string, _ any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return nil
}

type harness struct {
	source      *fakeSource
	jobs        *fakeJobs
	employees   *fakeEmployees
	plans       *fakePlans
	enrollments *fakeEnrollments
	actions     *fakeActions
	archiver    *fakeArchiver
	orch        *Orchestrator
	params      Params
}

func newHarness(withArchive bool) *harness {
	h := &harness{
		source:      &fakeSource{sheets: map[string][]records.Record{}},
		jobs:        &fakeJobs{bySlug: map[string]*models.Job{}},
		plans:       &fakePlans{bySlug: map[string]*models.BenefitPlan{}},
		enrollments: &fakeEnrollments{rows: map[enrollmentKey]*models.EmployeeBenefitPlan{}},
		actions:     &fakeActions{},
		params: Params{
			UserID:         uuid.New(),
			OrganizationID: uuid.New(),
			SpaceType:      models.SpaceTypeOnboarding,
		},
	}
	h.employees = &fakeEmployees{jobs: h.jobs, byID: map[string]*models.Employee{}}
	deps := Deps{
		Source: h.source,
		Spaces: &fakeSpaces{spaces: map[models.SpaceType]*models.Space{
			models.SpaceTypeOnboarding: {FlatfileSpaceID: "us_sp_1", Type: models.SpaceTypeOnboarding},
			models.SpaceTypeEmbed:      {FlatfileSpaceID: "us_sp_2", Type: models.SpaceTypeEmbed},
		}},
		Employees:    h.employees,
		Jobs:         h.jobs,
		BenefitPlans: h.plans,
		Enrollments:  h.enrollments,
		Actions:      h.actions,
	}
	if withArchive {
		h.archiver = &fakeArchiver{}
		deps.Archiver = h.archiver
	}
	h.orch = New(deps, 4, nil)
	return h
}
