// Package recordsync pulls sheets from a Flatfile space and upserts them into the local store.
package recordsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FlatFilers/HCMShow-sub000/internal/actions"
	"github.com/FlatFilers/HCMShow-sub000/internal/benefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employeebenefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employees"
	"github.com/FlatFilers/HCMShow-sub000/internal/jobs"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/records"
	"github.com/FlatFilers/HCMShow-sub000/pkg/metrics"
	"github.com/FlatFilers/HCMShow-sub000/pkg/storage"
)

// Sheet names inside a space's workbook.
const (
	SheetJobs             = "Jobs"
	SheetEmployees        = "Employees"
	SheetBenefitElections = "Benefit Elections"
)

// NoRecordsMessage is returned, and logged as an action for benefit syncs, when a space has nothing to sync.
const NoRecordsMessage = "No Records Found. Did you upload the sample data in Flatfile?"

const (
	entityJob        = "job"
	entityEmployee   = "employee"
	entityManager    = "manager"
	entityEnrollment = "employee_benefit_plan"
)

// RecordSource reads the records of a named sheet. A missing sheet yields no records and no error.
type RecordSource interface {
	RecordsBySheetName(ctx context.Context, spaceID, name string) ([]records.Record, error)
}

// SpaceStore resolves the caller's space of a given type.
type SpaceStore interface {
	GetForUser(ctx context.Context, userID uuid.UUID, t models.SpaceType) (*models.Space, error)
}

type EmployeeStore interface {
	Upsert(ctx context.Context, in employees.UpsertInput) (*models.Employee, error)
	SetManager(ctx context.Context, orgID uuid.UUID, employeeID, managerEmployeeID string) (bool, error)
	FindByEmployeeID(ctx context.Context, orgID uuid.UUID, employeeID string) (*models.Employee, error)
}

type JobStore interface {
	Upsert(ctx context.Context, in jobs.UpsertInput) (*models.Job, error)
}

type BenefitPlanStore interface {
	Upsert(ctx context.Context, in benefitplans.UpsertInput) (*models.BenefitPlan, error)
}

type EnrollmentStore interface {
	CreateOrIgnore(ctx context.Context, in employeebenefitplans.CreateInput) (*models.EmployeeBenefitPlan, bool, error)
}

type ActionWriter interface {
	Create(ctx context.Context, p actions.CreateParams) (*models.Action, error)
}

// Archiver stores the raw records of a run. Optional.
type Archiver interface {
	PutJSON(ctx context.Context, key string, v any) error
}

// Deps wires the orchestrator to its collaborators. Archiver may be nil.
type Deps struct {
	Source       RecordSource
	Spaces       SpaceStore
	Employees    EmployeeStore
	Jobs         JobStore
	BenefitPlans BenefitPlanStore
	Enrollments  EnrollmentStore
	Actions      ActionWriter
	Archiver     Archiver
}

// Params identifies who a sync runs for and which of their spaces it reads.
type Params struct {
	UserID         uuid.UUID        `json:"user_id"`
	OrganizationID uuid.UUID        `json:"organization_id"`
	SpaceType      models.SpaceType `json:"space_type"`
}

// WorkbookResult is the user-facing outcome of SyncWorkbookRecords.
type WorkbookResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BenefitResult lists the Flatfile record ids that were synced, in sheet order.
type BenefitResult struct {
	SyncedFlatfileRecordIDs []string `json:"synced_flatfile_record_ids"`
}

// Orchestrator runs sync batches. Safe for concurrent use.
type Orchestrator struct {
	deps        Deps
	concurrency int
	logger      *zap.Logger
	now         func() time.Time
}

// New creates an Orchestrator. concurrency bounds in-flight upserts per batch.
func New(deps Deps, concurrency int, logger *zap.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{deps: deps, concurrency: concurrency, logger: logger, now: time.Now}
}

// ActionTypeFor maps a space type to the action type its syncs are logged under.
func ActionTypeFor(t models.SpaceType) models.ActionType {
	switch t {
	case models.SpaceTypeEmbed:
		return models.ActionTypeSyncEmbedRecords
	case models.SpaceTypeDynamic:
		return models.ActionTypeSyncDynamicRecords
	case models.SpaceTypeFileFeed:
		return models.ActionTypeSyncFileFeed
	default:
		return models.ActionTypeSyncRecords
	}
}

func syncedMessage(synced, total int) string {
	return fmt.Sprintf("Synced %d of %d records", synced, total)
}

// SyncWorkbookRecords syncs the Jobs then the Employees sheet of the caller's space and logs one action.
// Employees are written in two passes: every row without its manager link, then the links.
func (o *Orchestrator) SyncWorkbookRecords(ctx context.Context, p Params) (WorkbookResult, error) {
	start := o.now()
	defer func() { metrics.RunDuration.WithLabelValues("workbook").Observe(time.Since(start).Seconds()) }()

	space, err := o.deps.Spaces.GetForUser(ctx, p.UserID, p.SpaceType)
	if err != nil {
		return WorkbookResult{}, fmt.Errorf("load %s space: %w", p.SpaceType, err)
	}
	jobRecs, err := o.deps.Source.RecordsBySheetName(ctx, space.FlatfileSpaceID, SheetJobs)
	if err != nil {
		return WorkbookResult{}, fmt.Errorf("fetch %s records: %w", SheetJobs, err)
	}
	empRecs, err := o.deps.Source.RecordsBySheetName(ctx, space.FlatfileSpaceID, SheetEmployees)
	if err != nil {
		return WorkbookResult{}, fmt.Errorf("fetch %s records: %w", SheetEmployees, err)
	}

	total := len(jobRecs) + len(empRecs)
	if total == 0 {
		o.logger.Info("workbook sync found no records", zap.String("space_id", space.FlatfileSpaceID))
		return WorkbookResult{Success: false, Message: NoRecordsMessage}, nil
	}
	snapshotKey := o.archive(ctx, p.OrganizationID, "workbook", map[string][]records.Record{
		SheetJobs:      jobRecs,
		SheetEmployees: empRecs,
	})

	synced := o.fanOut(ctx, entityJob, jobRecs, func(ctx context.Context, _ int, r records.Record) error {
		in, err := jobInput(p.OrganizationID, r)
		if err != nil {
			return err
		}
		_, err = o.deps.Jobs.Upsert(ctx, in)
		return err
	})

	upserted := make([]bool, len(empRecs))
	synced += o.fanOut(ctx, entityEmployee, empRecs, func(ctx context.Context, i int, r records.Record) error {
		in, err := employeeInput(p.OrganizationID, r)
		if err != nil {
			return err
		}
		if _, err := o.deps.Employees.Upsert(ctx, in); err != nil {
			return err
		}
		upserted[i] = true
		return nil
	})
	o.linkManagers(ctx, p.OrganizationID, empRecs, upserted)

	msg := syncedMessage(synced, total)
	o.logger.Info("workbook sync finished",
		zap.String("organization_id", p.OrganizationID.String()),
		zap.String("space_type", string(p.SpaceType)),
		zap.Int("total", total),
		zap.Int("synced", synced),
	)
	if err := o.writeAction(ctx, p, msg, total, synced, snapshotKey); err != nil {
		return WorkbookResult{}, err
	}
	return WorkbookResult{Success: true, Message: msg}, nil
}

// linkManagers attaches manager links for every upserted employee that names one.
// A manager that matches no employee is logged and left null.
func (o *Orchestrator) linkManagers(ctx context.Context, orgID uuid.UUID, recs []records.Record, upserted []bool) {
	var pending []records.Record
	for i, r := range recs {
		if upserted[i] && r.Has(records.FieldManagerID) {
			pending = append(pending, r)
		}
	}
	o.fanOut(ctx, entityManager, pending, func(ctx context.Context, _ int, r records.Record) error {
		employeeID := r.String(records.FieldEmployeeID)
		managerID := r.String(records.FieldManagerID)
		linked := false
		if managerID != employeeID {
			var err error
			if linked, err = o.deps.Employees.SetManager(ctx, orgID, employeeID, managerID); err != nil {
				return err
			}
		}
		if !linked {
			metrics.ManagersUnresolved.Inc()
			o.logger.Warn("manager not resolved",
				zap.String("record_id", r.ID),
				zap.String("employee_id", employeeID),
				zap.String("manager_id", managerID),
			)
		}
		return nil
	})
}

// SyncBenefitPlanRecords syncs the Benefit Elections sheet. Every call logs an action, including empty runs.
// Enrollments are create-or-ignore: an existing (employee, plan) row is never overwritten.
func (o *Orchestrator) SyncBenefitPlanRecords(ctx context.Context, p Params) (BenefitResult, error) {
	start := o.now()
	defer func() { metrics.RunDuration.WithLabelValues("benefits").Observe(time.Since(start).Seconds()) }()

	space, err := o.deps.Spaces.GetForUser(ctx, p.UserID, p.SpaceType)
	if err != nil {
		return BenefitResult{}, fmt.Errorf("load %s space: %w", p.SpaceType, err)
	}
	recs, err := o.deps.Source.RecordsBySheetName(ctx, space.FlatfileSpaceID, SheetBenefitElections)
	if err != nil {
		return BenefitResult{}, fmt.Errorf("fetch %s records: %w", SheetBenefitElections, err)
	}
	if len(recs) == 0 {
		o.logger.Info("benefit sync found no records", zap.String("space_id", space.FlatfileSpaceID))
		if err := o.writeAction(ctx, p, NoRecordsMessage, 0, 0, ""); err != nil {
			return BenefitResult{}, err
		}
		return BenefitResult{SyncedFlatfileRecordIDs: []string{}}, nil
	}
	snapshotKey := o.archive(ctx, p.OrganizationID, "benefits", map[string][]records.Record{SheetBenefitElections: recs})

	ids := make([]string, len(recs))
	synced := o.fanOut(ctx, entityEnrollment, recs, func(ctx context.Context, i int, r records.Record) error {
		if err := o.syncEnrollment(ctx, p.OrganizationID, r); err != nil {
			return err
		}
		ids[i] = r.ID
		return nil
	})

	out := make([]string, 0, synced)
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	msg := syncedMessage(synced, len(recs))
	o.logger.Info("benefit sync finished",
		zap.String("organization_id", p.OrganizationID.String()),
		zap.Int("total", len(recs)),
		zap.Int("synced", synced),
	)
	if err := o.writeAction(ctx, p, msg, len(recs), synced, snapshotKey); err != nil {
		return BenefitResult{}, err
	}
	return BenefitResult{SyncedFlatfileRecordIDs: out}, nil
}

func (o *Orchestrator) syncEnrollment(ctx context.Context, orgID uuid.UUID, r records.Record) error {
	if err := checkValid(r, enrollmentRequired); err != nil {
		return err
	}
	emp, err := o.deps.Employees.FindByEmployeeID(ctx, orgID, r.String(records.FieldEmployeeID))
	if err != nil {
		return fmt.Errorf("find employee: %w", err)
	}
	plan, err := o.deps.BenefitPlans.Upsert(ctx, planInput(orgID, r))
	if err != nil {
		return err
	}
	in, err := enrollmentInput(emp.ID, plan.ID, r)
	if err != nil {
		return err
	}
	_, _, err = o.deps.Enrollments.CreateOrIgnore(ctx, in)
	return err
}

// fanOut runs fn for every record with at most o.concurrency in flight and returns the success count.
// Failures are logged and counted; they never stop the batch.
func (o *Orchestrator) fanOut(ctx context.Context, entity string, recs []records.Record, fn func(context.Context, int, records.Record) error) int {
	var synced atomic.Int64
	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, r := range recs {
		g.Go(func() error {
			if err := fn(ctx, i, r); err != nil {
				outcome := metrics.OutcomeFailed
				if errors.Is(err, records.ErrInvalidRecord) {
					outcome = metrics.OutcomeInvalid
				}
				metrics.RecordsProcessed.WithLabelValues(entity, outcome).Inc()
				o.logger.Warn("record not synced",
					zap.String("entity", entity),
					zap.String("record_id", r.ID),
					zap.Error(err),
				)
				return nil
			}
			metrics.RecordsProcessed.WithLabelValues(entity, metrics.OutcomeSynced).Inc()
			synced.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(synced.Load())
}

// archive stores the fetched records and returns the object key, or "" when archiving is off or failed.
func (o *Orchestrator) archive(ctx context.Context, orgID uuid.UUID, kind string, v any) string {
	if o.deps.Archiver == nil {
		return ""
	}
	key := storage.SnapshotKey(orgID, kind, o.now(), uuid.New())
	if err := o.deps.Archiver.PutJSON(ctx, key, v); err != nil {
		o.logger.Warn("snapshot upload failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return key
}

func (o *Orchestrator) writeAction(ctx context.Context, p Params, description string, total, synced int, snapshotKey string) error {
	meta := map[string]any{
		models.ActionMetaTotalRecords:       total,
		models.ActionMetaSuccessfullySynced: synced,
	}
	if snapshotKey != "" {
		meta[models.ActionMetaSnapshotKey] = snapshotKey
	}
	_, err := o.deps.Actions.Create(ctx, actions.CreateParams{
		UserID:         p.UserID,
		OrganizationID: p.OrganizationID,
		Type:           ActionTypeFor(p.SpaceType),
		Description:    description,
		Metadata:       meta,
	})
	if err != nil {
		o.logger.Error("write sync action", zap.String("organization_id", p.OrganizationID.String()), zap.Error(err))
		return fmt.Errorf("write action: %w", err)
	}
	return nil
}
