package recordsync

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/FlatFilers/HCMShow-sub000/internal/benefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employeebenefitplans"
	"github.com/FlatFilers/HCMShow-sub000/internal/employees"
	"github.com/FlatFilers/HCMShow-sub000/internal/jobs"
	"github.com/FlatFilers/HCMShow-sub000/internal/models"
	"github.com/FlatFilers/HCMShow-sub000/internal/records"
)

var (
	jobRequired        = records.JobSchema.RequiredFields()
	employeeRequired   = records.EmployeeSchema.RequiredFields()
	enrollmentRequired = mergeFields(
		records.BenefitPlanSchema.RequiredFields(),
		records.EmployeeBenefitPlanSchema.RequiredFields(),
		records.NewFieldSet(records.FieldEmployeeID),
	)
)

func mergeFields(sets ...records.FieldSet) records.FieldSet {
	out := make(records.FieldSet)
	for _, s := range sets {
		for name := range s {
			out[name] = struct{}{}
		}
	}
	return out
}

func checkValid(r records.Record, required records.FieldSet) error {
	if records.IsRecordValid(r, required) {
		return nil
	}
	return fmt.Errorf("%w: %v", records.ErrInvalidRecord, records.InvalidFields(r, required))
}

func jobInput(orgID uuid.UUID, r records.Record) (jobs.UpsertInput, error) {
	if err := checkValid(r, jobRequired); err != nil {
		return jobs.UpsertInput{}, err
	}
	eff, err := r.Date(records.FieldEffectiveDate)
	if err != nil {
		return jobs.UpsertInput{}, err
	}
	inactive := false
	if r.Has(records.FieldInactive) {
		if inactive, err = r.Bool(records.FieldInactive); err != nil {
			return jobs.UpsertInput{}, err
		}
	}
	return jobs.UpsertInput{
		OrganizationID:   orgID,
		Slug:             r.String(records.FieldJobCode),
		Name:             r.String(records.FieldJobName),
		EffectiveDate:    eff,
		IsInactive:       inactive,
		JobFamilySlug:    r.String(records.FieldJobFamily),
		FlatfileRecordID: r.ID,
	}, nil
}

func employeeInput(orgID uuid.UUID, r records.Record) (employees.UpsertInput, error) {
	if err := checkValid(r, employeeRequired); err != nil {
		return employees.UpsertInput{}, err
	}
	hire, err := r.Date(records.FieldHireDate)
	if err != nil {
		return employees.UpsertInput{}, err
	}
	end, err := r.OptionalDate(records.FieldEndEmploymentDate)
	if err != nil {
		return employees.UpsertInput{}, err
	}
	def, err := r.Float(records.FieldDefaultWeeklyHours)
	if err != nil {
		return employees.UpsertInput{}, err
	}
	sched, err := r.Float(records.FieldScheduledWeeklyHours)
	if err != nil {
		return employees.UpsertInput{}, err
	}
	return employees.UpsertInput{
		OrganizationID:       orgID,
		EmployeeID:           r.String(records.FieldEmployeeID),
		FirstName:            r.String(records.FieldFirstName),
		LastName:             r.String(records.FieldLastName),
		HireDate:             hire,
		EndEmploymentDate:    end,
		PositionTitle:        r.String(records.FieldPositionTitle),
		EmployeeTypeSlug:     r.String(records.FieldEmployeeType),
		JobSlug:              r.String(records.FieldJobCode),
		DefaultWeeklyHours:   def,
		ScheduledWeeklyHours: sched,
		FlatfileRecordID:     r.ID,
		Address:              addressOf(r),
	}, nil
}

// addressOf returns nil when the record carries no address at all.
func addressOf(r records.Record) *models.Address {
	a := &models.Address{
		AddressLine1: r.String(records.FieldAddressLine1),
		AddressLine2: r.String(records.FieldAddressLine2),
		City:         r.String(records.FieldCity),
		State:        r.String(records.FieldState),
		PostalCode:   r.String(records.FieldPostalCode),
		Country:      r.String(records.FieldCountry),
	}
	if *a == (models.Address{}) {
		return nil
	}
	return a
}

func planInput(orgID uuid.UUID, r records.Record) benefitplans.UpsertInput {
	return benefitplans.UpsertInput{
		OrganizationID: orgID,
		Slug:           r.String(records.FieldBenefitPlanSlug),
		Name:           r.String(records.FieldBenefitPlan),
	}
}

func enrollmentInput(employeeID, planID uuid.UUID, r records.Record) (employeebenefitplans.CreateInput, error) {
	enrolled, err := r.Bool(records.FieldCurrentlyEnrolled)
	if err != nil {
		return employeebenefitplans.CreateInput{}, err
	}
	begin, err := r.Date(records.FieldCoverageStartDate)
	if err != nil {
		return employeebenefitplans.CreateInput{}, err
	}
	contribution, err := r.Decimal(records.FieldEmployerContribution)
	if err != nil {
		return employeebenefitplans.CreateInput{}, err
	}
	return employeebenefitplans.CreateInput{
		EmployeeID:            employeeID,
		BenefitPlanID:         planID,
		CurrentlyEnrolled:     enrolled,
		CoverageBeginDate:     begin,
		EmployeerContribution: contribution,
		BenefitCoverageType:   r.String(records.FieldBenefitCoverageType),
		FlatfileRecordID:      r.ID,
	}, nil
}
