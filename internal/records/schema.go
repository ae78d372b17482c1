package records

// Column maps a non-nullable column of a destination table to the sheet field that fills it.
type Column struct {
	Name  string
	Field string
}

// Schema declares, per destination table, which sheet fields must be present and valid.
// Required holds every NOT NULL column without a default that is neither a key, a timestamp nor a
// foreign key. Derived columns are computed from other fields and need no sheet field of their own.
type Schema struct {
	Table    string
	Required []Column
	Derived  []string
}

// RequiredFields returns the sheet fields a record must carry for this table.
func (s Schema) RequiredFields() FieldSet {
	set := make(FieldSet, len(s.Required))
	for _, c := range s.Required {
		set[c.Field] = struct{}{}
	}
	return set
}

// Sheet field names.
const (
	FieldEmployeeID           = "employeeId"
	FieldManagerID            = "managerId"
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldHireDate             = "hireDate"
	FieldEndEmploymentDate    = "endEmploymentDate"
	FieldPositionTitle        = "positionTitle"
	FieldEmployeeType         = "employeeType"
	FieldJobCode              = "jobCode"
	FieldDefaultWeeklyHours   = "defaultWeeklyHours"
	FieldScheduledWeeklyHours = "scheduledWeeklyHours"
	FieldAddressLine1         = "addressLine1"
	FieldAddressLine2         = "addressLine2"
	FieldCity                 = "city"
	FieldState                = "state"
	FieldPostalCode           = "postalCode"
	FieldCountry              = "country"

	FieldJobName       = "jobName"
	FieldJobFamily     = "jobDept"
	FieldEffectiveDate = "effectiveDate"
	FieldInactive      = "inactive"

	FieldBenefitPlan          = "benefitPlan"
	FieldBenefitPlanSlug      = "benefitPlanSlug"
	FieldCurrentlyEnrolled    = "currentlyEnrolled"
	FieldCoverageStartDate    = "coverageStartDate"
	FieldEmployerContribution = "employerContribution"
	FieldBenefitCoverageType  = "benefitCoverageType"
)

var (
	EmployeeSchema = Schema{
		Table: "employees",
		Required: []Column{
			{Name: "employee_id", Field: FieldEmployeeID},
			{Name: "first_name", Field: FieldFirstName},
			{Name: "last_name", Field: FieldLastName},
			{Name: "hire_date", Field: FieldHireDate},
			{Name: "position_title", Field: FieldPositionTitle},
			{Name: "default_weekly_hours", Field: FieldDefaultWeeklyHours},
			{Name: "scheduled_weekly_hours", Field: FieldScheduledWeeklyHours},
		},
	}

	JobSchema = Schema{
		Table: "jobs",
		Required: []Column{
			{Name: "slug", Field: FieldJobCode},
			{Name: "name", Field: FieldJobName},
			{Name: "effective_date", Field: FieldEffectiveDate},
		},
	}

	BenefitPlanSchema = Schema{
		Table: "benefit_plans",
		Required: []Column{
			{Name: "name", Field: FieldBenefitPlan},
		},
		Derived: []string{"slug"},
	}

	EmployeeBenefitPlanSchema = Schema{
		Table: "employee_benefit_plans",
		Required: []Column{
			{Name: "currently_enrolled", Field: FieldCurrentlyEnrolled},
			{Name: "coverage_begin_date", Field: FieldCoverageStartDate},
			{Name: "employeer_contribution", Field: FieldEmployerContribution},
			{Name: "benefit_coverage_type", Field: FieldBenefitCoverageType},
		},
	}
)

// Schemas lists every declared schema, for drift checks.
var Schemas = []Schema{EmployeeSchema, JobSchema, BenefitPlanSchema, EmployeeBenefitPlanSchema}
