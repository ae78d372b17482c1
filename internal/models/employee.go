package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a synced employee. EmployeeID is the business identifier, unique per organization.
type Employee struct {
	ID                   uuid.UUID  `json:"id"`
	OrganizationID       uuid.UUID  `json:"organization_id"`
	EmployeeID           string     `json:"employee_id"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	HireDate             time.Time  `json:"hire_date"`
	EndEmploymentDate    *time.Time `json:"end_employment_date,omitempty"`
	PositionTitle        string     `json:"position_title"`
	EmployeeTypeID       uuid.UUID  `json:"employee_type_id"`
	JobID                *uuid.UUID `json:"job_id,omitempty"`
	ManagerID            *uuid.UUID `json:"manager_id,omitempty"`
	DefaultWeeklyHours   float64    `json:"default_weekly_hours"`
	ScheduledWeeklyHours float64    `json:"scheduled_weekly_hours"`
	FlatfileRecordID     string     `json:"flatfile_record_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Address is a shared postal address; employees connect to it through employee_addresses.
type Address struct {
	ID           uuid.UUID `json:"id"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 string    `json:"address_line_2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
}
