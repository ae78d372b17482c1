package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a synced job definition, unique by slug per organization.
type Job struct {
	ID               uuid.UUID  `json:"id"`
	OrganizationID   uuid.UUID  `json:"organization_id"`
	Slug             string     `json:"slug"`
	Name             string     `json:"name"`
	EffectiveDate    time.Time  `json:"effective_date"`
	IsInactive       bool       `json:"is_inactive"`
	JobFamilyID      *uuid.UUID `json:"job_family_id,omitempty"`
	FlatfileRecordID string     `json:"flatfile_record_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
