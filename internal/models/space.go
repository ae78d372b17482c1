package models

import (
	"time"

	"github.com/google/uuid"
)

// SpaceType selects which workflow a Flatfile space belongs to.
type SpaceType string

const (
	SpaceTypeOnboarding SpaceType = "onboarding"
	SpaceTypeFileFeed   SpaceType = "file-feed"
	SpaceTypeEmbed      SpaceType = "embed"
	SpaceTypeDynamic    SpaceType = "dynamic"
)

// Valid reports whether t is a known space type.
func (t SpaceType) Valid() bool {
	switch t {
	case SpaceTypeOnboarding, SpaceTypeFileFeed, SpaceTypeEmbed, SpaceTypeDynamic:
		return true
	}
	return false
}

// Space links an external Flatfile space to the user and organization that own it.
type Space struct {
	ID              uuid.UUID `json:"id"`
	FlatfileSpaceID string    `json:"flatfile_space_id"`
	UserID          uuid.UUID `json:"user_id"`
	OrganizationID  uuid.UUID `json:"organization_id"`
	Type            SpaceType `json:"type"`
	GuestLink       string    `json:"guest_link,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
