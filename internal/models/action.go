package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionType classifies activity log entries.
type ActionType string

const (
	ActionTypeSyncRecords        ActionType = "sync-records"
	ActionTypeSyncEmbedRecords   ActionType = "sync-embed-records"
	ActionTypeSyncDynamicRecords ActionType = "sync-dynamic-records"
	ActionTypeSyncFileFeed       ActionType = "sync-file-feed"
	ActionTypeFileFeedEvent      ActionType = "file-feed-event"
)

// Action metadata keys written by the sync pipeline.
const (
	ActionMetaSeen               = "seen"
	ActionMetaTotalRecords       = "totalRecords"
	ActionMetaSuccessfullySynced = "successfullySynced"
	ActionMetaSnapshotKey        = "snapshotKey"
	ActionMetaTopic              = "topic"
)

// Action is an append-only activity log entry. Only metadata.seen ever changes after insert.
type Action struct {
	ID             uuid.UUID       `json:"id"`
	Type           ActionType      `json:"type"`
	Description    string          `json:"description"`
	Metadata       json.RawMessage `json:"metadata"`
	UserID         uuid.UUID       `json:"user_id"`
	OrganizationID uuid.UUID       `json:"organization_id"`
	CreatedAt      time.Time       `json:"created_at"`
}
