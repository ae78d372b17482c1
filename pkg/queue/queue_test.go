package queue

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewSyncJob_PayloadRoundTrip(t *testing.T) {
	in := SyncPayload{UserID: uuid.New(), OrganizationID: uuid.New(), SpaceType: "file-feed", Topic: "records:updated"}

	job, err := NewSyncJob(JobTypeSyncWorkbook, in)
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)

	raw, err := json.Marshal(job)
	require.NoError(t, err)
	var decoded Job
	require.NoError(t, json.Unmarshal(raw, &decoded))

	out, err := decoded.SyncPayload()
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, JobTypeSyncWorkbook, decoded.Type)
}

func TestJob_SyncPayloadRejectsGarbage(t *testing.T) {
	job := &Job{Payload: json.RawMessage(`"nope"`)}
	_, err := job.SyncPayload()
	require.Error(t, err)
}
