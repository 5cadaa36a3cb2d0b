package worker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDLQEntry_CarriesFailureContext(t *testing.T) {
	payload, err := json.Marshal(EmailJobPayload{
		Kind: EmailKindVerification, To: "owner@example.com", Token: "tok-1",
	})
	require.NoError(t, err)

	entry := newDLQEntry(QueueEmail, EmailKindVerification, payload, "smtp: connection refused", 1)

	assert.Equal(t, QueueEmail, entry.Queue)
	assert.Equal(t, EmailKindVerification, entry.Kind)
	assert.Equal(t, "smtp: connection refused", entry.Cause)
	assert.Equal(t, 1, entry.Attempts)
	assert.WithinDuration(t, time.Now().UTC(), entry.FailedAt, time.Second)

	// The original payload survives the park/replay round trip intact.
	data, err := json.Marshal(entry)
	require.NoError(t, err)
	var back DLQEntry
	require.NoError(t, json.Unmarshal(data, &back))
	var original EmailJobPayload
	require.NoError(t, json.Unmarshal(back.Payload, &original))
	assert.Equal(t, "owner@example.com", original.To)
	assert.Equal(t, "tok-1", original.Token)
}
