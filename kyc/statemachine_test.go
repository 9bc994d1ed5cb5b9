package kyc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycflow-go/models"
)

func TestSubmitMarksStepSubmitted(t *testing.T) {
	record := NewRecord(1)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, Submit(record, 3, []byte(`{"pan":"ABCDE1234F"}`), now))

	step := record.Steps[2]
	assert.Equal(t, models.StepStatusSubmitted, step.Status)
	assert.Equal(t, `{"pan":"ABCDE1234F"}`, step.Data)
	require.NotNil(t, step.SubmissionDate)
	assert.Equal(t, now, *step.SubmissionDate)
}

func TestSubmitOverwritesPreviousSubmission(t *testing.T) {
	record := NewRecord(1)
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, Submit(record, 3, []byte(`{"v":"a"}`), first))
	require.NoError(t, Submit(record, 3, []byte(`{"v":"b"}`), second))

	step := record.Steps[2]
	assert.Equal(t, models.StepStatusSubmitted, step.Status)
	assert.Equal(t, `{"v":"b"}`, step.Data)
	assert.Equal(t, second, *step.SubmissionDate)
}

func TestSubmitClearsRejectionReason(t *testing.T) {
	record := NewRecord(1)
	now := time.Now()

	require.NoError(t, Submit(record, 2, []byte(`{}`), now))
	require.NoError(t, Adjudicate(record, 2, DecisionRejected, "invalid PAN", nil, now))
	require.Equal(t, models.StepStatusRejected, record.Steps[1].Status)

	require.NoError(t, Submit(record, 2, []byte(`{"v":"fixed"}`), now))

	step := record.Steps[1]
	assert.Equal(t, models.StepStatusSubmitted, step.Status)
	assert.Empty(t, step.RejectionReason)
}

func TestSubmitUnknownStep(t *testing.T) {
	record := NewRecord(1)

	assert.ErrorIs(t, Submit(record, 42, []byte(`{}`), time.Now()), ErrStepNotFound)
	assert.ErrorIs(t, Submit(record, 0, []byte(`{}`), time.Now()), ErrStepNotFound)
	assert.ErrorIs(t, Submit(record, -1, []byte(`{}`), time.Now()), ErrStepNotFound)
}

func TestSubmitVerifiedStepFails(t *testing.T) {
	record := NewRecord(1)
	now := time.Now()

	require.NoError(t, Submit(record, 1, []byte(`{}`), now))
	require.NoError(t, Adjudicate(record, 1, DecisionVerified, "", nil, now))

	err := Submit(record, 1, []byte(`{"again":true}`), now)
	assert.ErrorIs(t, err, ErrStepAlreadyVerified)
	assert.Equal(t, models.StepStatusVerified, record.Steps[0].Status)
}

func TestAdjudicateVerify(t *testing.T) {
	record := NewRecord(1)
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	reviewer := uint(7)

	require.NoError(t, Submit(record, 1, []byte(`{}`), now))
	require.NoError(t, Adjudicate(record, 1, DecisionVerified, "", &reviewer, now))

	step := record.Steps[0]
	assert.Equal(t, models.StepStatusVerified, step.Status)
	require.NotNil(t, step.VerificationDate)
	assert.Equal(t, now, *step.VerificationDate)
	require.NotNil(t, step.VerifiedBy)
	assert.Equal(t, reviewer, *step.VerifiedBy)
	assert.Empty(t, step.RejectionReason)
}

func TestAdjudicateReject(t *testing.T) {
	record := NewRecord(1)
	now := time.Now()

	require.NoError(t, Submit(record, 1, []byte(`{}`), now))
	require.NoError(t, Adjudicate(record, 1, DecisionRejected, "invalid PAN", nil, now))

	step := record.Steps[0]
	assert.Equal(t, models.StepStatusRejected, step.Status)
	assert.Equal(t, "invalid PAN", step.RejectionReason)
	assert.Equal(t, 1, record.CurrentStep)
	assert.False(t, record.KYCCompleted)
}

func TestAdjudicateRejectWithEmptyReason(t *testing.T) {
	record := NewRecord(1)

	require.NoError(t, Adjudicate(record, 4, DecisionRejected, "", nil, time.Now()))
	assert.Equal(t, models.StepStatusRejected, record.Steps[3].Status)
	assert.Empty(t, record.Steps[3].RejectionReason)
}

func TestAdjudicateInvalidDecision(t *testing.T) {
	record := NewRecord(1)

	err := Adjudicate(record, 1, "approved", "", nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDecision)
	// No partial effects
	assert.Equal(t, models.StepStatusPending, record.Steps[0].Status)
}

func TestAdjudicateUnknownStep(t *testing.T) {
	record := NewRecord(1)

	assert.ErrorIs(t, Adjudicate(record, 0, DecisionVerified, "", nil, time.Now()), ErrStepNotFound)
	assert.ErrorIs(t, Adjudicate(record, 10, DecisionVerified, "", nil, time.Now()), ErrStepNotFound)
}

func TestAdjudicateVerifiedStepFails(t *testing.T) {
	record := NewRecord(1)
	now := time.Now()

	require.NoError(t, Adjudicate(record, 1, DecisionVerified, "", nil, now))

	err := Adjudicate(record, 1, DecisionRejected, "second thoughts", nil, now)
	assert.ErrorIs(t, err, ErrStepAlreadyVerified)
	assert.Equal(t, models.StepStatusVerified, record.Steps[0].Status)
}
