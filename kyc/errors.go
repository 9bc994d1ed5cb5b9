package kyc

import "errors"

var (
	// ErrRecordNotFound means no verification record exists for the account.
	ErrRecordNotFound = errors.New("verification record not found")

	// ErrStepNotFound means the referenced step number is outside the catalog.
	ErrStepNotFound = errors.New("verification step not found")

	// ErrInvalidDecision means an adjudication decision was neither
	// "verified" nor "rejected".
	ErrInvalidDecision = errors.New("invalid adjudication decision")

	// ErrStepAlreadyVerified means the step is in its terminal state and
	// accepts no further transitions.
	ErrStepAlreadyVerified = errors.New("step already verified")

	// ErrRepositoryUnavailable wraps transient persistence failures. Callers
	// may retry; this package does not.
	ErrRepositoryUnavailable = errors.New("verification repository unavailable")
)
