package kyc

import (
	"math"

	"kycflow-go/models"
)

// advanceCurrentStep moves the current step pointer after a verification.
// The pointer only advances when the step just verified is the current one,
// and never past the last catalog step. Verifying out of order leaves the
// pointer untouched, matching the adjudication flow this service replaces.
func advanceCurrentStep(record *models.VerificationRecord, verifiedStep int) {
	if record.CurrentStep == verifiedStep && record.CurrentStep < StepCount() {
		record.CurrentStep++
	}
}

// recomputeCompletion derives the aggregate KYC flag: true iff every step is
// verified.
func recomputeCompletion(record *models.VerificationRecord) {
	for i := range record.Steps {
		if record.Steps[i].Status != models.StepStatusVerified {
			record.KYCCompleted = false
			return
		}
	}
	record.KYCCompleted = true
}

// CompletionPercent returns the rounded share of verified steps.
func CompletionPercent(record *models.VerificationRecord) int {
	if len(record.Steps) == 0 {
		return 0
	}
	verified := 0
	for i := range record.Steps {
		if record.Steps[i].Status == models.StepStatusVerified {
			verified++
		}
	}
	return int(math.Round(100 * float64(verified) / float64(len(record.Steps))))
}
