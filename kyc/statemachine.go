package kyc

import (
	"time"

	"kycflow-go/models"
)

// Adjudication decisions accepted by Adjudicate.
const (
	DecisionVerified = "verified"
	DecisionRejected = "rejected"
)

// findStep locates a step by number with an explicit scan over the record's
// step array. All transitions go through this lookup so an out-of-range step
// number fails before anything is mutated.
func findStep(record *models.VerificationRecord, stepNumber int) (*models.VerificationStep, error) {
	for i := range record.Steps {
		if record.Steps[i].StepNumber == stepNumber {
			return &record.Steps[i], nil
		}
	}
	return nil, ErrStepNotFound
}

// Submit applies the account holder's submission to a step: the payload is
// stored, the status moves to submitted and any previous rejection reason is
// cleared. Submission is allowed from pending, submitted and rejected alike;
// resubmitting overwrites the payload and refreshes the submission date. A
// verified step is terminal and cannot be resubmitted.
func Submit(record *models.VerificationRecord, stepNumber int, data []byte, now time.Time) error {
	step, err := findStep(record, stepNumber)
	if err != nil {
		return err
	}
	if step.Status == models.StepStatusVerified {
		return ErrStepAlreadyVerified
	}

	step.Data = string(data)
	step.Status = models.StepStatusSubmitted
	step.SubmissionDate = &now
	step.RejectionReason = ""
	return nil
}

// Adjudicate applies a reviewer decision to a step. Verification stamps the
// verification date, records the reviewer and lets the progression policy
// advance the current step pointer; rejection stores the reason and leaves
// the pointer where it is. Both outcomes recompute the aggregate completion
// flag. All validation happens before any field is touched.
func Adjudicate(record *models.VerificationRecord, stepNumber int, decision, rejectionReason string, reviewerID *uint, now time.Time) error {
	step, err := findStep(record, stepNumber)
	if err != nil {
		return err
	}
	if decision != DecisionVerified && decision != DecisionRejected {
		return ErrInvalidDecision
	}
	if step.Status == models.StepStatusVerified {
		return ErrStepAlreadyVerified
	}

	switch decision {
	case DecisionVerified:
		step.Status = models.StepStatusVerified
		step.VerificationDate = &now
		step.VerifiedBy = reviewerID
		step.RejectionReason = ""
		advanceCurrentStep(record, stepNumber)
	case DecisionRejected:
		step.Status = models.StepStatusRejected
		step.RejectionReason = rejectionReason
	}

	recomputeCompletion(record)
	return nil
}
