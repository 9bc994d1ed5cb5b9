package kyc

import (
	"errors"
	"time"

	"kycflow-go/models"
)

// Service orchestrates the verification flow: it loads the account's record,
// applies a transition and persists the result. It owns no HTTP or storage
// concerns beyond the Repository interface.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStatus returns the account's verification record, creating and
// persisting a default one on first query. Records are created nowhere else;
// submissions and adjudications against a missing record are errors.
func (s *Service) GetStatus(accountID uint) (*models.VerificationRecord, error) {
	record, err := s.repo.FindByAccount(accountID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	record = NewRecord(accountID)
	if createErr := s.repo.Create(record); createErr != nil {
		// Lost a creation race with a concurrent first query; the stored
		// record wins.
		if existing, findErr := s.repo.FindByAccount(accountID); findErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return record, nil
}

// SubmitStep records the holder's payload for a step as an atomic
// read-modify-write against the account's record.
func (s *Service) SubmitStep(accountID uint, stepNumber int, data []byte) (*models.VerificationRecord, error) {
	if !ValidStep(stepNumber) {
		return nil, ErrStepNotFound
	}
	return s.repo.UpdateByAccount(accountID, func(record *models.VerificationRecord) error {
		return Submit(record, stepNumber, data, time.Now())
	})
}

// AdjudicateStep applies a reviewer decision to a step, again as an atomic
// read-modify-write. reviewerID attributes the decision on the step.
func (s *Service) AdjudicateStep(accountID uint, stepNumber int, decision, rejectionReason string, reviewerID uint) (*models.VerificationRecord, error) {
	if !ValidStep(stepNumber) {
		return nil, ErrStepNotFound
	}
	return s.repo.UpdateByAccount(accountID, func(record *models.VerificationRecord) error {
		return Adjudicate(record, stepNumber, decision, rejectionReason, &reviewerID, time.Now())
	})
}
