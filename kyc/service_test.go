package kyc

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"kycflow-go/models"
)

type ServiceSuite struct {
	suite.Suite
	repo *InMemoryRepository
	svc  *Service
}

func (s *ServiceSuite) SetupTest() {
	s.repo = NewInMemoryRepository()
	s.svc = NewService(s.repo)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestGetStatusCreatesDefaultRecord() {
	record, err := s.svc.GetStatus(1)
	s.Require().NoError(err)

	s.Len(record.Steps, StepCount())
	s.Equal(1, record.CurrentStep)
	s.False(record.KYCCompleted)
	for _, step := range record.Steps {
		s.Equal(models.StepStatusPending, step.Status)
	}

	// The lazily created record is persisted, not rebuilt per query.
	again, err := s.svc.GetStatus(1)
	s.Require().NoError(err)
	s.Equal(record.ID, again.ID)
}

func (s *ServiceSuite) TestSubmitWithoutRecordFails() {
	_, err := s.svc.SubmitStep(99, 1, []byte(`{}`))
	s.Require().ErrorIs(err, ErrRecordNotFound)
}

func (s *ServiceSuite) TestAdjudicateWithoutRecordFails() {
	_, err := s.svc.AdjudicateStep(99, 1, DecisionVerified, "", 7)
	s.Require().ErrorIs(err, ErrRecordNotFound)
}

func (s *ServiceSuite) TestSubmitStoresPayload() {
	_, err := s.svc.GetStatus(1)
	s.Require().NoError(err)

	record, err := s.svc.SubmitStep(1, 2, []byte(`{"pan":"ABCDE1234F"}`))
	s.Require().NoError(err)

	step := record.Steps[1]
	s.Equal(models.StepStatusSubmitted, step.Status)
	s.Equal(`{"pan":"ABCDE1234F"}`, step.Data)
	s.NotNil(step.SubmissionDate)
}

func (s *ServiceSuite) TestStepRangeValidatedBeforeStorage() {
	_, err := s.svc.SubmitStep(1, 42, []byte(`{}`))
	s.Require().ErrorIs(err, ErrStepNotFound)

	_, err = s.svc.AdjudicateStep(1, 0, DecisionVerified, "", 7)
	s.Require().ErrorIs(err, ErrStepNotFound)
}

func (s *ServiceSuite) TestFullVerificationFlow() {
	_, err := s.svc.GetStatus(1)
	s.Require().NoError(err)

	for step := 1; step <= StepCount(); step++ {
		_, err := s.svc.SubmitStep(1, step, []byte(fmt.Sprintf(`{"step":%d}`, step)))
		s.Require().NoError(err)

		record, err := s.svc.AdjudicateStep(1, step, DecisionVerified, "", 7)
		s.Require().NoError(err)

		if step < StepCount() {
			s.False(record.KYCCompleted)
			s.Equal(step+1, record.CurrentStep)
		} else {
			s.True(record.KYCCompleted)
			s.Equal(StepCount(), record.CurrentStep)
			s.Equal(100, CompletionPercent(record))
		}
	}
}

func (s *ServiceSuite) TestAdjudicatorAttribution() {
	_, err := s.svc.GetStatus(1)
	s.Require().NoError(err)

	record, err := s.svc.AdjudicateStep(1, 3, DecisionVerified, "", 11)
	s.Require().NoError(err)

	s.Require().NotNil(record.Steps[2].VerifiedBy)
	s.Equal(uint(11), *record.Steps[2].VerifiedBy)
}

func (s *ServiceSuite) TestFailedTransitionLeavesNoPartialState() {
	_, err := s.svc.GetStatus(1)
	s.Require().NoError(err)
	_, err = s.svc.SubmitStep(1, 2, []byte(`{}`))
	s.Require().NoError(err)

	_, err = s.svc.AdjudicateStep(1, 2, "approved", "", 7)
	s.Require().ErrorIs(err, ErrInvalidDecision)

	record, err := s.svc.GetStatus(1)
	s.Require().NoError(err)
	s.Equal(models.StepStatusSubmitted, record.Steps[1].Status)
}

func (s *ServiceSuite) TestReadsAreSnapshots() {
	record, err := s.svc.GetStatus(1)
	s.Require().NoError(err)

	record.Steps[0].Status = models.StepStatusVerified
	record.CurrentStep = 9

	fresh, err := s.svc.GetStatus(1)
	s.Require().NoError(err)
	s.Equal(models.StepStatusPending, fresh.Steps[0].Status)
	s.Equal(1, fresh.CurrentStep)
}

func (s *ServiceSuite) TestConcurrentMutationsKeepRecordConsistent() {
	_, err := s.svc.GetStatus(1)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for step := 1; step <= StepCount(); step++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			_, err := s.svc.SubmitStep(1, step, []byte(`{}`))
			s.NoError(err)
		}(step)
	}
	wg.Wait()

	record, err := s.svc.GetStatus(1)
	s.Require().NoError(err)
	for _, step := range record.Steps {
		s.Equal(models.StepStatusSubmitted, step.Status)
	}
}
