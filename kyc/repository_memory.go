package kyc

import (
	"sync"

	"kycflow-go/models"
)

// InMemoryRepository keeps records in a map guarded by a single mutex. It is
// the unit-test double for GormRepository and gives the same atomicity
// guarantee: mutations run under the lock, and reads hand out copies so
// callers never alias stored state.
type InMemoryRepository struct {
	mu      sync.Mutex
	records map[uint]*models.VerificationRecord
	nextID  uint
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[uint]*models.VerificationRecord), nextID: 1}
}

func copyRecord(record *models.VerificationRecord) *models.VerificationRecord {
	out := *record
	out.Steps = make([]models.VerificationStep, len(record.Steps))
	copy(out.Steps, record.Steps)
	return &out
}

func (r *InMemoryRepository) FindByAccount(accountID uint) (*models.VerificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[accountID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return copyRecord(record), nil
}

func (r *InMemoryRepository) Create(record *models.VerificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.AccountID]; ok {
		return ErrRepositoryUnavailable
	}
	stored := copyRecord(record)
	stored.ID = r.nextID
	r.nextID++
	for i := range stored.Steps {
		stored.Steps[i].ID = uint(i + 1)
		stored.Steps[i].RecordID = stored.ID
	}
	r.records[record.AccountID] = stored
	record.ID = stored.ID
	return nil
}

func (r *InMemoryRepository) UpdateByAccount(accountID uint, mutate func(*models.VerificationRecord) error) (*models.VerificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[accountID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	// Mutate a copy so a failed transition leaves the stored record intact.
	updated := copyRecord(record)
	if err := mutate(updated); err != nil {
		return nil, err
	}
	r.records[accountID] = updated
	return copyRecord(updated), nil
}
