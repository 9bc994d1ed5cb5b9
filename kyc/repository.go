package kyc

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"kycflow-go/models"
)

// Repository persists verification records keyed by account. UpdateByAccount
// is the atomic read-modify-write seam: implementations must guarantee at
// most one successful concurrent writer per record so a submission and an
// adjudication racing on the same account cannot interleave.
type Repository interface {
	FindByAccount(accountID uint) (*models.VerificationRecord, error)
	Create(record *models.VerificationRecord) error
	UpdateByAccount(accountID uint, mutate func(*models.VerificationRecord) error) (*models.VerificationRecord, error)
}

// GormRepository stores records in the application database.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("step_number ASC")
}

func (r *GormRepository) FindByAccount(accountID uint) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.Preload("Steps", orderedSteps).
		Where("account_id = ?", accountID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return &record, nil
}

func (r *GormRepository) Create(record *models.VerificationRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return nil
}

// UpdateByAccount loads the record inside a transaction, applies mutate and
// writes back the steps and derived fields. Validation errors from mutate
// roll the transaction back, so a failed transition leaves no partial state.
func (r *GormRepository) UpdateByAccount(accountID uint, mutate func(*models.VerificationRecord) error) (*models.VerificationRecord, error) {
	tx := r.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, tx.Error)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	var record models.VerificationRecord
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		Preload("Steps", orderedSteps).
		Where("account_id = ?", accountID).
		First(&record).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}

	if err := mutate(&record); err != nil {
		tx.Rollback()
		return nil, err
	}

	for i := range record.Steps {
		if err := tx.Save(&record.Steps[i]).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
		}
	}
	if err := tx.Model(&models.VerificationRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"current_step":  record.CurrentStep,
			"kyc_completed": record.KYCCompleted,
		}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return &record, nil
}
