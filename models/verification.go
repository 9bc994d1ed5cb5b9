package models

import (
	"encoding/json"
	"time"
)

// StepStatus is the lifecycle state of a single verification step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusSubmitted StepStatus = "submitted"
	StepStatusVerified  StepStatus = "verified"
	StepStatusRejected  StepStatus = "rejected"
)

// VerificationRecord tracks one account's progress through the onboarding
// steps. There is exactly one record per account; KYCCompleted and
// CurrentStep are derived fields maintained by the kyc package.
type VerificationRecord struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	AccountID    uint               `json:"account_id" gorm:"uniqueIndex;not null"`
	KYCCompleted bool               `json:"kyc_completed" gorm:"default:false"`
	CurrentStep  int                `json:"current_step" gorm:"default:1"`
	Steps        []VerificationStep `json:"steps" gorm:"foreignKey:RecordID"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// VerificationStep is one entry of the record's step array. StepNumber and
// Name are copied from the step catalog when the record is created. Data is
// the holder's submission payload, stored as raw JSON and never interpreted
// by this service.
type VerificationStep struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	RecordID         uint       `json:"-" gorm:"index;not null"`
	StepNumber       int        `json:"step_number" gorm:"not null"`
	Name             string     `json:"name" gorm:"not null"`
	Status           StepStatus `json:"status" gorm:"default:pending"`
	Data             string     `json:"data,omitempty"`
	SubmissionDate   *time.Time `json:"submission_date,omitempty"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	VerifiedBy       *uint      `json:"verified_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type StepSubmissionRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

type AdjudicationRequest struct {
	Decision        string `json:"decision" validate:"required"`
	RejectionReason string `json:"rejection_reason"`
}

// VerificationStatusResponse is the record as returned to clients, with the
// completion percentage computed from the step statuses.
type VerificationStatusResponse struct {
	VerificationRecord
	CompletionPercent int `json:"completion_percent"`
}
