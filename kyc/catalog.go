package kyc

import (
	"kycflow-go/models"
)

// CatalogEntry is one definition in the fixed onboarding sequence.
type CatalogEntry struct {
	StepNumber int    `json:"step_number"`
	Name       string `json:"name"`
}

// catalog is the ordered set of verification steps every account must
// complete. Step numbers are 1-based and the names are part of the API
// contract; clients render them directly.
var catalog = []CatalogEntry{
	{1, "Email Verification"},
	{2, "Business PAN"},
	{3, "Business Details"},
	{4, "Business Registration Details"},
	{5, "Authorised Signatory Details"},
	{6, "Bank Account Details"},
	{7, "Upload Business Documents"},
	{8, "Website Details"},
	{9, "Additional details"},
}

// StepCount returns the total number of catalog steps.
func StepCount() int {
	return len(catalog)
}

// Catalog returns a copy of the step catalog.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// ValidStep reports whether stepNumber falls inside the catalog range.
func ValidStep(stepNumber int) bool {
	return stepNumber >= 1 && stepNumber <= len(catalog)
}

// NewRecord builds a fresh verification record for an account: every step
// pending and the current step pointer at 1. Each call allocates a new step
// slice so records never share mutable state.
func NewRecord(accountID uint) *models.VerificationRecord {
	steps := make([]models.VerificationStep, 0, len(catalog))
	for _, entry := range catalog {
		steps = append(steps, models.VerificationStep{
			StepNumber: entry.StepNumber,
			Name:       entry.Name,
			Status:     models.StepStatusPending,
		})
	}
	return &models.VerificationRecord{
		AccountID:    accountID,
		KYCCompleted: false,
		CurrentStep:  1,
		Steps:        steps,
	}
}
