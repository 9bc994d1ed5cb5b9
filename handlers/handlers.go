package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"kycflow-go/config"
	"kycflow-go/kyc"
	"kycflow-go/models"
)

// ErrorResponse is the standardized error envelope.
type ErrorResponse struct {
	Status    int         `json:"status"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// sendError sends a standardized error response
func sendError(w http.ResponseWriter, status int, err string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:    status,
		Error:     err,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// sendKYCError maps the verification error taxonomy onto HTTP statuses so
// clients can tell a bad step number from a server failure.
func sendKYCError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, kyc.ErrStepNotFound):
		sendError(w, http.StatusNotFound, "Step not found", err.Error())
	case errors.Is(err, kyc.ErrRecordNotFound):
		sendError(w, http.StatusNotFound, "Verification record not found", err.Error())
	case errors.Is(err, kyc.ErrInvalidDecision):
		sendError(w, http.StatusBadRequest, "Invalid decision", err.Error())
	case errors.Is(err, kyc.ErrStepAlreadyVerified):
		sendError(w, http.StatusConflict, "Step already verified", err.Error())
	default:
		sendError(w, http.StatusInternalServerError, "Verification service error", err.Error())
	}
}

type Handlers struct {
	db     *gorm.DB
	config *config.Config
	kyc    *kyc.Service
}

func NewHandlers(db *gorm.DB, cfg *config.Config, kycService *kyc.Service) *Handlers {
	return &Handlers{
		db:     db,
		config: cfg,
		kyc:    kycService,
	}
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   "KYCFlowGo",
		"version":   "1.0.0",
	})
}

func (h *Handlers) logAudit(userID *uint, requestID, action, resource, details, ipAddress, userAgent string) {
	audit := models.AuditLog{
		UserID:    userID,
		RequestID: requestID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	h.db.Create(&audit)
}

// respondWithRecord writes the full verification record plus its derived
// completion percentage.
func respondWithRecord(w http.ResponseWriter, status int, record *models.VerificationRecord) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.VerificationStatusResponse{
		VerificationRecord: *record,
		CompletionPercent:  kyc.CompletionPercent(record),
	})
}
