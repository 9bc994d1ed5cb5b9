package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"kycflow-go/middleware"
	"kycflow-go/models"
	"kycflow-go/utils"
)

func accountIDFromRequest(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["accountID"]
	accountID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid account id %q", raw)
	}
	return uint(accountID), nil
}

// GetAccountKYC lets a reviewer inspect any account's verification record.
func (h *Handlers) GetAccountKYC(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromRequest(r)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Invalid account ID", err.Error())
		return
	}

	record, getErr := h.kyc.GetStatus(accountID)
	if getErr != nil {
		sendKYCError(w, getErr)
		return
	}

	respondWithRecord(w, http.StatusOK, record)
}

// AdjudicateKYCStep applies a reviewer decision to one step of an account's
// record. Accounts with no record yet are an error here, not lazily created;
// a record only comes into being through the holder's own status query.
func (h *Handlers) AdjudicateKYCStep(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Invalid or missing token", nil)
		return
	}

	accountID, err := accountIDFromRequest(r)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Invalid account ID", err.Error())
		return
	}

	stepNumber, err := stepNumberFromRequest(r)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Invalid step number", err.Error())
		return
	}

	var req models.AdjudicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	record, adjErr := h.kyc.AdjudicateStep(accountID, stepNumber, req.Decision, req.RejectionReason, claims.UserID)
	if adjErr != nil {
		sendKYCError(w, adjErr)
		return
	}

	h.logAudit(&claims.UserID, uuid.New().String(), "ADJUDICATE", "KYC_STEP",
		fmt.Sprintf("Account %d step %d: %s", accountID, stepNumber, req.Decision),
		r.RemoteAddr, r.UserAgent())

	respondWithRecord(w, http.StatusOK, record)
}

// PendingStepView is one review-queue entry: a submitted step joined with
// the account it belongs to.
type PendingStepView struct {
	models.VerificationStep
	AccountID uint `json:"account_id"`
}

// GetPendingSteps lists steps awaiting review across all accounts, oldest
// submission first.
func (h *Handlers) GetPendingSteps(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	var pending []PendingStepView
	if err := h.db.Model(&models.VerificationStep{}).
		Select("verification_steps.*, verification_records.account_id").
		Joins("JOIN verification_records ON verification_records.id = verification_steps.record_id").
		Where("verification_steps.status = ?", models.StepStatusSubmitted).
		Order("verification_steps.submission_date ASC").
		Limit(limit).
		Offset(offset).
		Scan(&pending).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch pending steps", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pending)
}

func (h *Handlers) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := (page - 1) * limit

	var auditLogs []models.AuditLog
	if err := h.db.Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&auditLogs).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch audit logs", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(auditLogs)
}

func (h *Handlers) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var users []models.User
	if err := h.db.Select("id, reference_id, email, phone, first_name, last_name, is_active, is_admin, created_at, updated_at").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		sendError(w, http.StatusInternalServerError, "Failed to fetch users", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}
