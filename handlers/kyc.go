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

// stepNumberFromRequest parses the {stepNumber} path variable. A value that
// is not an integer at all is a routing-level bad request; range checking is
// left to the kyc package so out-of-catalog numbers surface as StepNotFound.
func stepNumberFromRequest(r *http.Request) (int, error) {
	raw := mux.Vars(r)["stepNumber"]
	stepNumber, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid step number %q", raw)
	}
	return stepNumber, nil
}

// GetKYCStatus returns the caller's verification record, creating a default
// one on first query.
func (h *Handlers) GetKYCStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Invalid or missing token", nil)
		return
	}

	record, err := h.kyc.GetStatus(claims.UserID)
	if err != nil {
		sendKYCError(w, err)
		return
	}

	respondWithRecord(w, http.StatusOK, record)
}

// SubmitKYCStep stores the caller's payload for one verification step and
// marks it submitted. Resubmission after a rejection goes through the same
// path and clears the rejection reason.
func (h *Handlers) SubmitKYCStep(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		sendError(w, http.StatusUnauthorized, "Invalid or missing token", nil)
		return
	}

	stepNumber, err := stepNumberFromRequest(r)
	if err != nil {
		sendError(w, http.StatusBadRequest, "Invalid step number", err.Error())
		return
	}

	var req models.StepSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", utils.FormatValidationError(err))
		return
	}

	record, err := h.kyc.SubmitStep(claims.UserID, stepNumber, req.Data)
	if err != nil {
		sendKYCError(w, err)
		return
	}

	h.logAudit(&claims.UserID, uuid.New().String(), "SUBMIT", "KYC_STEP",
		fmt.Sprintf("Submitted step %d", stepNumber), r.RemoteAddr, r.UserAgent())

	respondWithRecord(w, http.StatusOK, record)
}
