package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	distributionerrors "renopick/contexts/quote-exchange/distribution-service/domain/errors"
	distributionhttp "renopick/contexts/quote-exchange/distribution-service/transport/http"
)

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeDistributionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required", nil)
		return
	}

	req := distributionhttp.DistributeRequest{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDistributionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
			return
		}
	}

	resp, err := s.distribution.Handler.DistributeHandler(r.Context(), userID, r.PathValue("project_id"), req)
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCooldownStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.distribution.Handler.CooldownStatusHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.distribution.Handler.ListAssignmentsHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeDistributionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDistributionDomainError(w http.ResponseWriter, err error) {
	var cooldown *distributionerrors.CooldownActiveError
	switch {
	case errors.As(err, &cooldown):
		writeDistributionError(w, http.StatusConflict, "cooldown_active", err.Error(), cooldown)
	case errors.Is(err, distributionerrors.ErrCooldownActive):
		writeDistributionError(w, http.StatusConflict, "cooldown_active", err.Error(), nil)
	case errors.Is(err, distributionerrors.ErrProjectNotFound):
		writeDistributionError(w, http.StatusNotFound, "project_not_found", err.Error(), nil)
	case errors.Is(err, distributionerrors.ErrNoEligibleVendors):
		writeDistributionError(w, http.StatusNotFound, "no_eligible_vendors", err.Error(), nil)
	case errors.Is(err, distributionerrors.ErrInvalidDistributionInput):
		writeDistributionError(w, http.StatusBadRequest, "invalid_distribution_request", err.Error(), nil)
	default:
		writeDistributionError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func writeDistributionError(
	w http.ResponseWriter,
	status int,
	code string,
	message string,
	cooldown *distributionerrors.CooldownActiveError,
) {
	resp := distributionhttp.ErrorResponse{
		Code:    code,
		Message: message,
	}
	if cooldown != nil {
		resp.CooldownUntil = cooldown.CooldownUntil.UTC().Format(time.RFC3339)
	}
	writeJSON(w, status, resp)
}
