package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	quoteerrors "renopick/contexts/quote-exchange/quote-service/domain/errors"
	quotehttp "renopick/contexts/quote-exchange/quote-service/transport/http"
)

func (s *Server) handleSubmitQuote(w http.ResponseWriter, r *http.Request) {
	vendorID := resolveVendorID(r)
	if vendorID == "" {
		writeQuoteError(w, http.StatusUnauthorized, "missing_vendor", "X-Vendor-Id header is required", nil)
		return
	}

	var req quotehttp.SubmitQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeQuoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	resp, err := s.quotes.Handler.SubmitQuoteHandler(r.Context(), vendorID, req)
	if err != nil {
		writeQuoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.quotes.Handler.GetQuoteHandler(r.Context(), r.PathValue("quote_id"))
	if err != nil {
		writeQuoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProjectQuotes(w http.ResponseWriter, r *http.Request) {
	resp, err := s.quotes.Handler.ListByProjectHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeQuoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	var req quotehttp.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeQuoteError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	if err := s.quotes.Handler.UpdateStatusHandler(r.Context(), r.PathValue("quote_id"), req); err != nil {
		writeQuoteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuoteAutocomplete(w http.ResponseWriter, r *http.Request) {
	vendorID := resolveVendorID(r)
	if vendorID == "" {
		writeQuoteError(w, http.StatusUnauthorized, "missing_vendor", "X-Vendor-Id header is required", nil)
		return
	}

	resp, err := s.quotes.Handler.AutocompleteHandler(r.Context(), vendorID, r.URL.Query().Get("category"))
	if err != nil {
		writeQuoteDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeQuoteDomainError(w http.ResponseWriter, err error) {
	var schema *quoteerrors.SchemaError
	switch {
	case errors.As(err, &schema):
		writeQuoteError(w, http.StatusBadRequest, "invalid_quote", "quote validation failed", schema.Violations)
	case errors.Is(err, quoteerrors.ErrTotalMismatch):
		writeQuoteError(w, http.StatusBadRequest, "total_mismatch", err.Error(), nil)
	case errors.Is(err, quoteerrors.ErrInvalidQuoteInput):
		writeQuoteError(w, http.StatusBadRequest, "invalid_quote", err.Error(), nil)
	case errors.Is(err, quoteerrors.ErrQuoteNotFound):
		writeQuoteError(w, http.StatusNotFound, "quote_not_found", err.Error(), nil)
	case errors.Is(err, quoteerrors.ErrProjectNotFound):
		writeQuoteError(w, http.StatusNotFound, "project_not_found", err.Error(), nil)
	case errors.Is(err, quoteerrors.ErrInvalidStatusTransition):
		writeQuoteError(w, http.StatusConflict, "invalid_status_transition", err.Error(), nil)
	default:
		writeQuoteError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func writeQuoteError(w http.ResponseWriter, status int, code string, message string, details []string) {
	writeJSON(w, status, quotehttp.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}
