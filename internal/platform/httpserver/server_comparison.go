package httpserver

import (
	"errors"
	"net/http"

	comparisonerrors "renopick/contexts/quote-exchange/comparison-engine/domain/errors"
	comparisonhttp "renopick/contexts/quote-exchange/comparison-engine/transport/http"
)

func (s *Server) handleCompareQuotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	projectID := query.Get("project_id")
	if projectID == "" {
		writeComparisonError(w, http.StatusBadRequest, "missing_project_id", "project_id query parameter is required")
		return
	}

	resp, err := s.comparison.Handler.CompareHandler(r.Context(), projectID, query.Get("quote_ids"))
	if err != nil {
		writeComparisonDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeComparisonDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comparisonerrors.ErrInvalidQuoteCardinality):
		writeComparisonError(w, http.StatusBadRequest, "invalid_quote_cardinality", err.Error())
	case errors.Is(err, comparisonerrors.ErrQuoteNotFound):
		writeComparisonError(w, http.StatusNotFound, "quote_not_found", err.Error())
	default:
		writeComparisonError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeComparisonError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, comparisonhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
