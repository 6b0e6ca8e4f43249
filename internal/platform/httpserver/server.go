package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	projectservice "renopick/contexts/consumer-projects/project-service"
	projecterrors "renopick/contexts/consumer-projects/project-service/domain/errors"
	projecthttp "renopick/contexts/consumer-projects/project-service/transport/http"
	comparisonengine "renopick/contexts/quote-exchange/comparison-engine"
	distributionservice "renopick/contexts/quote-exchange/distribution-service"
	quoteservice "renopick/contexts/quote-exchange/quote-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "renopick/internal/platform/httpserver/docs"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	projects     projectservice.Module
	distribution distributionservice.Module
	quotes       quoteservice.Module
	comparison   comparisonengine.Module
}

func New(
	projects projectservice.Module,
	distribution distributionservice.Module,
	quotes quoteservice.Module,
	comparison comparisonengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		projects:     projects,
		distribution: distribution,
		quotes:       quotes,
		comparison:   comparison,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/projects", s.handleCreateProject)
	s.mux.HandleFunc("GET /v1/projects", s.handleListProjects)
	s.mux.HandleFunc("GET /v1/projects/{project_id}", s.handleGetProject)
	s.mux.HandleFunc("PATCH /v1/projects/{project_id}/status", s.handleUpdateProjectStatus)
	s.mux.HandleFunc("GET /v1/projects/{project_id}/sla", s.handleProjectSLA)

	s.mux.HandleFunc("POST /v1/projects/{project_id}/distribute", s.handleDistribute)
	s.mux.HandleFunc("GET /v1/projects/{project_id}/cooldown", s.handleCooldownStatus)
	s.mux.HandleFunc("GET /v1/projects/{project_id}/distributions", s.handleListDistributions)

	s.mux.HandleFunc("POST /v1/quotes", s.handleSubmitQuote)
	s.mux.HandleFunc("GET /v1/quotes/autocomplete", s.handleQuoteAutocomplete)
	s.mux.HandleFunc("GET /v1/quotes/compare", s.handleCompareQuotes)
	s.mux.HandleFunc("GET /v1/quotes/{quote_id}", s.handleGetQuote)
	s.mux.HandleFunc("PATCH /v1/quotes/{quote_id}/status", s.handleUpdateQuoteStatus)
	s.mux.HandleFunc("GET /v1/projects/{project_id}/quotes", s.handleListProjectQuotes)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeProjectError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required", nil)
		return
	}

	var req projecthttp.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProjectError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	resp, err := s.projects.Handler.CreateProjectHandler(r.Context(), userID, req)
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.ListProjectsHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.GetProjectHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req projecthttp.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProjectError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", nil)
		return
	}

	if err := s.projects.Handler.UpdateStatusHandler(r.Context(), r.PathValue("project_id"), req); err != nil {
		writeProjectDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjectSLA(w http.ResponseWriter, r *http.Request) {
	resp, err := s.projects.Handler.SLAStatusHandler(r.Context(), r.PathValue("project_id"))
	if err != nil {
		writeProjectDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeProjectDomainError(w http.ResponseWriter, err error) {
	var validation *projecterrors.ValidationError
	switch {
	case errors.As(err, &validation):
		writeProjectError(w, http.StatusBadRequest, "invalid_project", "project validation failed", validation.Violations)
	case errors.Is(err, projecterrors.ErrProjectNotFound):
		writeProjectError(w, http.StatusNotFound, "project_not_found", err.Error(), nil)
	case errors.Is(err, projecterrors.ErrProjectExists):
		writeProjectError(w, http.StatusConflict, "project_exists", err.Error(), nil)
	case errors.Is(err, projecterrors.ErrInvalidStatusTransition):
		writeProjectError(w, http.StatusConflict, "invalid_status_transition", err.Error(), nil)
	case errors.Is(err, projecterrors.ErrInvalidProjectInput):
		writeProjectError(w, http.StatusBadRequest, "invalid_project", err.Error(), nil)
	default:
		writeProjectError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func writeProjectError(w http.ResponseWriter, status int, code string, message string, details []string) {
	writeJSON(w, status, projecthttp.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveVendorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Vendor-Id"))
}
