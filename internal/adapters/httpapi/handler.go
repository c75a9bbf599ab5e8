// Package httpapi exposes the partner operations as a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bnema/odoo-partners-cli/internal/application"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Limit applied to both listing and searching.
const PageLimit = 20

// Handler serves the partner routes. Every request authenticates again; no
// session is shared between requests.
type Handler struct {
	auth     *application.Authenticator
	partners *application.PartnerService
	logger   *slog.Logger
}

func NewHandler(auth *application.Authenticator, partners *application.PartnerService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{auth: auth, partners: partners, logger: logger}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// StatusFor maps a failure to its HTTP status: 422 for invalid input, 500
// for everything else.
func StatusFor(err error) int {
	if errors.Is(err, domain.ErrValidationFailed) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	attrs := []any{
		"request_id", chiMiddleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	}
	if kind, ok := domain.KindOf(err); ok {
		attrs = append(attrs, "kind", string(kind))
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", attrs...)
	} else {
		h.logger.Warn("Request rejected", attrs...)
	}
	Error(w, status, err.Error())
}
