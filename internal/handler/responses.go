package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/operator"
	"github.com/osse101/FactorySim_Go/internal/session"
	"github.com/osse101/FactorySim_Go/internal/store"
	"github.com/osse101/FactorySim_Go/internal/validation"
)

// SuccessResponse carries the message of a completed command
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a failure message and, for unknown names, close matches
type ErrorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON encodes into a pooled buffer first so encoding failures never
// leave a half-written body
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError maps an error to a status code and a message safe to show.
// Domain failures keep their own message.
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrWorkerNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrMaterialNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrStationNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrSaveNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrUnitUnstaffed),
		errors.Is(err, domain.ErrNotCraftable),
		errors.Is(err, domain.ErrEntityReferenced),
		errors.Is(err, domain.ErrDuplicateName):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrDanglingReference),
		errors.Is(err, domain.ErrInvalidCatalog),
		errors.Is(err, validation.ErrSchemaViolation),
		errors.Is(err, mod.ErrUnsupportedFormat),
		errors.Is(err, operator.ErrUnknownStrategy),
		errors.Is(err, store.ErrInvalidSlot):
		status = http.StatusBadRequest
	case errors.Is(err, session.ErrNoStore):
		return http.StatusServiceUnavailable, ErrMsgNoStore
	}

	var failure *domain.Failure
	if errors.As(err, &failure) {
		return status, failure.Message
	}
	if status != http.StatusInternalServerError {
		return status, err.Error()
	}
	return status, ErrMsgGenericServerError
}

// WriteError writes the standard error body for middleware outside this package
func WriteError(w http.ResponseWriter, status int, message string) {
	respondError(w, status, message)
}
