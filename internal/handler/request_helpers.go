package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FactorySim_Go/internal/logger"
)

// ValidationErrorResponse lists the failing fields of a request body
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// bindJSON decodes the body into dst and runs its validate tags. It writes
// the error response itself and reports whether the handler may continue.
// Unknown fields are rejected so a misspelt key is not silently ignored.
func bindJSON(w http.ResponseWriter, r *http.Request, dst any, action string) bool {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", action, "error", err)
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
		case errors.Is(err, io.EOF):
			respondError(w, http.StatusBadRequest, ErrMsgEmptyBody)
		default:
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		}
		return false
	}

	if err := validatorInstance().Struct(dst); err != nil {
		log.Debug(LogMsgDecodeFailed, "action", action, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fieldErrors(err),
		})
		return false
	}
	log.Debug(LogMsgRequestDecoded, "action", action)
	return true
}

// pathID reads a numeric path parameter, writing a 400 when it is not one
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value < 1 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidID, name))
		return 0, false
	}
	return value, true
}

func queryOr(r *http.Request, name, fallback string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return fallback
}
