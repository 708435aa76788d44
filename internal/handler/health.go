package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/FactorySim_Go/internal/logger"
)

// readinessTimeout bounds the store ping
const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is satisfied by the save store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthOK})
	}
}

// HandleReadyz reports ready when the save store answers. Without a store the
// facility runs in memory and is always ready.
func HandleReadyz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			respondJSON(w, http.StatusOK, HealthResponse{Status: HealthOK, Message: HealthNoStore})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  HealthUnavailable,
				Message: HealthStoreFailed,
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthOK})
	}
}
