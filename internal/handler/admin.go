package handler

import (
	"net/http"

	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/naming"
)

// HandleReloadAliases re-reads the alias file of the naming resolver
func HandleReloadAliases(resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info(LogMsgReloading)

		if err := resolver.Reload(); err != nil {
			log.Error(LogMsgReloadFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgReloadFailed)
			return
		}

		log.Info(LogMsgReloaded)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgConfigReloadedSuccess})
	}
}
