package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/session"
)

// PersistenceHandler serves save slots and scenario bundles
type PersistenceHandler struct {
	sess   *session.Session
	loader *mod.Loader
}

// NewPersistenceHandler creates a PersistenceHandler
func NewPersistenceHandler(sess *session.Session, loader *mod.Loader) *PersistenceHandler {
	return &PersistenceHandler{sess: sess, loader: loader}
}

func (h *PersistenceHandler) fail(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceError(err)
	logger.FromContext(r.Context()).Info(LogMsgCommandFailed, "command", opName, "status", status, "error", err)
	respondError(w, status, msg)
}

// HandleListSaves lists save slots, newest first
func (h *PersistenceHandler) HandleListSaves(w http.ResponseWriter, r *http.Request) {
	saves, err := h.sess.Saves(r.Context())
	if err != nil {
		h.fail(w, r, "list_saves", err)
		return
	}
	respondJSON(w, http.StatusOK, saves)
}

// HandleSave writes the current state into {slot}
func (h *PersistenceHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	if err := h.sess.Save(r.Context(), slot); err != nil {
		h.fail(w, r, "save", err)
		return
	}
	respondJSON(w, http.StatusCreated, SuccessResponse{Message: fmt.Sprintf(MsgSavedFmt, slot)})
}

// HandleLoad restores the state in {slot}
func (h *PersistenceHandler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	msg, err := h.sess.Load(r.Context(), chi.URLParam(r, "slot"))
	if err != nil {
		h.fail(w, r, "load", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
}

// HandleDeleteSave removes {slot}
func (h *PersistenceHandler) HandleDeleteSave(w http.ResponseWriter, r *http.Request) {
	slot := chi.URLParam(r, "slot")
	if err := h.sess.DeleteSave(r.Context(), slot); err != nil {
		h.fail(w, r, "delete_save", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: fmt.Sprintf(MsgSaveDeletedFmt, slot)})
}

// requestFormat picks the bundle format from ?format= or the Content-Type
func requestFormat(r *http.Request) (mod.Format, error) {
	if f := r.URL.Query().Get(QueryFormat); f != "" {
		return mod.ParseFormat(f)
	}
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		return mod.FormatYAML, nil
	}
	return mod.FormatJSON, nil
}

// HandleImportBundle replaces the facility contents with the posted bundle.
// The body is checked against the bundle schema before anything changes.
func (h *PersistenceHandler) HandleImportBundle(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		h.fail(w, r, "import_bundle", err)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgBodyTooLarge)
			return
		}
		respondError(w, http.StatusBadRequest, ErrMsgReadBody)
		return
	}

	bundle, err := h.loader.Decode(data, format)
	if err != nil {
		h.fail(w, r, "import_bundle", err)
		return
	}
	msg, err := h.sess.LoadBundle(r.Context(), bundle)
	if err != nil {
		h.fail(w, r, "import_bundle", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
}

// HandleExportBundle renders the current catalog, stock and roster as a bundle
func (h *PersistenceHandler) HandleExportBundle(w http.ResponseWriter, r *http.Request) {
	format, err := mod.ParseFormat(queryOr(r, QueryFormat, string(mod.FormatJSON)))
	if err != nil {
		h.fail(w, r, "export_bundle", err)
		return
	}
	bundle := view(h.sess, (*factory.Facility).ExportBundle)
	data, err := mod.Encode(bundle, format)
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgExportFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgExportFailed)
		return
	}

	contentType := "application/json"
	if format == mod.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
