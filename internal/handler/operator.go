package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/FactorySim_Go/internal/operator"
	"github.com/osse101/FactorySim_Go/internal/session"
)

// OperatorHandler controls the automated operator
type OperatorHandler struct {
	sess *session.Session
}

// NewOperatorHandler creates an OperatorHandler
func NewOperatorHandler(sess *session.Session) *OperatorHandler {
	return &OperatorHandler{sess: sess}
}

// PassResponse is a pass result with its error flattened
type PassResponse struct {
	operator.PassResult
	Error string `json:"error,omitempty"`
}

func newPassResponse(result operator.PassResult) PassResponse {
	resp := PassResponse{PassResult: result}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	return resp
}

// HandleGetOperator reports strategy, loop state and interval
func (h *OperatorHandler) HandleGetOperator(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sess.Operator())
}

// HandleStart arms the loop and runs one pass immediately
func (h *OperatorHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newPassResponse(h.sess.StartOperator(r.Context())))
}

// HandleStop disarms the loop
func (h *OperatorHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	h.sess.StopOperator(r.Context())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgOperatorStopped})
}

// HandleStep runs a single pass without arming the loop
func (h *OperatorHandler) HandleStep(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newPassResponse(h.sess.StepOperator(r.Context())))
}

// StrategyRequest switches the operator strategy
type StrategyRequest struct {
	Strategy string `json:"strategy" validate:"required,strategy"`
}

// HandleSetStrategy switches the strategy
func (h *OperatorHandler) HandleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var req StrategyRequest
	if !bindJSON(w, r, &req, "Set strategy") {
		return
	}
	strategy, err := operator.ParseStrategy(req.Strategy)
	if err != nil {
		status, msg := mapServiceError(err)
		respondError(w, status, msg)
		return
	}
	h.sess.SetStrategy(r.Context(), strategy)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: fmt.Sprintf(MsgStrategySetFmt, strategy)})
}

// HandleAnalysis returns the operator's read of the facility
func (h *OperatorHandler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sess.Analyze())
}
