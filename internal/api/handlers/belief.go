package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/service"
)

type BeliefHandler struct {
	svc *service.ClassifierService
}

func NewBeliefHandler(svc *service.ClassifierService) *BeliefHandler {
	return &BeliefHandler{svc: svc}
}

type evaluateBeliefRequest struct {
	Prior  domain.Table     `json:"prior"`
	Events []string         `json:"events"`
	Odds   domain.EventOdds `json:"odds"`
}

// Evaluate applies a sequence of observed events to a caller-supplied prior
// and returns the posterior belief.
func (h *BeliefHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateBeliefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.EvaluateBelief(req.Prior, req.Events, req.Odds)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoClasses):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrUnknownLabel),
			errors.Is(err, domain.ErrLengthMismatch),
			errors.Is(err, domain.ErrDegenerateDistribution):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "evaluation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
