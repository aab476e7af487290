package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/service"
)

type ClassifyHandler struct {
	svc *service.ClassifierService
}

func NewClassifyHandler(svc *service.ClassifierService) *ClassifyHandler {
	return &ClassifyHandler{svc: svc}
}

type classifyEventsRequest struct {
	Instance string              `json:"instance"`
	Classes  map[string][]string `json:"classes"`
}

// Events classifies a text instance against per-class training instances.
func (h *ClassifyHandler) Events(w http.ResponseWriter, r *http.Request) {
	var req classifyEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.ClassifyEvents(req.Instance, req.Classes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoInstance), errors.Is(err, service.ErrNoClasses):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "classification failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type classifyGaussianRequest struct {
	Instance domain.Features              `json:"instance"`
	Classes  map[string][]domain.Features `json:"classes"`
}

// Gaussian classifies a feature record against per-class Gaussian
// distributions fitted from training populations.
func (h *ClassifyHandler) Gaussian(w http.ResponseWriter, r *http.Request) {
	var req classifyGaussianRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.ClassifyGaussian(req.Instance, req.Classes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoInstance), errors.Is(err, service.ErrNoClasses):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInsufficientSamples):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrUnknownLabel):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "classification failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
