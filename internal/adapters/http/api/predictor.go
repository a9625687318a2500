package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/okian/titanic/pkg/logger"
)

// PredictorHandler serves the scoring routes.
type PredictorHandler struct {
	deps   Predictor
	logger logger.Logger
}

// NewPredictorHandler creates a new predictor handler.
func NewPredictorHandler(deps Predictor, l logger.Logger) *PredictorHandler {
	return &PredictorHandler{deps: deps, logger: l}
}

// HandlePredict handles POST /titanic/predict.
func (h *PredictorHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		mapError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	p, err := h.deps.PredictJSON(r.Context(), body)
	if err != nil {
		h.logger.Debug(r.Context(), "prediction failed", logger.Error(err))
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleStats handles GET /titanic/stats.
func (h *PredictorHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Stats(r.Context()))
}

// HandleModelInfo handles GET /titanic/model-info.
func (h *PredictorHandler) HandleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.ModelInfo(r.Context()))
}
