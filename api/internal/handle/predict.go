package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"mlbackend/api/internal/ml"
	"mlbackend/api/internal/ml/types"
)

const defaultPredictTimeout = 60 * time.Second

func (h *Handle) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req types.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}

	params := req.Params
	if params == nil {
		params = map[string]any{}
	}
	reqCtx, _ := params["context"].(map[string]any)
	delete(params, "context")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(r))
	defer cancel()

	p := ml.Project{
		ID:          ml.ProjectID(req.Project),
		LabelConfig: req.LabelConfig,
		ExtraParams: params,
	}
	preds, err := h.model.Predict(ctx, p, req.Tasks, reqCtx)
	if err != nil {
		log.Printf("predict error: %v", err)
		writeError(w, http.StatusInternalServerError, "predict error: "+err.Error())
		return
	}
	if preds == nil {
		preds = []types.Prediction{}
	}
	writeJSON(w, http.StatusOK, types.PredictResponse{Results: preds})
}

// requestTimeout: заголовок X-Request-Timeout, затем ?timeoutSec=, иначе дефолт.
func requestTimeout(r *http.Request) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return defaultPredictTimeout
}
