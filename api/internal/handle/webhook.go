package handle

import (
	"encoding/json"
	"log"
	"net/http"

	"mlbackend/api/internal/ml"
	"mlbackend/api/internal/ml/types"
)

func (h *Handle) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req types.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if !ml.IsTrainEvent(req.Action) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "Unknown event"})
		return
	}

	p := ml.Project{
		ID:          req.Project.ID.String(),
		LabelConfig: req.Project.LabelConfig,
	}
	if err := h.model.Fit(r.Context(), p, req.Action, req.Payload); err != nil {
		log.Printf("webhook %s: fit error: %v", req.Action, err)
		writeError(w, http.StatusInternalServerError, "fit error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{})
}
