package handle

import (
	"encoding/json"
	"log"
	"net/http"

	"mlbackend/api/internal/ml"
	"mlbackend/api/internal/ml/types"
)

func (h *Handle) Setup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	var req types.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	p := ml.Project{
		ID:          ml.ProjectID(req.Project),
		LabelConfig: req.Schema,
		ExtraParams: req.ExtraParams,
	}
	version, err := h.model.Setup(r.Context(), p)
	if err != nil {
		log.Printf("setup error: %v", err)
		writeError(w, http.StatusInternalServerError, "setup error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.SetupResponse{ModelVersion: version})
}
