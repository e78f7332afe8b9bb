package handle

import (
	"encoding/json"
	"net/http"

	"mlbackend/api/internal/ml"
)

type Handle struct {
	model ml.Model
}

func New(model ml.Model) *Handle {
	return &Handle{
		model: model,
	}
}

// Routes регистрирует эндпоинты ML-бэкенда на mux.
func (h *Handle) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/predict", h.Predict)
	mux.HandleFunc("/setup", h.Setup)
	mux.HandleFunc("/webhook", h.Webhook)
	mux.HandleFunc("/metrics", h.Metrics)
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/", h.Health)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
