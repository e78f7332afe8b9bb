package types

import "encoding/json"

type SetupRequest struct {
	Project     string         `json:"project"`
	Schema      string         `json:"schema"`
	ExtraParams map[string]any `json:"extra_params,omitempty"`
}

type SetupResponse struct {
	ModelVersion string `json:"model_version"`
}

// WebhookProject — вложенный project из вебхука; id приходит числом.
type WebhookProject struct {
	ID          json.Number `json:"id"`
	LabelConfig string      `json:"label_config"`
}

// WebhookRequest — событие хоста. Остальные поля события (annotation, task, ...)
// сохраняются в Payload без разбора.
type WebhookRequest struct {
	Action  string
	Project WebhookProject
	Payload map[string]any
}

func (w *WebhookRequest) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw["action"]; ok {
		if err := json.Unmarshal(v, &w.Action); err != nil {
			return err
		}
		delete(raw, "action")
	}
	if v, ok := raw["project"]; ok {
		_ = json.Unmarshal(v, &w.Project)
	}
	w.Payload = make(map[string]any, len(raw))
	for k, v := range raw {
		var x any
		if err := json.Unmarshal(v, &x); err != nil {
			return err
		}
		w.Payload[k] = x
	}
	return nil
}
