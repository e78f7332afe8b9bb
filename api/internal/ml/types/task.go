package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TaskID — идентификатор задачи; хост присылает число, но в ручных запросах бывает строка.
type TaskID string

func (id *TaskID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	*id = TaskID(n.String())
	return nil
}

func (id TaskID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id TaskID) String() string { return string(id) }

// Task — задача разметки в формате хоста. Читается только data.image.
type Task struct {
	ID   TaskID         `json:"id"`
	Data map[string]any `json:"data"`
}

// Image возвращает data.image, если это непустая строка.
func (t Task) Image() (string, bool) {
	if t.Data == nil {
		return "", false
	}
	s, ok := t.Data["image"].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
