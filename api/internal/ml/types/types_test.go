package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTaskIDAcceptsNumberAndString(t *testing.T) {
	var tasks []Task
	raw := `[{"id": 1, "data": {"image": "http://x/y.png"}}, {"id": "abc", "data": {}}, {"data": {"text": "t"}}]`
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tasks[0].ID != "1" || tasks[1].ID != "abc" || tasks[2].ID != "" {
		t.Fatalf("ids: %q %q %q", tasks[0].ID, tasks[1].ID, tasks[2].ID)
	}
	if img, ok := tasks[0].Image(); !ok || img != "http://x/y.png" {
		t.Fatalf("image: %q %v", img, ok)
	}
	if _, ok := tasks[1].Image(); ok {
		t.Fatalf("task without image reported one")
	}
	if _, ok := (Task{}).Image(); ok {
		t.Fatalf("nil data reported image")
	}
}

func TestTaskIDRejectsObject(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &task); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTaskIDMarshal(t *testing.T) {
	b, _ := json.Marshal(Task{ID: "12"})
	if !strings.Contains(string(b), `"id":12`) {
		t.Fatalf("numeric id marshalled as %s", b)
	}
	b, _ = json.Marshal(Task{ID: "t-1"})
	if !strings.Contains(string(b), `"id":"t-1"`) {
		t.Fatalf("string id marshalled as %s", b)
	}
}

func TestPredictionWireFormat(t *testing.T) {
	p := Prediction{
		ModelVersion: "0.0.1",
		Result: []Result{{
			ID: "u", FromName: "label", ToName: "image", Type: TypeRectangleLabels, Score: 0.85,
			Value: RectangleValue{RectangleLabels: []string{"car"}, X: 10, Y: 20, Width: 5, Height: 6},
		}},
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"model_version":"0.0.1","result":[{"id":"u","from_name":"label","to_name":"image","type":"rectanglelabels","score":0.85,"value":{"rectanglelabels":["car"],"x":10,"y":20,"width":5,"height":6}}]}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestWebhookRequest(t *testing.T) {
	raw := `{"action":"ANNOTATION_CREATED","project":{"id":3,"label_config":"<View/>"},"annotation":{"id":9}}`
	var w WebhookRequest
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Action != "ANNOTATION_CREATED" || w.Project.ID.String() != "3" || w.Project.LabelConfig != "<View/>" {
		t.Fatalf("parsed: %+v", w)
	}
	if _, ok := w.Payload["action"]; ok {
		t.Fatalf("action must be popped from payload")
	}
	if _, ok := w.Payload["annotation"]; !ok {
		t.Fatalf("payload lost annotation: %v", w.Payload)
	}
	if err := json.Unmarshal([]byte(`[1]`), &w); err == nil {
		t.Fatalf("expected error on non-object")
	}
}
