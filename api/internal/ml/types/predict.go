package types

const TypeRectangleLabels = "rectanglelabels"

// RectangleValue — геометрия в процентах от размеров изображения.
type RectangleValue struct {
	RectangleLabels []string `json:"rectanglelabels"`
	X               int      `json:"x"`
	Y               int      `json:"y"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
}

// Result — одна детекция. from_name/to_name должны совпадать с именами в label config проекта.
type Result struct {
	ID       string         `json:"id"`
	FromName string         `json:"from_name"`
	ToName   string         `json:"to_name"`
	Type     string         `json:"type"`
	Score    float64        `json:"score"`
	Value    RectangleValue `json:"value"`
}

// Prediction — ответ по одной задаче.
type Prediction struct {
	ModelVersion string   `json:"model_version"`
	Result       []Result `json:"result"`
}

type PredictRequest struct {
	Tasks       []Task         `json:"tasks"`
	Project     string         `json:"project,omitempty"`
	LabelConfig string         `json:"label_config,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
}

type PredictResponse struct {
	Results []Prediction `json:"results"`
}
