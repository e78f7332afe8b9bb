package ml

import (
	"context"
	"strings"

	"mlbackend/api/internal/ml/types"
)

// Ключи кэша, которые читает и пишет модель.
const (
	KeyModelVersion = "model_version"
	KeyMyData       = "my_data"
)

// События хоста, на которые вызывается Fit.
const (
	EventAnnotationCreated = "ANNOTATION_CREATED"
	EventAnnotationUpdated = "ANNOTATION_UPDATED"
	EventAnnotationDeleted = "ANNOTATION_DELETED"
	EventStartTraining     = "START_TRAINING"
)

var TrainEvents = []string{
	EventAnnotationCreated,
	EventAnnotationUpdated,
	EventAnnotationDeleted,
	EventStartTraining,
}

func IsTrainEvent(event string) bool {
	for _, e := range TrainEvents {
		if e == event {
			return true
		}
	}
	return false
}

// Cache — key-value хранилище хоста, ключи разделены по проектам.
type Cache interface {
	Get(ctx context.Context, project, key string) (string, bool, error)
	Set(ctx context.Context, project, key, value string) error
}

// AssetResolver превращает url из задачи в путь к локальному файлу.
type AssetResolver interface {
	LocalPath(ctx context.Context, url, taskID string) (string, error)
}

type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Project — метаданные проекта, присланные хостом вместе с запросом.
type Project struct {
	ID          string
	LabelConfig string
	ExtraParams map[string]any
}

// ProjectID вырезает id из строки вида "<id>.<timestamp>".
func ProjectID(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return raw[:i]
	}
	return raw
}

type Model interface {
	Name() string
	Setup(ctx context.Context, p Project) (string, error)
	Predict(ctx context.Context, p Project, tasks []types.Task, reqCtx map[string]any) ([]types.Prediction, error)
	Fit(ctx context.Context, p Project, event string, payload map[string]any) error
}
