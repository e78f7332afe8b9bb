package mock

import (
	"context"
	"fmt"
	"log"

	"mlbackend/api/internal/ml"
	"mlbackend/api/internal/ml/types"
)

const (
	DefaultModelVersion = "0.0.1"

	fitDataValue    = "my_new_data_value"
	fitModelVersion = "my_new_model_version"
)

// Model — мок-детектор: предсказания случайные, "обучение" только трогает кэш.
type Model struct {
	Cache          ml.Cache
	Resolver       ml.AssetResolver
	Notifier       ml.Notifier
	Gen            *Generator
	DefaultVersion string
}

func New(cache ml.Cache, resolver ml.AssetResolver, gen *Generator) *Model {
	if gen == nil {
		gen = NewGenerator()
	}
	return &Model{
		Cache:          cache,
		Resolver:       resolver,
		Gen:            gen,
		DefaultVersion: DefaultModelVersion,
	}
}

func (m *Model) Name() string { return "MockDetector" }

// Setup кладёт версию по умолчанию, если у проекта её ещё нет, и возвращает текущую.
func (m *Model) Setup(ctx context.Context, p ml.Project) (string, error) {
	v, ok, err := m.Cache.Get(ctx, p.ID, ml.KeyModelVersion)
	if err != nil {
		return "", fmt.Errorf("setup: get %s: %w", ml.KeyModelVersion, err)
	}
	if ok && v != "" {
		return v, nil
	}
	if err := m.Cache.Set(ctx, p.ID, ml.KeyModelVersion, m.DefaultVersion); err != nil {
		return "", fmt.Errorf("setup: set %s: %w", ml.KeyModelVersion, err)
	}
	return m.DefaultVersion, nil
}

// Predict возвращает по одному Prediction на задачу в том же порядке.
// Изображение только резолвится для диагностики и на результат не влияет.
func (m *Model) Predict(ctx context.Context, p ml.Project, tasks []types.Task, reqCtx map[string]any) ([]types.Prediction, error) {
	log.Printf("predict: %d task(s) project=%q context=%v extra_params=%v", len(tasks), p.ID, reqCtx, p.ExtraParams)
	if p.LabelConfig != "" {
		log.Printf("predict: label config (%d bytes)", len(p.LabelConfig))
	}

	version := m.modelVersion(ctx, p.ID)

	out := make([]types.Prediction, 0, len(tasks))
	for _, t := range tasks {
		m.touchImage(ctx, t)
		out = append(out, types.Prediction{
			ModelVersion: version,
			Result:       m.Gen.Generate(),
		})
	}
	return out, nil
}

func (m *Model) touchImage(ctx context.Context, t types.Task) {
	url, ok := t.Image()
	if !ok || m.Resolver == nil {
		return
	}
	path, err := m.Resolver.LocalPath(ctx, url, t.ID.String())
	if err != nil {
		log.Printf("predict: task %s: error accessing image %q: %v", t.ID, url, err)
		return
	}
	log.Printf("predict: task %s: image at %s", t.ID, path)
}

func (m *Model) modelVersion(ctx context.Context, project string) string {
	v, ok, err := m.Cache.Get(ctx, project, ml.KeyModelVersion)
	if err != nil {
		log.Printf("predict: read %s: %v", ml.KeyModelVersion, err)
		return m.DefaultVersion
	}
	if !ok || v == "" {
		return m.DefaultVersion
	}
	return v
}

// Fit вызывается на каждое событие разметки. Тяжёлую работу сюда класть нельзя:
// хост ждёт ответа синхронно, обучение выносится в отдельный воркер.
func (m *Model) Fit(ctx context.Context, p ml.Project, event string, payload map[string]any) error {
	log.Printf("fit: event=%s project=%q payload keys=%d", event, p.ID, len(payload))

	oldData, _, err := m.Cache.Get(ctx, p.ID, ml.KeyMyData)
	if err != nil {
		return fmt.Errorf("fit: get %s: %w", ml.KeyMyData, err)
	}
	oldVersion, _, err := m.Cache.Get(ctx, p.ID, ml.KeyModelVersion)
	if err != nil {
		return fmt.Errorf("fit: get %s: %w", ml.KeyModelVersion, err)
	}
	log.Printf("fit: old data: %q", oldData)
	log.Printf("fit: old model version: %q", oldVersion)

	if err := m.Cache.Set(ctx, p.ID, ml.KeyMyData, fitDataValue); err != nil {
		return fmt.Errorf("fit: set %s: %w", ml.KeyMyData, err)
	}
	if err := m.Cache.Set(ctx, p.ID, ml.KeyModelVersion, fitModelVersion); err != nil {
		return fmt.Errorf("fit: set %s: %w", ml.KeyModelVersion, err)
	}

	newData, _, _ := m.Cache.Get(ctx, p.ID, ml.KeyMyData)
	newVersion, _, _ := m.Cache.Get(ctx, p.ID, ml.KeyModelVersion)
	log.Printf("fit: new data: %q", newData)
	log.Printf("fit: new model version: %q", newVersion)

	if m.Notifier != nil {
		msg := fmt.Sprintf("fit: %s in project %s, model version %s -> %s", event, p.ID, orDash(oldVersion), newVersion)
		if err := m.Notifier.Notify(ctx, msg); err != nil {
			log.Printf("fit: notify: %v", err)
		}
	}

	log.Printf("fit: completed successfully")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
