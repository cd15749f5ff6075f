package classifier

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spacesedan/reviewscore/internal/models"
)

// Factory builds the classifier behind a model key.
type Factory func(key models.ModelKey) (Classifier, error)

// Registry resolves model keys to classifiers. Instances are constructed
// once and reused read-only by every subsequent request; construction is
// lazy unless Preload is called at startup.
type Registry struct {
	mu        sync.Mutex
	instances map[models.ModelKey]Classifier
	build     Factory
}

// NewRegistry wires the default factory: vader is lexicon-backed, every
// other key loads a pretrained transformer from modelDir.
func NewRegistry(modelDir string) *Registry {
	return NewRegistryWithFactory(func(key models.ModelKey) (Classifier, error) {
		if key == models.ModelVADER {
			return NewVader(), nil
		}
		return NewTransformer(key, modelDir)
	})
}

// NewRegistryWithFactory lets callers substitute classifier construction,
// e.g. with deterministic stubs in tests.
func NewRegistryWithFactory(build Factory) *Registry {
	return &Registry{
		instances: make(map[models.ModelKey]Classifier),
		build:     build,
	}
}

// Resolve returns the classifier for key, constructing it on first use.
func (r *Registry) Resolve(key models.ModelKey) (Classifier, error) {
	if _, err := models.ParseModelKey(string(key)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.instances[key]; ok {
		return c, nil
	}

	start := time.Now()
	c, err := r.build(key)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", key, err)
	}
	slog.Info("[Registry] Classifier ready",
		slog.String("model", string(key)),
		slog.Duration("elapsed", time.Since(start)))

	r.instances[key] = c
	return c, nil
}

// Preload constructs every supported classifier up front so the first
// request does not pay the model-load cost.
func (r *Registry) Preload(keys ...models.ModelKey) error {
	if len(keys) == 0 {
		keys = models.AllModelKeys()
	}
	for _, key := range keys {
		if _, err := r.Resolve(key); err != nil {
			return err
		}
	}
	return nil
}
