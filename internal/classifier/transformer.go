package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/reviewscore/internal/models"
)

// Transformer runs a pretrained sentiment-classification pipeline through
// ONNX Runtime. One instance wraps one model and is reused read-only for
// every batch it scores.
type Transformer struct {
	key      models.ModelKey
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewTransformer downloads the model for key into modelDir if it is not
// already present, then builds the inference pipeline. Loading a large
// model can take a while, so callers decide whether to do this eagerly at
// startup or lazily on first use.
func NewTransformer(key models.ModelKey, modelDir string) (*Transformer, error) {
	modelID, ok := models.TransformerModelID(key)
	if !ok {
		return nil, fmt.Errorf("%w: no pretrained model registered for %q", ErrModel, key)
	}

	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("%w: create model directory: %v", ErrModel, err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelID, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[Transformer] Model not found, downloading...",
			slog.String("model", modelID))
		downloaded, err := hugot.DownloadModel(modelID, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("%w: download %s: %v", ErrModel, modelID, err)
		}
		modelPath = downloaded
		slog.Info("[Transformer] Model downloaded successfully",
			slog.String("path", modelPath))
	} else {
		slog.Info("[Transformer] Using existing model",
			slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("%w: initialize ONNX session: %v", ErrModel, err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      string(key) + "SentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("%w: initialize %s pipeline: %v", ErrModel, key, err)
	}

	return &Transformer{key: key, session: session, pipeline: pipeline}, nil
}

// ScoreBatch scores every text in one pipeline invocation. Texts over the
// sequence budget are clipped; a warning names how many.
func (t *Transformer) ScoreBatch(ctx context.Context, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	clipped, truncated := clipBatch(texts)
	if truncated > 0 {
		slog.Warn("[Transformer] Reviews exceeded the sequence budget and were clipped",
			slog.String("model", string(t.key)),
			slog.Int("clipped", truncated),
			slog.Int("max_tokens", MAX_SEQUENCE_LENGTH))
	}

	output, err := t.pipeline.RunPipeline(clipped)
	if err != nil {
		return nil, fmt.Errorf("%w: inference failed: %v", ErrModel, err)
	}

	results := output.ClassificationOutputs
	if len(results) != len(texts) {
		return nil, fmt.Errorf("%w: got %d results for %d reviews", ErrModel, len(results), len(texts))
	}

	scores := make([]float64, len(results))
	for i, candidates := range results {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: empty result for review %d", ErrModel, i)
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Score > best.Score {
				best = c
			}
		}
		scores[i] = float64(best.Score)
	}

	return scores, nil
}

// Close releases the ONNX session. Safe to call once, after the last batch.
func (t *Transformer) Close() error {
	if t.session == nil {
		return nil
	}
	err := t.session.Destroy()
	t.session = nil
	return err
}
