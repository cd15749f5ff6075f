package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewscore/internal/models"
)

func TestWriteResults(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")

	err := WriteResults([]models.ScoredReview{
		{Review: "great movie", SentimentScore: 0.99},
		{Review: "terrible film", SentimentScore: 0.87},
	}, dest)
	require.NoError(t, err)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"review", "sentiment score"}, records[0])
	assert.Equal(t, []string{"great movie", "0.99"}, records[1])
	assert.Equal(t, []string{"terrible film", "0.87"}, records[2])
}

func TestWriteResults_OverwritesExisting(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(dest, []byte("stale"), 0o644))

	require.NoError(t, WriteResults([]models.ScoredReview{{Review: "ok", SentimentScore: 0.5}}, dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
}

func TestWriteResults_MissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nope", "out.csv")

	err := WriteResults([]models.ScoredReview{{Review: "ok", SentimentScore: 0.5}}, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBatchResultPath(t *testing.T) {
	got := BatchResultPath("/tmp/results", "/data/reviews.csv", models.ModelRoBERTa)
	assert.Equal(t, filepath.Join("/tmp/results", "roberta_reviews_sentiment_scores.csv"), got)
}

func TestInteractiveResultPath(t *testing.T) {
	got := InteractiveResultPath("/tmp/results", models.ModelDistilBERT)
	assert.Equal(t, filepath.Join("/tmp/results", "sentiment_results_distilbert.csv"), got)
}
