package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spacesedan/reviewscore/internal/classifier"
	"github.com/spacesedan/reviewscore/internal/dataset"
	"github.com/spacesedan/reviewscore/internal/models"
)

// Validation failures, in the order they are checked. The first violation
// aborts the whole batch; no partial processing happens.
var (
	ErrMissingColumn  = errors.New("'review' column not found")
	ErrNullValue      = errors.New("some reviews are missing")
	ErrInvalidContent = errors.New("'review' column must contain valid, non-empty text")
)

// Validate checks the dataset before any inference is attempted. The
// checks short-circuit: a dataset missing the review column reports that
// and nothing else.
func Validate(ds *dataset.Dataset) error {
	reviews, ok := ds.Column(dataset.ReviewColumn)
	if !ok {
		return ErrMissingColumn
	}

	for i, review := range reviews {
		if review == "" {
			return fmt.Errorf("%w: empty value at row %d", ErrNullValue, i+1)
		}
	}

	for i, review := range reviews {
		if strings.TrimSpace(review) == "" {
			return fmt.Errorf("%w: blank value at row %d", ErrInvalidContent, i+1)
		}
	}

	return nil
}

// Run executes the whole scoring pipeline over an already-open dataset
// stream: load, validate, score the batch in one call, write the result to
// dest. The first error stops everything; the output file only appears on
// full success.
func Run(ctx context.Context, src io.Reader, clf classifier.Classifier, dest string) (string, error) {
	ds, err := dataset.Load(src)
	if err != nil {
		return "", err
	}

	if err := Validate(ds); err != nil {
		return "", err
	}

	reviews, _ := ds.Column(dataset.ReviewColumn)

	slog.Info("[Pipeline] Scoring batch",
		slog.Int("reviews", len(reviews)))
	start := time.Now()

	scores, err := clf.ScoreBatch(ctx, reviews)
	if err != nil {
		return "", err
	}
	if len(scores) != len(reviews) {
		return "", fmt.Errorf("%w: classifier returned %d scores for %d reviews",
			classifier.ErrModel, len(scores), len(reviews))
	}

	slog.Info("[Pipeline] Batch scored",
		slog.Int("reviews", len(reviews)),
		slog.Duration("elapsed", time.Since(start)))

	results := make([]models.ScoredReview, len(reviews))
	for i, review := range reviews {
		results[i] = models.ScoredReview{Review: review, SentimentScore: scores[i]}
	}

	if err := dataset.WriteResults(results, dest); err != nil {
		return "", err
	}

	return dest, nil
}

// RunFile is Run for a dataset on disk.
func RunFile(ctx context.Context, path string, clf classifier.Classifier, dest string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", dataset.ErrParse, path, err)
	}
	defer f.Close()

	return Run(ctx, f, clf, dest)
}
