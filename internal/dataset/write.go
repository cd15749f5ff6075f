package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spacesedan/reviewscore/internal/models"
)

// ScoreColumn is the derived column added to every output dataset.
const ScoreColumn = "sentiment score"

// ErrIO marks results that could not be written to their destination.
var ErrIO = errors.New("cannot write results")

// WriteResults serializes scored reviews as a two-column comma-delimited
// CSV at dest. The destination directory must already exist; an existing
// file is overwritten. On any failure no partial file is left behind.
func WriteResults(results []models.ScoredReview, dest string) error {
	dir := filepath.Dir(dest)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: output directory %q does not exist", ErrIO, dir)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, dest, err)
	}

	w := csv.NewWriter(f)
	records := make([][]string, 0, len(results)+1)
	records = append(records, []string{ReviewColumn, ScoreColumn})
	for _, r := range results {
		records = append(records, []string{r.Review, strconv.FormatFloat(r.SentimentScore, 'g', -1, 64)})
	}

	if err := w.WriteAll(records); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("%w: write %s: %v", ErrIO, dest, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("%w: close %s: %v", ErrIO, dest, err)
	}

	return nil
}

// BatchResultPath builds the batch naming convention:
// <output_dir>/<model>_<input_basename>_sentiment_scores.csv
func BatchResultPath(outputDir, inputPath string, key models.ModelKey) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, fmt.Sprintf("%s_%s_sentiment_scores.csv", key, base))
}

// InteractiveResultPath builds the interactive naming convention:
// <results_dir>/sentiment_results_<model>.csv. Repeated runs with the same
// model overwrite each other silently.
func InteractiveResultPath(resultsDir string, key models.ModelKey) string {
	return filepath.Join(resultsDir, fmt.Sprintf("sentiment_results_%s.csv", key))
}
