package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/spacesedan/reviewscore/internal/classifier"
	"github.com/spacesedan/reviewscore/internal/dataset"
)

// fakeClassifier returns canned scores or a canned failure, recording
// whether it was invoked at all.
type fakeClassifier struct {
	scores []float64
	err    error
	called bool
}

func (f *fakeClassifier) ScoreBatch(ctx context.Context, texts []string) ([]float64, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	if f.scores != nil {
		return f.scores, nil
	}
	scores := make([]float64, len(texts))
	for i := range scores {
		scores[i] = 0.5
	}
	return scores, nil
}

func mustLoad(t *testing.T, raw string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(strings.NewReader(raw))
	require.NoError(t, err)
	return ds
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "valid dataset",
			input: "review;other\ngreat movie;1\nterrible film;2\n",
		},
		{
			name:    "missing review column",
			input:   "text;other\ngreat movie;1\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "empty cell reports null value",
			input:   "review\nok\n\"\"\n",
			wantErr: ErrNullValue,
		},
		{
			name:    "whitespace-only cell reports invalid content",
			input:   "review\n\"   \"\nok\n",
			wantErr: ErrInvalidContent,
		},
		{
			name:    "unquoted whitespace cell reports invalid content",
			input:   "review\n   \nok\n",
			wantErr: ErrInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustLoad(t, tt.input))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Precedence(t *testing.T) {
	t.Run("missing column wins over everything", func(t *testing.T) {
		err := Validate(mustLoad(t, "text\n\n"))
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.NotErrorIs(t, err, ErrNullValue)
	})

	t.Run("null value wins over blank content", func(t *testing.T) {
		// blank row first, empty row second: the empty cell must still win
		err := Validate(mustLoad(t, "review\n\"   \"\n\"\"\n"))
		assert.ErrorIs(t, err, ErrNullValue)
		assert.NotErrorIs(t, err, ErrInvalidContent)
	})
}

func TestValidate_BlankAndEmptyMix(t *testing.T) {
	err := Validate(mustLoad(t, "review\n\"   \"\nok\n"))
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestRun_RoundTrip(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String(
		"review;other\ngreat movie;1\nterrible film;2\n")
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "scores.csv")
	clf := &fakeClassifier{scores: []float64{0.98, 0.12}}

	path, err := Run(context.Background(), strings.NewReader(encoded), clf, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"review", "sentiment score"}, records[0])
	assert.Equal(t, "great movie", records[1][0])
	assert.Equal(t, "terrible film", records[2][0])

	for _, rec := range records[1:] {
		score, err := strconv.ParseFloat(rec[1], 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestRun_NoInferenceOnInvalidDataset(t *testing.T) {
	clf := &fakeClassifier{}
	dest := filepath.Join(t.TempDir(), "scores.csv")

	_, err := Run(context.Background(), strings.NewReader("text\nok\n"), clf, dest)
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.False(t, clf.called)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_NoOutputOnModelError(t *testing.T) {
	clf := &fakeClassifier{err: errors.New("model exploded")}
	dest := filepath.Join(t.TempDir(), "scores.csv")

	_, err := Run(context.Background(), strings.NewReader("review\nok\n"), clf, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model exploded")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_ScoreCountMismatch(t *testing.T) {
	clf := &fakeClassifier{scores: []float64{0.5}}
	dest := filepath.Join(t.TempDir(), "scores.csv")

	_, err := Run(context.Background(), strings.NewReader("review\na\nb\n"), clf, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, classifier.ErrModel)
}

func TestRunFile_MissingInput(t *testing.T) {
	clf := &fakeClassifier{}

	_, err := RunFile(context.Background(), "testdata/nope.csv", clf, filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrParse)
	assert.False(t, clf.called)
}
