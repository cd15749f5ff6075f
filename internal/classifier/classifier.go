package classifier

import (
	"context"
	"errors"
	"strings"
)

// MAX_SEQUENCE_LENGTH is the token budget of the pretrained models. Longer
// reviews are clipped before inference, not rejected.
const MAX_SEQUENCE_LENGTH = 512

// ErrModel marks failures of the underlying inference capability, either
// at load time or during scoring. These are terminal for the current run.
var ErrModel = errors.New("model failure")

// Classifier scores a whole batch of texts in one call. Implementations
// return exactly one confidence in [0,1] per input, in input order. The
// predicted label itself is discarded.
type Classifier interface {
	ScoreBatch(ctx context.Context, texts []string) ([]float64, error)
}

// clipBatch enforces the sequence budget on every text and reports how
// many entries were shortened.
func clipBatch(texts []string) ([]string, int) {
	clipped := make([]string, len(texts))
	truncated := 0
	for i, text := range texts {
		tokens := strings.Fields(text)
		if len(tokens) <= MAX_SEQUENCE_LENGTH {
			clipped[i] = text
			continue
		}
		clipped[i] = strings.Join(tokens[:MAX_SEQUENCE_LENGTH], " ")
		truncated++
	}
	return clipped, truncated
}
