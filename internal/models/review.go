package models

import (
	"fmt"
	"strings"
)

// ModelKey selects one of the supported sentiment models.
type ModelKey string

const (
	ModelDistilBERT ModelKey = "distilbert"
	ModelRoBERTa    ModelKey = "roberta"
	ModelVADER      ModelKey = "vader"
)

// transformerModels maps a key to the pretrained model identifier used for
// download and inference. The mapping is static configuration.
var transformerModels = map[ModelKey]string{
	ModelDistilBERT: "distilbert-base-uncased-finetuned-sst-2-english",
	ModelRoBERTa:    "siebert/sentiment-roberta-large-english",
}

// AllModelKeys lists every accepted key, in the order shown to users.
func AllModelKeys() []ModelKey {
	return []ModelKey{ModelDistilBERT, ModelRoBERTa, ModelVADER}
}

// ParseModelKey validates a user-supplied model choice.
func ParseModelKey(s string) (ModelKey, error) {
	key := ModelKey(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range AllModelKeys() {
		if key == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("model %q not supported, choose one of: %s", s, keyList())
}

// TransformerModelID resolves a key to its pretrained model identifier.
// Returns false for keys that are not transformer-backed (vader).
func TransformerModelID(key ModelKey) (string, bool) {
	id, ok := transformerModels[key]
	return id, ok
}

func keyList() string {
	keys := AllModelKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}

type ScoredReview struct {
	Review         string  `json:"review"`
	SentimentScore float64 `json:"sentiment_score"`
}
