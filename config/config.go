package config

import (
	"os"
	"path/filepath"
)

// Env var names understood by both binaries.
const (
	ENV_SERVER_ADDR    = "SERVER_ADDR"
	ENV_MODEL_DIR      = "MODEL_DIR"
	ENV_RESULTS_DIR    = "RESULTS_DIR"
	ENV_PRELOAD_MODELS = "PRELOAD_MODELS"
)

func ServerAddr() string {
	return getenvDefault(ENV_SERVER_ADDR, ":8080")
}

// ModelDir is where downloaded ONNX models live between runs.
func ModelDir() string {
	return getenvDefault(ENV_MODEL_DIR, "./models")
}

// ResultsDir is where the interactive server writes scored CSVs.
func ResultsDir() string {
	return getenvDefault(ENV_RESULTS_DIR, filepath.Join(os.TempDir(), "reviewscore"))
}

// PreloadModels controls whether the server constructs every classifier at
// startup instead of on first request.
func PreloadModels() bool {
	return os.Getenv(ENV_PRELOAD_MODELS) == "true"
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
