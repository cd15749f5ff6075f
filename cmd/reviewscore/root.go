package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spacesedan/reviewscore/config"
	"github.com/spacesedan/reviewscore/internal/classifier"
	"github.com/spacesedan/reviewscore/internal/dataset"
	"github.com/spacesedan/reviewscore/internal/models"
	"github.com/spacesedan/reviewscore/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var modelFlag string
	var outputDirFlag string

	rootCmd := &cobra.Command{
		Use:   "reviewscore <input-file>",
		Short: "Score review CSVs with a pretrained sentiment model",
		Long: "Reads a semicolon-delimited CSV with a 'review' column, scores every\n" +
			"review with the selected model and writes a comma-delimited CSV with\n" +
			"the reviews and their sentiment scores.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), args[0], modelFlag, outputDirFlag)
		},
	}

	rootCmd.Flags().StringVar(&modelFlag, "model", string(models.ModelDistilBERT),
		"Model to use: distilbert (default), roberta or vader")
	rootCmd.Flags().StringVar(&outputDirFlag, "output-dir", "",
		"Directory to save results (default: the input file's directory)")

	return rootCmd
}

// runBatch pre-validates the model key, input file and output directory
// before the dataset is touched, then runs the pipeline once.
func runBatch(ctx context.Context, inputPath, model, outputDir string) error {
	key, err := models.ParseModelKey(model)
	if err != nil {
		return err
	}

	if info, err := os.Stat(inputPath); err != nil || info.IsDir() {
		return fmt.Errorf("input file %q does not exist", inputPath)
	}

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: output directory %q does not exist", dataset.ErrIO, outputDir)
	}

	registry := classifier.NewRegistry(config.ModelDir())
	clf, err := registry.Resolve(key)
	if err != nil {
		return err
	}

	fmt.Printf("Using model: %s\n", key)

	dest := dataset.BatchResultPath(outputDir, inputPath, key)
	path, err := pipeline.RunFile(ctx, inputPath, clf, dest)
	if err != nil {
		return err
	}

	fmt.Printf("Sentiment analysis complete. Saved to: %s\n", path)
	return nil
}
