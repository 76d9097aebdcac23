package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rankbench/internal/dataset"
	"rankbench/internal/evaluate"
	"rankbench/internal/format"
	"rankbench/internal/logging"
)

var evalFlags struct {
	dataDir          string
	modelDir         string
	markdown         bool
	parallel         int
	outlierThreshold float64
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a ranking model against baseline costs",
	Long: `Eval loads the train/test splits and the ranking model, scores every
tuning group, and reports top-1/2/5 accuracy and gap statistics against
the baseline configuration.`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalFlags.dataDir, "data-dir", ".", "Directory containing train.* and test.* split files")
	f.StringVar(&evalFlags.modelDir, "model-dir", "", "Directory containing model.* (default: --data-dir)")
	f.BoolVar(&evalFlags.markdown, "markdown", false, "Render the report as Markdown instead of ASCII tables")
	f.IntVar(&evalFlags.parallel, "parallel", 1, "Number of parallel scoring workers (1 = serial)")
	f.Float64Var(&evalFlags.outlierThreshold, "outlier-threshold", evaluate.DefaultOutlierThreshold,
		"Flag groups whose top-1 pick is worse than baseline by more than this")
}

func runEval(cmd *cobra.Command, _ []string) error {
	logger := logging.New("eval")

	modelDir := evalFlags.modelDir
	if modelDir == "" {
		modelDir = evalFlags.dataDir
	}

	ds, err := dataset.LoadDir(evalFlags.dataDir)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("dataset loaded",
		"train_rows", ds.Train.Len(), "test_rows", ds.Test.Len())

	model, err := evaluate.LoadModel(modelDir)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	logger.Info("model loaded", "model", model.Name())

	opts := evaluate.Options{
		OutlierThreshold: evalFlags.outlierThreshold,
		Parallel:         evalFlags.parallel,
	}

	report := &evaluate.Report{Model: model.Name()}
	for _, split := range []struct {
		name string
		data *dataset.Split
	}{
		{"train", ds.Train},
		{"test", ds.Test},
	} {
		metrics, err := evaluate.Measure(cmd.Context(), model, split.data, opts)
		if err != nil {
			return fmt.Errorf("measure %s split: %w", split.name, err)
		}
		report.Splits = append(report.Splits, evaluate.SplitReport{
			Name: split.name, Metrics: metrics,
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), evaluate.FormatReport(report, format.ModeFromFlag(evalFlags.markdown)))
	return nil
}
