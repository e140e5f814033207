package cli

import (
	"errors"
	"fmt"

	"github.com/mgpai22/subkit/internal/batch"
	"github.com/mgpai22/subkit/internal/subtitle"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle file]",
	Short: "Convert a subtitle file to another format",
	Long: `Convert a subtitle file between ASS/SSA, SRT, WebVTT and MicroDVD SUB.

Styling is only kept when converting to ASS; the line based formats get the
plain text with ASS override tags removed.

Examples:
  subkit convert movie.ass -f srt
  subkit convert movie.srt -f ass -o styled/movie.ass
  subkit convert movie.vtt --format sub --overwrite`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	addFormatFlag(convertCmd, "Target format: ass, ssa, srt, vtt or sub (required)")
	convertCmd.Flags().
		Bool("overwrite", false, "Replace the output file if it exists")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	if format == "" {
		return errors.New("--format is required")
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = subtitle.OutputPath(inputPath, format, cfg.Batch.OutputDir)
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	overwrite = overwrite || cfg.Batch.Overwrite

	logger.Infow("Converting subtitle",
		"input", inputPath,
		"output", outputPath,
		"format", format,
	)

	doc, err := subtitle.Open(inputPath, cfg.ParseOptions())
	if err != nil {
		return fmt.Errorf("failed to open subtitle: %w", err)
	}

	task := batch.NewTask(batch.TaskFormatConvert, doc, batch.Settings{
		OutputFormat: format,
		OutputPath:   outputPath,
		Overwrite:    overwrite,
	})
	return runSingle(cmd, task)
}

// runSingle processes one task and reports its outcome as the command error.
func runSingle(cmd *cobra.Command, task *batch.Task) error {
	processor, err := newProcessor(1)
	if err != nil {
		return err
	}

	result := processor.ProcessBatch(cmd.Context(), []*batch.Task{task})
	if result.Failed > 0 {
		return fmt.Errorf("failed to process %s: %s", task.FileName(), task.Err())
	}
	if result.Cancelled > 0 {
		return errors.New("cancelled")
	}

	_, output := task.Result()
	logger.Infow("Subtitle written", "output", task.Settings.OutputPath, "bytes", len(output))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", task.Settings.OutputPath)
	return nil
}
