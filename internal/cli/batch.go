package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/subkit/internal/batch"
	"github.com/mgpai22/subkit/internal/subtitle"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [subtitle files...]",
	Short: "Convert or restyle many subtitle files at once",
	Long: `Process several subtitle files in one run.

With any style flag or --preset every file is restyled, otherwise every file
is converted to --format. One failing file does not stop the others; a
summary with per-file errors is printed at the end.

Examples:
  subkit batch *.ass -f srt --out-dir converted
  subkit batch season1/*.srt -f ass --preset bilingual --concurrency 4
  subkit batch a.ass b.ass --font-size 24 --overwrite`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addFormatFlag(batchCmd, "Target format (required unless styling)")
	batchCmd.Flags().
		String("out-dir", "", "Directory for output files (default next to each input)")
	batchCmd.Flags().
		IntP("concurrency", "c", 0, "Number of files processed at once (default from config)")
	batchCmd.Flags().
		Bool("overwrite", false, "Replace output files that exist")
	addStyleFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = cfg.Batch.OutputDir
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	overwrite = overwrite || cfg.Batch.Overwrite

	settings, styling := styleSettings(cmd.Flags(), cfg.ScriptTags())
	taskType := batch.TaskFormatConvert
	if styling {
		taskType = batch.TaskStyleApply
	} else if format == "" {
		return errors.New("--format is required when no style flags are given")
	}

	tasks, openErrors := buildTasks(args, taskType, format, outDir, overwrite, settings)

	logger.Infow("Starting batch",
		"files", len(args),
		"type", taskType,
		"format", format,
		"concurrency", concurrency,
	)

	processor, err := newProcessor(concurrency)
	if err != nil {
		return err
	}
	result := processor.ProcessBatch(cmd.Context(), tasks)

	// files that could not be read count as failed tasks
	result.Total += len(openErrors)
	result.Failed += len(openErrors)
	result.Errors = append(openErrors, result.Errors...)

	printResult(cmd, result)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, result.Total)
	}
	return nil
}

func buildTasks(paths []string, taskType batch.TaskType, format subtitle.Format, outDir string, overwrite bool, base batch.Settings) ([]*batch.Task, []string) {
	var tasks []*batch.Task
	var openErrors []string

	for _, path := range paths {
		doc, err := subtitle.Open(path, cfg.ParseOptions())
		if err != nil {
			logger.Warnw("Skipping unreadable file", "path", path, "error", err)
			openErrors = append(openErrors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}

		settings := base
		settings.Overwrite = overwrite
		settings.OutputFormat = format
		target := format
		if target == "" {
			target = doc.Format
		}
		if taskType == batch.TaskStyleApply {
			settings.OutputPath = styledPath(path, target, outDir)
		} else {
			settings.OutputPath = subtitle.OutputPath(path, target, outDir)
		}

		tasks = append(tasks, batch.NewTask(taskType, doc, settings))
	}
	return tasks, openErrors
}
