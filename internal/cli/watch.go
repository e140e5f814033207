package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mgpai22/subkit/internal/batch"
	"github.com/mgpai22/subkit/internal/subtitle"
	"github.com/mgpai22/subkit/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Convert subtitle files as they appear in a directory",
	Long: `Watch a directory and convert or restyle every subtitle file written into
it. Output goes to --out-dir, which must differ from the watched directory.
Stop with Ctrl+C.

Examples:
  subkit watch incoming -f srt --out-dir converted
  subkit watch incoming -f ass --preset bilingual --out-dir styled --existing`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	addFormatFlag(watchCmd, "Target format (required unless styling)")
	watchCmd.Flags().
		String("out-dir", "", "Directory for output files (required)")
	watchCmd.Flags().
		Bool("existing", false, "Also process files already in the directory")
	watchCmd.Flags().
		Duration("debounce", 500*time.Millisecond, "Quiet period after the last write before a file is processed")
	watchCmd.Flags().
		Bool("overwrite", true, "Replace output files that exist")
	addStyleFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = cfg.Batch.OutputDir
	}
	if outDir == "" {
		return errors.New("--out-dir is required")
	}
	if sameDir(dir, outDir) {
		return errors.New("--out-dir must differ from the watched directory")
	}

	existing, _ := cmd.Flags().GetBool("existing")
	debounce, _ := cmd.Flags().GetDuration("debounce")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	settings, styling := styleSettings(cmd.Flags(), cfg.ScriptTags())
	taskType := batch.TaskFormatConvert
	if styling {
		taskType = batch.TaskStyleApply
	} else if format == "" {
		return errors.New("--format is required when no style flags are given")
	}

	processor, err := newProcessor(1)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, path string) error {
		tasks, openErrors := buildTasks([]string{path}, taskType, format, outDir, overwrite, settings)
		if len(openErrors) > 0 {
			return errors.New(openErrors[0])
		}
		result := processor.ProcessBatch(ctx, tasks)
		if result.Failed > 0 {
			return errors.New(result.Errors[0])
		}
		for _, out := range result.OutputFiles {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		}
		return nil
	}

	w, err := watch.New(watch.Config{
		Dir:             dir,
		Debounce:        debounce,
		ProcessExisting: existing,
		Accept:          acceptSubtitle,
		Logger:          logger.Named("watch"),
	}, handler)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infow("Watching for subtitles", "dir", dir, "out_dir", outDir, "type", taskType)
	return w.Run(ctx)
}

// ignores editor temp files next to real subtitles
func acceptSubtitle(path string) bool {
	name := filepath.Base(path)
	if name == "" || name[0] == '.' || name[0] == '~' {
		return false
	}
	_, err := subtitle.FormatFromPath(path)
	return err == nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
