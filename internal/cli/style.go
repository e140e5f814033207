package cli

import (
	"errors"
	"fmt"

	"github.com/mgpai22/subkit/internal/batch"
	"github.com/mgpai22/subkit/internal/subtitle"
	"github.com/spf13/cobra"
)

var styleCmd = &cobra.Command{
	Use:   "style [subtitle file]",
	Short: "Restyle a subtitle file",
	Long: `Change the styling of a subtitle file.

A preset is applied first, then individual style flags on top of it. The
--cjk-* and --latin-* flags tag CJK and Latin runs inside each cue with their
own font, size and color; this always produces ASS text, so pick
--format ass to keep the tags.

Without --output the result is written next to the input as
<name>.styled.<ext>.

Examples:
  subkit style movie.ass --preset large-print
  subkit style movie.srt --font-name "Noto Sans" --font-size 22 -f ass
  subkit style bilingual.srt -f ass --cjk-font "STKaiti" --cjk-size 20 --latin-font Arial --latin-size 14`,
	Args: cobra.ExactArgs(1),
	RunE: runStyle,
}

func init() {
	rootCmd.AddCommand(styleCmd)

	addFormatFlag(styleCmd, "Output format (default the input format)")
	styleCmd.Flags().
		Bool("overwrite", false, "Replace the output file if it exists")
	addStyleFlags(styleCmd)
}

func runStyle(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	settings, ok := styleSettings(cmd.Flags(), cfg.ScriptTags())
	if !ok {
		return errors.New("no style changes given: use --preset or a style flag")
	}

	doc, err := subtitle.Open(inputPath, cfg.ParseOptions())
	if err != nil {
		return fmt.Errorf("failed to open subtitle: %w", err)
	}
	if format == "" {
		format = doc.Format
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = styledPath(inputPath, format, cfg.Batch.OutputDir)
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	settings.OutputFormat = format
	settings.OutputPath = outputPath
	settings.Overwrite = overwrite || cfg.Batch.Overwrite

	logger.Infow("Styling subtitle",
		"input", inputPath,
		"output", outputPath,
		"preset", settings.PresetID,
		"script_tags", !settings.ScriptTags.IsZero(),
	)

	return runSingle(cmd, batch.NewTask(batch.TaskStyleApply, doc, settings))
}
