package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/subkit/internal/batch"
	"github.com/mgpai22/subkit/internal/styling"
	"github.com/mgpai22/subkit/internal/subtitle"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addFormatFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringP("format", "f", "", usage)
}

// target format from --format; empty when unset
func formatFlag(cmd *cobra.Command) (subtitle.Format, error) {
	raw, _ := cmd.Flags().GetString("format")
	if raw == "" {
		return "", nil
	}
	return subtitle.ParseFormat(raw)
}

func addStyleFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("font-name", "", "Font name of the base style")
	flags.Float64("font-size", 0, "Font size of the base style")
	flags.String("color", "", "Primary text color as #RRGGBB")
	flags.String("outline-color", "", "Outline color as #RRGGBB")
	flags.String("back-color", "", "Shadow/background color as #RRGGBB")
	flags.Bool("bold", false, "Bold text")
	flags.Bool("italic", false, "Italic text")
	flags.Bool("underline", false, "Underlined text")
	flags.Int("alignment", 0, "Numpad alignment 1-9 (2 is bottom center)")
	flags.Int("margin-v", 0, "Vertical margin in pixels")
	flags.Float64("outline", 0, "Outline width")
	flags.Float64("shadow", 0, "Shadow depth")
	flags.String("preset", "", "Style preset id (see 'subkit presets')")

	flags.String("cjk-font", "", "Font for CJK text runs")
	flags.Float64("cjk-size", 0, "Font size for CJK text runs")
	flags.String("cjk-color", "", "Color for CJK text runs as #RRGGBB")
	flags.String("latin-font", "", "Font for Latin text runs")
	flags.Float64("latin-size", 0, "Font size for Latin text runs")
	flags.String("latin-color", "", "Color for Latin text runs as #RRGGBB")
}

// styleOverride builds an override from the style flags the user set.
func styleOverride(flags *pflag.FlagSet) styling.Override {
	var o styling.Override
	if flags.Changed("font-name") {
		v, _ := flags.GetString("font-name")
		o.FontName = &v
	}
	if flags.Changed("font-size") {
		v, _ := flags.GetFloat64("font-size")
		o.FontSize = &v
	}
	if flags.Changed("color") {
		v, _ := flags.GetString("color")
		o.PrimaryColor = &v
	}
	if flags.Changed("outline-color") {
		v, _ := flags.GetString("outline-color")
		o.OutlineColor = &v
	}
	if flags.Changed("back-color") {
		v, _ := flags.GetString("back-color")
		o.BackColor = &v
	}
	if flags.Changed("bold") {
		v, _ := flags.GetBool("bold")
		o.Bold = &v
	}
	if flags.Changed("italic") {
		v, _ := flags.GetBool("italic")
		o.Italic = &v
	}
	if flags.Changed("underline") {
		v, _ := flags.GetBool("underline")
		o.Underline = &v
	}
	if flags.Changed("alignment") {
		v, _ := flags.GetInt("alignment")
		o.Alignment = &v
	}
	if flags.Changed("margin-v") {
		v, _ := flags.GetInt("margin-v")
		o.MarginV = &v
	}
	if flags.Changed("outline") {
		v, _ := flags.GetFloat64("outline")
		o.Outline = &v
	}
	if flags.Changed("shadow") {
		v, _ := flags.GetFloat64("shadow")
		o.Shadow = &v
	}
	return o
}

// scriptTags layers the run tag flags over the configured tag sets.
func scriptTags(flags *pflag.FlagSet, base styling.ScriptTags) styling.ScriptTags {
	tags := base
	if v, _ := flags.GetString("cjk-font"); v != "" {
		tags.CJK.FontName = v
	}
	if v, _ := flags.GetFloat64("cjk-size"); v > 0 {
		tags.CJK.FontSize = v
	}
	if v, _ := flags.GetString("cjk-color"); v != "" {
		tags.CJK.Color = v
	}
	if v, _ := flags.GetString("latin-font"); v != "" {
		tags.Latin.FontName = v
	}
	if v, _ := flags.GetFloat64("latin-size"); v > 0 {
		tags.Latin.FontSize = v
	}
	if v, _ := flags.GetString("latin-color"); v != "" {
		tags.Latin.Color = v
	}
	return tags
}

// styleSettings collects every style flag into batch settings. ok is false
// when no styling was requested.
func styleSettings(flags *pflag.FlagSet, base styling.ScriptTags) (settings batch.Settings, ok bool) {
	settings.CustomStyle = styleOverride(flags)
	settings.PresetID, _ = flags.GetString("preset")
	settings.ScriptTags = scriptTags(flags, base)

	ok = !settings.CustomStyle.IsZero() || settings.PresetID != "" || !settings.ScriptTags.IsZero()
	return settings, ok
}

// styledPath is used when restyling in place would overwrite the source:
// movie.ass becomes movie.styled.ass.
func styledPath(src string, format subtitle.Format, dir string) string {
	if dir == "" {
		dir = filepath.Dir(src)
	}
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, base+".styled"+subtitle.GetExtensionForFormat(format))
}

func newProcessor(concurrency int) (*batch.Processor, error) {
	presets, err := styling.LoadPresets(cfg.Style.PresetsFile)
	if err != nil {
		return nil, err
	}
	p, err := batch.NewProcessor(batch.Config{
		Concurrency: concurrency,
		Presets:     presets,
		Sink:        batch.FileSink{},
		Logger:      logger.Named("batch"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create processor: %w", err)
	}
	return p, nil
}

func printResult(cmd *cobra.Command, result *batch.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d file(s) in %s: %d succeeded, %d failed",
		result.Total, result.Duration.Round(time.Millisecond), result.Successful, result.Failed)
	if result.Cancelled > 0 {
		fmt.Fprintf(out, ", %d cancelled", result.Cancelled)
	}
	fmt.Fprintln(out)
	for _, path := range result.OutputFiles {
		fmt.Fprintf(out, "  wrote %s\n", path)
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(out, "  error %s\n", msg)
	}
}
