package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mgpai22/subkit/internal/styling"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available style presets",
	Long: `List the builtin style presets and those loaded from the presets file
configured under style.presets_file.

Examples:
  subkit presets
  subkit presets --config subkit.yaml`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	registry, err := styling.LoadPresets(cfg.Style.PresetsFile)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tTAGS\tDESCRIPTION")
	for _, p := range registry.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Category, strings.Join(p.Tags, ","), p.Description)
	}
	return tw.Flush()
}
