package cli

import (
	"github.com/mgpai22/subkit/internal/config"
	"github.com/mgpai22/subkit/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subkit",
	Short: "Convert and restyle subtitle files",
	Long: `Subkit converts subtitles between ASS/SSA, SRT, WebVTT and MicroDVD SUB,
and edits their styling along the way.

Styles can be changed globally, from named presets, or per writing system
so CJK and Latin text in bilingual subtitles get their own font, size
and color.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logCfg := cfg.Log
		if verbose {
			logCfg.Level = "debug"
		}
		logger, err = logging.New(logCfg)
		if err != nil {
			logger = logging.NewLogger(verbose)
			logger.Warnw("Falling back to console logging", "error", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./subkit.yaml or the user config dir)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
