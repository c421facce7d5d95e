package cmd

import (
	"log/slog"
	"os"

	"github.com/jsphweid/tranhdex/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	format  string
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "tranhdex",
	Short: "Pattern index for đàn tranh scores",
	Long: `Reads MusicXML melodies, normalizes slurs and grace notes, and indexes
pitch and rhythm n-grams, lyric alignment and ornamentation for querying.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "o", "yaml", "output format: yaml, json or table")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
