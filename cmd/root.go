package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mezonai/blackball/logx"
)

var (
	logLevel  string
	logFile   string
	logStderr bool
)

var rootCmd = &cobra.Command{
	Use:   "blackball",
	Short: "Ring signature spent output analyzer",
	Long: "Command line interface for finding outputs that are provably spent on ring signature ledgers " +
		"and maintaining the shared blackball database.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logx.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logx.SetLevel(level)
		logx.Configure(logFile, logStderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "rotating log file (default ./logs/blackball.log or $LOGFILE)")
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", true, "mirror log lines to stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed: ", err)
		os.Exit(1)
	}
}
