// Command agsctl parses AGS files and manages the agsdb database from the shell.
package main

import (
	"context"
	"os"

	"github.com/localnerve/agsdb/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:          "agsctl",
	Short:        "AGS file and agsdb database tool",
	Long:         `Parses AGS4 files, migrates the agsdb schema and imports files into projects.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		var err error
		logger, err = logging.New(logLevel)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(parseCmd, migrateCmd, importCmd)
}

// commandContext returns the command's context, which is nil when a run
// function is called directly
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
