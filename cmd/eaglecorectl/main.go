// Command eaglecorectl is a small, file-driven CLI for exercising the
// core without a live plugin host: it evaluates filters against a JSON
// item dump, reads and writes the scoped config store, dumps a library
// document, and watches a fixture-backed subscription feed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zackaryw/eaglecore/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "eaglecorectl",
	Short: "Inspect and drive the eaglecore library from the command line",
	Long: `eaglecorectl is a development and debugging tool for eaglecore.

It has no dependency on a running plugin host: filter evaluation reads
items from a JSON file, the config store reads/writes the same files a
real host-embedded plugin would, and "subscribe watch" drives the
change subscription manager from a small fixture file instead of a live
host connection.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		built, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("eaglecorectl: init logger: %w", err)
		}
		logging.SetLogger(built.Sugar())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(filterCmd, configCmd, libraryCmd, subscribeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
