// Package cli implements the rgsstrans command-line interface: archive
// packing/unpacking/listing and event-command extract/inject, wired as
// cobra subcommands over the internal/archive and internal/engine packages.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"rgsstrans/internal/rglog"
)

// Version is set by main.go.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rgsstrans",
	Short: "RGSS archive and RPG Maker MV/MZ event-text translation toolkit",
	Long: `rgsstrans works with RPG Maker RGSS archives and MV/MZ project data:
  - archive pack/unpack/list: read and write RGSSAD/RGSS2A/RGSS3A archives
  - extract: pull translatable event text out of MapNNN.json/CommonEvents.json
  - inject: write translated text back into those same files`,
	Version: Version,
}

// globalReporter lets the signal handler cancel whatever operation is
// currently in progress.
var globalReporter *Reporter

var debugLogging bool

// Execute runs the CLI application and returns its exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if globalReporter != nil {
			globalReporter.Cancel()
			fmt.Fprintln(os.Stderr, "\nCancelling...")
		} else {
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debugLogging {
			rglog.EnableDebugLogging()
		}
	}
}
