package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rgsstrans/internal/archive"
	"rgsstrans/internal/rglog"
	"rgsstrans/internal/rgwork"
	"rgsstrans/internal/textenc"
)

func init() {
	archiveCmd.SilenceErrors = true
	archiveCmd.SilenceUsage = true
	rootCmd.AddCommand(archiveCmd)
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Pack, unpack, or list an RGSS archive",
}

// --- archive list ---

var archiveListCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List the entries in an RGSS archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveList,
}

func init() {
	archiveListCmd.SilenceErrors = true
	archiveListCmd.SilenceUsage = true
	archiveCmd.AddCommand(archiveListCmd)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	reader, err := archive.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	entries := reader.Entries()
	fmt.Fprintf(cmd.OutOrStdout(), "%d entries (version %d)\n", len(entries), reader.Version())
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%10d  %s\n", e.Size, textenc.DecodeEntryName([]byte(e.Name)))
	}
	rglog.Info("list complete", rglog.String("archive", args[0]), rglog.Int("entries", len(entries)))
	return nil
}

// --- archive unpack ---

var (
	unpackOutput string
	unpackJobs   int
	unpackQuiet  bool
)

var archiveUnpackCmd = &cobra.Command{
	Use:   "unpack <archive>",
	Short: "Extract every entry in an RGSS archive to a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveUnpack,
}

func init() {
	archiveUnpackCmd.SilenceErrors = true
	archiveUnpackCmd.SilenceUsage = true
	archiveCmd.AddCommand(archiveUnpackCmd)
	archiveUnpackCmd.Flags().StringVarP(&unpackOutput, "output", "o", "", "Output directory (defaults to the archive name without its extension)")
	archiveUnpackCmd.Flags().IntVar(&unpackJobs, "jobs", 1, "Number of entries to extract concurrently")
	archiveUnpackCmd.Flags().BoolVarP(&unpackQuiet, "quiet", "q", false, "Suppress progress output")
}

func runArchiveUnpack(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	reader, err := archive.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	outputDir := unpackOutput
	if outputDir == "" {
		base := filepath.Base(inputPath)
		outputDir = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	reporter := NewReporter(unpackQuiet)
	globalReporter = reporter
	defer reporter.Finish()

	entries := reader.Entries()
	reporter.SetStatus(fmt.Sprintf("Unpacking %s", inputPath))

	pool := rgwork.New(unpackJobs)
	results := pool.Run(context.Background(), len(entries), func(ctx context.Context, index int) error {
		if reporter.IsCancelled() {
			return fmt.Errorf("cancelled")
		}
		return reader.ExtractEntry(entries[index].Name, outputDir)
	})

	var failures int
	for i, r := range results {
		if r.Err != nil {
			failures++
			rglog.Warn("unpack entry failed", rglog.String("entry", entries[i].Name), rglog.Err(r.Err))
			reporter.PrintError("%s: %v", entries[i].Name, r.Err)
			continue
		}
		reporter.SetProgress(float32(i+1)/float32(len(entries)), fmt.Sprintf("%d/%d", i+1, len(entries)))
		reporter.Update()
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d entries failed to extract", failures, len(entries))
	}
	rglog.Info("unpack complete", rglog.String("archive", inputPath), rglog.Int("entries", len(entries)))
	reporter.PrintSuccess("Unpacked %d entries to %s", len(entries), outputDir)
	return nil
}

// --- archive pack ---

var (
	packOutput  string
	packVersion int
	packV3Seed  uint32
)

var archivePackCmd = &cobra.Command{
	Use:   "pack <directory>",
	Short: "Pack a directory into an RGSS archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchivePack,
}

func init() {
	archivePackCmd.SilenceErrors = true
	archivePackCmd.SilenceUsage = true
	archiveCmd.AddCommand(archivePackCmd)
	archivePackCmd.Flags().StringVarP(&packOutput, "output", "o", "", "Output archive path")
	archivePackCmd.Flags().IntVar(&packVersion, "version", 3, "Archive format version to write (1 or 3)")
	archivePackCmd.Flags().Uint32Var(&packV3Seed, "seed", 0, "Version-3 key seed (0 picks a random seed)")
	_ = archivePackCmd.MarkFlagRequired("output")
}

func runArchivePack(cmd *cobra.Command, args []string) error {
	inputDir := args[0]

	var version archive.Version
	switch packVersion {
	case 1:
		version = archive.VersionV1
	case 3:
		version = archive.VersionV3
	default:
		return fmt.Errorf("unsupported archive version: %d (must be 1 or 3)", packVersion)
	}

	writer := archive.NewWriter(version)
	if version == archive.VersionV3 && packV3Seed != 0 {
		writer = writer.WithV3Key(packV3Seed)
	}

	count := 0
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		writer.AddFile(rel, data)
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", inputDir, err)
	}

	if err := writer.Write(packOutput); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	rglog.Info("pack complete", rglog.String("archive", packOutput), rglog.Int("files", count))
	reporter := NewReporter(false)
	reporter.PrintSuccess("Packed %d files into %s", count, packOutput)
	return nil
}
