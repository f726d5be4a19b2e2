package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rgsstrans/internal/engine"
	"rgsstrans/internal/handlers"
	"rgsstrans/internal/rglog"
	"rgsstrans/internal/rgwork"
	"rgsstrans/internal/xlate"
)

var (
	extractInput            string
	extractOutput           string
	extractOnlyUntranslated bool
	extractMachine          bool
	extractPluginConfig     string
	extractJobs             int
	extractQuiet            bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract translatable text from MapNNN.json/CommonEvents.json into translation-file JSON",
	RunE:  runExtract,
}

func init() {
	extractCmd.SilenceErrors = true
	extractCmd.SilenceUsage = true
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "Source file or directory (MapNNN.json/CommonEvents.json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output translation-file path or directory")
	extractCmd.Flags().BoolVar(&extractOnlyUntranslated, "only-untranslated", false, "Drop units whose text contains no CJK characters")
	extractCmd.Flags().BoolVar(&extractMachine, "machine-translation", false, "Tune extraction for a machine translation pipeline")
	extractCmd.Flags().StringVar(&extractPluginConfig, "plugin-config", "", "TOML file of user-defined plugin extraction rules")
	extractCmd.Flags().IntVar(&extractJobs, "jobs", 1, "Number of files to process concurrently in directory mode")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "Suppress progress output")
	_ = extractCmd.MarkFlagRequired("input")
	_ = extractCmd.MarkFlagRequired("output")
}

func extractionOptions() (xlate.ExtractionOptions, error) {
	options := xlate.DefaultExtractionOptions()
	if extractMachine {
		options = xlate.ForMachineTranslation()
	}
	if extractPluginConfig == "" {
		return options, nil
	}

	configs, err := handlers.LoadPluginConfigs(extractPluginConfig)
	if err != nil {
		return options, err
	}
	pluginHandler := handlers.NewPluginCommandHandler()
	for _, c := range configs {
		pluginHandler.AddUserConfig(c)
	}
	registry := handlers.WithDefaults()
	registry.RegisterHandler(pluginHandler)
	extractRegistry = registry
	return options, nil
}

// extractRegistry, when non-nil, overrides the default handler registry
// (set after loading a --plugin-config file).
var extractRegistry *handlers.HandlerRegistry

func pageParserFor() *engine.EventPageParser {
	if extractRegistry != nil {
		return engine.WithHandlers(extractRegistry)
	}
	return engine.NewEventPageParser()
}

func runExtract(cmd *cobra.Command, args []string) error {
	options, err := extractionOptions()
	if err != nil {
		return fmt.Errorf("loading plugin config: %w", err)
	}

	info, err := os.Stat(extractInput)
	if err != nil {
		return fmt.Errorf("input not found: %w", err)
	}

	reporter := NewReporter(extractQuiet)
	globalReporter = reporter
	defer reporter.Finish()

	if !info.IsDir() {
		result, err := extractOneFile(extractInput, options)
		if err != nil {
			return err
		}
		if err := writeTranslationFile(result, extractInput, extractOutput); err != nil {
			return err
		}
		rglog.Info("extract complete", rglog.String("input", extractInput), rglog.Int("units", result.UnitCount()))
		reporter.PrintSuccess("Extracted %d units from %s", result.UnitCount(), extractInput)
		return nil
	}

	sources, err := sourceFilesIn(extractInput)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(extractOutput, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	pool := rgwork.New(extractJobs)
	results := pool.Run(context.Background(), len(sources), func(ctx context.Context, index int) error {
		result, err := extractOneFile(sources[index], options)
		if err != nil {
			return err
		}
		return writeTranslationFile(result, sources[index], translationFilePathIn(extractOutput, sources[index]))
	})

	var failures, total int
	for i, r := range results {
		if r.Err != nil {
			failures++
			rglog.Warn("extract failed", rglog.String("file", sources[i]), rglog.Err(r.Err))
			reporter.PrintError("%s: %v", sources[i], r.Err)
			continue
		}
		total++
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to extract", failures, len(sources))
	}
	rglog.Info("extract complete", rglog.String("output", extractOutput), rglog.Int("files", total))
	reporter.PrintSuccess("Extracted %d files to %s", total, extractOutput)
	return nil
}

func extractOneFile(path string, options xlate.ExtractionOptions) (*engine.FileExtractionResult, error) {
	switch {
	case IsCommonEventsFile(path):
		parser := engine.WithCommonEventsPageParser(pageParserFor())
		return parser.ExtractFile(path, options)
	case IsMapFile(path):
		parser := engine.WithMapPageParser(pageParserFor())
		return parser.ExtractFile(path, options)
	default:
		return nil, fmt.Errorf("%s is neither a MapNNN.json nor CommonEvents.json file", path)
	}
}

func sourceFilesIn(dir string) ([]string, error) {
	maps, err := FindMapFiles(dir)
	if err != nil {
		return nil, err
	}
	commonEvents := filepath.Join(dir, "CommonEvents.json")
	if _, err := os.Stat(commonEvents); err == nil {
		maps = append(maps, commonEvents)
	}
	return maps, nil
}

func translationFilePathIn(outputDir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	return filepath.Join(outputDir, strings.TrimSuffix(base, ".json")+".translation.json")
}

// translationFileOnDisk is the serialized form of a translation file. It
// wraps *xlate.TranslationFile with the extraction timestamp, which is a
// property of the moment a file is written, not of the translation data
// itself, so it is stamped here rather than inside internal/xlate.
type translationFileOnDisk struct {
	*xlate.TranslationFile
	ExtractedAt string `json:"extracted_at"`
}

func writeTranslationFile(result *engine.FileExtractionResult, sourcePath, outputPath string) error {
	var file *xlate.TranslationFile
	switch {
	case IsCommonEventsFile(sourcePath):
		file = engine.NewCommonEventsParser().ToTranslationFile(result)
	default:
		file = engine.NewMapParser().ToTranslationFile(result)
	}

	if extractOnlyUntranslated {
		var filtered []xlate.TranslationUnit
		for _, u := range file.Units {
			if u.NeedsTranslation() {
				filtered = append(filtered, u)
			}
		}
		filteredFile := xlate.NewTranslationFile(file.SourceFile)
		filteredFile.AddUnits(filtered)
		file = filteredFile
	}

	onDisk := translationFileOnDisk{
		TranslationFile: file,
		ExtractedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(onDisk, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding translation file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
