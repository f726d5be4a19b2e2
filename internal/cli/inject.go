package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rgsstrans/internal/engine"
	"rgsstrans/internal/rglog"
	"rgsstrans/internal/rgwork"
	"rgsstrans/internal/xlate"
)

var (
	injectTarget   string
	injectInput    string
	injectJobs     int
	injectMaxWidth int
	injectQuiet    bool
)

var injectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Write translated text from a translation-file back into MapNNN.json/CommonEvents.json",
	RunE:  runInject,
}

func init() {
	injectCmd.SilenceErrors = true
	injectCmd.SilenceUsage = true
	rootCmd.AddCommand(injectCmd)

	injectCmd.Flags().StringVarP(&injectTarget, "target", "t", "", "MapNNN.json/CommonEvents.json file or directory to write into")
	injectCmd.Flags().StringVarP(&injectInput, "input", "i", "", "Translation-file JSON (or directory of them) to read translations from")
	injectCmd.Flags().IntVar(&injectJobs, "jobs", 1, "Number of files to process concurrently in directory mode")
	injectCmd.Flags().IntVar(&injectMaxWidth, "max-line-length", 0, "Wrap translated dialogue at this width (0 = unlimited)")
	injectCmd.Flags().BoolVarP(&injectQuiet, "quiet", "q", false, "Suppress progress output")
	_ = injectCmd.MarkFlagRequired("target")
	_ = injectCmd.MarkFlagRequired("input")
}

func runInject(cmd *cobra.Command, args []string) error {
	options := xlate.DefaultInjectionOptions().WithMaxLineLength(injectMaxWidth)

	targetInfo, err := os.Stat(injectTarget)
	if err != nil {
		return fmt.Errorf("target not found: %w", err)
	}

	reporter := NewReporter(injectQuiet)
	globalReporter = reporter
	defer reporter.Finish()

	if !targetInfo.IsDir() {
		result, err := injectOneFile(injectTarget, injectInput, options)
		if err != nil {
			return err
		}
		rglog.Info("inject complete", rglog.String("target", injectTarget), rglog.Int("applied", result.Applied))
		reporter.PrintSuccess("Applied %d/%d translations to %s (%d commands modified)",
			result.Applied, result.Applied+result.NotFound, injectTarget, result.CommandsModified)
		return nil
	}

	sources, err := sourceFilesIn(injectTarget)
	if err != nil {
		return err
	}

	pool := rgwork.New(injectJobs)
	type outcome struct {
		result *engine.FileInjectionResult
	}
	outcomes := make([]outcome, len(sources))
	results := pool.Run(context.Background(), len(sources), func(ctx context.Context, index int) error {
		translationPath := translationFilePathIn(injectInput, sources[index])
		result, err := injectOneFile(sources[index], translationPath, options)
		if err != nil {
			return err
		}
		outcomes[index] = outcome{result: result}
		return nil
	})

	var failures, applied, notFound int
	for i, r := range results {
		if r.Err != nil {
			failures++
			rglog.Warn("inject failed", rglog.String("file", sources[i]), rglog.Err(r.Err))
			reporter.PrintError("%s: %v", sources[i], r.Err)
			continue
		}
		applied += outcomes[i].result.Applied
		notFound += outcomes[i].result.NotFound
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to inject", failures, len(sources))
	}
	rglog.Info("inject complete", rglog.String("input", injectInput), rglog.Int("applied", applied))
	reporter.PrintSuccess("Applied %d/%d translations across %d files", applied, applied+notFound, len(sources))
	return nil
}

func injectOneFile(targetPath, translationPath string, options xlate.InjectionOptions) (*engine.FileInjectionResult, error) {
	translations, err := loadTranslations(translationPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", translationPath, err)
	}

	switch {
	case IsCommonEventsFile(targetPath):
		return engine.NewCommonEventsParser().InjectFile(targetPath, translations, options)
	case IsMapFile(targetPath):
		return engine.NewMapParser().InjectFile(targetPath, translations, options)
	default:
		return nil, fmt.Errorf("%s is neither a MapNNN.json nor CommonEvents.json file", targetPath)
	}
}

func loadTranslations(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file xlate.TranslationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing translation file: %w", err)
	}

	translations := make(map[string]string, len(file.Units))
	for _, u := range file.Units {
		if u.Translated != nil {
			translations[u.ID] = *u.Translated
		}
	}
	return translations, nil
}

