package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
	"github.com/asears/grand-ai-hotel/internal/cache"
	"github.com/asears/grand-ai-hotel/internal/config"
	"github.com/asears/grand-ai-hotel/internal/discovery"
)

var (
	analyzePretty  bool
	analyzeOutput  string
	analyzeNoCache bool
	analyzeQuiet   bool
)

// fileResult pairs a path with its raw analysis result so cached bytes pass
// through unchanged.
type fileResult struct {
	Path   string          `json:"path"`
	Result json.RawMessage `json:"result"`
}

// batchReport is the multi-file output shape.
type batchReport struct {
	ReportID    string       `json:"report_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	FileCount   int          `json:"file_count"`
	Files       []fileResult `json:"files"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Analyze Python files or directories",
	Long: `Analyze runs the full pipeline over each Python file: structure
extraction, metrics, tree serialization and the security scan. A single file
prints its result object; directories are discovered via the configured glob
patterns and print a batch report.`,
	Args: cobra.ArbitraryArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "indent JSON output")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write output to file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "bypass the result cache")
	analyzeCmd.Flags().BoolVarP(&analyzeQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if analyzePretty {
		cfg.Output.Pretty = true
	}

	files, err := resolvePaths(args, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Python files found")
	}

	engine := analyzer.New()
	store := openCache(cfg)
	if store != nil {
		defer store.Close()
	}

	var bar *progressbar.ProgressBar
	if len(files) > 1 && !analyzeQuiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Analyzing files"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionThrottle(65*time.Millisecond),
		)
	}

	results := make([]fileResult, 0, len(files))
	for _, file := range files {
		data, err := analyzeFile(engine, store, file)
		if err != nil {
			return err
		}
		results = append(results, fileResult{Path: file, Result: data})
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	var payload any
	if len(results) == 1 {
		payload = results[0].Result
	} else {
		payload = batchReport{
			ReportID:    uuid.NewString(),
			GeneratedAt: time.Now().UTC(),
			FileCount:   len(results),
			Files:       results,
		}
	}

	return writeJSON(payload, cfg.Output.Pretty, analyzeOutput)
}

// analyzeFile returns the marshalled analysis result for one file, served
// from the cache when the content hash is known.
func analyzeFile(engine *analyzer.Engine, store *cache.Cache, path string) (json.RawMessage, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var key string
	if store != nil {
		key = cache.Key(source)
		if data, ok, err := store.Get(key); err == nil && ok {
			return data, nil
		} else if err != nil {
			slog.Debug("cache lookup failed", "path", path, "error", err)
		}
	}

	result := engine.Analyze(string(source))
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result for %s: %w", path, err)
	}

	if store != nil {
		if err := store.Put(key, data); err != nil {
			slog.Debug("cache store failed", "path", path, "error", err)
		}
	}
	return data, nil
}

// resolvePaths expands file and directory arguments into the list of files
// to analyze. Directories go through glob discovery; explicit files are
// taken as-is.
func resolvePaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		fd, err := discovery.New(arg, cfg.Scan.Include, cfg.Scan.Ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		found, err := fd.Discover()
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// openCache opens the configured result cache, or returns nil when caching
// is disabled. Cache failures degrade to uncached analysis.
func openCache(cfg *config.Config) *cache.Cache {
	if !cfg.Cache.Enabled || analyzeNoCache {
		return nil
	}
	store, err := cache.Open(cfg.Cache.Location, cfg.Cache.MemoryCapacity)
	if err != nil {
		slog.Warn("result cache unavailable", "error", err)
		return nil
	}
	return store
}

// writeJSON renders the payload to the output file or stdout.
func writeJSON(payload any, pretty bool, outputPath string) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputPath, data, 0o644)
}
