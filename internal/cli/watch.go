package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
	"github.com/asears/grand-ai-hotel/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Watch directories and re-analyze changed Python files",
	Long: `Watch monitors the given directories (default: current directory)
and re-runs the analysis pipeline whenever a Python file is created or
modified. Results are summarized to the log; use analyze for full output.`,
	Args: cobra.ArbitraryArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}

	engine := analyzer.New()
	fw, err := watcher.New(dirs)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := fw.Start(ctx, func(files []string) {
		for _, file := range files {
			reportChange(engine, file)
		}
	}); err != nil {
		return err
	}

	slog.Info("watching for changes", "dirs", dirs)
	<-ctx.Done()
	slog.Info("shutting down")
	return nil
}

// reportChange analyzes one changed file and logs a one-line summary.
func reportChange(engine *analyzer.Engine, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read changed file", "path", path, "error", err)
		return
	}

	result := engine.Analyze(string(source))
	if !result.Success {
		slog.Warn("analysis failed", "path", path, "errors", result.Errors)
		return
	}

	attrs := []any{"path", path, "findings", len(result.Findings)}
	if result.Metrics != nil {
		attrs = append(attrs, "code_lines", result.Metrics.CodeLines)
	}
	for _, finding := range result.Findings {
		if finding.Severity == analyzer.SeverityCritical || finding.Severity == analyzer.SeverityHigh {
			attrs = append(attrs, "worst", string(finding.Severity))
			break
		}
	}
	slog.Info("analyzed", attrs...)
}
