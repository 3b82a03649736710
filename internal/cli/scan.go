package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asears/grand-ai-hotel/internal/analyzer"
	"github.com/asears/grand-ai-hotel/internal/config"
)

var (
	scanPretty bool
	scanOutput string
	scanFailOn string
)

// scanResult is the per-file output shape of the scan command.
type scanResult struct {
	Path     string             `json:"path"`
	Errors   []string           `json:"errors,omitempty"`
	Findings []analyzer.Finding `json:"findings"`
}

type scanReport struct {
	FileCount    int          `json:"file_count"`
	FindingCount int          `json:"finding_count"`
	Files        []scanResult `json:"files"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "Run the security scan only",
	Long: `Scan runs the security rules over each Python file and reports the
findings without structure extraction or tree serialization. When --fail-on
is set, the command exits non-zero if any finding reaches that severity.`,
	Args: cobra.ArbitraryArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanPretty, "pretty", false, "indent JSON output")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write output to file instead of stdout")
	scanCmd.Flags().StringVar(&scanFailOn, "fail-on", "", "exit non-zero on findings at or above this severity (LOW, MEDIUM, HIGH, CRITICAL)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if scanPretty {
		cfg.Output.Pretty = true
	}
	threshold := cfg.Scan.FailOn
	if scanFailOn != "" {
		threshold = scanFailOn
	}
	threshold = strings.ToUpper(threshold)
	if threshold != "" && !analyzer.KnownSeverity(threshold) {
		return fmt.Errorf("unknown severity %q", threshold)
	}

	files, err := resolvePaths(args, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Python files found")
	}

	engine := analyzer.New()
	report := scanReport{Files: make([]scanResult, 0, len(files))}
	worst := analyzer.Severity("")
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		findings, parseErrs := engine.Scan(string(source))
		result := scanResult{Path: file, Findings: findings}
		if result.Findings == nil {
			result.Findings = []analyzer.Finding{}
		}
		for _, perr := range parseErrs {
			result.Errors = append(result.Errors, perr.Error())
		}
		for _, finding := range findings {
			if finding.Severity.Rank() < worst.Rank() {
				worst = finding.Severity
			}
		}
		report.FindingCount += len(findings)
		report.Files = append(report.Files, result)
	}
	report.FileCount = len(report.Files)

	if err := writeJSON(report, cfg.Output.Pretty, scanOutput); err != nil {
		return err
	}

	if threshold != "" && worst.Rank() <= analyzer.Severity(threshold).Rank() {
		cmd.SilenceUsage = true
		return fmt.Errorf("found %s findings at or above %s", worst, threshold)
	}
	return nil
}
