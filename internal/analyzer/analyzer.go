package analyzer

import (
	"fmt"

	"github.com/asears/grand-ai-hotel/internal/parser"
	"github.com/asears/grand-ai-hotel/internal/pyast"
)

// Engine analyzes Python source units. An Engine holds only the parsing
// front-end and the process-wide rule table, both read-only, so one Engine
// serves any number of concurrent Analyze calls without locking.
type Engine struct {
	parser *parser.Parser
}

// New creates an analysis engine for the Python grammar.
func New() *Engine {
	return &Engine{parser: parser.New()}
}

// Analyze runs the full pipeline over one source text: parse, structural
// extraction, metrics, tree serialization and the security scan. The call
// is pure and idempotent: identical input always yields identical output.
//
// A syntax failure returns Success=false with one error per parse failure.
// Any failure in a post-parse stage, panics included, is converted into a
// single analysis error; partial results are never returned.
func (e *Engine) Analyze(source string) (result AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			result = AnalysisResult{
				Success: false,
				Errors:  []string{fmt.Sprintf("analysis error: %v", r)},
			}
		}
	}()

	tree, parseErrs := e.parser.Parse([]byte(source))
	if len(parseErrs) > 0 {
		errs := make([]string, 0, len(parseErrs))
		for _, pe := range parseErrs {
			errs = append(errs, pe.Error())
		}
		return AnalysisResult{Success: false, Errors: errs}
	}

	unit := SourceUnit{Text: source, Lang: "python"}
	return AnalysisResult{
		Success:   true,
		Structure: ExtractStructure(tree),
		Metrics:   ComputeMetrics(unit, tree),
		AST:       tree.Serialize(tree.Root()),
		Findings:  ScanSecurity(unit, tree),
	}
}

// Scan parses the source and runs only the security rule engine. Callers
// that already hold a tree can use ScanSecurity directly instead.
func (e *Engine) Scan(source string) ([]Finding, []parser.ParseError) {
	tree, parseErrs := e.parser.Parse([]byte(source))
	if len(parseErrs) > 0 {
		return nil, parseErrs
	}
	return ScanSecurity(SourceUnit{Text: source, Lang: "python"}, tree), nil
}

// Parse exposes the front-end for callers that want to combine a pre-built
// tree with the individual stages.
func (e *Engine) Parse(source string) (*pyast.Tree, []parser.ParseError) {
	return e.parser.Parse([]byte(source))
}
