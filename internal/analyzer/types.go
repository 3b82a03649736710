// Package analyzer is the static analysis engine: structural extraction,
// size metrics, generic tree serialization and security scanning over a
// parsed Python source unit.
package analyzer

import "encoding/json"

// Severity ranks a security finding. The order is total:
// CRITICAL > HIGH > MEDIUM > LOW > INFO.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
	SeverityInfo:     4,
}

// Rank returns the sort position of the severity, CRITICAL first. Unknown
// severities sort after INFO.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return len(severityRanks)
}

// KnownSeverity reports whether name is one of the defined severities.
func KnownSeverity(name string) bool {
	_, ok := severityRanks[Severity(name)]
	return ok
}

// SourceUnit is one immutable unit of source text under analysis.
type SourceUnit struct {
	Text string
	Lang string
}

// FunctionInfo summarizes one function definition, methods included.
type FunctionInfo struct {
	Name         string   `json:"name"`
	Line         int      `json:"lineno"`
	Args         []string `json:"args"`
	Returns      *string  `json:"returns"`
	Decorators   []string `json:"decorators"`
	HasDocstring bool     `json:"has_docstring"`
}

// ClassInfo summarizes one class definition.
type ClassInfo struct {
	Name         string   `json:"name"`
	Line         int      `json:"lineno"`
	Bases        []string `json:"bases"`
	Methods      []string `json:"methods"`
	HasDocstring bool     `json:"has_docstring"`
}

// ImportInfo is one imported alias. For from-imports Module carries the
// dotted module path with the imported symbol appended as the final segment.
type ImportInfo struct {
	Module string  `json:"module"`
	Alias  *string `json:"alias"`
	Line   int     `json:"lineno"`
}

// GlobalInfo is one module-level assignment target.
type GlobalInfo struct {
	Name string `json:"name"`
	Line int    `json:"lineno"`
}

// StructureReport is the structural fact sheet for a source unit. All
// slices are non-nil: a unit without matches yields empty lists.
type StructureReport struct {
	Functions []FunctionInfo `json:"functions"`
	Classes   []ClassInfo    `json:"classes"`
	Imports   []ImportInfo   `json:"imports"`
	Globals   []GlobalInfo   `json:"globals"`
}

// MetricsReport carries the quantitative size and complexity metrics.
type MetricsReport struct {
	TotalLines      int `json:"total_lines"`
	CodeLines       int `json:"code_lines"`
	CommentLines    int `json:"comment_lines"`
	BlankLines      int `json:"blank_lines"`
	FunctionCount   int `json:"function_count"`
	ClassCount      int `json:"class_count"`
	ImportCount     int `json:"import_count"`
	MaxNestingDepth int `json:"max_nesting_depth"`
}

// Finding is one reported security issue.
type Finding struct {
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Line           int      `json:"lineno"`
	Recommendation string   `json:"recommendation"`
}

// AnalysisResult is the merged output of one analysis call. On failure only
// Success and Errors are populated; partial results are never returned.
type AnalysisResult struct {
	Success   bool             `json:"success"`
	Errors    []string         `json:"errors,omitempty"`
	Structure *StructureReport `json:"structure,omitempty"`
	Metrics   *MetricsReport   `json:"metrics,omitempty"`
	AST       map[string]any   `json:"ast,omitempty"`
	Findings  []Finding        `json:"findings,omitempty"`
}

// MarshalJSON renders the two envelope shapes: a success envelope always
// carries the findings key, empty scan included, while a failure envelope
// carries only success and errors.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool     `json:"success"`
			Errors  []string `json:"errors,omitempty"`
		}{r.Success, r.Errors})
	}

	findings := r.Findings
	if findings == nil {
		findings = []Finding{}
	}
	return json.Marshal(struct {
		Success   bool             `json:"success"`
		Structure *StructureReport `json:"structure,omitempty"`
		Metrics   *MetricsReport   `json:"metrics,omitempty"`
		AST       map[string]any   `json:"ast,omitempty"`
		Findings  []Finding        `json:"findings"`
	}{r.Success, r.Structure, r.Metrics, r.AST, findings})
}
