package analyzer

import (
	"strings"

	"github.com/asears/grand-ai-hotel/internal/pyast"
)

// nestingKinds are the constructs that deepen the nesting count. Descending
// into any other kind leaves the depth unchanged.
var nestingKinds = map[pyast.Kind]bool{
	pyast.KindIf:          true,
	pyast.KindFor:         true,
	pyast.KindWhile:       true,
	pyast.KindWith:        true,
	pyast.KindTry:         true,
	pyast.KindFunctionDef: true,
	pyast.KindClassDef:    true,
}

// ComputeMetrics derives line and node-count metrics for a source unit.
// Line classification is line-local: a comment marker inside a multi-line
// string still counts the line as a comment line. Known limitation.
func ComputeMetrics(unit SourceUnit, t *pyast.Tree) *MetricsReport {
	m := &MetricsReport{}

	for _, line := range splitLines(unit.Text) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.BlankLines++
		case strings.HasPrefix(trimmed, "#"):
			m.CommentLines++
		default:
			m.CodeLines++
		}
		m.TotalLines++
	}

	t.Walk(t.Root(), func(_ pyast.NodeID, n *pyast.Node) bool {
		switch n.Kind {
		case pyast.KindFunctionDef:
			m.FunctionCount++
		case pyast.KindClassDef:
			m.ClassCount++
		case pyast.KindImport, pyast.KindImportFrom:
			m.ImportCount++
		}
		return true
	})

	m.MaxNestingDepth = maxNestingDepth(t)
	return m
}

// maxNestingDepth walks the tree with an explicit stack, incrementing the
// running depth only when descending into a nesting construct.
func maxNestingDepth(t *pyast.Tree) int {
	root := t.Root()
	if root == pyast.NoNode {
		return 0
	}

	type frame struct {
		id    pyast.NodeID
		depth int
	}
	maxDepth := 0
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range t.Children(cur.id) {
			n := t.Node(child)
			if n == nil {
				continue
			}
			depth := cur.depth
			if nestingKinds[n.Kind] {
				depth++
				if depth > maxDepth {
					maxDepth = depth
				}
			}
			stack = append(stack, frame{child, depth})
		}
	}
	return maxDepth
}

// splitLines splits source into physical lines without counting a trailing
// newline as an extra empty line, matching how line numbers are assigned.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
