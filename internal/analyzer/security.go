package analyzer

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/asears/grand-ai-hotel/internal/pyast"
)

// securityRule is one independent scan over a source unit. Rules run in
// table order; that order is also the tie-break for equal severities in the
// final sort, so the table must stay fixed.
type securityRule struct {
	name string
	scan func(rc *ruleContext)
}

// securityRules is the process-wide rule table. It is initialized once and
// never mutated; this is the only global state the engine carries.
var securityRules = []securityRule{
	{"dangerous-functions", checkDangerousFunctions},
	{"sql-injection", checkSQLInjection},
	{"path-traversal", checkPathTraversal},
	{"unsafe-deserialization", checkUnsafeDeserialization},
	{"hardcoded-secrets", checkHardcodedSecrets},
	{"weak-crypto", checkWeakCrypto},
	{"shell-injection", checkShellInjection},
}

// secretPatterns match assignments of quoted literals to secret-looking
// names, evaluated per physical source line.
var secretPatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)password\s*=\s*['"][\w!@#$%^&*]+['"]`), "Password"},
	{regexp.MustCompile(`(?i)api[_-]?key\s*=\s*['"][\w-]+['"]`), "API Key"},
	{regexp.MustCompile(`(?i)secret[_-]?key\s*=\s*['"][\w-]+['"]`), "Secret Key"},
	{regexp.MustCompile(`(?i)token\s*=\s*['"][\w.-]+['"]`), "Token"},
	{regexp.MustCompile(`(?i)aws[_-]?secret\s*=\s*['"][\w/+]+['"]`), "AWS Secret"},
}

type ruleContext struct {
	tree     *pyast.Tree
	lines    []string
	aliases  map[string]string
	findings []Finding
}

func (rc *ruleContext) report(severity Severity, title, description string, line int, recommendation string) {
	rc.findings = append(rc.findings, Finding{
		Severity:       severity,
		Title:          title,
		Description:    description,
		Line:           line,
		Recommendation: recommendation,
	})
}

// resolveModule maps a local name to the module it refers to. Aliased
// imports resolve through the import table; a name that was never imported
// resolves to itself, so bare module names still match.
func (rc *ruleContext) resolveModule(local string) string {
	if module, ok := rc.aliases[local]; ok {
		return module
	}
	return local
}

// ScanSecurity runs the full rule table over a pre-built tree and returns
// findings stable-sorted by severity rank. Equal severities keep rule
// execution order, not source-line order.
func ScanSecurity(unit SourceUnit, t *pyast.Tree) []Finding {
	rc := &ruleContext{
		tree:     t,
		lines:    splitLines(unit.Text),
		aliases:  collectImportAliases(t),
		findings: []Finding{},
	}
	for _, rule := range securityRules {
		rule.scan(rc)
	}
	sort.SliceStable(rc.findings, func(i, j int) bool {
		return rc.findings[i].Severity.Rank() < rc.findings[j].Severity.Rank()
	})
	return rc.findings
}

// collectImportAliases maps local names bound by plain imports to their
// module paths: "import pickle as p" binds p, "import os.path" binds os.
func collectImportAliases(t *pyast.Tree) map[string]string {
	aliases := make(map[string]string)
	t.WalkBreadth(t.Root(), func(id pyast.NodeID, n *pyast.Node) bool {
		if n.Kind != pyast.KindImport {
			return true
		}
		for _, alias := range t.List(id, "names") {
			module := t.Str(alias, "name")
			if asname := t.Str(alias, "asname"); asname != "" {
				aliases[asname] = module
				continue
			}
			top := module
			for i := 0; i < len(module); i++ {
				if module[i] == '.' {
					top = module[:i]
					break
				}
			}
			aliases[top] = top
		}
		return true
	})
	return aliases
}

// eachCall visits every Call node in the tree, level order.
func (rc *ruleContext) eachCall(visit func(id pyast.NodeID, n *pyast.Node)) {
	rc.tree.WalkBreadth(rc.tree.Root(), func(id pyast.NodeID, n *pyast.Node) bool {
		if n.Kind == pyast.KindCall {
			visit(id, n)
		}
		return true
	})
}

// callee splits a call target into its receiver name and attribute. For a
// bare-name call the attribute is empty.
func (rc *ruleContext) callee(call pyast.NodeID) (receiver, attr string) {
	t := rc.tree
	fn := t.Child(call, "func")
	fnNode := t.Node(fn)
	if fnNode == nil {
		return "", ""
	}
	switch fnNode.Kind {
	case pyast.KindName:
		return t.Str(fn, "id"), ""
	case pyast.KindAttribute:
		value := t.Child(fn, "value")
		if vn := t.Node(value); vn != nil && vn.Kind == pyast.KindName {
			return t.Str(value, "id"), t.Str(fn, "attr")
		}
		return "", t.Str(fn, "attr")
	}
	return "", ""
}

func checkDangerousFunctions(rc *ruleContext) {
	dangerous := map[string]struct {
		severity Severity
		desc     string
	}{
		"eval":       {SeverityHigh, "Arbitrary code execution risk"},
		"exec":       {SeverityHigh, "Arbitrary code execution risk"},
		"compile":    {SeverityMedium, "Dynamic code compilation"},
		"__import__": {SeverityMedium, "Dynamic import can load malicious code"},
	}

	rc.eachCall(func(id pyast.NodeID, n *pyast.Node) {
		name, attr := rc.callee(id)
		if attr != "" || name == "" {
			return
		}
		entry, ok := dangerous[name]
		if !ok {
			return
		}
		rc.report(entry.severity,
			fmt.Sprintf("Dangerous function: %s()", name),
			entry.desc,
			n.Line,
			fmt.Sprintf("Avoid using %s(). Consider safer alternatives like ast.literal_eval() for eval(), or refactor to eliminate dynamic code execution.", name))
	})
}

func checkSQLInjection(rc *ruleContext) {
	t := rc.tree
	rc.eachCall(func(id pyast.NodeID, n *pyast.Node) {
		_, attr := rc.callee(id)
		if attr != "execute" {
			return
		}
		args := t.List(id, "args")
		if len(args) == 0 {
			return
		}
		first := t.Node(args[0])
		if first == nil {
			return
		}
		switch first.Kind {
		case pyast.KindJoinedStr:
			rc.report(SeverityHigh,
				"SQL Injection: f-string in SQL query",
				"Using f-strings for SQL queries allows injection attacks",
				n.Line,
				"Use parameterized queries with placeholders: execute('SELECT * FROM users WHERE id = ?', [user_id])")
		case pyast.KindBinOp:
			if t.Str(args[0], "op") == "+" && containsStringConstant(t, args[0]) {
				rc.report(SeverityHigh,
					"SQL Injection: String concatenation in query",
					"String concatenation in SQL queries is unsafe",
					n.Line,
					"Use parameterized queries instead of concatenation")
			}
		}
	})
}

// containsStringConstant reports whether any node in the subtree is a
// string literal.
func containsStringConstant(t *pyast.Tree, id pyast.NodeID) bool {
	found := false
	t.Walk(id, func(child pyast.NodeID, n *pyast.Node) bool {
		if found {
			return false
		}
		if isStringConstant(t, child) {
			found = true
			return false
		}
		return true
	})
	return found
}

func checkPathTraversal(rc *ruleContext) {
	t := rc.tree
	fileOps := map[string]bool{"open": true, "read": true, "write": true}

	rc.eachCall(func(id pyast.NodeID, n *pyast.Node) {
		name, attr := rc.callee(id)
		if attr != "" || !fileOps[name] {
			return
		}
		args := t.List(id, "args")
		if len(args) == 0 {
			return
		}
		first := t.Node(args[0])
		if first == nil {
			return
		}
		// Heuristic: any non-literal path argument is flagged, which
		// over-reports on ordinary parameterized file access.
		if first.Kind == pyast.KindName || first.Kind == pyast.KindBinOp {
			rc.report(SeverityMedium,
				"Potential path traversal",
				"User-controlled file paths can lead to unauthorized access",
				n.Line,
				"Validate and sanitize file paths. Use os.path.basename() or pathlib.Path.resolve() to prevent directory traversal.")
		}
	})
}

func checkUnsafeDeserialization(rc *ruleContext) {
	rc.eachCall(func(id pyast.NodeID, n *pyast.Node) {
		name, attr := rc.callee(id)
		if attr != "loads" && attr != "load" {
			return
		}
		if rc.resolveModule(name) != "pickle" {
			return
		}
		rc.report(SeverityHigh,
			"Unsafe deserialization: pickle",
			"pickle.loads() can execute arbitrary code from untrusted data",
			n.Line,
			"Use JSON or other safe serialization formats. If pickle is required, ensure data source is trusted and verified.")
	})
}

func checkHardcodedSecrets(rc *ruleContext) {
	for i, line := range rc.lines {
		for _, pattern := range secretPatterns {
			if pattern.re.MatchString(line) {
				rc.report(SeverityCritical,
					fmt.Sprintf("Hardcoded secret: %s", pattern.label),
					fmt.Sprintf("%s found in source code", pattern.label),
					i+1,
					"Move secrets to environment variables or secure vault. Use os.getenv() or python-dotenv to load from .env files.")
			}
		}
	}
}

func checkWeakCrypto(rc *ruleContext) {
	weak := map[string]string{"md5": "MD5", "sha1": "SHA1"}

	rc.eachCall(func(id pyast.NodeID, n *pyast.Node) {
		name, attr := rc.callee(id)
		upper, ok := weak[attr]
		if !ok || rc.resolveModule(name) != "hashlib" {
			return
		}
		rc.report(SeverityMedium,
			fmt.Sprintf("Weak cryptographic algorithm: %s", attr),
			fmt.Sprintf("%s is cryptographically weak", upper),
			n.Line,
			"Use stronger algorithms like SHA-256 or SHA-512 for cryptographic purposes.")
	})
}

func checkShellInjection(rc *ruleContext) {
	t := rc.tree
	subprocessCalls := map[string]bool{"call": true, "run": true, "Popen": true}

	rc.eachCall(func(id pyast.NodeID, n *pyast.Node) {
		name, attr := rc.callee(id)
		if attr == "system" && rc.resolveModule(name) == "os" {
			rc.report(SeverityHigh,
				"Shell injection risk: os.system()",
				"os.system() with user input can execute arbitrary commands",
				n.Line,
				"Use subprocess.run() with shell=False and argument list. Validate and sanitize all user input.")
			return
		}
		if !subprocessCalls[attr] {
			return
		}
		for _, kw := range t.List(id, "keywords") {
			if t.Str(kw, "arg") != "shell" {
				continue
			}
			value := t.Child(kw, "value")
			vn := t.Node(value)
			if vn == nil || vn.Kind != pyast.KindConstant {
				continue
			}
			if v, ok := vn.Field("value"); ok && v.Kind() == pyast.ValueBool && v.Bool() {
				rc.report(SeverityHigh,
					"Shell injection risk: shell=True",
					"subprocess with shell=True is vulnerable to injection",
					n.Line,
					"Set shell=False and pass command as list of arguments")
			}
		}
	})
}
