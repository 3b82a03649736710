package analyzer

import "github.com/asears/grand-ai-hotel/internal/pyast"

// ExtractStructure walks the whole tree and collects function, class, import
// and module-level assignment facts. It cannot fail: a tree without matching
// nodes yields empty lists. The walk is level order, so every top-level
// definition is listed before any nested one.
func ExtractStructure(t *pyast.Tree) *StructureReport {
	report := &StructureReport{
		Functions: []FunctionInfo{},
		Classes:   []ClassInfo{},
		Imports:   []ImportInfo{},
		Globals:   []GlobalInfo{},
	}

	t.WalkBreadth(t.Root(), func(id pyast.NodeID, n *pyast.Node) bool {
		switch n.Kind {
		case pyast.KindFunctionDef:
			report.Functions = append(report.Functions, extractFunction(t, id, n))
		case pyast.KindClassDef:
			report.Classes = append(report.Classes, extractClass(t, id, n))
		case pyast.KindImport:
			for _, alias := range t.List(id, "names") {
				report.Imports = append(report.Imports, ImportInfo{
					Module: t.Str(alias, "name"),
					Alias:  optionalStr(t, alias, "asname"),
					Line:   n.Line,
				})
			}
		case pyast.KindImportFrom:
			module := t.Str(id, "module")
			for _, alias := range t.List(id, "names") {
				report.Imports = append(report.Imports, ImportInfo{
					Module: module + "." + t.Str(alias, "name"),
					Alias:  optionalStr(t, alias, "asname"),
					Line:   n.Line,
				})
			}
		}
		return true
	})

	// Module-level assignment targets only; nested assignments stay out.
	for _, stmt := range t.List(t.Root(), "body") {
		node := t.Node(stmt)
		if node == nil || node.Kind != pyast.KindAssign {
			continue
		}
		for _, target := range t.List(stmt, "targets") {
			tn := t.Node(target)
			if tn != nil && tn.Kind == pyast.KindName {
				report.Globals = append(report.Globals, GlobalInfo{
					Name: t.Str(target, "id"),
					Line: node.Line,
				})
			}
		}
	}

	return report
}

func extractFunction(t *pyast.Tree, id pyast.NodeID, n *pyast.Node) FunctionInfo {
	args := []string{}
	for _, arg := range t.List(id, "args") {
		args = append(args, t.Str(arg, "arg"))
	}

	var returns *string
	if ret := t.Child(id, "returns"); ret != pyast.NoNode {
		text := t.Text(ret)
		returns = &text
	}

	decorators := []string{}
	for _, dec := range t.List(id, "decorator_list") {
		decorators = append(decorators, t.Text(dec))
	}

	return FunctionInfo{
		Name:         t.Str(id, "name"),
		Line:         n.Line,
		Args:         args,
		Returns:      returns,
		Decorators:   decorators,
		HasDocstring: hasDocstring(t, id),
	}
}

func extractClass(t *pyast.Tree, id pyast.NodeID, n *pyast.Node) ClassInfo {
	bases := []string{}
	for _, base := range t.List(id, "bases") {
		bases = append(bases, t.Text(base))
	}

	methods := []string{}
	for _, stmt := range t.List(id, "body") {
		if node := t.Node(stmt); node != nil && node.Kind == pyast.KindFunctionDef {
			methods = append(methods, t.Str(stmt, "name"))
		}
	}

	return ClassInfo{
		Name:         t.Str(id, "name"),
		Line:         n.Line,
		Bases:        bases,
		Methods:      methods,
		HasDocstring: hasDocstring(t, id),
	}
}

// hasDocstring reports whether the first body statement is a bare
// string-literal expression.
func hasDocstring(t *pyast.Tree, id pyast.NodeID) bool {
	body := t.List(id, "body")
	if len(body) == 0 {
		return false
	}
	first := t.Node(body[0])
	if first == nil || first.Kind != pyast.KindExpr {
		return false
	}
	value := t.Child(body[0], "value")
	if value == pyast.NoNode {
		return false
	}
	return isStringConstant(t, value)
}

// isStringConstant reports whether the node is a string Constant.
func isStringConstant(t *pyast.Tree, id pyast.NodeID) bool {
	n := t.Node(id)
	if n == nil || n.Kind != pyast.KindConstant {
		return false
	}
	v, ok := n.Field("value")
	return ok && v.Kind() == pyast.ValueString
}

func optionalStr(t *pyast.Tree, id pyast.NodeID, field string) *string {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	v, ok := n.Field(field)
	if !ok || v.Kind() != pyast.ValueString {
		return nil
	}
	s := v.Str()
	return &s
}
