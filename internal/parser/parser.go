// Package parser adapts the tree-sitter Python front-end to the pyast node
// model. Tree-sitter produces a concrete syntax tree; this package maps it
// onto the closed abstract kind set, folding constructs the engine has no
// interest in into generic Other nodes so the conversion stays total.
package parser

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/asears/grand-ai-hotel/internal/pyast"
)

// Parser parses Python source into pyast trees. A Parser holds only the
// grammar and is safe for concurrent use; the underlying tree-sitter parser
// is created per call.
type Parser struct {
	language *sitter.Language
}

// New creates a parser for the Python grammar.
func New() *Parser {
	return &Parser{language: sitter.NewLanguage(python.Language())}
}

// Parse converts source text into a pyast tree. On syntax failure it returns
// a nil tree and one ParseError per error region; a tree and error list are
// never both returned.
func (p *Parser) Parse(source []byte) (*pyast.Tree, []ParseError) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	cst := parser.Parse(source, nil)
	if cst == nil {
		return nil, []ParseError{{Line: 1, Msg: "parser produced no tree"}}
	}
	defer cst.Close()

	root := cst.RootNode()
	if root.HasError() {
		return nil, collectSyntaxErrors(root, source)
	}

	c := &converter{src: source, out: pyast.NewTree(source)}
	c.out.SetRoot(c.convertModule(root))
	return c.out, nil
}

// collectSyntaxErrors walks the CST and reports every ERROR or MISSING
// region with its 1-based line.
func collectSyntaxErrors(root *sitter.Node, source []byte) []ParseError {
	var errs []ParseError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		line := int(n.StartPosition().Row) + 1
		switch {
		case n.IsError():
			errs = append(errs, ParseError{Line: line, Msg: "invalid syntax near " + strconv.Quote(errorContext(n, source))})
			return
		case n.IsMissing():
			errs = append(errs, ParseError{Line: line, Msg: "expected " + strconv.Quote(n.Kind())})
			return
		case !n.HasError():
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(uint(i)))
		}
	}
	walk(root)
	if len(errs) == 0 {
		errs = append(errs, ParseError{Line: 1, Msg: "invalid syntax"})
	}
	return errs
}

// errorContext returns a short source excerpt for an error node.
func errorContext(n *sitter.Node, source []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	text := strings.TrimSpace(string(source[start:end]))
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if len(text) > 40 {
		text = text[:40]
	}
	return text
}

type converter struct {
	src []byte
	out *pyast.Tree
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) fieldText(n *sitter.Node, field string) string {
	return c.text(n.ChildByFieldName(field))
}

// add appends a converted node carrying the CST node's position and span.
func (c *converter) add(n *sitter.Node, kind pyast.Kind, fields []pyast.Field) pyast.NodeID {
	return c.out.Add(pyast.Node{
		Kind:   kind,
		Line:   int(n.StartPosition().Row) + 1,
		Col:    int(n.StartPosition().Column),
		Start:  n.StartByte(),
		End:    n.EndByte(),
		Fields: fields,
	})
}

func (c *converter) convertModule(root *sitter.Node) pyast.NodeID {
	body := c.convertStatements(root)
	return c.out.Add(pyast.Node{
		Kind:   pyast.KindModule,
		Start:  root.StartByte(),
		End:    root.EndByte(),
		Fields: []pyast.Field{{Name: "body", Value: body}},
	})
}

// convertStatements converts the named children of a block-like node,
// skipping comments.
func (c *converter) convertStatements(n *sitter.Node) pyast.Value {
	if n == nil {
		return pyast.ListValue(nil)
	}
	var ids []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		ids = append(ids, c.convert(child))
	}
	return pyast.ListValue(ids)
}

// convert maps one CST node onto the abstract kind set. Constructs outside
// the set become Other nodes with their children converted in place.
func (c *converter) convert(n *sitter.Node) pyast.NodeID {
	if n == nil {
		return c.out.Add(pyast.Node{Kind: pyast.KindOther, Fields: []pyast.Field{
			{Name: "syntax", Value: pyast.StringValue("")},
			{Name: "children", Value: pyast.ListValue(nil)},
		}})
	}
	switch n.Kind() {
	case "decorated_definition":
		return c.convertDecorated(n)
	case "function_definition":
		return c.convertFunction(n, nil)
	case "class_definition":
		return c.convertClass(n, nil)
	case "import_statement":
		return c.convertImport(n)
	case "import_from_statement", "future_import_statement":
		return c.convertImportFrom(n)
	case "expression_statement":
		return c.convertExpressionStatement(n)
	case "return_statement":
		return c.convertReturn(n)
	case "if_statement":
		return c.convertIf(n)
	case "for_statement":
		return c.convertFor(n)
	case "while_statement":
		return c.convertWhile(n)
	case "with_statement":
		return c.convertWith(n)
	case "try_statement":
		return c.convertTry(n)
	case "call":
		return c.convertCall(n)
	case "attribute":
		return c.add(n, pyast.KindAttribute, []pyast.Field{
			{Name: "value", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("object")))},
			{Name: "attr", Value: pyast.StringValue(c.fieldText(n, "attribute"))},
		})
	case "subscript":
		return c.convertSubscript(n)
	case "identifier":
		return c.add(n, pyast.KindName, []pyast.Field{
			{Name: "id", Value: pyast.StringValue(c.text(n))},
		})
	case "string":
		return c.convertString(n)
	case "concatenated_string":
		return c.convertConcatenatedString(n)
	case "integer":
		return c.add(n, pyast.KindConstant, []pyast.Field{
			{Name: "value", Value: parseIntValue(c.text(n))},
		})
	case "float":
		return c.add(n, pyast.KindConstant, []pyast.Field{
			{Name: "value", Value: parseFloatValue(c.text(n))},
		})
	case "true":
		return c.add(n, pyast.KindConstant, []pyast.Field{
			{Name: "value", Value: pyast.BoolValue(true)},
		})
	case "false":
		return c.add(n, pyast.KindConstant, []pyast.Field{
			{Name: "value", Value: pyast.BoolValue(false)},
		})
	case "none":
		return c.add(n, pyast.KindConstant, []pyast.Field{
			{Name: "value", Value: pyast.NoneValue()},
		})
	case "binary_operator":
		return c.add(n, pyast.KindBinOp, []pyast.Field{
			{Name: "left", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("left")))},
			{Name: "op", Value: pyast.StringValue(c.fieldText(n, "operator"))},
			{Name: "right", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("right")))},
		})
	case "boolean_operator":
		return c.add(n, pyast.KindBoolOp, []pyast.Field{
			{Name: "op", Value: pyast.StringValue(c.fieldText(n, "operator"))},
			{Name: "values", Value: pyast.ListValue([]pyast.NodeID{
				c.convert(n.ChildByFieldName("left")),
				c.convert(n.ChildByFieldName("right")),
			})},
		})
	case "comparison_operator":
		return c.convertComparison(n)
	case "not_operator":
		return c.add(n, pyast.KindUnaryOp, []pyast.Field{
			{Name: "op", Value: pyast.StringValue("not")},
			{Name: "operand", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("argument")))},
		})
	case "unary_operator":
		return c.add(n, pyast.KindUnaryOp, []pyast.Field{
			{Name: "op", Value: pyast.StringValue(c.fieldText(n, "operator"))},
			{Name: "operand", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("argument")))},
		})
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return c.convert(n.NamedChild(0))
		}
		return c.convertOther(n)
	case "assignment":
		return c.convertAssignment(n)
	default:
		return c.convertOther(n)
	}
}

// convertOther is the catch-all for grammar constructs outside the closed
// kind set. Children are still converted so calls and names nested inside
// remain visible to the rule engine.
func (c *converter) convertOther(n *sitter.Node) pyast.NodeID {
	var children []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		children = append(children, c.convert(child))
	}
	return c.add(n, pyast.KindOther, []pyast.Field{
		{Name: "syntax", Value: pyast.StringValue(n.Kind())},
		{Name: "children", Value: pyast.ListValue(children)},
	})
}

func (c *converter) convertDecorated(n *sitter.Node) pyast.NodeID {
	var decorators []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() != "decorator" {
			continue
		}
		if child.NamedChildCount() > 0 {
			decorators = append(decorators, c.convert(child.NamedChild(0)))
		}
	}
	def := n.ChildByFieldName("definition")
	if def == nil {
		return c.convertOther(n)
	}
	switch def.Kind() {
	case "function_definition":
		return c.convertFunction(def, decorators)
	case "class_definition":
		return c.convertClass(def, decorators)
	default:
		return c.convert(def)
	}
}

func (c *converter) convertFunction(n *sitter.Node, decorators []pyast.NodeID) pyast.NodeID {
	returns := pyast.NoneValue()
	if r := n.ChildByFieldName("return_type"); r != nil {
		returns = pyast.NodeValue(c.convert(r))
	}
	return c.add(n, pyast.KindFunctionDef, []pyast.Field{
		{Name: "name", Value: pyast.StringValue(c.fieldText(n, "name"))},
		{Name: "args", Value: c.convertParameters(n.ChildByFieldName("parameters"))},
		{Name: "returns", Value: returns},
		{Name: "decorator_list", Value: pyast.ListValue(decorators)},
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("body"))},
	})
}

// convertParameters flattens a parameter list into arg nodes. Separator
// markers ("/" and bare "*") are dropped; splat parameters keep their name
// without the star prefix.
func (c *converter) convertParameters(params *sitter.Node) pyast.Value {
	if params == nil {
		return pyast.ListValue(nil)
	}
	var args []pyast.NodeID
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(uint(i))
		switch p.Kind() {
		case "identifier":
			args = append(args, c.addArg(p, c.text(p), nil))
		case "typed_parameter":
			typ := p.ChildByFieldName("type")
			name := ""
			for j := 0; j < int(p.NamedChildCount()); j++ {
				inner := p.NamedChild(uint(j))
				if typ != nil && inner.StartByte() == typ.StartByte() && inner.EndByte() == typ.EndByte() {
					continue
				}
				name = strings.TrimLeft(c.text(inner), "*")
				break
			}
			args = append(args, c.addArg(p, name, typ))
		case "default_parameter":
			args = append(args, c.addArg(p, c.fieldText(p, "name"), nil))
		case "typed_default_parameter":
			args = append(args, c.addArg(p, c.fieldText(p, "name"), p.ChildByFieldName("type")))
		case "list_splat_pattern", "dictionary_splat_pattern":
			if p.NamedChildCount() > 0 {
				args = append(args, c.addArg(p, c.text(p.NamedChild(0)), nil))
			}
		}
	}
	return pyast.ListValue(args)
}

func (c *converter) addArg(n *sitter.Node, name string, annotation *sitter.Node) pyast.NodeID {
	ann := pyast.NoneValue()
	if annotation != nil {
		ann = pyast.NodeValue(c.convert(annotation))
	}
	return c.add(n, pyast.KindArg, []pyast.Field{
		{Name: "arg", Value: pyast.StringValue(name)},
		{Name: "annotation", Value: ann},
	})
}

func (c *converter) convertClass(n *sitter.Node, decorators []pyast.NodeID) pyast.NodeID {
	var bases []pyast.NodeID
	var keywords []pyast.NodeID
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.NamedChildCount()); i++ {
			child := supers.NamedChild(uint(i))
			if child.Kind() == "keyword_argument" {
				keywords = append(keywords, c.convertKeyword(child))
				continue
			}
			bases = append(bases, c.convert(child))
		}
	}
	return c.add(n, pyast.KindClassDef, []pyast.Field{
		{Name: "name", Value: pyast.StringValue(c.fieldText(n, "name"))},
		{Name: "bases", Value: pyast.ListValue(bases)},
		{Name: "keywords", Value: pyast.ListValue(keywords)},
		{Name: "decorator_list", Value: pyast.ListValue(decorators)},
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("body"))},
	})
}

func (c *converter) convertImport(n *sitter.Node) pyast.NodeID {
	var names []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		names = append(names, c.convertAlias(n.NamedChild(uint(i))))
	}
	return c.add(n, pyast.KindImport, []pyast.Field{
		{Name: "names", Value: pyast.ListValue(names)},
	})
}

func (c *converter) convertImportFrom(n *sitter.Node) pyast.NodeID {
	module := c.fieldText(n, "module_name")
	var names []pyast.NodeID
	moduleNode := n.ChildByFieldName("module_name")
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() && child.EndByte() == moduleNode.EndByte() {
			continue
		}
		names = append(names, c.convertAlias(child))
	}
	return c.add(n, pyast.KindImportFrom, []pyast.Field{
		{Name: "module", Value: pyast.StringValue(module)},
		{Name: "names", Value: pyast.ListValue(names)},
	})
}

// convertAlias maps dotted_name, aliased_import and wildcard_import nodes
// to alias records.
func (c *converter) convertAlias(n *sitter.Node) pyast.NodeID {
	name := c.text(n)
	asname := pyast.NoneValue()
	switch n.Kind() {
	case "aliased_import":
		name = c.fieldText(n, "name")
		if alias := n.ChildByFieldName("alias"); alias != nil {
			asname = pyast.StringValue(c.text(alias))
		}
	case "wildcard_import":
		name = "*"
	}
	return c.add(n, pyast.KindAlias, []pyast.Field{
		{Name: "name", Value: pyast.StringValue(name)},
		{Name: "asname", Value: asname},
	})
}

func (c *converter) convertExpressionStatement(n *sitter.Node) pyast.NodeID {
	if n.NamedChildCount() == 1 {
		child := n.NamedChild(0)
		if child.Kind() == "assignment" {
			return c.convertAssignment(child)
		}
		return c.add(n, pyast.KindExpr, []pyast.Field{
			{Name: "value", Value: pyast.NodeValue(c.convert(child))},
		})
	}
	return c.convertOther(n)
}

func (c *converter) convertAssignment(n *sitter.Node) pyast.NodeID {
	value := pyast.NoneValue()
	if right := n.ChildByFieldName("right"); right != nil {
		value = pyast.NodeValue(c.convert(right))
	}
	var targets []pyast.NodeID
	if left := n.ChildByFieldName("left"); left != nil {
		targets = append(targets, c.convert(left))
	}
	return c.add(n, pyast.KindAssign, []pyast.Field{
		{Name: "targets", Value: pyast.ListValue(targets)},
		{Name: "value", Value: value},
	})
}

func (c *converter) convertReturn(n *sitter.Node) pyast.NodeID {
	value := pyast.NoneValue()
	if n.NamedChildCount() > 0 {
		value = pyast.NodeValue(c.convert(n.NamedChild(0)))
	}
	return c.add(n, pyast.KindReturn, []pyast.Field{
		{Name: "value", Value: value},
	})
}

// convertIf rebuilds the Python chain shape: each elif clause becomes a
// nested If inside the previous branch's orelse.
func (c *converter) convertIf(n *sitter.Node) pyast.NodeID {
	type clause struct {
		node *sitter.Node
		kind string
	}
	var clauses []clause
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if k := child.Kind(); k == "elif_clause" || k == "else_clause" {
			clauses = append(clauses, clause{child, k})
		}
	}

	var orelse []pyast.NodeID
	for i := len(clauses) - 1; i >= 0; i-- {
		cl := clauses[i]
		if cl.kind == "else_clause" {
			orelse = c.convertStatements(cl.node.ChildByFieldName("body")).List()
			continue
		}
		elifID := c.add(cl.node, pyast.KindIf, []pyast.Field{
			{Name: "test", Value: pyast.NodeValue(c.convert(cl.node.ChildByFieldName("condition")))},
			{Name: "body", Value: c.convertStatements(cl.node.ChildByFieldName("consequence"))},
			{Name: "orelse", Value: pyast.ListValue(orelse)},
		})
		orelse = []pyast.NodeID{elifID}
	}

	return c.add(n, pyast.KindIf, []pyast.Field{
		{Name: "test", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("condition")))},
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("consequence"))},
		{Name: "orelse", Value: pyast.ListValue(orelse)},
	})
}

func (c *converter) convertFor(n *sitter.Node) pyast.NodeID {
	return c.add(n, pyast.KindFor, []pyast.Field{
		{Name: "target", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("left")))},
		{Name: "iter", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("right")))},
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("body"))},
		{Name: "orelse", Value: c.convertElse(n)},
	})
}

func (c *converter) convertWhile(n *sitter.Node) pyast.NodeID {
	return c.add(n, pyast.KindWhile, []pyast.Field{
		{Name: "test", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("condition")))},
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("body"))},
		{Name: "orelse", Value: c.convertElse(n)},
	})
}

// convertElse extracts an optional trailing else_clause body.
func (c *converter) convertElse(n *sitter.Node) pyast.Value {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() == "else_clause" {
			return c.convertStatements(child.ChildByFieldName("body"))
		}
	}
	return pyast.ListValue(nil)
}

func (c *converter) convertWith(n *sitter.Node) pyast.NodeID {
	var items []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() != "with_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			item := child.NamedChild(uint(j))
			if item.Kind() != "with_item" {
				continue
			}
			if value := item.ChildByFieldName("value"); value != nil {
				items = append(items, c.convert(value))
			}
		}
	}
	return c.add(n, pyast.KindWith, []pyast.Field{
		{Name: "items", Value: pyast.ListValue(items)},
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("body"))},
	})
}

func (c *converter) convertTry(n *sitter.Node) pyast.NodeID {
	var handlers []pyast.NodeID
	orelse := pyast.ListValue(nil)
	finalbody := pyast.ListValue(nil)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		switch child.Kind() {
		case "except_clause", "except_group_clause":
			handlers = append(handlers, c.convertOther(child))
		case "else_clause":
			orelse = c.convertStatements(child.ChildByFieldName("body"))
		case "finally_clause":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if block := child.NamedChild(uint(j)); block.Kind() == "block" {
					finalbody = c.convertStatements(block)
				}
			}
		}
	}
	return c.add(n, pyast.KindTry, []pyast.Field{
		{Name: "body", Value: c.convertStatements(n.ChildByFieldName("body"))},
		{Name: "handlers", Value: pyast.ListValue(handlers)},
		{Name: "orelse", Value: orelse},
		{Name: "finalbody", Value: finalbody},
	})
}

func (c *converter) convertCall(n *sitter.Node) pyast.NodeID {
	fn := c.convert(n.ChildByFieldName("function"))
	var args []pyast.NodeID
	var keywords []pyast.NodeID
	if arguments := n.ChildByFieldName("arguments"); arguments != nil {
		if arguments.Kind() == "argument_list" {
			for i := 0; i < int(arguments.NamedChildCount()); i++ {
				child := arguments.NamedChild(uint(i))
				switch child.Kind() {
				case "comment":
				case "keyword_argument":
					keywords = append(keywords, c.convertKeyword(child))
				default:
					args = append(args, c.convert(child))
				}
			}
		} else {
			// generator expression argument, e.g. any(x for x in xs)
			args = append(args, c.convert(arguments))
		}
	}
	return c.add(n, pyast.KindCall, []pyast.Field{
		{Name: "func", Value: pyast.NodeValue(fn)},
		{Name: "args", Value: pyast.ListValue(args)},
		{Name: "keywords", Value: pyast.ListValue(keywords)},
	})
}

func (c *converter) convertKeyword(n *sitter.Node) pyast.NodeID {
	return c.add(n, pyast.KindKeyword, []pyast.Field{
		{Name: "arg", Value: pyast.StringValue(c.fieldText(n, "name"))},
		{Name: "value", Value: pyast.NodeValue(c.convert(n.ChildByFieldName("value")))},
	})
}

func (c *converter) convertSubscript(n *sitter.Node) pyast.NodeID {
	value := c.convert(n.ChildByFieldName("value"))
	valueNode := n.ChildByFieldName("value")
	var subs []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if valueNode != nil && child.StartByte() == valueNode.StartByte() && child.EndByte() == valueNode.EndByte() {
			continue
		}
		subs = append(subs, c.convert(child))
	}
	slice := pyast.NoneValue()
	if len(subs) == 1 {
		slice = pyast.NodeValue(subs[0])
	} else if len(subs) > 1 {
		slice = pyast.ListValue(subs)
	}
	return c.add(n, pyast.KindSubscript, []pyast.Field{
		{Name: "value", Value: pyast.NodeValue(value)},
		{Name: "slice", Value: slice},
	})
}

// convertString maps a string literal. A string carrying interpolation
// children is an f-string and becomes JoinedStr; all other strings become
// Constant with the raw content (escape sequences are kept verbatim).
func (c *converter) convertString(n *sitter.Node) pyast.NodeID {
	var values []pyast.NodeID
	interpolated := false
	var content strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		switch child.Kind() {
		case "interpolation":
			interpolated = true
			values = append(values, c.convertOther(child))
		case "string_content", "escape_sequence":
			content.WriteString(c.text(child))
			values = append(values, c.add(child, pyast.KindConstant, []pyast.Field{
				{Name: "value", Value: pyast.StringValue(c.text(child))},
			}))
		}
	}
	if interpolated {
		return c.add(n, pyast.KindJoinedStr, []pyast.Field{
			{Name: "values", Value: pyast.ListValue(values)},
		})
	}
	return c.add(n, pyast.KindConstant, []pyast.Field{
		{Name: "value", Value: pyast.StringValue(content.String())},
	})
}

// convertConcatenatedString folds adjacent literals into one Constant when
// none of them interpolates; otherwise the parts join under a JoinedStr.
func (c *converter) convertConcatenatedString(n *sitter.Node) pyast.NodeID {
	var parts []pyast.NodeID
	allConstant := true
	var content strings.Builder
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		id := c.convert(child)
		parts = append(parts, id)
		node := c.out.Node(id)
		if node.Kind != pyast.KindConstant {
			allConstant = false
			continue
		}
		if v, ok := node.Field("value"); ok && v.Kind() == pyast.ValueString {
			content.WriteString(v.Str())
		}
	}
	if allConstant {
		return c.add(n, pyast.KindConstant, []pyast.Field{
			{Name: "value", Value: pyast.StringValue(content.String())},
		})
	}
	return c.add(n, pyast.KindJoinedStr, []pyast.Field{
		{Name: "values", Value: pyast.ListValue(parts)},
	})
}

func (c *converter) convertComparison(n *sitter.Node) pyast.NodeID {
	var operands []pyast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		operands = append(operands, c.convert(n.NamedChild(uint(i))))
	}
	left := pyast.NoneValue()
	var rest []pyast.NodeID
	if len(operands) > 0 {
		left = pyast.NodeValue(operands[0])
		rest = operands[1:]
	}
	return c.add(n, pyast.KindCompare, []pyast.Field{
		{Name: "left", Value: left},
		{Name: "comparators", Value: pyast.ListValue(rest)},
	})
}

// parseIntValue parses a Python integer literal, falling back to the raw
// text for forms outside int64 range.
func parseIntValue(text string) pyast.Value {
	clean := strings.ReplaceAll(text, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return pyast.IntValue(i)
	}
	return pyast.StringValue(text)
}

func parseFloatValue(text string) pyast.Value {
	clean := strings.ReplaceAll(text, "_", "")
	if f, err := strconv.ParseFloat(clean, 64); err == nil {
		return pyast.FloatValue(f)
	}
	return pyast.StringValue(text)
}
