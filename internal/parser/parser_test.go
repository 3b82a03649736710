package parser

// Test Plan for the Python front-end:
// - Parse a well-formed fixture and verify the module body shape
// - Function conversion: name, parameters, return annotation, line numbers
// - Splat parameters keep their names without the star prefix
// - Class conversion: bases rendered back to source text, methods in body
// - Imports: plain, aliased and from-imports with the module name skipped
// - elif chains nest as If nodes inside orelse
// - f-strings become JoinedStr, plain strings become Constant
// - Assignment statements collapse to Assign (no Expr wrapper)
// - Comments are dropped from statement lists
// - Empty source yields an empty module, not an error
// - Malformed source yields errors and no tree
// - ParseError formats as "Syntax error at line N: ..."

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asears/grand-ai-hotel/internal/pyast"
)

func parseFixture(t *testing.T, name string) *pyast.Tree {
	t.Helper()
	source, err := os.ReadFile(filepath.Join("..", "..", "testdata", "python", name))
	require.NoError(t, err)
	tree, errs := New().Parse(source)
	require.Empty(t, errs)
	require.NotNil(t, tree)
	return tree
}

func parseSource(t *testing.T, source string) *pyast.Tree {
	t.Helper()
	tree, errs := New().Parse([]byte(source))
	require.Empty(t, errs)
	require.NotNil(t, tree)
	return tree
}

// findDef locates a FunctionDef or ClassDef by its name field.
func findDef(t *testing.T, tree *pyast.Tree, kind pyast.Kind, name string) pyast.NodeID {
	t.Helper()
	found := pyast.NoNode
	tree.Walk(tree.Root(), func(id pyast.NodeID, n *pyast.Node) bool {
		if n.Kind == kind && tree.Str(id, "name") == name {
			found = id
			return false
		}
		return true
	})
	require.NotEqual(t, pyast.NoNode, found, "%s %q not found", kind, name)
	return found
}

func TestParseSimpleModule(t *testing.T) {
	t.Parallel()

	tree := parseFixture(t, "simple.py")
	root := tree.Root()
	require.NotEqual(t, pyast.NoNode, root)
	assert.Equal(t, pyast.KindModule, tree.Node(root).Kind)

	// docstring, 3 imports, 2 assignments, 2 functions, 2 classes
	body := tree.List(root, "body")
	require.Len(t, body, 10)
	assert.Equal(t, pyast.KindExpr, tree.Node(body[0]).Kind)
	assert.Equal(t, pyast.KindImport, tree.Node(body[1]).Kind)
	assert.Equal(t, pyast.KindImport, tree.Node(body[2]).Kind)
	assert.Equal(t, pyast.KindImportFrom, tree.Node(body[3]).Kind)
	assert.Equal(t, pyast.KindAssign, tree.Node(body[4]).Kind)
	assert.Equal(t, pyast.KindAssign, tree.Node(body[5]).Kind)
	assert.Equal(t, pyast.KindFunctionDef, tree.Node(body[6]).Kind)
	assert.Equal(t, pyast.KindFunctionDef, tree.Node(body[7]).Kind)
	assert.Equal(t, pyast.KindClassDef, tree.Node(body[8]).Kind)
	assert.Equal(t, pyast.KindClassDef, tree.Node(body[9]).Kind)
}

func TestParseFunction(t *testing.T) {
	t.Parallel()

	tree := parseFixture(t, "simple.py")

	greet := findDef(t, tree, pyast.KindFunctionDef, "greet")
	assert.Equal(t, 11, tree.Node(greet).Line)

	args := tree.List(greet, "args")
	require.Len(t, args, 1)
	assert.Equal(t, pyast.KindArg, tree.Node(args[0]).Kind)
	assert.Equal(t, "name", tree.Str(args[0], "arg"))

	returns := tree.Child(greet, "returns")
	require.NotEqual(t, pyast.NoNode, returns)
	assert.Equal(t, "str", tree.Text(returns))

	assert.Empty(t, tree.List(greet, "decorator_list"))
}

func TestParseSplatParameters(t *testing.T) {
	t.Parallel()

	tree := parseFixture(t, "simple.py")
	add := findDef(t, tree, pyast.KindFunctionDef, "add")

	args := tree.List(add, "args")
	require.Len(t, args, 4)
	names := make([]string, len(args))
	for i, id := range args {
		names[i] = tree.Str(id, "arg")
	}
	assert.Equal(t, []string{"a", "b", "args", "kwargs"}, names)

	// The leading comment in the body is dropped.
	body := tree.List(add, "body")
	require.Len(t, body, 1)
	assert.Equal(t, pyast.KindReturn, tree.Node(body[0]).Kind)
}

func TestParseClass(t *testing.T) {
	t.Parallel()

	tree := parseFixture(t, "simple.py")

	animal := findDef(t, tree, pyast.KindClassDef, "Animal")
	assert.Equal(t, 21, tree.Node(animal).Line)
	assert.Empty(t, tree.List(animal, "bases"))

	dog := findDef(t, tree, pyast.KindClassDef, "Dog")
	bases := tree.List(dog, "bases")
	require.Len(t, bases, 1)
	assert.Equal(t, "Animal", tree.Text(bases[0]))

	var methods []string
	for _, id := range tree.List(dog, "body") {
		if tree.Node(id).Kind == pyast.KindFunctionDef {
			methods = append(methods, tree.Str(id, "name"))
		}
	}
	assert.Equal(t, []string{"speak"}, methods)
}

func TestParseImports(t *testing.T) {
	t.Parallel()

	tree := parseFixture(t, "simple.py")
	body := tree.List(tree.Root(), "body")

	plain := tree.List(body[1], "names")
	require.Len(t, plain, 1)
	assert.Equal(t, "os", tree.Str(plain[0], "name"))
	v, _ := tree.Node(plain[0]).Field("asname")
	assert.Equal(t, pyast.ValueNone, v.Kind())

	aliased := tree.List(body[2], "names")
	require.Len(t, aliased, 1)
	assert.Equal(t, "hashlib", tree.Str(aliased[0], "name"))
	assert.Equal(t, "h", tree.Str(aliased[0], "asname"))

	assert.Equal(t, "typing", tree.Str(body[3], "module"))
	from := tree.List(body[3], "names")
	require.Len(t, from, 1)
	assert.Equal(t, "List", tree.Str(from[0], "name"))
}

func TestParseElifChain(t *testing.T) {
	t.Parallel()

	tree := parseSource(t, `
if a:
    x = 1
elif b:
    x = 2
else:
    x = 3
`)

	body := tree.List(tree.Root(), "body")
	require.Len(t, body, 1)
	outer := body[0]
	require.Equal(t, pyast.KindIf, tree.Node(outer).Kind)

	orelse := tree.List(outer, "orelse")
	require.Len(t, orelse, 1)
	elif := orelse[0]
	assert.Equal(t, pyast.KindIf, tree.Node(elif).Kind)

	inner := tree.List(elif, "orelse")
	require.Len(t, inner, 1)
	assert.Equal(t, pyast.KindAssign, tree.Node(inner[0]).Kind)
}

func TestParseStrings(t *testing.T) {
	t.Parallel()

	tree := parseSource(t, "a = f\"hi {name}\"\nb = \"plain\"\n")
	body := tree.List(tree.Root(), "body")
	require.Len(t, body, 2)

	fstr := tree.Child(body[0], "value")
	require.NotEqual(t, pyast.NoNode, fstr)
	assert.Equal(t, pyast.KindJoinedStr, tree.Node(fstr).Kind)

	plain := tree.Child(body[1], "value")
	require.NotEqual(t, pyast.NoNode, plain)
	assert.Equal(t, pyast.KindConstant, tree.Node(plain).Kind)
	v, _ := tree.Node(plain).Field("value")
	assert.Equal(t, "plain", v.Str())
}

func TestParseAssignment(t *testing.T) {
	t.Parallel()

	tree := parseSource(t, "total = 1 + 2\n")
	body := tree.List(tree.Root(), "body")
	require.Len(t, body, 1)

	assign := body[0]
	require.Equal(t, pyast.KindAssign, tree.Node(assign).Kind)

	targets := tree.List(assign, "targets")
	require.Len(t, targets, 1)
	assert.Equal(t, "total", tree.Str(targets[0], "id"))

	value := tree.Child(assign, "value")
	require.NotEqual(t, pyast.NoNode, value)
	assert.Equal(t, pyast.KindBinOp, tree.Node(value).Kind)
	assert.Equal(t, "+", tree.Str(value, "op"))
}

func TestParseEmptySource(t *testing.T) {
	t.Parallel()

	tree := parseSource(t, "")
	root := tree.Root()
	require.NotEqual(t, pyast.NoNode, root)
	assert.Equal(t, pyast.KindModule, tree.Node(root).Kind)
	assert.Empty(t, tree.List(root, "body"))
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile(filepath.Join("..", "..", "testdata", "python", "malformed.py"))
	require.NoError(t, err)

	tree, errs := New().Parse(source)
	assert.Nil(t, tree)
	require.NotEmpty(t, errs)
	assert.GreaterOrEqual(t, errs[0].Line, 1)
	assert.Contains(t, errs[0].Error(), "Syntax error at line")
}

func TestParseErrorFormat(t *testing.T) {
	t.Parallel()

	perr := ParseError{Line: 4, Msg: "invalid syntax"}
	assert.Equal(t, "Syntax error at line 4: invalid syntax", perr.Error())
}
