// Package pyast defines the abstract syntax tree model consumed by the
// analysis engine. Nodes live in an arena owned by the Tree: children are
// referenced by index rather than pointer, so a tree is acyclic by
// construction and freed as a single allocation.
package pyast

// Kind identifies the node variant. The set is closed: consumers switch
// exhaustively on it and unrecognized grammar constructs are folded into
// Other by the parser adapter.
type Kind uint8

const (
	KindModule Kind = iota
	KindFunctionDef
	KindClassDef
	KindImport
	KindImportFrom
	KindAssign
	KindExpr
	KindReturn
	KindIf
	KindFor
	KindWhile
	KindWith
	KindTry
	KindCall
	KindAttribute
	KindSubscript
	KindName
	KindConstant
	KindBinOp
	KindBoolOp
	KindCompare
	KindUnaryOp
	KindJoinedStr
	KindKeyword
	KindArg
	KindAlias
	KindOther
)

var kindNames = [...]string{
	KindModule:      "Module",
	KindFunctionDef: "FunctionDef",
	KindClassDef:    "ClassDef",
	KindImport:      "Import",
	KindImportFrom:  "ImportFrom",
	KindAssign:      "Assign",
	KindExpr:        "Expr",
	KindReturn:      "Return",
	KindIf:          "If",
	KindFor:         "For",
	KindWhile:       "While",
	KindWith:        "With",
	KindTry:         "Try",
	KindCall:        "Call",
	KindAttribute:   "Attribute",
	KindSubscript:   "Subscript",
	KindName:        "Name",
	KindConstant:    "Constant",
	KindBinOp:       "BinOp",
	KindBoolOp:      "BoolOp",
	KindCompare:     "Compare",
	KindUnaryOp:     "UnaryOp",
	KindJoinedStr:   "JoinedStr",
	KindKeyword:     "keyword",
	KindArg:         "arg",
	KindAlias:       "alias",
	KindOther:       "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Other"
}

// NodeID is an index into a Tree's node arena.
type NodeID int32

// NoNode marks an absent child reference.
const NoNode NodeID = -1

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueNode
	ValueList
	ValueString
	ValueInt
	ValueFloat
	ValueBool
)

// Value is a single field value: a child node, an ordered list of children,
// or a primitive. The zero Value is None.
type Value struct {
	kind ValueKind
	node NodeID
	list []NodeID
	str  string
	i    int64
	f    float64
	b    bool
}

func NodeValue(id NodeID) Value {
	if id == NoNode {
		return Value{}
	}
	return Value{kind: ValueNode, node: id}
}

func ListValue(ids []NodeID) Value { return Value{kind: ValueList, list: ids} }

func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

func IntValue(i int64) Value { return Value{kind: ValueInt, i: i} }

func FloatValue(f float64) Value { return Value{kind: ValueFloat, f: f} }

func BoolValue(b bool) Value { return Value{kind: ValueBool, b: b} }

func NoneValue() Value { return Value{} }

func (v Value) Kind() ValueKind { return v.kind }

// Node returns the child reference, or NoNode for non-node values.
func (v Value) Node() NodeID {
	if v.kind != ValueNode {
		return NoNode
	}
	return v.node
}

func (v Value) List() []NodeID {
	if v.kind != ValueList {
		return nil
	}
	return v.list
}

func (v Value) Str() string { return v.str }

func (v Value) Int() int64 { return v.i }

func (v Value) Float() float64 { return v.f }

func (v Value) Bool() bool { return v.b }

// Field is one named slot of a node. Field order is the declaration order
// and is preserved by serialization.
type Field struct {
	Name  string
	Value Value
}

// Node is a single AST node. Line is 1-based, Col is a 0-based byte column.
// Start/End delimit the node's span in the original source, which is how
// subtrees are rendered back to text.
type Node struct {
	Kind   Kind
	Line   int
	Col    int
	Start  uint
	End    uint
	Fields []Field
}

// Field returns the named field value and whether it is declared.
func (n *Node) Field(name string) (Value, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Tree owns the node arena for one parsed source unit. It is immutable after
// construction and safe for concurrent readers.
type Tree struct {
	src   []byte
	nodes []Node
	root  NodeID
}

// NewTree creates an empty tree over the given source text.
func NewTree(src []byte) *Tree {
	return &Tree{src: src, root: NoNode}
}

// Add appends a node to the arena and returns its id. Children must be added
// before the node that references them.
func (t *Tree) Add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// SetRoot records the module root node.
func (t *Tree) SetRoot(id NodeID) { t.root = id }

// Root returns the module root, or NoNode for an empty tree.
func (t *Tree) Root() NodeID { return t.root }

// Node resolves an id to its node. The pointer stays valid for the lifetime
// of the tree; callers must not mutate through it.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Len reports the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Source returns the original source text.
func (t *Tree) Source() []byte { return t.src }

// Text renders the node's source span back to text. This is the unparse
// capability used for annotations, decorators and base classes.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	start, end := n.Start, n.End
	if start > end || end > uint(len(t.src)) {
		return ""
	}
	return string(t.src[start:end])
}

// Child returns the node referenced by a single-child field, or NoNode.
func (t *Tree) Child(id NodeID, field string) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}
	v, ok := n.Field(field)
	if !ok {
		return NoNode
	}
	return v.Node()
}

// List returns the children of a list-valued field, or nil.
func (t *Tree) List(id NodeID, field string) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	v, ok := n.Field(field)
	if !ok {
		return nil
	}
	return v.List()
}

// Str returns the string value of a primitive field, or "".
func (t *Tree) Str(id NodeID, field string) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}
	v, ok := n.Field(field)
	if !ok || v.Kind() != ValueString {
		return ""
	}
	return v.Str()
}

// Bool returns the boolean value of a primitive field and whether the field
// holds a boolean.
func (t *Tree) Bool(id NodeID, field string) (bool, bool) {
	n := t.Node(id)
	if n == nil {
		return false, false
	}
	v, ok := n.Field(field)
	if !ok || v.Kind() != ValueBool {
		return false, false
	}
	return v.Bool(), true
}
