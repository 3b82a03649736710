package pyast

// Test Plan for serialization:
// - Record carries "type" plus lineno/col_offset when a position is known
// - Module roots (no line) omit position keys
// - Node fields recurse, list fields become []any
// - Primitives render as strings: ints, floats, True/False
// - None fields serialize as nil
// - Serialize(NoNode) returns nil
// - Output encodes to deterministic JSON

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRecordShape(t *testing.T) {
	t.Parallel()

	tree := NewTree(nil)
	name := tree.Add(Node{Kind: KindName, Line: 2, Col: 4, Fields: []Field{
		{Name: "id", Value: StringValue("x")},
	}})
	assign := tree.Add(Node{Kind: KindAssign, Line: 2, Col: 4, Fields: []Field{
		{Name: "targets", Value: ListValue([]NodeID{name})},
		{Name: "value", Value: NoneValue()},
	}})
	module := tree.Add(Node{Kind: KindModule, Fields: []Field{
		{Name: "body", Value: ListValue([]NodeID{assign})},
	}})
	tree.SetRoot(module)

	record := tree.Serialize(module)
	require.NotNil(t, record)
	assert.Equal(t, "Module", record["type"])
	// The module has no source position.
	assert.NotContains(t, record, "lineno")
	assert.NotContains(t, record, "col_offset")

	body, ok := record["body"].([]any)
	require.True(t, ok)
	require.Len(t, body, 1)

	assignRecord, ok := body[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Assign", assignRecord["type"])
	assert.Equal(t, 2, assignRecord["lineno"])
	assert.Equal(t, 4, assignRecord["col_offset"])
	assert.Nil(t, assignRecord["value"])

	targets, ok := assignRecord["targets"].([]any)
	require.True(t, ok)
	require.Len(t, targets, 1)
	nameRecord := targets[0].(map[string]any)
	assert.Equal(t, "Name", nameRecord["type"])
	assert.Equal(t, "x", nameRecord["id"])
}

func TestSerializePrimitives(t *testing.T) {
	t.Parallel()

	tree := NewTree(nil)
	id := tree.Add(Node{Kind: KindConstant, Line: 1, Fields: []Field{
		{Name: "int_value", Value: IntValue(-7)},
		{Name: "float_value", Value: FloatValue(2.5)},
		{Name: "true_value", Value: BoolValue(true)},
		{Name: "false_value", Value: BoolValue(false)},
		{Name: "str_value", Value: StringValue("hi")},
		{Name: "none_value", Value: NoneValue()},
	}})

	record := tree.Serialize(id)
	assert.Equal(t, "-7", record["int_value"])
	assert.Equal(t, "2.5", record["float_value"])
	assert.Equal(t, "True", record["true_value"])
	assert.Equal(t, "False", record["false_value"])
	assert.Equal(t, "hi", record["str_value"])
	assert.Nil(t, record["none_value"])
}

func TestSerializeNoNode(t *testing.T) {
	t.Parallel()

	tree := NewTree(nil)
	assert.Nil(t, tree.Serialize(NoNode))
}

func TestSerializeDeterministicJSON(t *testing.T) {
	t.Parallel()

	tree := NewTree(nil)
	id := tree.Add(Node{Kind: KindName, Line: 1, Col: 0, Fields: []Field{
		{Name: "id", Value: StringValue("v")},
	}})
	tree.SetRoot(id)

	first, err := json.Marshal(tree.Serialize(id))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(tree.Serialize(id))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
