package pyast

import "strconv"

// Serialize converts the subtree rooted at id into a generic record suitable
// for JSON encoding: {"type": kind, "lineno", "col_offset", one entry per
// declared field}. Node fields recurse, list fields recurse element by
// element and primitives are rendered in their string form with an explicit
// nil for absent values. There is no per-kind logic: the record shape follows
// the declared fields alone.
func (t *Tree) Serialize(id NodeID) map[string]any {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	record := map[string]any{"type": n.Kind.String()}
	if n.Line > 0 {
		record["lineno"] = n.Line
		record["col_offset"] = n.Col
	}

	for _, f := range n.Fields {
		record[f.Name] = t.serializeValue(f.Value)
	}
	return record
}

func (t *Tree) serializeValue(v Value) any {
	switch v.Kind() {
	case ValueNode:
		return t.Serialize(v.Node())
	case ValueList:
		items := make([]any, 0, len(v.List()))
		for _, child := range v.List() {
			items = append(items, t.Serialize(child))
		}
		return items
	case ValueString:
		return v.Str()
	case ValueInt:
		return strconv.FormatInt(v.Int(), 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case ValueBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	default:
		return nil
	}
}
