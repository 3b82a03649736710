package pyast

// Children returns the direct child nodes of a node in field declaration
// order, flattening list fields element by element.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	for _, f := range n.Fields {
		switch f.Value.Kind() {
		case ValueNode:
			out = append(out, f.Value.Node())
		case ValueList:
			out = append(out, f.Value.List()...)
		}
	}
	return out
}

// Walk visits the subtree rooted at id in pre-order. Returning false from
// visit skips the node's children. The traversal uses an explicit stack so
// node depth is bounded by heap, not goroutine stack.
func (t *Tree) Walk(id NodeID, visit func(id NodeID, n *Node) bool) {
	if id == NoNode {
		return
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(cur)
		if n == nil {
			continue
		}
		if !visit(cur, n) {
			continue
		}
		children := t.Children(cur)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// WalkBreadth visits the subtree rooted at id in level order: every node at
// one nesting level before any node below it. Returning false from visit
// skips the node's children.
func (t *Tree) WalkBreadth(id NodeID, visit func(id NodeID, n *Node) bool) {
	if id == NoNode {
		return
	}
	queue := []NodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		n := t.Node(cur)
		if n == nil {
			continue
		}
		if !visit(cur, n) {
			continue
		}
		queue = append(queue, t.Children(cur)...)
	}
}

// Count reports how many nodes of the given kind exist under the root.
func (t *Tree) Count(k Kind) int {
	count := 0
	t.Walk(t.Root(), func(_ NodeID, n *Node) bool {
		if n.Kind == k {
			count++
		}
		return true
	})
	return count
}
