package tree

// Walk visits n and its descendants depth-first, tiled children before
// floating ones, in child-list order. It stops when visit returns false
// and reports whether the walk ran to completion.
func Walk(n *Node, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Nodes {
		if !Walk(child, visit) {
			return false
		}
	}
	for _, child := range n.FloatingNodes {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// FindByID returns the node with the given ID, or nil. Absence is an
// expected outcome, not an error.
func (s *Snapshot) FindByID(id int64) *Node {
	var found *Node
	Walk(s.root, func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Focused returns the first node in traversal order whose focused flag is
// set, or nil.
func (s *Snapshot) Focused() *Node {
	var found *Node
	Walk(s.root, func(n *Node) bool {
		if n.Focused {
			found = n
			return false
		}
		return true
	})
	return found
}

// Views returns every client window in the snapshot, tiled and floating.
func (s *Snapshot) Views() []*Node {
	var views []*Node
	Walk(s.root, func(n *Node) bool {
		if n.IsView() {
			views = append(views, n)
		}
		return true
	})
	return views
}

// Outputs returns the root's direct output children.
func (s *Snapshot) Outputs() []*Node {
	var outputs []*Node
	for _, n := range s.root.Nodes {
		if n.Kind == Output {
			outputs = append(outputs, n)
		}
	}
	return outputs
}

// OutputByID returns the output with the given ID, or nil.
func (s *Snapshot) OutputByID(id int64) *Node {
	for _, n := range s.Outputs() {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// OutputByName returns the output with the given name, or nil.
func (s *Snapshot) OutputByName(name string) *Node {
	for _, n := range s.Outputs() {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// FocusedWorkspace resolves the workspace holding the focused node, or the
// focused node itself when a bare workspace has focus. Nil when nothing is
// focused or the focus sits outside any workspace.
func (s *Snapshot) FocusedWorkspace() *Node {
	return Ascend(s.Focused(), Workspace)
}

// FocusedOutput resolves the output owning the focused node.
func (s *Snapshot) FocusedOutput() *Node {
	return AscendToOutput(s.Focused())
}

// AscendToOutput walks parent links upward until it reaches an output
// node. Nil when the chain never reaches one.
func AscendToOutput(n *Node) *Node {
	return Ascend(n, Output)
}

// Ascend walks from n upward (n included) to the nearest node of the
// given kind, or nil.
func Ascend(n *Node, kind Kind) *Node {
	for ; n != nil; n = n.parent {
		if n.Kind == kind {
			return n
		}
	}
	return nil
}

// WorkspacesOf returns the immediate workspace children of an output.
func WorkspacesOf(output *Node) []*Node {
	if output == nil {
		return nil
	}
	var workspaces []*Node
	for _, n := range output.Nodes {
		if n.Kind == Workspace {
			workspaces = append(workspaces, n)
		}
	}
	return workspaces
}

// ViewsOf returns the immediate view children of a workspace, tiled then
// floating. Nested containers are not flattened; this matches the
// manager's default layout semantics.
func ViewsOf(workspace *Node) []*Node {
	if workspace == nil {
		return nil
	}
	var views []*Node
	for _, n := range workspace.Nodes {
		if n.IsView() {
			views = append(views, n)
		}
	}
	for _, n := range workspace.FloatingNodes {
		if n.IsView() {
			views = append(views, n)
		}
	}
	return views
}
