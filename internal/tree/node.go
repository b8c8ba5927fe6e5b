package tree

import (
	"encoding/json"
	"fmt"
)

// Kind is the discriminator tag on a tree node.
type Kind string

const (
	Root        Kind = "root"
	Output      Kind = "output"
	Workspace   Kind = "workspace"
	Con         Kind = "con"
	FloatingCon Kind = "floating_con"
)

// ShellXWayland marks views hosted by the X11 compatibility layer. They
// take a different command selector than native clients.
const ShellXWayland = "xwayland"

// Rect is a node's geometry in layout coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Node is one entity in a tree snapshot. IDs are manager-assigned and only
// valid within the snapshot they came from; re-resolve through a fresh
// fetch before targeting a node in a command.
type Node struct {
	ID              int64  `json:"id"`
	Kind            Kind   `json:"type"`
	Name            string `json:"name"`
	AppID           string `json:"app_id"`
	Shell           string `json:"shell"`
	PID             int    `json:"pid"`
	Focused         bool   `json:"focused"`
	Minimized       bool   `json:"minimized"`
	ScratchpadState string `json:"scratchpad_state"`

	// CurrentWorkspace is the name of the visible workspace; set on
	// output nodes only.
	CurrentWorkspace string `json:"current_workspace"`

	Rect          Rect    `json:"rect"`
	Nodes         []*Node `json:"nodes"`
	FloatingNodes []*Node `json:"floating_nodes"`

	parent *Node
}

// UnmarshalJSON decodes a node and rejects unrecognized type tags instead
// of passing them through.
func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	switch a.Kind {
	case Root, Output, Workspace, Con, FloatingCon:
	default:
		return fmt.Errorf("unrecognized node type %q", a.Kind)
	}
	*n = Node(a)
	return nil
}

// Parent returns the node's structural parent, nil at the root. The link
// is populated at decode time and never used to mutate.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsView reports whether the node is a client window, tiled or floating.
func (n *Node) IsView() bool {
	return n.Kind == Con || n.Kind == FloatingCon
}

// Snapshot is one immutable fetched copy of the manager's tree. It is
// owned by the call that fetched it and must not be cached across policy
// operations; the manager applies commands asynchronously, so a held
// snapshot goes stale without notice.
type Snapshot struct {
	root *Node
}

// Decode builds a Snapshot from a get-tree reply payload and links each
// node to its parent.
func Decode(payload []byte) (*Snapshot, error) {
	var root Node
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	link(&root, nil)
	return &Snapshot{root: &root}, nil
}

// Root returns the snapshot's root node.
func (s *Snapshot) Root() *Node {
	return s.root
}

func link(n *Node, parent *Node) {
	n.parent = parent
	for _, child := range n.Nodes {
		link(child, n)
	}
	for _, child := range n.FloatingNodes {
		link(child, n)
	}
}
