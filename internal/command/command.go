// Package command builds the manager's free-text command strings. The
// grammar itself is owned by the manager; nothing here validates beyond
// picking the right selector key.
package command

import (
	"fmt"
	"strings"

	"github.com/yourusername/sway-cli/internal/tree"
)

// SelectorFor returns the criteria fragment targeting a node. XWayland
// clients are addressed by X11 window id, native clients by container id;
// the key name is the only difference. All command construction routes
// through here rather than hard-coding either form.
func SelectorFor(n *tree.Node) string {
	if n.Shell == tree.ShellXWayland {
		return fmt.Sprintf("[id=%d]", n.ID)
	}
	return fmt.Sprintf("[con_id=%d]", n.ID)
}

// Build joins a selector, verb and arguments into one command string.
func Build(selector, verb string, args ...string) string {
	parts := append([]string{selector, verb}, args...)
	return strings.Join(parts, " ")
}

// SwitchWorkspace returns the command switching to (and creating, if
// needed) the named workspace.
func SwitchWorkspace(name string) string {
	return "workspace " + name
}

// SwitchWorkspaceID returns the command switching to a workspace by id.
func SwitchWorkspaceID(id int64) string {
	return fmt.Sprintf("workspace ID %d", id)
}

// MoveToWorkspace returns the command moving a node to the named
// workspace.
func MoveToWorkspace(n *tree.Node, name string) string {
	return Build(SelectorFor(n), "move", "container", "to", "workspace", name)
}
