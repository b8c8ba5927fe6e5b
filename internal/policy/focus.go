package policy

import (
	"github.com/yourusername/sway-cli/internal/command"
	"github.com/yourusername/sway-cli/internal/logging"
)

// CycleFocusInWorkspace focuses the next child of the focused workspace,
// circularly. Tiled children are cycled; the floating set is used only
// when the workspace has no tiled children. When the focused view cannot
// be located among them, focus falls back to the first child. Returns
// the ID focused, zero when the workspace had nothing to focus.
func (p *Policies) CycleFocusInWorkspace() (int64, error) {
	snap, err := p.mgr.GetTree()
	if err != nil {
		return 0, err
	}

	ws := snap.FocusedWorkspace()
	if ws == nil {
		logging.Info().Msg("no focused workspace")
		return 0, nil
	}

	children := ws.Nodes
	if len(children) == 0 {
		children = ws.FloatingNodes
	}
	if len(children) == 0 {
		logging.Info().Str("workspace", ws.Name).Msg("workspace has no children to focus")
		return 0, nil
	}

	next := children[0]
	if focused := snap.Focused(); focused != nil {
		for i, child := range children {
			if child.ID == focused.ID {
				next = children[(i+1)%len(children)]
				break
			}
		}
	}

	if err := p.mgr.Run(command.Build(command.SelectorFor(next), "focus")); err != nil {
		return 0, err
	}
	return next.ID, nil
}
