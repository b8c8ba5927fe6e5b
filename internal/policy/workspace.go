package policy

import (
	"github.com/yourusername/sway-cli/internal/command"
	"github.com/yourusername/sway-cli/internal/logging"
	"github.com/yourusername/sway-cli/internal/tree"
)

// NextWorkspaceWithViews returns the name of the next populated
// workspace on the focused output, cycling circularly. An empty string
// means no workspace holds any view; no command is sent either way.
func (p *Policies) NextWorkspaceWithViews() (string, error) {
	snap, err := p.mgr.GetTree()
	if err != nil {
		return "", err
	}
	return nextWorkspaceName(snap), nil
}

// CycleWorkspace computes the next populated workspace and switches to
// it. Returns the name switched to, empty when there was nowhere to go.
func (p *Policies) CycleWorkspace() (string, error) {
	name, err := p.NextWorkspaceWithViews()
	if err != nil {
		return "", err
	}
	if name == "" {
		logging.Info().Msg("no workspace with views to cycle to")
		return "", nil
	}
	if err := p.mgr.Run(command.SwitchWorkspace(name)); err != nil {
		return "", err
	}
	return name, nil
}

// nextWorkspaceName walks the focused output's workspaces, de-duplicated
// by name in first-seen order and filtered to those with at least one
// immediate view, and picks the name after the focused workspace,
// wrapping at the end. A focused workspace outside the filtered list
// (an empty one, say) falls back to the first populated name.
func nextWorkspaceName(snap *tree.Snapshot) string {
	focused := snap.Focused()
	if focused == nil {
		logging.Info().Msg("nothing focused")
		return ""
	}
	output := tree.AscendToOutput(focused)
	if output == nil {
		logging.Info().Msg("focused node not under an output")
		return ""
	}

	seen := make(map[string]bool)
	var populated []string
	for _, ws := range tree.WorkspacesOf(output) {
		if seen[ws.Name] {
			continue
		}
		seen[ws.Name] = true
		if len(tree.ViewsOf(ws)) > 0 {
			populated = append(populated, ws.Name)
		}
	}
	if len(populated) == 0 {
		return ""
	}

	if current := tree.Ascend(focused, tree.Workspace); current != nil {
		for i, name := range populated {
			if name == current.Name {
				return populated[(i+1)%len(populated)]
			}
		}
	}
	return populated[0]
}
