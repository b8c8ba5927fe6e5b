package policy

import (
	"errors"

	"github.com/yourusername/sway-cli/internal/command"
	"github.com/yourusername/sway-cli/internal/logging"
	"github.com/yourusername/sway-cli/internal/tree"
)

// scratchpadFresh is the state a view reports while parked untouched in
// the scratchpad.
const scratchpadFresh = "fresh"

// ShowDesktopScratchpad toggles the visible workspace of an output
// between shown and hidden using the scratchpad. The direction is
// re-derived every call: when every view on the workspace is already
// parked fresh in the scratchpad, all are summoned back; otherwise all
// are sent there. No toggle flag is kept anywhere.
func (p *Policies) ShowDesktopScratchpad(outputID int64) error {
	views, err := p.currentWorkspaceViews(outputID)
	if err != nil || len(views) == 0 {
		return err
	}

	allHeld := true
	for _, v := range views {
		if v.ScratchpadState != scratchpadFresh {
			allHeld = false
			break
		}
	}

	var errs []error
	for _, v := range views {
		sel := command.SelectorFor(v)
		var cmd string
		if allHeld {
			cmd = command.Build(sel, "scratchpad", "show")
		} else {
			cmd = command.Build(sel, "move", "scratchpad")
		}
		if err := p.mgr.Run(cmd); err != nil {
			// No rollback between per-view commands; record and move on.
			logging.Warn().Err(err).Int64("view", v.ID).Msg("show-desktop command rejected")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ShowDesktopMinimize is the minimize-flag variant of the desktop
// toggle: views are minimized unless every one of them already is, in
// which case all are restored. Behaviorally distinct from the
// scratchpad variant; the caller picks one.
func (p *Policies) ShowDesktopMinimize(outputID int64) error {
	views, err := p.currentWorkspaceViews(outputID)
	if err != nil || len(views) == 0 {
		return err
	}

	allMinimized := true
	for _, v := range views {
		if !v.Minimized {
			allMinimized = false
			break
		}
	}
	state := "enable"
	if allMinimized {
		state = "disable"
	}

	var errs []error
	for _, v := range views {
		cmd := command.Build(command.SelectorFor(v), "minimize", state)
		if err := p.mgr.Run(cmd); err != nil {
			logging.Warn().Err(err).Int64("view", v.ID).Msg("minimize command rejected")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// currentWorkspaceViews resolves the immediate views on the visible
// workspace of an output. An unresolvable output or an empty workspace
// yields a nil slice and no error.
func (p *Policies) currentWorkspaceViews(outputID int64) ([]*tree.Node, error) {
	snap, err := p.mgr.GetTree()
	if err != nil {
		return nil, err
	}

	output := snap.OutputByID(outputID)
	if output == nil {
		logging.Info().Int64("output", outputID).Msg("output not found")
		return nil, nil
	}
	if output.CurrentWorkspace == "" {
		logging.Info().Int64("output", outputID).Msg("output has no current workspace")
		return nil, nil
	}

	var ws *tree.Node
	for _, w := range tree.WorkspacesOf(output) {
		if w.Name == output.CurrentWorkspace {
			ws = w
			break
		}
	}
	if ws == nil {
		logging.Info().
			Int64("output", outputID).
			Str("workspace", output.CurrentWorkspace).
			Msg("current workspace not found on output")
		return nil, nil
	}

	views := tree.ViewsOf(ws)
	if len(views) == 0 {
		logging.Info().Str("workspace", ws.Name).Msg("no views on workspace")
	}
	return views, nil
}
