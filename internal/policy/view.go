package policy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yourusername/sway-cli/internal/command"
	"github.com/yourusername/sway-cli/internal/ipc"
	"github.com/yourusername/sway-cli/internal/logging"
	"github.com/yourusername/sway-cli/internal/tree"
)

// ViewWithRetry resolves a view by ID, re-fetching the tree until it
// appears. The manager applies commands asynchronously, so a view
// created a moment ago may be missing from the very next snapshot; this
// is the one place that concession is made. Attempts are capped by the
// configured retry policy, with exponential backoff between fetches, and
// the context bounds overall wall-clock time. A nil node after
// exhausting attempts is a normal outcome, not an error.
func (p *Policies) ViewWithRetry(ctx context.Context, id int64) (*tree.Node, error) {
	_, view, err := p.viewWithRetry(ctx, id)
	return view, err
}

func (p *Policies) viewWithRetry(ctx context.Context, id int64) (*tree.Snapshot, *tree.Node, error) {
	r := p.cfg.Retry
	delay := r.Delay.Std()

	for attempt := 0; attempt < r.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-p.after(delay):
			}
			delay = time.Duration(float64(delay) * r.Backoff)
		}

		snap, err := p.mgr.GetTree()
		if err != nil {
			return nil, nil, err
		}
		if view := snap.FindByID(id); view != nil && view.IsView() {
			return snap, view, nil
		}
	}

	logging.Info().Int64("view", id).Int("attempts", r.Attempts).Msg("view not found")
	return nil, nil, nil
}

// MoveResult reports the per-step outcome of a view move. The two
// commands have no atomicity between them; when the second fails the
// created workspace stays as-is.
type MoveResult struct {
	Workspace string
	Created   bool
	Moved     bool
}

// MoveViewToWorkspace moves a view to the workspace named after its
// process id, creating the workspace first when no workspace of that
// name exists. A view without a PID targets the configured fallback
// name. A nil result means the view could not be resolved.
func (p *Policies) MoveViewToWorkspace(ctx context.Context, viewID int64) (*MoveResult, error) {
	snap, view, err := p.viewWithRetry(ctx, viewID)
	if err != nil || view == nil {
		return nil, err
	}

	name := p.cfg.Policies.FallbackWorkspace
	if view.PID > 0 {
		name = strconv.Itoa(view.PID)
	}

	res := &MoveResult{Workspace: name}
	if !workspaceExists(snap, name) {
		if err := p.mgr.Run(command.SwitchWorkspace(name)); err != nil {
			return res, err
		}
		res.Created = true
	}
	if err := p.mgr.Run(command.MoveToWorkspace(view, name)); err != nil {
		return res, err
	}
	res.Moved = true

	logging.Info().
		Int64("view", viewID).
		Str("workspace", name).
		Bool("created", res.Created).
		Msg("view moved")
	return res, nil
}

// MaximizeView floats a view and grows it to the focused workspace's
// rectangle at origin. This simulates maximize; it does not restore a
// prior tiled layout when undone.
func (p *Policies) MaximizeView(ctx context.Context, viewID int64) error {
	snap, view, err := p.viewWithRetry(ctx, viewID)
	if err != nil || view == nil {
		return err
	}

	width, height := p.cfg.Maximize.Width, p.cfg.Maximize.Height
	if ws := snap.FocusedWorkspace(); ws != nil && ws.Rect.Width > 0 && ws.Rect.Height > 0 {
		width, height = ws.Rect.Width, ws.Rect.Height
	}

	sel := command.SelectorFor(view)
	cmds := []string{
		command.Build(sel, "floating", "enable"),
		command.Build(sel, "resize", "set", strconv.Itoa(width), strconv.Itoa(height)),
		command.Build(sel, "move", "position", "0", "0"),
	}

	var errs []error
	for _, cmd := range cmds {
		if err := p.mgr.Run(cmd); err != nil {
			logging.Warn().Err(err).Str("cmd", cmd).Msg("maximize step rejected")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetViewOpacity sets a view's opacity. Values outside [0, 1] are
// rejected before any I/O.
func (p *Policies) SetViewOpacity(ctx context.Context, viewID int64, alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("%w: opacity %v outside [0, 1]", ipc.ErrValidation, alpha)
	}

	view, err := p.ViewWithRetry(ctx, viewID)
	if err != nil || view == nil {
		return err
	}

	cmd := command.Build(command.SelectorFor(view), "opacity", strconv.FormatFloat(alpha, 'f', -1, 64))
	return p.mgr.Run(cmd)
}

// workspaceExists reports whether any workspace in the snapshot carries
// the given name.
func workspaceExists(snap *tree.Snapshot, name string) bool {
	for _, output := range snap.Outputs() {
		for _, ws := range tree.WorkspacesOf(output) {
			if ws.Name == name {
				return true
			}
		}
	}
	return false
}
