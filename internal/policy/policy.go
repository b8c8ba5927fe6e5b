// Package policy implements the stateful window-management operations.
// Nothing here persists state between calls: every operation re-derives
// what it needs from a fresh tree snapshot, so the tool's belief can
// never drift from the manager's. The cost is one extra fetch per call.
//
// A missing intermediate entity (no focused output, no matching
// workspace, no matching view) is a normal empty outcome: the operation
// logs context and returns without sending a command. Only transport
// failures propagate as errors.
package policy

import (
	"time"

	"github.com/yourusername/sway-cli/internal/config"
	"github.com/yourusername/sway-cli/internal/tree"
)

// Manager is the slice of the client the policies depend on: one
// snapshot fetch and one command sink. Tests substitute a fake.
type Manager interface {
	GetTree() (*tree.Snapshot, error)
	Run(cmd string) error
}

// Policies bundles the manager handle with the configuration knobs.
type Policies struct {
	mgr Manager
	cfg *config.Config

	// after is the timer used between retry attempts; tests replace it
	// with an immediate channel.
	after func(time.Duration) <-chan time.Time
}

// New builds a policy set over the given manager. A nil cfg selects the
// built-in defaults.
func New(mgr Manager, cfg *config.Config) *Policies {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Policies{mgr: mgr, cfg: cfg, after: time.After}
}
