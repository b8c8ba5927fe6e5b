// Package client exposes typed request/reply operations over one IPC
// connection. Every method performs a strict send-then-recv round-trip;
// nothing is cached between calls.
package client

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/sway-cli/internal/ipc"
	"github.com/yourusername/sway-cli/internal/tree"
)

// Client wraps a Conn with the message types this tool speaks. Lifecycle
// is the caller's: open with Connect, close when done. A Client is not
// safe for concurrent use.
type Client struct {
	conn *ipc.Conn
}

// Connect dials the manager socket. An empty path resolves via SWAYSOCK.
func Connect(socketPath string) (*Client, error) {
	conn, err := ipc.Connect(socketPath)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// New wraps an existing connection; used by tests.
func New(conn *ipc.Conn) *Client {
	return &Client{conn: conn}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// IsAlive probes the connection without blocking.
func (c *Client) IsAlive() bool {
	return c.conn.IsAlive()
}

// Subscribe switches the connection into event-stream mode. Open a second
// Client for queries while watching events.
func (c *Client) Subscribe(names ...string) (*ipc.Subscription, error) {
	return c.conn.Subscribe(names...)
}

// GetTree fetches one full snapshot of the manager's tree.
func (c *Client) GetTree() (*tree.Snapshot, error) {
	reply, err := c.conn.RoundTrip(ipc.MsgGetTree, nil)
	if err != nil {
		return nil, err
	}
	snap, err := tree.Decode(reply.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ipc.ErrDecode, err)
	}
	return snap, nil
}

// CommandResult is the manager's verdict on one command in a run-command
// request.
type CommandResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RunCommand submits a command string and returns the per-command results.
func (c *Client) RunCommand(cmd string) ([]CommandResult, error) {
	reply, err := c.conn.RoundTrip(ipc.MsgRunCommand, []byte(cmd))
	if err != nil {
		return nil, err
	}
	var results []CommandResult
	if err := unmarshal(reply.Payload, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Run submits a command and folds rejected results into one error.
func (c *Client) Run(cmd string) error {
	results, err := c.RunCommand(cmd)
	if err != nil {
		return err
	}
	var failures []string
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r.Error)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("command %q rejected: %s", cmd, strings.Join(failures, "; "))
	}
	return nil
}

// WorkspaceInfo is one entry in a get-workspaces reply.
type WorkspaceInfo struct {
	Num     int       `json:"num"`
	Name    string    `json:"name"`
	Focused bool      `json:"focused"`
	Visible bool      `json:"visible"`
	Urgent  bool      `json:"urgent"`
	Output  string    `json:"output"`
	Rect    tree.Rect `json:"rect"`
}

// GetWorkspaces lists the manager's workspaces.
func (c *Client) GetWorkspaces() ([]WorkspaceInfo, error) {
	reply, err := c.conn.RoundTrip(ipc.MsgGetWorkspaces, nil)
	if err != nil {
		return nil, err
	}
	var workspaces []WorkspaceInfo
	if err := unmarshal(reply.Payload, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// OutputInfo is one entry in a get-outputs reply.
type OutputInfo struct {
	Name             string    `json:"name"`
	Make             string    `json:"make"`
	Model            string    `json:"model"`
	Serial           string    `json:"serial"`
	Active           bool      `json:"active"`
	Focused          bool      `json:"focused"`
	Scale            float64   `json:"scale"`
	CurrentWorkspace string    `json:"current_workspace"`
	Rect             tree.Rect `json:"rect"`
}

// GetOutputs lists the manager's outputs.
func (c *Client) GetOutputs() ([]OutputInfo, error) {
	reply, err := c.conn.RoundTrip(ipc.MsgGetOutputs, nil)
	if err != nil {
		return nil, err
	}
	var outputs []OutputInfo
	if err := unmarshal(reply.Payload, &outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// GetMarks lists the marks currently set.
func (c *Client) GetMarks() ([]string, error) {
	reply, err := c.conn.RoundTrip(ipc.MsgGetMarks, nil)
	if err != nil {
		return nil, err
	}
	var marks []string
	if err := unmarshal(reply.Payload, &marks); err != nil {
		return nil, err
	}
	return marks, nil
}

// Version is the manager's version reply.
type Version struct {
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Patch         int    `json:"patch"`
	HumanReadable string `json:"human_readable"`
	ConfigFile    string `json:"loaded_config_file_name"`
}

// GetVersion reports the manager's version.
func (c *Client) GetVersion() (*Version, error) {
	reply, err := c.conn.RoundTrip(ipc.MsgGetVersion, nil)
	if err != nil {
		return nil, err
	}
	var v Version
	if err := unmarshal(reply.Payload, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// SendTick broadcasts a tick event to subscribers. An empty payload is
// replaced with a fresh UUID so the sender can correlate the tick on a
// listening connection. Returns the payload actually sent.
func (c *Client) SendTick(payload string) (string, error) {
	if payload == "" {
		payload = uuid.New().String()
	}
	reply, err := c.conn.RoundTrip(ipc.MsgSendTick, []byte(payload))
	if err != nil {
		return "", err
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := unmarshal(reply.Payload, &ack); err != nil {
		return "", err
	}
	if !ack.Success {
		return "", fmt.Errorf("tick not accepted by manager")
	}
	return payload, nil
}
