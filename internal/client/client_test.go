package client

import (
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yourusername/sway-cli/internal/ipc"
)

// serve starts a one-connection fake manager whose replies come from
// handler, and returns a Client talking to it.
func serve(t *testing.T, handler func(msg *ipc.Message) []byte) *Client {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	t.Cleanup(func() {
		clientSide.Close()
		serverSide.Close()
	})

	go func() {
		peer := ipc.New(serverSide)
		for {
			msg, err := peer.Recv()
			if err != nil {
				return
			}
			if err := peer.Send(msg.Type, handler(msg)); err != nil {
				return
			}
		}
	}()

	return New(ipc.New(clientSide))
}

func TestGetTree(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		if msg.Type != ipc.MsgGetTree {
			t.Errorf("request type = %d, want get_tree", msg.Type)
		}
		return []byte(`{
			"id": 1, "type": "root",
			"nodes": [{"id": 2, "type": "output", "name": "DP-1", "nodes": [
				{"id": 10, "type": "workspace", "name": "1",
				 "nodes": [{"id": 20, "type": "con", "name": "editor", "focused": true}]}
			]}]
		}`)
	})

	snap, err := c.GetTree()
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}
	focused := snap.Focused()
	if focused == nil || focused.ID != 20 {
		t.Errorf("Focused = %v, want node 20", focused)
	}
}

func TestGetTreeDecodeFailure(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		return []byte(`{"id": 1, "type": "mystery"}`)
	})

	_, err := c.GetTree()
	if !errors.Is(err, ipc.ErrDecode) {
		t.Errorf("GetTree error = %v, want ErrDecode", err)
	}
}

func TestRunCommand(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		if string(msg.Payload) != "workspace 3" {
			t.Errorf("command payload = %q", msg.Payload)
		}
		return []byte(`[{"success": true}]`)
	})

	results, err := c.RunCommand("workspace 3")
	if err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Errorf("results = %v", results)
	}
}

func TestRunFoldsFailures(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		return []byte(`[
			{"success": true},
			{"success": false, "error": "unknown verb"},
			{"success": false, "error": "no matching container"}
		]`)
	})

	err := c.Run("bad; worse")
	if err == nil {
		t.Fatal("Run accepted rejected commands")
	}
	for _, want := range []string{`"bad; worse"`, "unknown verb", "no matching container"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestGetWorkspaces(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		if msg.Type != ipc.MsgGetWorkspaces {
			t.Errorf("request type = %d, want get_workspaces", msg.Type)
		}
		return []byte(`[
			{"num": 1, "name": "1", "focused": true, "visible": true, "output": "DP-1"},
			{"num": 3, "name": "3", "output": "DP-1"}
		]`)
	})

	workspaces, err := c.GetWorkspaces()
	if err != nil {
		t.Fatalf("GetWorkspaces: %v", err)
	}
	if len(workspaces) != 2 || workspaces[0].Name != "1" || !workspaces[0].Focused {
		t.Errorf("workspaces = %v", workspaces)
	}
}

func TestGetOutputs(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		return []byte(`[{"name": "DP-1", "active": true, "scale": 1.5, "current_workspace": "2"}]`)
	})

	outputs, err := c.GetOutputs()
	if err != nil {
		t.Fatalf("GetOutputs: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Scale != 1.5 || outputs[0].CurrentWorkspace != "2" {
		t.Errorf("outputs = %v", outputs)
	}
}

func TestGetVersion(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		return []byte(`{"major": 1, "minor": 9, "patch": 0, "human_readable": "sway version 1.9"}`)
	})

	v, err := c.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if v.Major != 1 || v.Minor != 9 || v.HumanReadable != "sway version 1.9" {
		t.Errorf("version = %+v", v)
	}
}

func TestSendTickPassthrough(t *testing.T) {
	var seen string
	c := serve(t, func(msg *ipc.Message) []byte {
		seen = string(msg.Payload)
		return []byte(`{"success": true}`)
	})

	sent, err := c.SendTick("hello")
	if err != nil {
		t.Fatalf("SendTick: %v", err)
	}
	if sent != "hello" || seen != "hello" {
		t.Errorf("sent = %q, server saw %q", sent, seen)
	}
}

func TestSendTickGeneratesPayload(t *testing.T) {
	var seen string
	c := serve(t, func(msg *ipc.Message) []byte {
		seen = string(msg.Payload)
		return []byte(`{"success": true}`)
	})

	sent, err := c.SendTick("")
	if err != nil {
		t.Fatalf("SendTick: %v", err)
	}
	if sent != seen {
		t.Errorf("returned %q but sent %q", sent, seen)
	}
	if _, err := uuid.Parse(sent); err != nil {
		t.Errorf("generated payload %q is not a UUID: %v", sent, err)
	}
}

func TestSendTickRefused(t *testing.T) {
	c := serve(t, func(msg *ipc.Message) []byte {
		return []byte(`{"success": false}`)
	})

	if _, err := c.SendTick("x"); err == nil {
		t.Error("SendTick accepted a refused tick")
	}
}
