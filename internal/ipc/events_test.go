package ipc

import (
	"errors"
	"testing"
)

func TestValidEventName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"workspace", true},
		{"window", true},
		{"output", true},
		{"mode", true},
		{"barconfig_update", true},
		{"binding", true},
		{"shutdown", true},
		{"tick", true},
		{"bar_state_update", true},
		{"input", true},
		{"bogus", false},
		{"", false},
		{"Window", false},
	}

	for _, tt := range tests {
		if got := ValidEventName(tt.name); got != tt.valid {
			t.Errorf("ValidEventName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestSubscribeRejectsUnknownNameBeforeIO(t *testing.T) {
	raw := &countingConn{}
	c := New(raw)

	_, err := c.Subscribe("bogus")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Subscribe error = %v, want ErrValidation", err)
	}
	if raw.writes != 0 {
		t.Errorf("Subscribe wrote %d frames before validation failed, want 0", raw.writes)
	}
}

func TestSubscribeSuccess(t *testing.T) {
	c, server := pipeConn(t)

	go func() {
		peer := New(server)
		msg, err := peer.Recv()
		if err != nil {
			return
		}
		if string(msg.Payload) != `["workspace","window"]` {
			t.Errorf("subscribe payload = %s", msg.Payload)
		}
		writeFrame(t, server, MsgSubscribe, []byte(`{"success": true}`))

		// One event after the ack.
		writeFrame(t, server, MessageType(uint32(0)|eventFlag), []byte(`{"change": "focus"}`))
	}()

	sub, err := c.Subscribe("workspace", "window")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ev, err := sub.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.Change != "focus" {
		t.Errorf("Change = %q, want %q", ev.Change, "focus")
	}
}

func TestSubscribeRefused(t *testing.T) {
	c, server := pipeConn(t)

	go func() {
		peer := New(server)
		if _, err := peer.Recv(); err != nil {
			return
		}
		writeFrame(t, server, MsgSubscribe, []byte(`{"success": false}`))
	}()

	_, err := c.Subscribe("tick")
	if !errors.Is(err, ErrSubscription) {
		t.Errorf("Subscribe error = %v, want ErrSubscription", err)
	}
}

func TestSubscribedConnRefusesQueries(t *testing.T) {
	c, server := pipeConn(t)

	go func() {
		peer := New(server)
		if _, err := peer.Recv(); err != nil {
			return
		}
		writeFrame(t, server, MsgSubscribe, []byte(`{"success": true}`))
	}()

	if _, err := c.Subscribe("tick"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	_, err := c.RoundTrip(MsgGetTree, nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("RoundTrip on subscribed conn = %v, want ErrValidation", err)
	}
}

func TestEventFlag(t *testing.T) {
	m := &Message{Type: MessageType(uint32(2) | eventFlag)}
	if !m.IsEvent() {
		t.Error("IsEvent() = false for flagged frame")
	}
	if m.EventType() != 2 {
		t.Errorf("EventType() = %d, want 2", m.EventType())
	}

	reply := &Message{Type: MsgGetTree}
	if reply.IsEvent() {
		t.Error("IsEvent() = true for reply frame")
	}
}
