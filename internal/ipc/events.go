package ipc

import (
	"encoding/json"
	"fmt"
)

// eventNames is the fixed set of event names the manager accepts.
var eventNames = map[string]struct{}{
	"workspace":        {},
	"window":           {},
	"output":           {},
	"mode":             {},
	"barconfig_update": {},
	"binding":          {},
	"shutdown":         {},
	"tick":             {},
	"bar_state_update": {},
	"input":            {},
}

// ValidEventName reports whether name is on the subscribe allow-list.
func ValidEventName(name string) bool {
	_, ok := eventNames[name]
	return ok
}

// Event is one arrival on a subscribed connection. Only the change
// description is interpreted; the rest of the payload stays raw.
type Event struct {
	Change string `json:"change"`

	Type MessageType     `json:"-"`
	Raw  json.RawMessage `json:"-"`
}

// Subscription is a connection switched into event-stream mode. The
// underlying Conn must not carry ordinary queries anymore; use a second
// Conn for those.
type Subscription struct {
	conn *Conn
}

// Subscribe validates names against the allow-list, sends the subscribe
// frame and checks the manager's acknowledgement. Validation failures are
// reported before any socket write happens.
func (c *Conn) Subscribe(names ...string) (*Subscription, error) {
	for _, name := range names {
		if !ValidEventName(name) {
			return nil, fmt.Errorf("%w: unknown event name %q", ErrValidation, name)
		}
	}

	payload, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("%w: encode event names: %v", ErrValidation, err)
	}

	reply, err := c.RoundTrip(MsgSubscribe, payload)
	if err != nil {
		return nil, err
	}

	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(reply.Payload, &ack); err != nil {
		return nil, fmt.Errorf("%w: subscribe reply: %v", ErrDecode, err)
	}
	if !ack.Success {
		return nil, fmt.Errorf("%w: events %v", ErrSubscription, names)
	}

	c.subscribed = true
	return &Subscription{conn: c}, nil
}

// Next blocks until the next event arrives. io.EOF means the manager
// closed the stream.
func (s *Subscription) Next() (*Event, error) {
	msg, err := s.conn.Recv()
	if err != nil {
		return nil, err
	}

	ev := &Event{Type: msg.EventType(), Raw: msg.Payload}
	if err := json.Unmarshal(msg.Payload, ev); err != nil {
		return nil, fmt.Errorf("%w: event payload: %v", ErrDecode, err)
	}
	return ev, nil
}

// Close closes the underlying connection.
func (s *Subscription) Close() error {
	return s.conn.Close()
}
