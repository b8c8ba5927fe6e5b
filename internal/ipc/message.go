package ipc

import "encoding/json"

// MessageType identifies an IPC request or its reply.
type MessageType uint32

// Message type codes from the sway IPC protocol.
const (
	MsgRunCommand      MessageType = 0
	MsgGetWorkspaces   MessageType = 1
	MsgSubscribe       MessageType = 2
	MsgGetOutputs      MessageType = 3
	MsgGetTree         MessageType = 4
	MsgGetMarks        MessageType = 5
	MsgGetBarConfig    MessageType = 6
	MsgGetVersion      MessageType = 7
	MsgGetBindingModes MessageType = 8
	MsgGetConfig       MessageType = 9
	MsgSendTick        MessageType = 10
	MsgSync            MessageType = 11
	MsgGetBindingState MessageType = 12

	// Vendor extensions.
	MsgGetInputs MessageType = 100
	MsgGetSeats  MessageType = 101
	MsgBindInput MessageType = 102
)

// eventFlag is set on the type field of frames that carry events rather
// than replies.
const eventFlag = uint32(1) << 31

// Message is one decoded frame: the type code and the raw JSON payload.
// Payload decoding into concrete shapes happens in the client layer.
type Message struct {
	Type    MessageType
	Payload json.RawMessage
}

// IsEvent reports whether the frame carries an asynchronous event.
func (m *Message) IsEvent() bool {
	return uint32(m.Type)&eventFlag != 0
}

// EventType returns the event code with the event flag stripped.
func (m *Message) EventType() MessageType {
	return MessageType(uint32(m.Type) &^ eventFlag)
}
