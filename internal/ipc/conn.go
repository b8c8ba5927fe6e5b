package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

const (
	// magic is the 6-byte literal that opens every frame header.
	magic = "i3-ipc"

	// headerSize is magic + uint32 length + uint32 type.
	headerSize = 14

	// SocketEnv is the environment variable holding the manager's socket
	// path. Resolution stops there; no further discovery is attempted.
	SocketEnv = "SWAYSOCK"
)

// Conn is one stream connection to the window manager. The protocol is
// strictly half-duplex per round-trip: a Send that expects a reply must be
// followed by exactly one Recv before the next request. A Conn is not safe
// for concurrent use; callers serialize access or open a second Conn.
type Conn struct {
	path       string
	conn       net.Conn
	subscribed bool
}

// Connect opens a connection to the manager socket. An empty socketPath is
// resolved through SWAYSOCK; an unset variable or undialable path fails
// with ErrConnection.
func Connect(socketPath string) (*Conn, error) {
	if socketPath == "" {
		socketPath = os.Getenv(SocketEnv)
	}
	if socketPath == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrConnection, SocketEnv)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrConnection, socketPath, err)
	}

	return &Conn{path: socketPath, conn: conn}, nil
}

// New wraps an existing stream connection. Used by tests to drive the
// framing layer over an in-memory pipe.
func New(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// Close terminates the connection. A blocked Recv can only be interrupted
// this way; afterwards the Conn must be replaced, not reused.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Send frames and writes one request. Header and payload go out in a
// single write. No reply is awaited.
func (c *Conn) Send(msgType MessageType, payload []byte) error {
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic)
	binary.NativeEndian.PutUint32(buf[6:10], uint32(len(payload)))
	binary.NativeEndian.PutUint32(buf[10:14], uint32(msgType))
	copy(buf[headerSize:], payload)

	if _, err := c.conn.Write(buf); err != nil {
		return fmt.Errorf("%w: write frame: %v", ErrConnection, err)
	}
	return nil
}

// Recv reads exactly one frame: 14 header bytes, then the payload length
// the header declares. A clean peer close on a frame boundary surfaces
// io.EOF; a close inside a frame, or a magic mismatch, is ErrProtocol.
// The payload is returned raw; JSON decoding is the caller's concern.
func (c *Conn) Recv() (*Message, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrProtocol, err)
	}

	if string(header[:6]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrProtocol, header[:6])
	}

	length := binary.NativeEndian.Uint32(header[6:10])
	msgType := binary.NativeEndian.Uint32(header[10:14])

	payload := make([]byte, length)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return nil, fmt.Errorf("%w: read payload (%d bytes): %v", ErrProtocol, length, err)
	}

	return &Message{Type: MessageType(msgType), Payload: payload}, nil
}

// RoundTrip sends one request and reads its reply.
func (c *Conn) RoundTrip(msgType MessageType, payload []byte) (*Message, error) {
	if c.subscribed {
		return nil, fmt.Errorf("%w: connection is in event-stream mode", ErrValidation)
	}
	if err := c.Send(msgType, payload); err != nil {
		return nil, err
	}
	return c.Recv()
}

// IsAlive probes the socket without blocking or mutating state. It polls
// the descriptor for hangup and error conditions with a zero timeout.
func (c *Conn) IsAlive() bool {
	if c.conn == nil {
		return false
	}
	uc, ok := c.conn.(*net.UnixConn)
	if !ok {
		return true
	}
	raw, err := uc.SyscallConn()
	if err != nil {
		return false
	}

	alive := false
	ctrlErr := raw.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
		n, err := unix.Poll(fds, 0)
		if err != nil {
			return
		}
		if n > 0 && fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			return
		}
		alive = true
	})
	return ctrlErr == nil && alive
}
