package ipc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

// pipeConn returns a connected client Conn and the raw server side.
func pipeConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	t.Cleanup(func() {
		clientSide.Close()
		serverSide.Close()
	})
	return New(clientSide), serverSide
}

// writeFrame frames a payload by hand on the server side.
func writeFrame(t *testing.T, conn net.Conn, msgType MessageType, payload []byte) {
	t.Helper()
	buf := make([]byte, headerSize+len(payload))
	copy(buf, magic)
	binary.NativeEndian.PutUint32(buf[6:10], uint32(len(payload)))
	binary.NativeEndian.PutUint32(buf[10:14], uint32(msgType))
	copy(buf[headerSize:], payload)
	if _, err := conn.Write(buf); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	large := bytes.Repeat([]byte("x"), 70*1024)
	large[0] = '"'
	large[len(large)-1] = '"'

	tests := []struct {
		name    string
		msgType MessageType
		payload []byte
	}{
		{"empty", MsgGetTree, nil},
		{"one byte", MsgRunCommand, []byte("x")},
		{"spans multiple reads", MsgGetTree, large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, server := pipeConn(t)

			done := make(chan error, 1)
			go func() {
				done <- c.Send(tt.msgType, tt.payload)
			}()

			peer := New(server)
			msg, err := peer.Recv()
			if err != nil {
				t.Fatalf("Recv: %v", err)
			}
			if err := <-done; err != nil {
				t.Fatalf("Send: %v", err)
			}

			if msg.Type != tt.msgType {
				t.Errorf("Type = %d, want %d", msg.Type, tt.msgType)
			}
			if !bytes.Equal(msg.Payload, tt.payload) {
				t.Errorf("payload mismatch: got %d bytes, want %d", len(msg.Payload), len(tt.payload))
			}
		})
	}
}

func TestRecvBadMagic(t *testing.T) {
	c, server := pipeConn(t)

	go func() {
		header := make([]byte, headerSize)
		copy(header, "not-ipc")
		server.Write(header)
	}()

	_, err := c.Recv()
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("Recv error = %v, want ErrProtocol", err)
	}
}

func TestRecvTruncatedPayload(t *testing.T) {
	c, server := pipeConn(t)

	go func() {
		buf := make([]byte, headerSize+2)
		copy(buf, magic)
		binary.NativeEndian.PutUint32(buf[6:10], 64) // declares 64, delivers 2
		binary.NativeEndian.PutUint32(buf[10:14], uint32(MsgGetTree))
		server.Write(buf)
		server.Close()
	}()

	_, err := c.Recv()
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("Recv error = %v, want ErrProtocol", err)
	}
}

func TestRecvCleanClose(t *testing.T) {
	c, server := pipeConn(t)

	go server.Close()

	_, err := c.Recv()
	if !errors.Is(err, io.EOF) {
		t.Errorf("Recv error = %v, want io.EOF", err)
	}
}

func TestConnectRequiresEndpoint(t *testing.T) {
	t.Setenv(SocketEnv, "")

	_, err := Connect("")
	if !errors.Is(err, ErrConnection) {
		t.Errorf("Connect error = %v, want ErrConnection", err)
	}
}

func TestConnectUnreachablePath(t *testing.T) {
	_, err := Connect("/nonexistent/sway.sock")
	if !errors.Is(err, ErrConnection) {
		t.Errorf("Connect error = %v, want ErrConnection", err)
	}
}

// countingConn records writes so tests can assert no I/O happened.
type countingConn struct {
	writes int
}

func (c *countingConn) Read(b []byte) (int, error)         { return 0, io.EOF }
func (c *countingConn) Write(b []byte) (int, error)        { c.writes++; return len(b), nil }
func (c *countingConn) Close() error                       { return nil }
func (c *countingConn) LocalAddr() net.Addr                { return nil }
func (c *countingConn) RemoteAddr() net.Addr               { return nil }
func (c *countingConn) SetDeadline(t time.Time) error      { return nil }
func (c *countingConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *countingConn) SetWriteDeadline(t time.Time) error { return nil }
