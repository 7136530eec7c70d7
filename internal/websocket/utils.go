package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// Candidates sit on an open socket while working through a part and
	// only send a frame per answered question, so the read deadline is
	// sized to the longest gap between answers, not to a chat-style ping.
	readWait = 10 * time.Minute
	// A frame carries at most one answer (or a part-7 match list).
	maxFrameBytes = 64 << 10
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads and decodes a message into the provided structure.
// It sets a read deadline and caps the frame size.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadLimit(maxFrameBytes)
	conn.SetReadDeadline(time.Now().Add(readWait))
	return conn.ReadJSON(v)
}
