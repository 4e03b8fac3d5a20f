package api

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/gorilla/websocket"

	"github.com/gogpu/framecore/payload"
)

// The websocket backend serializes commands with gob inside binary
// frames and ships payload blocks as raw frames. Apart from that
// serialization boundary its behavior matches the in-process backend:
// per-sender FIFO, non-blocking Send, and ErrChannelClosed on teardown.

func init() {
	gob.Register(AddRawFont{})
	gob.Register(AddImage{})
	gob.Register(UpdateImage{})
	gob.Register(AddDisplayList{})
	gob.Register(SetRootStackingContext{})
	gob.Register(SetRootPipeline{})
	gob.Register(Scroll{})
	gob.Register(Shutdown{})
}

// envelope wraps the Command interface value so gob records the
// concrete type.
type envelope struct {
	Cmd Command
}

// wsWriter owns the write side of a websocket connection. Frames are
// queued unbounded and drained by a single goroutine so Send returns
// immediately and frame order matches send order.
type wsWriter struct {
	q    *queue[[]byte]
	conn *websocket.Conn
}

func newWSWriter(conn *websocket.Conn) *wsWriter {
	w := &wsWriter{q: newQueue[[]byte](), conn: conn}
	go w.run()
	return w
}

func (w *wsWriter) run() {
	for {
		frame, err := w.q.pop()
		if err != nil {
			// Queue closed: tell the peer and drop the connection so a
			// blocked read on the other side wakes up.
			_ = w.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = w.conn.Close()
			return
		}
		if err := w.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			_ = w.q.close()
			_ = w.conn.Close()
			return
		}
	}
}

func (w *wsWriter) send(frame []byte) error { return w.q.push(frame) }
func (w *wsWriter) close() error            { return w.q.close() }

// wsMsgSender sends gob-encoded commands over a websocket connection.
type wsMsgSender struct {
	w *wsWriter
}

// NewWebSocketMsgSender wraps a websocket connection as a MsgSender.
// The sender takes over the write side of the connection.
func NewWebSocketMsgSender(conn *websocket.Conn) MsgSender {
	return &wsMsgSender{w: newWSWriter(conn)}
}

func (s *wsMsgSender) Send(cmd Command) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(envelope{Cmd: cmd}); err != nil {
		return fmt.Errorf("api: encode command: %w", err)
	}
	return s.w.send(buf.Bytes())
}

func (s *wsMsgSender) Close() error { return s.w.close() }

// wsMsgReceiver receives gob-encoded commands from a websocket
// connection.
type wsMsgReceiver struct {
	conn *websocket.Conn
}

// NewWebSocketMsgReceiver wraps a websocket connection as a
// MsgReceiver. The receiver takes over the read side of the connection.
func NewWebSocketMsgReceiver(conn *websocket.Conn) MsgReceiver {
	return &wsMsgReceiver{conn: conn}
}

func (r *wsMsgReceiver) Recv() (Command, error) {
	_, frame, err := r.conn.ReadMessage()
	if err != nil {
		return nil, wsRecvErr(err)
	}
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(frame)).Decode(&env); err != nil {
		return nil, fmt.Errorf("api: decode command: %w", err)
	}
	return env.Cmd, nil
}

// wsPayloadSender sends payload blocks as raw binary frames.
type wsPayloadSender struct {
	w *wsWriter
}

// NewWebSocketPayloadSender wraps a websocket connection as a
// PayloadSender.
func NewWebSocketPayloadSender(conn *websocket.Conn) PayloadSender {
	return &wsPayloadSender{w: newWSWriter(conn)}
}

func (s *wsPayloadSender) SendPayload(p payload.Payload) error {
	return s.w.send(p.ToData())
}

func (s *wsPayloadSender) Close() error { return s.w.close() }

// wsPayloadReceiver receives payload blocks from raw binary frames.
type wsPayloadReceiver struct {
	conn *websocket.Conn
}

// NewWebSocketPayloadReceiver wraps a websocket connection as a
// PayloadReceiver.
func NewWebSocketPayloadReceiver(conn *websocket.Conn) PayloadReceiver {
	return &wsPayloadReceiver{conn: conn}
}

func (r *wsPayloadReceiver) RecvPayload() (payload.Payload, error) {
	_, frame, err := r.conn.ReadMessage()
	if err != nil {
		return payload.Payload{}, wsRecvErr(err)
	}
	return payload.FromData(frame)
}

// wsRecvErr maps transport teardown to ErrChannelClosed so both
// backends report shutdown identically.
func wsRecvErr(err error) error {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) {
		return ErrChannelClosed
	}
	return fmt.Errorf("api: websocket receive: %w", err)
}
