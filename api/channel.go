package api

import (
	"sync"

	"github.com/gogpu/framecore/payload"
)

// MsgSender is the producer half of a command channel. Send never
// blocks past local buffering and preserves FIFO order per sender.
type MsgSender interface {
	// Send enqueues a command for the consumer. Returns
	// ErrChannelClosed once the channel has been closed.
	Send(Command) error

	// Close shuts the channel down. Pending and subsequent Recv calls
	// on the other half observe ErrChannelClosed instead of blocking.
	Close() error
}

// MsgReceiver is the consumer half of a command channel. Recv blocks
// until a command is available or the channel is closed.
type MsgReceiver interface {
	Recv() (Command, error)
}

// PayloadSender carries out-of-band payload blocks with the same
// ordering and shutdown semantics as MsgSender.
type PayloadSender interface {
	SendPayload(payload.Payload) error
	Close() error
}

// PayloadReceiver is the consumer half of a payload channel.
type PayloadReceiver interface {
	RecvPayload() (payload.Payload, error)
}

// queue is an unbounded FIFO shared by both halves of an in-process
// channel. A plain Go channel cannot serve here: Send must never block
// regardless of consumer progress, and Close must wake a blocked Recv
// from either side.
type queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

func newQueue[T any]() *queue[T] {
	q := &queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *queue[T]) push(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrChannelClosed
	}
	q.items = append(q.items, item)
	q.cond.Signal()
	return nil
}

func (q *queue[T]) pop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			var zero T
			return zero, ErrChannelClosed
		}
		q.cond.Wait()
	}
	item := q.items[0]
	// Slide rather than re-slice so consumed items are collectable.
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	return item, nil
}

func (q *queue[T]) close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrChannelClosed
	}
	q.closed = true
	q.cond.Broadcast()
	return nil
}

// msgChannel is the in-process command transport.
type msgChannel struct {
	q *queue[Command]
}

func (c *msgChannel) Send(cmd Command) error { return c.q.push(cmd) }
func (c *msgChannel) Close() error           { return c.q.close() }
func (c *msgChannel) Recv() (Command, error) { return c.q.pop() }

// NewMsgChannel creates a connected in-process sender/receiver pair for
// commands. The queue is unbounded: Send never blocks, and commands
// are received in send order.
func NewMsgChannel() (MsgSender, MsgReceiver) {
	c := &msgChannel{q: newQueue[Command]()}
	return c, c
}

// payloadChannel is the in-process payload transport.
type payloadChannel struct {
	q *queue[payload.Payload]
}

func (c *payloadChannel) SendPayload(p payload.Payload) error { return c.q.push(p) }
func (c *payloadChannel) Close() error                        { return c.q.close() }
func (c *payloadChannel) RecvPayload() (payload.Payload, error) {
	return c.q.pop()
}

// NewPayloadChannel creates a connected in-process sender/receiver pair
// for payload blocks.
func NewPayloadChannel() (PayloadSender, PayloadReceiver) {
	c := &payloadChannel{q: newQueue[payload.Payload]()}
	return c, c
}
