package batch

import (
	"context"
	"errors"
	"sync"
)

// ErrMailboxClosed is returned by Recv once the mailbox is closed and drained
var ErrMailboxClosed = errors.New("mailbox closed")

// Sender is the producing side of a Mailbox
type Sender interface {
	Send(msg Msg)
}

// Mailbox is an unbounded FIFO queue of messages with any number of
// senders and a single receiver. Send never blocks.
type Mailbox struct {
	mu     sync.Mutex
	queue  []Msg
	closed bool
	ready  chan struct{}
}

// NewMailbox creates an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{ready: make(chan struct{}, 1)}
}

// Send appends msg to the queue. Messages sent after Close are dropped.
func (mb *Mailbox) Send(msg Msg) {
	mb.mu.Lock()
	if mb.closed {
		mb.mu.Unlock()
		return
	}
	mb.queue = append(mb.queue, msg)
	mb.mu.Unlock()
	mb.signal()
}

// Close stops accepting messages. Already queued messages can still be received.
func (mb *Mailbox) Close() {
	mb.mu.Lock()
	mb.closed = true
	mb.mu.Unlock()
	mb.signal()
}

// Recv blocks until a message is available, ctx is done, or the mailbox is
// closed and empty.
func (mb *Mailbox) Recv(ctx context.Context) (Msg, error) {
	for {
		mb.mu.Lock()
		if len(mb.queue) > 0 {
			msg := mb.queue[0]
			mb.queue[0] = nil
			mb.queue = mb.queue[1:]
			mb.mu.Unlock()
			return msg, nil
		}
		closed := mb.closed
		mb.mu.Unlock()

		if closed {
			return nil, ErrMailboxClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-mb.ready:
		}
	}
}

// Len returns the number of queued messages
func (mb *Mailbox) Len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return len(mb.queue)
}

func (mb *Mailbox) signal() {
	select {
	case mb.ready <- struct{}{}:
	default:
	}
}
