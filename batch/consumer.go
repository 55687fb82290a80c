package batch

import (
	"context"
	"fmt"
	"log/slog"
)

// Sink receives the row and label updates made by the consumer
type Sink interface {
	Reset(rows []string)
	SetRow(row int, line string)
	SetLabel(label string)
}

// SpawnFunc starts the worker for a batch
type SpawnFunc func(id ID, items []Item, opts Options)

// SpawnWorker returns a SpawnFunc running w on its own goroutine
func SpawnWorker(w *Worker) SpawnFunc {
	return func(id ID, items []Item, opts Options) {
		go w.Run(id, items, opts)
	}
}

// Consumer owns the board and applies messages to it one at a time.
// It is not safe for concurrent use; exactly one loop drives it.
type Consumer struct {
	board   *Board
	spawn   SpawnFunc
	sink    Sink
	logger  *slog.Logger
	current ID
	running bool
}

// NewConsumer creates a consumer. sink may be nil when the caller reads the board directly.
func NewConsumer(spawn SpawnFunc, sink Sink, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Consumer{
		board:  NewBoard(),
		spawn:  spawn,
		sink:   sink,
		logger: logger,
	}
}

// Board returns the display state
func (c *Consumer) Board() *Board {
	return c.board
}

// Running reports whether a batch is in flight
func (c *Consumer) Running() bool {
	return c.running
}

// Current returns the ID of the latest batch
func (c *Consumer) Current() ID {
	return c.current
}

// Handle applies one message and reports whether the current batch has finished
func (c *Consumer) Handle(msg Msg) bool {
	if start, ok := msg.(StartMsg); ok {
		c.start(start)
		return false
	}

	if id, ok := batchOf(msg); ok && id != c.current {
		c.logger.Debug("dropping stale message", "batch", id, "current", c.current, "type", fmt.Sprintf("%T", msg))
		return false
	}

	switch m := msg.(type) {
	case UpdateProgressMsg:
		c.setLabel(fmt.Sprintf("Optimizing %d/%d", m.Current, m.Total))

	case ProcessingMsg:
		c.setItem(m.Item, StatusOptimizing, 0)

	case DoneMsg:
		c.board.summary.Done++
		c.board.summary.OriginalBytes += m.Item.OriginalSize
		c.board.summary.TransformedBytes += m.Item.TransformedSize
		c.setItem(m.Item, StatusDone, ReductionRatio(m.Item.OriginalSize, m.Item.TransformedSize))

	case ErrorMsg:
		c.board.summary.Failed++
		c.logger.Error("optimization failed", "path", m.Item.Path, "error", m.Err)
		// Sizes are never shown for a failed item
		c.setItem(Item{Index: m.Item.Index, Path: m.Item.Path}, StatusError, 0)

	case AllDoneMsg:
		c.running = false
		c.setLabel("Done!")
		s := c.board.summary
		c.logger.Info("batch finished", "batch", m.Batch, "done", s.Done, "failed", s.Failed, "saved_bytes", s.Saved())
		return true
	}

	return false
}

// Run receives messages from mb until the current batch finishes or ctx is done
func (c *Consumer) Run(ctx context.Context, mb *Mailbox) error {
	for {
		msg, err := mb.Recv(ctx)
		if err != nil {
			return err
		}
		if c.Handle(msg) {
			return nil
		}
	}
}

func (c *Consumer) start(msg StartMsg) {
	if c.running {
		c.logger.Warn("batch already running, ignoring submission", "batch", c.current, "paths", len(msg.Paths))
		return
	}

	items := NewItems(msg.Paths)
	c.current = NewID()
	c.running = true
	c.board.Reset(items)
	if c.sink != nil {
		c.sink.Reset(c.board.Rows())
	}
	c.logger.Info("batch started", "batch", c.current, "items", len(items))

	c.spawn(c.current, items, msg.Options)
}

func (c *Consumer) setLabel(label string) {
	c.board.SetLabel(label)
	if c.sink != nil {
		c.sink.SetLabel(label)
	}
}

func (c *Consumer) setItem(item Item, status string, ratio float64) {
	row, line, err := c.board.SetItem(item, status, ratio)
	if err != nil {
		c.logger.Warn("cannot place item", "batch", c.current, "error", err)
		return
	}
	if c.sink != nil {
		c.sink.SetRow(row, line)
	}
}
