package batch

import (
	"fmt"
	"log/slog"
)

// Transformer rewrites files in place and reports their sizes
type Transformer interface {
	Transform(path string, opts Options) error
	FileSize(path string) (int64, error)
}

// Worker processes the items of one batch strictly one at a time and
// reports every state transition as a message.
type Worker struct {
	transformer Transformer
	out         Sender
	logger      *slog.Logger
}

// NewWorker creates a worker that sends its messages to out
func NewWorker(transformer Transformer, out Sender, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		transformer: transformer,
		out:         out,
		logger:      logger,
	}
}

// Run processes items in order and finishes with a single AllDoneMsg.
// Per-item failures are reported as ErrorMsg and never stop the batch.
func (w *Worker) Run(id ID, items []Item, opts Options) {
	total := len(items)
	for i, item := range items {
		w.out.Send(UpdateProgressMsg{Batch: id, Current: i + 1, Total: total})

		if err := w.process(id, item, opts); err != nil {
			w.logger.Warn("item failed", "batch", id, "index", item.Index, "path", item.Path, "error", err)
		}
	}
	w.out.Send(AllDoneMsg{Batch: id})
}

// process runs one item and returns the error it reported, if any
func (w *Worker) process(id ID, item Item, opts Options) error {
	size, err := w.transformer.FileSize(item.Path)
	if err != nil {
		err = fmt.Errorf("read original size: %w", err)
		w.out.Send(ErrorMsg{Batch: id, Item: item, Err: err})
		return err
	}
	item.OriginalSize = size

	w.out.Send(ProcessingMsg{Batch: id, Item: item})

	if err := w.transformer.Transform(item.Path, opts); err != nil {
		err = fmt.Errorf("transform: %w", err)
		w.out.Send(ErrorMsg{Batch: id, Item: item, Err: err})
		return err
	}

	size, err = w.transformer.FileSize(item.Path)
	if err != nil {
		err = fmt.Errorf("read optimized size: %w", err)
		w.out.Send(ErrorMsg{Batch: id, Item: item, Err: err})
		return err
	}
	item.TransformedSize = size

	w.logger.Debug("item done", "batch", id, "index", item.Index, "original", item.OriginalSize, "optimized", item.TransformedSize)
	w.out.Send(DoneMsg{Batch: id, Item: item})
	return nil
}
