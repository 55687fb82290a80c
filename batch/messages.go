package batch

import "github.com/google/uuid"

// ID identifies one batch. Messages from any other batch are stale.
type ID string

// NewID mints a fresh batch ID
func NewID() ID {
	return ID(uuid.NewString())
}

// Msg is the closed set of messages exchanged between the worker and the consumer
type Msg interface {
	batchMsg()
}

// StartMsg submits a batch. It is the only message produced outside the worker.
type StartMsg struct {
	Paths   []string
	Options Options
}

// ProcessingMsg is sent once the original size of an item is known
type ProcessingMsg struct {
	Batch ID
	Item  Item
}

// UpdateProgressMsg is sent before any I/O for item Current of Total (1-based)
type UpdateProgressMsg struct {
	Batch   ID
	Current int
	Total   int
}

// DoneMsg is sent when an item was rewritten and both sizes are known
type DoneMsg struct {
	Batch ID
	Item  Item
}

// ErrorMsg is sent when reading the size of or rewriting an item failed
type ErrorMsg struct {
	Batch ID
	Item  Item
	Err   error
}

// AllDoneMsg is the single terminal message of a batch
type AllDoneMsg struct {
	Batch ID
}

func (StartMsg) batchMsg()          {}
func (ProcessingMsg) batchMsg()     {}
func (UpdateProgressMsg) batchMsg() {}
func (DoneMsg) batchMsg()           {}
func (ErrorMsg) batchMsg()          {}
func (AllDoneMsg) batchMsg()        {}

// batchOf returns the batch a worker message belongs to
func batchOf(msg Msg) (ID, bool) {
	switch m := msg.(type) {
	case ProcessingMsg:
		return m.Batch, true
	case UpdateProgressMsg:
		return m.Batch, true
	case DoneMsg:
		return m.Batch, true
	case ErrorMsg:
		return m.Batch, true
	case AllDoneMsg:
		return m.Batch, true
	}
	return "", false
}
