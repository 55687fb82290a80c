package batch

import (
	"errors"
	"sync"
)

var errMissing = errors.New("no such file")

// fakeTransformer serves sizes from a map and shrinks files by half
type fakeTransformer struct {
	mu        sync.Mutex
	sizes     map[string]int64
	failSize  map[string]bool
	failXform map[string]bool
	calls     []string
	seenOpts  []Options
}

func newFakeTransformer(sizes map[string]int64) *fakeTransformer {
	return &fakeTransformer{
		sizes:     sizes,
		failSize:  map[string]bool{},
		failXform: map[string]bool{},
	}
}

func (f *fakeTransformer) FileSize(path string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "size:"+path)
	if f.failSize[path] {
		return 0, errMissing
	}
	size, ok := f.sizes[path]
	if !ok {
		return 0, errMissing
	}
	return size, nil
}

func (f *fakeTransformer) Transform(path string, opts Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "transform:"+path)
	f.seenOpts = append(f.seenOpts, opts)
	if f.failXform[path] {
		return errors.New("corrupt input")
	}
	f.sizes[path] /= 2
	return nil
}

// recorder is a Sender keeping every message in order
type recorder struct {
	mu   sync.Mutex
	msgs []Msg
}

func (r *recorder) Send(msg Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// memorySink keeps the rows and label pushed by the consumer
type memorySink struct {
	rows   []string
	label  string
	resets int
}

func (s *memorySink) Reset(rows []string) {
	s.resets++
	s.rows = append([]string(nil), rows...)
}

func (s *memorySink) SetRow(row int, line string) {
	s.rows[row] = line
}

func (s *memorySink) SetLabel(label string) {
	s.label = label
}
