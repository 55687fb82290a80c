package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_AllSucceed(t *testing.T) {
	fake := newFakeTransformer(map[string]int64{"a.png": 1000, "b.png": 400})
	rec := &recorder{}
	w := NewWorker(fake, rec, nil)

	w.Run("b1", NewItems([]string{"a.png", "b.png"}), Options{})

	require.Equal(t, []Msg{
		UpdateProgressMsg{Batch: "b1", Current: 1, Total: 2},
		ProcessingMsg{Batch: "b1", Item: Item{Index: 0, Path: "a.png", OriginalSize: 1000}},
		DoneMsg{Batch: "b1", Item: Item{Index: 0, Path: "a.png", OriginalSize: 1000, TransformedSize: 500}},
		UpdateProgressMsg{Batch: "b1", Current: 2, Total: 2},
		ProcessingMsg{Batch: "b1", Item: Item{Index: 1, Path: "b.png", OriginalSize: 400}},
		DoneMsg{Batch: "b1", Item: Item{Index: 1, Path: "b.png", OriginalSize: 400, TransformedSize: 200}},
		AllDoneMsg{Batch: "b1"},
	}, rec.msgs)
}

func TestWorker_SizeReadFailureContinues(t *testing.T) {
	fake := newFakeTransformer(map[string]int64{"a.png": 1000, "c.png": 300})
	rec := &recorder{}
	w := NewWorker(fake, rec, nil)

	w.Run("b1", NewItems([]string{"a.png", "missing.png", "c.png"}), Options{})

	require.Len(t, rec.msgs, 9)
	assert.Equal(t, UpdateProgressMsg{Batch: "b1", Current: 2, Total: 3}, rec.msgs[3])

	errMsg, ok := rec.msgs[4].(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", rec.msgs[4])
	assert.Equal(t, 1, errMsg.Item.Index)
	assert.Zero(t, errMsg.Item.OriginalSize)
	assert.ErrorIs(t, errMsg.Err, errMissing)

	assert.NotContains(t, fake.calls, "transform:missing.png")
	assert.Equal(t, AllDoneMsg{Batch: "b1"}, rec.msgs[8])
}

func TestWorker_TransformFailureKeepsOriginalSize(t *testing.T) {
	fake := newFakeTransformer(map[string]int64{"bad.png": 800})
	fake.failXform["bad.png"] = true
	rec := &recorder{}
	w := NewWorker(fake, rec, nil)

	w.Run("b1", NewItems([]string{"bad.png"}), Options{})

	require.Len(t, rec.msgs, 4)
	assert.IsType(t, ProcessingMsg{}, rec.msgs[1])
	errMsg := rec.msgs[2].(ErrorMsg)
	assert.Equal(t, int64(800), errMsg.Item.OriginalSize)
	assert.Zero(t, errMsg.Item.TransformedSize)
	assert.EqualError(t, errMsg.Err, "transform: corrupt input")
}

func TestWorker_PassesOptionsToEveryItem(t *testing.T) {
	fake := newFakeTransformer(map[string]int64{"a.png": 10, "b.png": 10})
	opts := Options{SkipPaletteReduction: true, SkipGrayscaleReduction: true}
	w := NewWorker(fake, &recorder{}, nil)

	w.Run("b1", NewItems([]string{"a.png", "b.png"}), opts)

	assert.Equal(t, []Options{opts, opts}, fake.seenOpts)
}

func TestWorker_EmptyBatch(t *testing.T) {
	rec := &recorder{}
	w := NewWorker(newFakeTransformer(nil), rec, nil)

	w.Run("b1", nil, Options{})

	assert.Equal(t, []Msg{AllDoneMsg{Batch: "b1"}}, rec.msgs)
}

func TestWorker_PerItemOrdering(t *testing.T) {
	sizes := map[string]int64{}
	paths := []string{"0.png", "1.png", "2.png", "3.png", "4.png", "5.png"}
	for _, p := range paths {
		sizes[p] = 100
	}
	fake := newFakeTransformer(sizes)
	fake.failSize["2.png"] = true
	fake.failXform["4.png"] = true
	rec := &recorder{}

	NewWorker(fake, rec, nil).Run("b1", NewItems(paths), Options{})

	terminals := 0
	allDone := 0
	phase := map[int]int{} // 0 none, 1 progress, 2 processing, 3 terminal
	current := -1
	for i, msg := range rec.msgs {
		switch m := msg.(type) {
		case UpdateProgressMsg:
			current = m.Current - 1
			assert.Equal(t, 0, phase[current], "duplicate progress for %d", current)
			phase[current] = 1
		case ProcessingMsg:
			assert.Equal(t, current, m.Item.Index)
			assert.Equal(t, 1, phase[current])
			phase[current] = 2
		case DoneMsg:
			assert.Equal(t, current, m.Item.Index)
			assert.Equal(t, 2, phase[current])
			phase[current] = 3
			terminals++
		case ErrorMsg:
			assert.Equal(t, current, m.Item.Index)
			assert.Contains(t, []int{1, 2}, phase[current])
			phase[current] = 3
			terminals++
		case AllDoneMsg:
			allDone++
			assert.Equal(t, len(rec.msgs)-1, i, "AllDone must be last")
		}
	}

	assert.Equal(t, len(paths), terminals)
	assert.Equal(t, 1, allDone)
	for i := range paths {
		assert.Equal(t, 3, phase[i], "item %d has no terminal message", i)
	}
}
