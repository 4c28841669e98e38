package stream

import (
	"container/heap"
	"context"
	"io"
)

// MergedSource combines multiple Sources into a single stream ordered by
// resolved timestamp (oldest first), producing a unified timeline across
// files. Each underlying source must be chronologically ordered and must
// skip unmatched lines, since a line without a timestamp has no position on
// the merged timeline.
type MergedSource struct {
	sources []Source
	heap    *entryHeap
	started bool
}

// NewMergedSource creates a Source that merges multiple sources by
// timestamp.
func NewMergedSource(sources ...Source) *MergedSource {
	return &MergedSource{
		sources: sources,
		heap:    &entryHeap{},
	}
}

// Next returns the next entry in timestamp order across all sources.
// Returns io.EOF when every source is exhausted.
func (m *MergedSource) Next(ctx context.Context) (*Entry, error) {
	if !m.started {
		m.started = true
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	item := heap.Pop(m.heap).(*heapItem)

	// Refill from the same source
	if next, err := m.sources[item.sourceIdx].Next(ctx); err == nil {
		heap.Push(m.heap, &heapItem{entry: next, sourceIdx: item.sourceIdx})
	} else if err != io.EOF {
		return nil, err
	}

	return item.entry, nil
}

// initHeap reads the first entry from each source.
func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)

	for i, src := range m.sources {
		entry, err := src.Next(ctx)
		if err == io.EOF {
			continue // empty source
		}
		if err != nil {
			return err
		}
		heap.Push(m.heap, &heapItem{entry: entry, sourceIdx: i})
	}

	return nil
}

// Close releases all source resources.
func (m *MergedSource) Close() error {
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// heapItem wraps an Entry with its source index for the priority queue.
type heapItem struct {
	entry     *Entry
	sourceIdx int
}

type entryHeap []*heapItem

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	return h[i].entry.Record.Time.Before(h[j].entry.Record.Time)
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(*heapItem))
}

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
