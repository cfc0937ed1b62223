package quote

import (
	"context"
	"fmt"
	"sync"
)

// SequenceStore hands out document numbers. Next must advance the counter by
// exactly one per call and never hand out the same value twice.
type SequenceStore interface {
	Next(ctx context.Context) (int64, error)
	Current(ctx context.Context) (int64, error)
}

func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("QUO-%d-%d", year, seq)
}

type MemorySequence struct {
	mu sync.Mutex
	n  int64
}

func NewMemorySequence(start int64) *MemorySequence { return &MemorySequence{n: start} }

func (s *MemorySequence) Next(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n, nil
}

func (s *MemorySequence) Current(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n, nil
}
