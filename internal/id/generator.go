package id

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces entity ids. It is injected so tests can supply
// deterministic ids.
type Generator interface {
	NewID() string
}

type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence is a deterministic generator for tests.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}
