// Package idgen allocates process-unique identifiers for generated content.
package idgen

import (
	"fmt"
	"sync"
)

// Kind namespaces an id sequence.
type Kind string

const (
	KindItem      Kind = "item"
	KindCharacter Kind = "char"
	KindAbility   Kind = "ability"
)

// Allocator hands out monotonic ids per Kind, e.g. "item-1", "item-2".
// It is owned by the composition root and passed to factories so tests can
// start from a fresh, deterministic sequence. Safe for concurrent use.
//
// Invariant: for a given Kind, successive Next calls never repeat an id.
type Allocator struct {
	mu       sync.Mutex
	counters map[Kind]uint64
}

// New returns an Allocator whose sequences all start at 1.
func New() *Allocator {
	return &Allocator{counters: make(map[Kind]uint64)}
}

// Next returns the next id for kind.
//
// Postcondition: Returns "<kind>-<n>" where n is one greater than the previous call for kind.
func (a *Allocator) Next(kind Kind) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters[kind]++
	return fmt.Sprintf("%s-%d", kind, a.counters[kind])
}

// Issued returns how many ids of kind have been handed out.
func (a *Allocator) Issued(kind Kind) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters[kind]
}
