// Package dice provides the single seeded randomness source used by content
// generation and combat, plus a Roller that audits every draw.
package dice

// Source is the randomness provider for all game rolls.
//
// Implementations are not required to be safe for concurrent use; a game
// owns exactly one Source and drives it from a single goroutine.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}
