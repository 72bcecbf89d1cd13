package stats

import (
	"fmt"
	"sort"
	"strings"
)

// Affinity is one of the three power sources a character can lean on.
type Affinity string

const (
	Arcane Affinity = "arcane"
	Tech   Affinity = "tech"
	Primal Affinity = "primal"
)

// AllAffinities lists every affinity in canonical order.
var AllAffinities = []Affinity{Arcane, Tech, Primal}

// rank orders affinities for tie breaking.
func (a Affinity) rank() int {
	switch a {
	case Arcane:
		return 0
	case Tech:
		return 1
	case Primal:
		return 2
	default:
		return 3
	}
}

// Key returns the upper-case table key form, e.g. "ARCANE".
func (a Affinity) Key() string { return strings.ToUpper(string(a)) }

// ParseAffinity parses a case-insensitive affinity name.
//
// Postcondition: Returns a known Affinity or a non-nil error.
func ParseAffinity(s string) (Affinity, error) {
	a := Affinity(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case Arcane, Tech, Primal:
		return a, nil
	default:
		return "", fmt.Errorf("stats: unknown affinity %q", s)
	}
}

// Affinities maps each affinity to a non-negative weight.
type Affinities map[Affinity]float64

// Single returns weights fully committed to a.
func Single(a Affinity) Affinities {
	out := Affinities{Arcane: 0, Tech: 0, Primal: 0}
	out[a] = 1
	return out
}

// Normalize returns a copy whose three weights sum to 1. Negative weights count
// as 0; an all-zero mix becomes an even split.
//
// Postcondition: result has exactly the three canonical keys and sums to 1.
func (a Affinities) Normalize() Affinities {
	var total float64
	for _, k := range AllAffinities {
		if w := a[k]; w > 0 {
			total += w
		}
	}
	out := make(Affinities, len(AllAffinities))
	for _, k := range AllAffinities {
		if total == 0 {
			out[k] = 1.0 / float64(len(AllAffinities))
			continue
		}
		w := a[k]
		if w < 0 {
			w = 0
		}
		out[k] = w / total
	}
	return out
}

// Ranked returns the affinities ordered by weight, highest first, with ties
// broken arcane < tech < primal.
func (a Affinities) Ranked() []Affinity {
	out := append([]Affinity(nil), AllAffinities...)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := a[out[i]], a[out[j]]
		if wi != wj {
			return wi > wj
		}
		return out[i].rank() < out[j].rank()
	})
	return out
}

// Primary returns the highest-weighted affinity.
func (a Affinities) Primary() Affinity { return a.Ranked()[0] }

// Secondary returns the second highest-weighted affinity.
func (a Affinities) Secondary() Affinity { return a.Ranked()[1] }

// Clone returns an independent copy.
func (a Affinities) Clone() Affinities {
	out := make(Affinities, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// PowerOf returns the stat an affinity draws power from:
// magic for arcane, tech for tech, attack for primal.
func PowerOf(s Stats, a Affinity) float64 {
	switch a {
	case Arcane:
		return s.MagicPower
	case Tech:
		return s.TechPower
	default:
		return s.AttackPower
	}
}

// BlendedPower returns the affinity-weighted blend of the three power stats.
// Weights are normalized before use.
func BlendedPower(s Stats, weights Affinities) float64 {
	w := weights.Normalize()
	return s.MagicPower*w[Arcane] + s.TechPower*w[Tech] + s.AttackPower*w[Primal]
}
