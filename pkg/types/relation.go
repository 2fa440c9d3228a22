package types

import (
	"fmt"
	"sort"
)

// Kind is one of the eleven recognized kinship relation labels.
type Kind string

const (
	Child            Kind = "CHILD"
	Parent           Kind = "PARENT"
	Spouse           Kind = "SPOUSE"
	Sibling          Kind = "SIBLING"
	Grandchild       Kind = "GRANDCHILD"
	Grandparent      Kind = "GRANDPARENT"
	UncleOrAunt      Kind = "UNCLE_OR_AUNT"
	NephewOrNiece    Kind = "NEPHEW_OR_NIECE"
	GreatGrandchild  Kind = "GREAT_GRANDCHILD"
	GreatGrandparent Kind = "GREAT_GRANDPARENT"
	Cousin           Kind = "COUSIN"
)

// Kinds lists every kinship kind in the canonical export order.
var Kinds = []Kind{
	Child, Parent, Spouse, Sibling, Grandchild, Grandparent,
	UncleOrAunt, NephewOrNiece, GreatGrandchild, GreatGrandparent, Cousin,
}

// ParseKind maps a label to its Kind, rejecting unknown labels.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown relationship kind %q", s)
}

// Inverse returns the kind that holds in the opposite direction.
// Symmetric kinds (SPOUSE, SIBLING, COUSIN) are their own inverse.
func (k Kind) Inverse() Kind {
	switch k {
	case Child:
		return Parent
	case Parent:
		return Child
	case Grandchild:
		return Grandparent
	case Grandparent:
		return Grandchild
	case GreatGrandchild:
		return GreatGrandparent
	case GreatGrandparent:
		return GreatGrandchild
	case UncleOrAunt:
		return NephewOrNiece
	case NephewOrNiece:
		return UncleOrAunt
	default:
		return k
	}
}

// Symmetric reports whether (a,b) in k implies (b,a) in k.
func (k Kind) Symmetric() bool {
	return k == Spouse || k == Sibling || k == Cousin
}

// Pair states that A stands in some relation to B.
type Pair struct {
	A string `json:"person_a"`
	B string `json:"person_b"`
}

// Table holds, for each kinship kind, every (subject, object) pair that
// holds in one family graph. Pairs are deduplicated and kept in sorted
// order so repeated inference runs over the same graph serialize
// identically.
type Table map[Kind][]Pair

// Add merges a pair into the table without deduplicating; call Normalize
// once after the last Add.
func (t Table) Add(k Kind, a, b string) {
	t[k] = append(t[k], Pair{A: a, B: b})
}

// Normalize deduplicates and sorts every kind's pair list in place.
func (t Table) Normalize() {
	for k, pairs := range t {
		seen := make(map[Pair]struct{}, len(pairs))
		out := pairs[:0]
		for _, p := range pairs {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].A != out[j].A {
				return out[i].A < out[j].A
			}
			return out[i].B < out[j].B
		})
		t[k] = out
	}
}

// Has reports whether (a,b) is recorded under kind k.
func (t Table) Has(k Kind, a, b string) bool {
	for _, p := range t[k] {
		if p.A == a && p.B == b {
			return true
		}
	}
	return false
}

// Total returns the number of pairs across all kinds.
func (t Table) Total() int {
	n := 0
	for _, pairs := range t {
		n += len(pairs)
	}
	return n
}
