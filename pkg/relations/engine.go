// Package relations derives the full kinship relation table from a
// family graph: every (subject, object) pair of the eleven recognized
// kinds, for every individual.
//
// All derivations are purely local lookups on the graph's adjacency
// maps, so the whole table costs O(individuals x local fan-out).
// Individuals reachable through multiple shared ancestors (siblings with
// two common parents, a grandparent reached via both parents) produce
// redundant pairs; the table deduplicates before it is returned.
package relations

import (
	"sort"

	"github.com/soundprediction/kinship/pkg/familygraph"
	"github.com/soundprediction/kinship/pkg/types"
)

// Infer computes the relation table for every individual in g. The
// output is deduplicated and sorted, so repeated runs over the same
// graph are byte-identical when serialized.
func Infer(g *familygraph.Graph) types.Table {
	table := types.Table{}
	for _, person := range g.Names() {
		derive(table, g, person)
	}
	table.Normalize()
	return table
}

// Relatives returns, for each kind, the individuals standing in that
// kind to name: result[PARENT] holds name's parents, result[COUSIN]
// name's cousins, and so on. A name absent from the graph yields empty
// sets, never an error.
func Relatives(g *familygraph.Graph, name string) map[types.Kind][]string {
	out := make(map[types.Kind][]string, len(types.Kinds))
	if !g.Has(name) {
		return out
	}
	table := Infer(g)
	for _, k := range types.Kinds {
		for _, p := range table[k] {
			if p.B == name {
				out[k] = append(out[k], p.A)
			}
		}
		sort.Strings(out[k])
	}
	return out
}

// derive appends every pair with person in subject position for direct
// kinds, plus the inverse pairs those imply.
func derive(t types.Table, g *familygraph.Graph, person string) {
	parents := g.ParentsOf(person)

	if spouse, ok := g.SpouseOf(person); ok {
		t.Add(types.Spouse, person, spouse)
	}

	for kid := range g.ChildrenOf(person) {
		t.Add(types.Parent, person, kid)
		t.Add(types.Child, kid, person)
	}

	// Siblings share at least one parent; half and full siblings are not
	// distinguished.
	for parent := range parents {
		for sib := range g.ChildrenOf(parent) {
			if sib != person {
				t.Add(types.Sibling, person, sib)
			}
		}
	}

	grandparents := hop(g, parents)
	for gp := range grandparents {
		t.Add(types.Grandchild, person, gp)
		t.Add(types.Grandparent, gp, person)
	}

	for ggp := range hop(g, grandparents) {
		t.Add(types.GreatGrandchild, person, ggp)
		t.Add(types.GreatGrandparent, ggp, person)
	}

	// Uncles and aunts are the parents' siblings, plus those siblings'
	// spouses (marriage-in uncles count).
	unclesAunts := make(map[string]struct{})
	for parent := range parents {
		for gp := range g.ParentsOf(parent) {
			for sib := range g.ChildrenOf(gp) {
				if sib == parent {
					continue
				}
				unclesAunts[sib] = struct{}{}
				if s, ok := g.SpouseOf(sib); ok {
					unclesAunts[s] = struct{}{}
				}
			}
		}
	}
	for ua := range unclesAunts {
		t.Add(types.NephewOrNiece, person, ua)
		t.Add(types.UncleOrAunt, ua, person)
	}

	// Cousins are the children of the parents' blood siblings only;
	// married-in uncles and aunts contribute no additional cousins
	// because the blood sibling already co-parents the same children.
	for parent := range parents {
		for gp := range g.ParentsOf(parent) {
			for sib := range g.ChildrenOf(gp) {
				if sib == parent {
					continue
				}
				for cousin := range g.ChildrenOf(sib) {
					t.Add(types.Cousin, person, cousin)
				}
			}
		}
	}
}

// hop returns the union of parents over a set of individuals.
func hop(g *familygraph.Graph, people map[string]struct{}) map[string]struct{} {
	up := make(map[string]struct{})
	for p := range people {
		for parent := range g.ParentsOf(p) {
			up[parent] = struct{}{}
		}
	}
	return up
}
