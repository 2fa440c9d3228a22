// Package familygraph flattens a serialized family tree into the
// adjacency maps kinship inference runs on. The output is deliberately a
// general graph, not a tree: when an individual has a spouse, every
// child of that individual is recorded as a child of both co-parents,
// which introduces 4-cycles (parent, spouse, child, back) that are a
// normal part of the model.
package familygraph

import (
	"sort"

	"github.com/soundprediction/kinship/pkg/types"
)

// Graph holds the symmetric adjacency structures of one family.
// Parents and Children are exact inverses; Spouses is symmetric with at
// most one spouse per individual.
type Graph struct {
	Parents  map[string]map[string]struct{}
	Children map[string]map[string]struct{}
	Spouses  map[string]string
	nodes    map[string]struct{}
}

// Build flattens the tree rooted at root in a single iterative
// depth-first pass. It fails with *types.StructureError on a nameless
// node, a self-referential spouse, or a display name that appears at two
// distinct tree positions (which would silently merge two individuals).
func Build(root *types.Person) (*Graph, error) {
	if root == nil {
		return nil, &types.StructureError{Reason: "nil root"}
	}

	g := &Graph{
		Parents:  make(map[string]map[string]struct{}),
		Children: make(map[string]map[string]struct{}),
		Spouses:  make(map[string]string),
		nodes:    make(map[string]struct{}),
	}
	positioned := make(map[string]struct{})

	stack := []*types.Person{root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.Name == "" {
			return nil, &types.StructureError{Reason: "individual has no name"}
		}
		if _, dup := positioned[p.Name]; dup {
			return nil, &types.StructureError{Name: p.Name, Reason: "name occupies two tree positions"}
		}
		positioned[p.Name] = struct{}{}
		g.addNode(p.Name)

		coParent := ""
		if p.Spouse != "" {
			if p.Spouse == p.Name {
				return nil, &types.StructureError{Name: p.Name, Reason: "self-referential spouse"}
			}
			coParent = p.Spouse
			g.addNode(coParent)
			g.Spouses[p.Name] = coParent
			g.Spouses[coParent] = p.Name
		}

		for _, c := range p.Children {
			if c.Name == "" {
				return nil, &types.StructureError{Reason: "individual has no name"}
			}
			g.link(p.Name, c.Name)
			if coParent != "" {
				g.link(coParent, c.Name)
			}
			stack = append(stack, c)
		}
	}

	return g, nil
}

// addNode registers an individual and initializes its child set, spouse
// included, so lookups never distinguish "no children" from "unknown".
func (g *Graph) addNode(name string) {
	g.nodes[name] = struct{}{}
	if g.Children[name] == nil {
		g.Children[name] = make(map[string]struct{})
	}
}

func (g *Graph) link(parent, child string) {
	g.Children[parent][child] = struct{}{}
	if g.Parents[child] == nil {
		g.Parents[child] = make(map[string]struct{})
	}
	g.Parents[child][parent] = struct{}{}
}

// Names returns every individual in the graph, spouses included, in
// sorted order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is an individual in this graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// ParentsOf returns the (0, 1, or 2) parents of name.
func (g *Graph) ParentsOf(name string) map[string]struct{} {
	return g.Parents[name]
}

// ChildrenOf returns the children of name.
func (g *Graph) ChildrenOf(name string) map[string]struct{} {
	return g.Children[name]
}

// SpouseOf returns name's spouse and whether one exists.
func (g *Graph) SpouseOf(name string) (string, bool) {
	s, ok := g.Spouses[name]
	return s, ok
}
