package types

import (
	"errors"
	"fmt"
)

// Validation and generation errors
var (
	ErrInfeasible = errors.New("node budget below requested generation depth")
	ErrExhausted  = errors.New("retry budget exhausted without a validated tree")
	ErrEmptyName  = errors.New("individual has no name")
)

// StructureError reports a malformed tree discovered while flattening it
// into a family graph. It is fatal for that single build only.
type StructureError struct {
	Name   string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("malformed tree: %s", e.Reason)
	}
	return fmt.Sprintf("malformed tree at %q: %s", e.Name, e.Reason)
}

// Person is one individual in a generated family tree. The JSON shape is
// the handoff format consumed by the renderer and the family-graph
// builder:
//
//	{"name": "...", "children": [...], "spouse": "..."}
//
// Children order carries no meaning. Spouse is a display name, not a
// nested node; spouses never have children of their own in this format.
type Person struct {
	Name     string    `json:"name"`
	Children []*Person `json:"children"`
	Spouse   string    `json:"spouse,omitempty"`
}

// MaxDepth returns the deepest generation reachable from p, counting p
// itself as generation 1. Iterative so very deep trees cannot blow the
// stack.
func (p *Person) MaxDepth() int {
	if p == nil {
		return 0
	}
	type frame struct {
		node  *Person
		depth int
	}
	max := 0
	stack := []frame{{p, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > max {
			max = f.depth
		}
		for _, c := range f.node.Children {
			stack = append(stack, frame{c, f.depth + 1})
		}
	}
	return max
}

// Count returns the number of individuals in the tree rooted at p.
// Spouses are name references, not nodes, and are not counted.
func (p *Person) Count() int {
	if p == nil {
		return 0
	}
	n := 0
	stack := []*Person{p}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, node.Children...)
	}
	return n
}

// Validate checks the minimal structural contract of a serialized tree:
// every node carries a name.
func (p *Person) Validate() error {
	if p == nil {
		return &StructureError{Reason: "nil root"}
	}
	stack := []*Person{p}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Name == "" {
			return &StructureError{Reason: "individual has no name"}
		}
		stack = append(stack, node.Children...)
	}
	return nil
}
