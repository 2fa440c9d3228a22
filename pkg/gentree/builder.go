package gentree

import (
	"math/rand"
	"time"

	"github.com/soundprediction/kinship/pkg/types"
)

// DefaultRetries is the generation retry budget used when Params.Retries
// is left zero.
const DefaultRetries = 20

// Params controls one tree generation run.
type Params struct {
	// Generations is the target maximum depth D (root = generation 1).
	Generations int `json:"generations" mapstructure:"generations"`
	// Nodes is the target total individual count N. Must be >= Generations.
	Nodes int `json:"nodes" mapstructure:"nodes"`
	// Retries bounds the regenerate-and-verify loop. Zero means
	// DefaultRetries.
	Retries int `json:"retries" mapstructure:"retries"`
}

// Validate rejects infeasible parameter combinations before any random
// draw is made.
func (p Params) Validate() error {
	if p.Generations < 2 || p.Nodes < p.Generations || p.Retries < 0 {
		return types.ErrInfeasible
	}
	return nil
}

// Stats records what a finished attempt actually produced.
type Stats struct {
	Depth      int  `json:"depth"`
	Nodes      int  `json:"nodes"`
	Asymmetric bool `json:"asymmetric"`
	Attempts   int  `json:"attempts"`
}

// Result is the tagged outcome of a generation run. When Validated is
// false the tree is the best-effort last attempt and callers must decide
// whether to keep it.
type Result struct {
	Tree      *types.Person `json:"tree"`
	Validated bool          `json:"validated"`
	Stats     Stats         `json:"stats"`
}

// node is an anonymous tree position during construction. Names and
// spouses are attached afterwards by the name assigner.
type node struct {
	gen      int
	limit    int
	children []*node
	name     string
	spouse   string
}

// attempt holds one construction attempt. order preserves creation order,
// which fixes the sequence of name and spouse draws.
type attempt struct {
	root  *node
	order []*node
}

// Generate builds a random family tree satisfying params, drawing every
// random choice from rng so a fixed seed yields a fixed tree. The pool
// supplies display names; pass nil for the built-in default pool.
//
// On success the result is Validated. If the retry budget runs out the
// last attempt is returned alongside types.ErrExhausted.
func Generate(params Params, pool []string, rng *rand.Rand) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Retries == 0 {
		params.Retries = DefaultRetries
	}
	if len(pool) == 0 {
		pool = DefaultNames
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var last *Result
	for i := 1; i <= params.Retries; i++ {
		at := grow(params, rng)
		tree := assignNames(at, pool, rng)
		stats, ok := verify(tree, params)
		stats.Attempts = i
		last = &Result{Tree: tree, Validated: ok, Stats: stats}
		if ok {
			return last, nil
		}
	}
	return last, types.ErrExhausted
}

// grow runs construction steps 1-3: main branch, asymmetric branch, and
// random fill under inherited depth limits.
func grow(params Params, rng *rand.Rand) *attempt {
	d := params.Generations
	root := &node{gen: 1, limit: d}
	at := &attempt{root: root, order: []*node{root}}

	// Main branch: one chain guaranteed to reach the target depth.
	deep := root
	for g := 2; g <= d; g++ {
		deep = at.addChild(deep, g, d)
	}

	// Asymmetric branch: a second chain from the root that stops 1-2
	// generations short, when the node budget allows it.
	asymDepth := 2
	if v := d - (1 + rng.Intn(2)); v > asymDepth {
		asymDepth = v
	}
	needed := asymDepth - 1
	if len(at.order) < params.Nodes && needed > 0 && params.Nodes-len(at.order) >= needed {
		branch := root
		for g := 2; g <= asymDepth; g++ {
			branch = at.addChild(branch, g, asymDepth)
		}
	}

	// Fill: attach children to random individuals that still have room
	// under their inherited limit.
	for len(at.order) < params.Nodes {
		var candidates []*node
		for _, n := range at.order {
			if n.gen+1 <= n.limit {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			break
		}
		parent := candidates[rng.Intn(len(candidates))]
		at.addChild(parent, parent.gen+1, parent.limit)
	}

	return at
}

func (at *attempt) addChild(parent *node, gen, limit int) *node {
	child := &node{gen: gen, limit: limit}
	parent.children = append(parent.children, child)
	at.order = append(at.order, child)
	return child
}

// verify recomputes depth and node count by traversal and checks branch
// asymmetry at the root. When the budget cannot afford a second major
// branch (N < 2D-2) the asymmetry requirement is waived.
func verify(tree *types.Person, params Params) (Stats, bool) {
	stats := Stats{Depth: tree.MaxDepth(), Nodes: tree.Count()}

	depthOK := stats.Depth == params.Generations
	nodesOK := stats.Nodes == params.Nodes

	if len(tree.Children) >= 2 {
		depths := make([]int, len(tree.Children))
		maxDepth := 0
		for i, c := range tree.Children {
			depths[i] = 1 + c.MaxDepth()
			if depths[i] > maxDepth {
				maxDepth = depths[i]
			}
		}
		if maxDepth == params.Generations {
			usedMax := false
			for _, d := range depths {
				if d == maxDepth && !usedMax {
					// One branch accounts for reaching the target depth;
					// a distinct branch must fall short.
					usedMax = true
					continue
				}
				if diff := params.Generations - d; diff >= 1 && diff <= 2 {
					stats.Asymmetric = true
					break
				}
			}
		}
	}

	// Below depth 3 no branch can stop 1-2 generations short of the
	// maximum, and below 2D-2 nodes there is no budget for a second
	// major branch; both cases pass on depth and count alone.
	if params.Generations < 3 || params.Nodes < 2*params.Generations-2 {
		return stats, depthOK && nodesOK
	}
	return stats, depthOK && nodesOK && stats.Asymmetric
}
