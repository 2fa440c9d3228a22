package kinship

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/soundprediction/kinship/pkg/familygraph"
	"github.com/soundprediction/kinship/pkg/gentree"
	"github.com/soundprediction/kinship/pkg/relations"
	"github.com/soundprediction/kinship/pkg/types"
)

// Dataset bundles everything one generated tree contributes to a
// benchmark: the serialized tree, the observed generation stats, and
// the full ground-truth relation table.
type Dataset struct {
	ID        string        `json:"id"`
	Tree      *types.Person `json:"tree"`
	Validated bool          `json:"validated"`
	Stats     gentree.Stats `json:"stats"`
	Relations types.Table   `json:"relations"`
}

// Harness ties the tree builder, name assigner, family graph, and
// inference engine together behind one seedable entry point.
type Harness struct {
	pool   []string
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithSeed fixes the random source so generation is reproducible.
func WithSeed(seed int64) Option {
	return func(h *Harness) { h.rng = rand.New(rand.NewSource(seed)) }
}

// WithNamePool replaces the built-in display-name pool.
func WithNamePool(pool []string) Option {
	return func(h *Harness) { h.pool = pool }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) { h.logger = logger }
}

// New creates a harness. Without WithSeed the random source is
// time-seeded.
func New(opts ...Option) *Harness {
	h := &Harness{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DatasetID names a dataset after its shape, matching the file naming
// the external renderer expects: G<depth>_N<nodes>_<edition>.
func DatasetID(params gentree.Params, edition int) string {
	return fmt.Sprintf("G%d_N%d_%d", params.Generations, params.Nodes, edition)
}

// Generate produces one dataset: a validated random tree plus its
// relation table. When the retry budget is exhausted the best-effort
// tree is still returned, unvalidated and with its relations derived,
// alongside types.ErrExhausted.
func (h *Harness) Generate(params gentree.Params, edition int) (*Dataset, error) {
	res, err := gentree.Generate(params, h.pool, h.rng)
	if err != nil && res == nil {
		return nil, err
	}

	ds := &Dataset{
		ID:        DatasetID(params, edition),
		Tree:      res.Tree,
		Validated: res.Validated,
		Stats:     res.Stats,
	}

	table, derr := h.Relations(res.Tree)
	if derr != nil {
		return nil, fmt.Errorf("generated tree failed graph build: %w", derr)
	}
	ds.Relations = table

	h.logger.Info("generated dataset",
		"id", ds.ID,
		"depth", ds.Stats.Depth,
		"nodes", ds.Stats.Nodes,
		"asymmetric", ds.Stats.Asymmetric,
		"attempts", ds.Stats.Attempts,
		"validated", ds.Validated,
	)

	return ds, err
}

// Relations flattens a serialized tree into a family graph and infers
// the full relation table.
func (h *Harness) Relations(tree *types.Person) (types.Table, error) {
	g, err := familygraph.Build(tree)
	if err != nil {
		return nil, err
	}
	return relations.Infer(g), nil
}
