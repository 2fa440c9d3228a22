// Package kinship is a benchmark harness for testing how well
// vision-language models read kinship relationships out of rendered
// family-tree diagrams.
//
// The core is two tightly coupled pieces: a constrained random
// genealogical-tree generator and a kinship inference engine that
// derives, for every individual, its relatives of eleven kinds (child,
// parent, spouse, sibling, grandchild, grandparent, uncle/aunt,
// nephew/niece, great-grandchild, great-grandparent, cousin).
// Everything else — persistence, sampling, scoring, the HTTP surface —
// is plumbing around those two.
//
// # Basic Usage
//
//	h := kinship.New(kinship.WithSeed(42))
//	ds, err := h.Generate(gentree.Params{Generations: 5, Nodes: 25}, 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ds.ID, ds.Stats.Depth, ds.Relations.Total())
//
// # Architecture
//
//   - pkg/types: tree node, relation kinds, relation table
//   - pkg/gentree: constrained random tree generation and naming
//   - pkg/familygraph: tree flattening into adjacency maps
//   - pkg/relations: the eleven-kind inference engine
//   - pkg/sampler: test-case sampling from relation tables
//   - pkg/scorer: accuracy scoring of raw model predictions
//   - pkg/treestore: dataset persistence (JSON files or Badger)
//   - pkg/graphdb: optional Neo4j export
//   - pkg/server: HTTP API over generation and inference
//
// Trees are strict trees; family graphs are not. Attaching a spouse
// gives every child of the couple two parents, so the graph contains
// 4-cycles by construction and the inference engine never assumes
// single-parent paths.
package kinship
