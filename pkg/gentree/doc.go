// Package gentree generates random rooted family trees with controlled
// shape: an exact individual count, an exact maximum generation depth,
// and branch asymmetry (at least one root branch stops 1-2 generations
// short of the deepest one).
//
// Generation is stochastic. Construction grows a guaranteed main branch,
// optionally a shorter secondary branch, then fills the remaining budget
// at random positions whose inherited depth limit still has room. A
// verify pass recomputes the observable properties and the whole attempt
// repeats under a bounded retry budget. All randomness flows through one
// caller-supplied *rand.Rand, so a fixed seed reproduces a fixed tree.
package gentree
