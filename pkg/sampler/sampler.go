// Package sampler turns a relation table into benchmark question
// records: a small per-kind draw of ground-truth pairs, and for each
// drawn pair the exhaustive list of valid answers. The records are the
// handoff consumed by whatever asks a model about a rendered tree.
package sampler

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/soundprediction/kinship/pkg/types"
)

// Case is one sampled ground-truth question: PersonA stands in Kind to
// PersonB.
type Case struct {
	ID      string     `json:"id"`
	PersonA string     `json:"person_a"`
	PersonB string     `json:"person_b"`
	Kind    types.Kind `json:"relationship_type"`
}

// Query is the exhaustive form of a sampled case: every individual that
// stands in Kind to PersonB, so a scorer can accept any valid answer.
type Query struct {
	PersonB   string     `json:"person_b"`
	Kind      types.Kind `json:"relationship_type"`
	PossibleA []string   `json:"possible_person_a"`
}

// Sample draws up to perKind pairs uniformly from each non-empty kind.
// Kinds are visited in canonical order and draws go through rng, so a
// fixed seed over a fixed table yields fixed cases.
func Sample(table types.Table, rng *rand.Rand, perKind int) []Case {
	if perKind < 1 {
		perKind = 1
	}
	var cases []Case
	for _, kind := range types.Kinds {
		pairs := table[kind]
		if len(pairs) == 0 {
			continue
		}
		idx := rng.Perm(len(pairs))
		n := perKind
		if n > len(pairs) {
			n = len(pairs)
		}
		for _, i := range idx[:n] {
			cases = append(cases, Case{
				ID:      uuid.NewString(),
				PersonA: pairs[i].A,
				PersonB: pairs[i].B,
				Kind:    kind,
			})
		}
	}
	return cases
}

// Queries expands sampled cases into their exhaustive answer sets,
// deduplicated on (PersonB, Kind).
func Queries(table types.Table, cases []Case) []Query {
	seen := make(map[string]struct{})
	var queries []Query
	for _, c := range cases {
		key := c.PersonB + "\x00" + string(c.Kind)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		var possible []string
		for _, p := range table[c.Kind] {
			if p.B == c.PersonB {
				possible = append(possible, p.A)
			}
		}
		sort.Strings(possible)
		queries = append(queries, Query{
			PersonB:   c.PersonB,
			Kind:      c.Kind,
			PossibleA: possible,
		})
	}
	return queries
}

// WriteCSV writes cases in the handoff format:
// person_a,person_b,relationship_type.
func WriteCSV(w io.Writer, cases []Case) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"person_a", "person_b", "relationship_type"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range cases {
		if err := cw.Write([]string{c.PersonA, c.PersonB, string(c.Kind)}); err != nil {
			return fmt.Errorf("failed to write case: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads cases back from the handoff format, assigning fresh IDs.
func ReadCSV(r io.Reader) ([]Case, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read cases: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("case file has no header")
	}
	var cases []Case
	for _, row := range rows[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("case row has %d columns, want 3", len(row))
		}
		kind, err := types.ParseKind(row[2])
		if err != nil {
			return nil, err
		}
		cases = append(cases, Case{
			ID:      uuid.NewString(),
			PersonA: row[0],
			PersonB: row[1],
			Kind:    kind,
		})
	}
	return cases, nil
}
