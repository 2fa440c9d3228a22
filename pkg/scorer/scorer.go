// Package scorer compares raw model predictions against ground-truth
// kinship kinds and aggregates accuracy by kind and by tree complexity.
// It only computes metrics; presentation is left to callers.
package scorer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/soundprediction/kinship/pkg/types"
)

// Result is one answered test case: the ground truth plus the raw text
// the model returned.
type Result struct {
	PersonA    string
	PersonB    string
	Kind       types.Kind
	Prediction string
}

// Bucket accumulates correct/total counts for one grouping key.
type Bucket struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns the bucket's hit rate in [0,1], zero when empty.
func (b Bucket) Accuracy() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Total)
}

// Report aggregates scored results. ByKind is keyed by relationship
// label; ByComplexity by the G<depth> prefix of the source dataset name.
type Report struct {
	Total        int               `json:"total"`
	Correct      int               `json:"correct"`
	Accuracy     float64           `json:"accuracy"`
	ByKind       map[string]Bucket `json:"by_kind"`
	ByComplexity map[string]Bucket `json:"by_complexity"`
}

// NewReport returns an empty report ready to accumulate files.
func NewReport() *Report {
	return &Report{
		ByKind:       make(map[string]Bucket),
		ByComplexity: make(map[string]Bucket),
	}
}

// AddFile scores one result file. The complexity bucket is the part of
// the dataset name before the first underscore (e.g. "G5" from
// "G5_N25_1.csv"); names without an underscore fall into "Unknown".
func (r *Report) AddFile(filename string, results []Result) {
	complexity := "Unknown"
	if i := strings.IndexByte(filename, '_'); i > 0 {
		complexity = filename[:i]
	}

	for _, res := range results {
		truth := strings.ToUpper(strings.TrimSpace(string(res.Kind)))
		correct := Normalize(res.Prediction) == truth

		r.Total++
		kb := r.ByKind[truth]
		cb := r.ByComplexity[complexity]
		kb.Total++
		cb.Total++
		if correct {
			r.Correct++
			kb.Correct++
			cb.Correct++
		}
		r.ByKind[truth] = kb
		r.ByComplexity[complexity] = cb
	}

	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total)
	}
}

// Normalize reduces a raw model answer to a comparable label. Models
// asked for a bare label are sometimes chatty or wrap the answer in
// JSON; JSON-looking payloads are repaired and the relationship field
// extracted before the usual trim and uppercase.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		if repaired, err := jsonrepair.JSONRepair(s); err == nil {
			var payload map[string]interface{}
			if json.Unmarshal([]byte(repaired), &payload) == nil {
				for _, key := range []string{"relationship_type", "relationship", "answer"} {
					if v, ok := payload[key].(string); ok {
						s = v
						break
					}
				}
			}
		}
	}

	s = strings.Trim(strings.TrimSpace(s), `"'.`)
	return strings.ToUpper(s)
}

// ReadResults reads a scored-result CSV with at least the columns
// relationship_type and llm_prediction; person columns are carried
// through when present.
func ReadResults(rd io.Reader) ([]Result, error) {
	cr := csv.NewReader(rd)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("result file has no header")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	kindIdx, ok := col["relationship_type"]
	if !ok {
		return nil, fmt.Errorf("result file missing relationship_type column")
	}
	predIdx, ok := col["llm_prediction"]
	if !ok {
		return nil, fmt.Errorf("result file missing llm_prediction column")
	}

	field := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	var results []Result
	for _, row := range rows[1:] {
		if kindIdx >= len(row) || predIdx >= len(row) {
			return nil, fmt.Errorf("result row has %d columns, want at least %d", len(row), predIdx+1)
		}
		kind, err := types.ParseKind(strings.TrimSpace(row[kindIdx]))
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			PersonA:    field(row, "person_a"),
			PersonB:    field(row, "person_b"),
			Kind:       kind,
			Prediction: row[predIdx],
		})
	}
	return results, nil
}
