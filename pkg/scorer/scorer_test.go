package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/kinship/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"clean label", "COUSIN", "COUSIN"},
		{"lowercase with space", "  cousin \n", "COUSIN"},
		{"trailing period", "Grandparent.", "GRANDPARENT"},
		{"quoted", `"SIBLING"`, "SIBLING"},
		{"json object", `{"relationship": "uncle_or_aunt"}`, "UNCLE_OR_AUNT"},
		{"json with type key", `{"relationship_type": "PARENT"}`, "PARENT"},
		{"fenced json", "```json\n{\"answer\": \"spouse\"}\n```", "SPOUSE"},
		{"broken json", `{"relationship": "COUSIN`, "COUSIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestReportAddFile(t *testing.T) {
	report := NewReport()

	report.AddFile("G4_N12_1.csv", []Result{
		{Kind: types.Cousin, Prediction: "COUSIN"},
		{Kind: types.Parent, Prediction: "child"},
		{Kind: types.Parent, Prediction: "PARENT"},
	})
	report.AddFile("G5_N25_1.csv", []Result{
		{Kind: types.Spouse, Prediction: "spouse"},
	})

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 3, report.Correct)
	assert.InDelta(t, 0.75, report.Accuracy, 1e-9)

	assert.Equal(t, Bucket{Correct: 1, Total: 2}, report.ByKind["PARENT"])
	assert.Equal(t, Bucket{Correct: 1, Total: 1}, report.ByKind["COUSIN"])
	assert.Equal(t, Bucket{Correct: 2, Total: 3}, report.ByComplexity["G4"])
	assert.Equal(t, Bucket{Correct: 1, Total: 1}, report.ByComplexity["G5"])
	assert.InDelta(t, 0.5, report.ByKind["PARENT"].Accuracy(), 1e-9)
}

func TestReportComplexityFallback(t *testing.T) {
	report := NewReport()
	report.AddFile("oddname.csv", []Result{{Kind: types.Child, Prediction: "CHILD"}})
	assert.Equal(t, Bucket{Correct: 1, Total: 1}, report.ByComplexity["Unknown"])
}

func TestReadResults(t *testing.T) {
	in := strings.NewReader(
		"person_a,person_b,relationship_type,llm_prediction\n" +
			"Ana,Bruno,PARENT,parent\n" +
			"Carla,Ana,COUSIN,\"{\"\"relationship\"\": \"\"SIBLING\"\"}\"\n")

	results, err := ReadResults(in)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Ana", results[0].PersonA)
	assert.Equal(t, types.Parent, results[0].Kind)
	assert.Equal(t, "parent", results[0].Prediction)
	assert.Equal(t, types.Cousin, results[1].Kind)
}

func TestReadResultsMissingColumns(t *testing.T) {
	_, err := ReadResults(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)

	_, err = ReadResults(strings.NewReader("relationship_type\nPARENT\n"))
	assert.Error(t, err)
}

func TestBucketAccuracyEmpty(t *testing.T) {
	assert.Zero(t, Bucket{}.Accuracy())
}
