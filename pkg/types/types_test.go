package types

import (
	"encoding/json"
	"testing"
)

func sampleTree() *Person {
	return &Person{
		Name: "R",
		Children: []*Person{
			{Name: "A", Children: []*Person{{Name: "C"}}},
			{Name: "B", Spouse: "B2"},
		},
	}
}

func TestPersonMaxDepth(t *testing.T) {
	tests := []struct {
		name string
		tree *Person
		want int
	}{
		{"nil", nil, 0},
		{"single node", &Person{Name: "R"}, 1},
		{"sample", sampleTree(), 3},
		{
			"deep chain",
			&Person{Name: "a", Children: []*Person{
				{Name: "b", Children: []*Person{
					{Name: "c", Children: []*Person{{Name: "d"}}},
				}},
			}},
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tree.MaxDepth(); got != tt.want {
				t.Errorf("MaxDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPersonCount(t *testing.T) {
	if got := sampleTree().Count(); got != 4 {
		t.Errorf("Count() = %d, want 4 (spouses are not nodes)", got)
	}
	var nilPerson *Person
	if got := nilPerson.Count(); got != 0 {
		t.Errorf("Count() on nil = %d, want 0", got)
	}
}

func TestPersonValidate(t *testing.T) {
	if err := sampleTree().Validate(); err != nil {
		t.Fatalf("Validate() on well-formed tree: %v", err)
	}

	bad := &Person{Name: "R", Children: []*Person{{Name: ""}}}
	err := bad.Validate()
	if err == nil {
		t.Fatal("Validate() accepted a nameless individual")
	}
	var serr *StructureError
	if !asStructureError(err, &serr) {
		t.Fatalf("expected *StructureError, got %T", err)
	}
}

func asStructureError(err error, target **StructureError) bool {
	se, ok := err.(*StructureError)
	if ok {
		*target = se
	}
	return ok
}

func TestPersonJSONShape(t *testing.T) {
	data, err := json.Marshal(sampleTree())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Person
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Children[1].Spouse != "B2" {
		t.Errorf("spouse lost in round trip: %+v", decoded.Children[1])
	}

	// A node without a spouse must not emit the spouse key at all.
	leaf, _ := json.Marshal(&Person{Name: "x"})
	if string(leaf) != `{"name":"x","children":null}` {
		t.Errorf("unexpected leaf encoding: %s", leaf)
	}
}
