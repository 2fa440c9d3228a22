// Package dto defines the request and response bodies of the HTTP API.
package dto

import (
	"github.com/soundprediction/kinship/pkg/gentree"
	"github.com/soundprediction/kinship/pkg/types"
)

// GenerateRequest asks for one random tree of the given shape.
type GenerateRequest struct {
	Generations int   `json:"generations" binding:"required,min=2"`
	Nodes       int   `json:"nodes" binding:"required,min=2"`
	Retries     int   `json:"retries"`
	Seed        int64 `json:"seed"`
	Edition     int   `json:"edition"`
}

// GenerateResponse returns the tree, its observed stats, and the full
// ground-truth relation table.
type GenerateResponse struct {
	ID        string        `json:"id"`
	Validated bool          `json:"validated"`
	Stats     gentree.Stats `json:"stats"`
	Tree      *types.Person `json:"tree"`
	Relations types.Table   `json:"relations"`
}

// RelationsRequest carries a serialized tree to run inference on.
type RelationsRequest struct {
	Tree *types.Person `json:"tree" binding:"required"`
}

// RelationsResponse returns the inferred relation table.
type RelationsResponse struct {
	Relations types.Table `json:"relations"`
	Total     int         `json:"total"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
