package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	kinship "github.com/soundprediction/kinship"
	"github.com/soundprediction/kinship/pkg/gentree"
	"github.com/soundprediction/kinship/pkg/server/dto"
	"github.com/soundprediction/kinship/pkg/types"
)

// GenerateHandler serves tree generation requests.
type GenerateHandler struct{}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler() *GenerateHandler {
	return &GenerateHandler{}
}

// Generate handles POST /api/v1/trees. A non-zero seed makes the
// response reproducible; otherwise every call draws a fresh tree.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	opts := []kinship.Option{}
	if req.Seed != 0 {
		opts = append(opts, kinship.WithSeed(req.Seed))
	}
	edition := req.Edition
	if edition == 0 {
		edition = 1
	}

	params := gentree.Params{
		Generations: req.Generations,
		Nodes:       req.Nodes,
		Retries:     req.Retries,
	}
	ds, err := kinship.New(opts...).Generate(params, edition)
	switch {
	case errors.Is(err, types.ErrInfeasible):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, types.ErrExhausted):
		// Best-effort tree: returned anyway, flagged unvalidated.
	case err != nil:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateResponse{
		ID:        ds.ID,
		Validated: ds.Validated,
		Stats:     ds.Stats,
		Tree:      ds.Tree,
		Relations: ds.Relations,
	})
}
