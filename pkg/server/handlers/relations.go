package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/kinship/pkg/familygraph"
	"github.com/soundprediction/kinship/pkg/relations"
	"github.com/soundprediction/kinship/pkg/server/dto"
	"github.com/soundprediction/kinship/pkg/types"
)

// RelationsHandler runs kinship inference over posted trees.
type RelationsHandler struct{}

// NewRelationsHandler creates a new relations handler.
func NewRelationsHandler() *RelationsHandler {
	return &RelationsHandler{}
}

// Infer handles POST /api/v1/relations.
func (h *RelationsHandler) Infer(c *gin.Context) {
	var req dto.RelationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	g, err := familygraph.Build(req.Tree)
	if err != nil {
		var serr *types.StructureError
		if errors.As(err, &serr) {
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	table := relations.Infer(g)
	c.JSON(http.StatusOK, dto.RelationsResponse{
		Relations: table,
		Total:     table.Total(),
	})
}
