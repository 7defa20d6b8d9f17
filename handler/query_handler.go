package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/types"
)

// QueryService is the pipeline contract the handler depends on.
type QueryService interface {
	Query(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error)
}

type QueryHandler struct {
	queryService QueryService
}

func NewQueryHandler(queryService QueryService) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
	}
}

func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.QueryResponse{
			Error: "Invalid request body",
		})
		return
	}

	if req.CrossDocument() {
		if strings.TrimSpace(req.Question) == "" {
			c.JSON(http.StatusBadRequest, types.QueryResponse{
				Error: "A question is required when querying multiple documents",
			})
			return
		}
	} else if req.DocumentID == "" {
		c.JSON(http.StatusBadRequest, types.QueryResponse{
			Error: "Either document_id or documents must be provided",
		})
		return
	}

	res, err := h.queryService.Query(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, types.QueryResponse{
				Error: "Document not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.QueryResponse{
			Error:    err.Error(),
			Analysis: "Something went wrong while analyzing the document. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, res)
}
