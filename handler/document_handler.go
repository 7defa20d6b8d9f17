package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/storage"
	"github.com/tieubaoca/docqa-be/types"
)

type DocumentHandler struct {
	repo  repository.DocumentRepo
	store storage.Storage
}

func NewDocumentHandler(repo repository.DocumentRepo, store storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		repo:  repo,
		store: store,
	}
}

// HandleListDocuments returns the most recent documents. Callers use
// this recency ordering to select candidates for cross-document queries.
func (h *DocumentHandler) HandleListDocuments(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	docs, err := h.repo.ListDocuments(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.ListDocumentsResponse{
			Documents: docs,
		},
	})
}

func (h *DocumentHandler) HandleDeleteDocument(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.repo.GetDocument(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, types.DataResponse{
				Status:  false,
				Message: "Document not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	if err := h.store.Remove(c.Request.Context(), []string{doc.FilePath}); err != nil {
		// The record is still removed; orphaned files are cleaned up
		// out of band.
		log.Printf("Warning: failed to remove stored file %s: %v", doc.FilePath, err)
	}
	if err := h.repo.DeleteDocument(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
	})
}
