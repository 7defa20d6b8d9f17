package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/service"
	"github.com/tieubaoca/docqa-be/storage"
	"github.com/tieubaoca/docqa-be/types"
)

const maxUploadSize = 10 << 20

type UploadHandler struct {
	store storage.Storage
	repo  repository.DocumentRepo
}

func NewUploadHandler(store storage.Storage, repo repository.DocumentRepo) *UploadHandler {
	return &UploadHandler{
		store: store,
		repo:  repo,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: fmt.Sprintf("unsupported file type: %s", ext),
		})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File too large",
		})
		return
	}

	// Optional metadata form field carries the display title.
	var req types.UploadRequest
	if metadata := c.Request.FormValue("metadata"); metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &req); err != nil {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Invalid metadata",
			})
			return
		}
	}
	if req.Title == "" {
		req.Title = service.GetFileNameWithoutExt(header.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	id := uuid.NewString()
	path := fmt.Sprintf("documents/%s%s", id, ext)
	storedPath, err := h.store.Upload(c.Request.Context(), path, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	doc := &types.Document{
		ID:       id,
		Title:    req.Title,
		FilePath: storedPath,
	}
	if err := h.repo.CreateDocument(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.UploadResponse{
			ID:           doc.ID,
			OriginalName: header.Filename,
			FilePath:     doc.FilePath,
		},
	})
}
