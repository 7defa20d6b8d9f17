package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/docqa-be/handler"
	"github.com/tieubaoca/docqa-be/repository"
	"github.com/tieubaoca/docqa-be/types"
)

type queryFunc func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error)

func (f queryFunc) Query(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
	return f(ctx, req)
}

func performQuery(t *testing.T, svc handler.QueryService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/documents/query", handler.NewQueryHandler(svc).HandleQuery)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeQueryResponse(t *testing.T, rec *httptest.ResponseRecorder) types.QueryResponse {
	t.Helper()
	var res types.QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHandleQuery_Success(t *testing.T) {
	svc := queryFunc(func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
		assert.Equal(t, "doc-1", req.DocumentID)
		assert.Equal(t, "What is the pressure limit?", req.Question)
		return &types.QueryResponse{Analysis: "90 psi", Model: "main-model"}, nil
	})

	rec := performQuery(t, svc, `{"document_id":"doc-1","question":"What is the pressure limit?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	res := decodeQueryResponse(t, rec)
	assert.Equal(t, "90 psi", res.Analysis)
	assert.Equal(t, "main-model", res.Model)
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	called := false
	svc := queryFunc(func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
		called = true
		return nil, nil
	})

	rec := performQuery(t, svc, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestHandleQuery_MissingDocumentID(t *testing.T) {
	svc := queryFunc(func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
		t.Fatal("service should not be called")
		return nil, nil
	})

	rec := performQuery(t, svc, `{"question":"What is the pressure limit?"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decodeQueryResponse(t, rec)
	assert.NotEmpty(t, res.Error)
}

func TestHandleQuery_CrossDocumentRequiresQuestion(t *testing.T) {
	svc := queryFunc(func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
		t.Fatal("service should not be called")
		return nil, nil
	})

	rec := performQuery(t, svc, `{"documents":[{"id":"doc-1","title":"A"}],"question":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleQuery_NotFound(t *testing.T) {
	svc := queryFunc(func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
		return nil, repository.ErrDocumentNotFound
	})

	rec := performQuery(t, svc, `{"document_id":"missing","question":"Anything?"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	res := decodeQueryResponse(t, rec)
	assert.Equal(t, "Document not found", res.Error)
}

func TestHandleQuery_InternalError(t *testing.T) {
	svc := queryFunc(func(ctx context.Context, req *types.QueryRequest) (*types.QueryResponse, error) {
		return nil, errors.New("mongo unavailable")
	})

	rec := performQuery(t, svc, `{"document_id":"doc-1","question":"Anything?"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	res := decodeQueryResponse(t, rec)
	assert.Equal(t, "mongo unavailable", res.Error)
	assert.NotEmpty(t, res.Analysis)
}
