package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greentail/backend/internal/domain"
	"go.uber.org/zap"
)

// CatalogUseCase is the catalog behaviour the handlers depend on
type CatalogUseCase interface {
	Search(ctx context.Context, request *domain.SearchRequest) ([]domain.ScoredProduct, error)
	Recommend(ctx context.Context, profile *domain.UserProfile, limit int) ([]domain.ScoredProduct, error)
	Compare(ctx context.Context, ids []int, profile *domain.UserProfile) ([]domain.ScoredProduct, error)
	GetProduct(ctx context.Context, id int, profile *domain.UserProfile) (*domain.ScoredProduct, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog CatalogUseCase
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. A nil catalog makes the product
// endpoints answer 501.
func NewHandler(catalog CatalogUseCase, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// compareRequest is the body of POST /products/compare
type compareRequest struct {
	IDs     []int               `json:"ids" binding:"required"`
	Profile *domain.UserProfile `json:"profile,omitempty"`
}

// matchRequest is the body of POST /quiz/matches
type matchRequest struct {
	Profile *domain.UserProfile `json:"profile" binding:"required"`
	Limit   int                 `json:"limit,omitempty"`
}

// listResponse wraps product lists so an empty result still renders as []
type listResponse struct {
	Products []domain.ScoredProduct `json:"products"`
	Count    int                    `json:"count"`
}

func newListResponse(products []domain.ScoredProduct) listResponse {
	if products == nil {
		products = []domain.ScoredProduct{}
	}
	return listResponse{Products: products, Count: len(products)}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "greentail-backend",
		"version": "1.0.0",
	})
}

// ListProducts handles catalog browsing with query-string filters.
// No quiz profile is involved, so products are ranked by quality score.
func (h *Handler) ListProducts(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var filters domain.FilterState
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	request := &domain.SearchRequest{
		Filters: filters,
		Sort:    domain.SortKey(c.DefaultQuery("sort", string(domain.SortBest))),
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
			return
		}
		request.Limit = n
	}

	results, err := h.catalog.Search(c.Request.Context(), request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(results))
}

// SearchProducts handles filter + profile searches from the search and results pages
func (h *Handler) SearchProducts(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	results, err := h.catalog.Search(c.Request.Context(), &request)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(results))
}

// GetProduct returns one product with its quality score and rating
func (h *Handler) GetProduct(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id, nil)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CompareProducts returns the selected products side by side
func (h *Handler) CompareProducts(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var request compareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	results, err := h.catalog.Compare(c.Request.Context(), request.IDs, request.Profile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(results))
}

// QuizMatches returns the best products for a completed quiz
func (h *Handler) QuizMatches(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var request matchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	results, err := h.catalog.Recommend(c.Request.Context(), request.Profile, request.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(results))
}

// ready answers 501 when no catalog service is wired
func (h *Handler) ready(c *gin.Context) bool {
	if h.catalog != nil {
		return true
	}
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": "catalog service not configured",
	})
	return false
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrCatalogUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
