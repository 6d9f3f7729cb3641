package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmanzanog/showcase/internal/application"
	"github.com/jmanzanog/showcase/internal/domain"
)

// ShowcaseService defines the interface for portfolio showcase operations
type ShowcaseService interface {
	ListPortfolios(ctx context.Context, query domain.ListQuery) (*application.ListResult, error)
	GetPortfolioByID(ctx context.Context, id string) (*domain.Entry, error)
	GetStats(ctx context.Context) (*domain.StatsSummary, error)
	CreatePortfolio(ctx context.Context, patch domain.EntryPatch) (*domain.Entry, error)
	UpdatePortfolio(ctx context.Context, id string, patch domain.EntryPatch) (*domain.Entry, error)
	DeletePortfolio(ctx context.Context, id string) error
	BatchDeletePortfolios(ctx context.Context, ids []string) (*application.BatchDeleteResult, error)
	UpdateSortOrder(ctx context.Context, updates []application.SortOrderUpdate) (*application.SortOrderResult, error)
	ToggleFeatured(ctx context.Context, id string, featured bool) (*domain.Entry, error)
}

type Handler struct {
	showcaseService ShowcaseService
}

func NewHandler(showcaseService ShowcaseService) *Handler {
	return &Handler{
		showcaseService: showcaseService,
	}
}

type BatchDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type FeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

func (h *Handler) ListPortfolios(c *gin.Context) {
	var query domain.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.showcaseService.ListPortfolios(c.Request.Context(), query)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to list portfolios", "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, result)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.showcaseService.GetStats(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to compute stats", "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, stats)
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	id := c.Param("id")

	entry, err := h.showcaseService.GetPortfolioByID(c.Request.Context(), id)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to get portfolio", "id", id, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, entry)
}

func (h *Handler) CreatePortfolio(c *gin.Context) {
	var patch domain.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, err)
		return
	}

	entry, err := h.showcaseService.CreatePortfolio(c.Request.Context(), patch)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to create portfolio", "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, entry)
}

func (h *Handler) UpdatePortfolio(c *gin.Context) {
	id := c.Param("id")

	var patch domain.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, err)
		return
	}

	entry, err := h.showcaseService.UpdatePortfolio(c.Request.Context(), id, patch)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to update portfolio", "id", id, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, entry)
}

func (h *Handler) DeletePortfolio(c *gin.Context) {
	id := c.Param("id")

	if err := h.showcaseService.DeletePortfolio(c.Request.Context(), id); err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to delete portfolio", "id", id, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, nil)
}

func (h *Handler) BatchDeletePortfolios(c *gin.Context) {
	var req BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.showcaseService.BatchDeletePortfolios(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, result)
}

func (h *Handler) UpdateSortOrder(c *gin.Context) {
	var updates []application.SortOrderUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.showcaseService.UpdateSortOrder(c.Request.Context(), updates)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, result)
}

func (h *Handler) ToggleFeatured(c *gin.Context) {
	id := c.Param("id")

	var req FeaturedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	entry, err := h.showcaseService.ToggleFeatured(c.Request.Context(), id, *req.Featured)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to toggle featured", "id", id, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, entry)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
