package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/josuebusta/portfolio/dto"
	"github.com/josuebusta/portfolio/logger"
	"github.com/josuebusta/portfolio/metrics"
	"github.com/josuebusta/portfolio/middleware"
	"github.com/josuebusta/portfolio/service"
)

const (
	msgCreateFailed = "Oh no! Failed to add album to the database."
	msgListFailed   = "Oh no! Failed to retrieve albums."
	msgGetFailed    = "Oh no! Failed to retrieve album."
	msgUpdateFailed = "Oh no! Failed to update album."
	msgDeleteFailed = "Oh no! Failed to delete album."
	msgNotFound     = "Hmm, that album was not found."
	msgDeleted      = "The album was deleted."
)

type AlbumHandler struct {
	svc     service.AlbumService
	metrics *metrics.Metrics
}

// NewAlbumHandler accepts a nil metrics.
func NewAlbumHandler(svc service.AlbumService, m *metrics.Metrics) *AlbumHandler {
	return &AlbumHandler{svc: svc, metrics: m}
}

func (h *AlbumHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/albums")

	g.POST("", h.CreateAlbum)
	g.GET("", h.ListAlbums)
	g.GET("/:id", h.GetAlbum)
	g.PUT("/:id", h.ReplaceAlbum)
	g.DELETE("/:id", h.DeleteAlbum)
}

func (h *AlbumHandler) CreateAlbum(c *gin.Context) {
	req, releaseDate, ok := h.bindAlbum(c, "create", msgCreateFailed)
	if !ok {
		return
	}

	album, err := h.svc.CreateAlbum(c.Request.Context(), req.Title, releaseDate, req.Artist, req.RankingValue())
	if err != nil {
		h.fail(c, "create", http.StatusBadRequest, msgCreateFailed, err)
		return
	}
	h.metrics.ObserveAlbumOp("create", "ok")
	c.JSON(http.StatusCreated, album)
}

func (h *AlbumHandler) ListAlbums(c *gin.Context) {
	albums, err := h.svc.ListAlbums(c.Request.Context())
	if err != nil {
		h.fail(c, "list", http.StatusBadRequest, msgListFailed, err)
		return
	}
	h.metrics.ObserveAlbumOp("list", "ok")
	c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) GetAlbum(c *gin.Context) {
	album, err := h.svc.GetAlbumByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAlbumNotFound) {
			h.notFound(c, "get")
			return
		}
		h.fail(c, "get", http.StatusBadRequest, msgGetFailed, err)
		return
	}
	h.metrics.ObserveAlbumOp("get", "ok")
	c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) ReplaceAlbum(c *gin.Context) {
	req, releaseDate, ok := h.bindAlbum(c, "replace", msgUpdateFailed)
	if !ok {
		return
	}

	album, err := h.svc.ReplaceAlbum(c.Request.Context(), c.Param("id"), req.Title, releaseDate, req.Artist, req.RankingValue())
	if err != nil {
		if errors.Is(err, service.ErrAlbumNotFound) {
			h.notFound(c, "replace")
			return
		}
		h.fail(c, "replace", http.StatusBadRequest, msgUpdateFailed, err)
		return
	}
	h.metrics.ObserveAlbumOp("replace", "ok")
	c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) DeleteAlbum(c *gin.Context) {
	deleted, err := h.svc.DeleteAlbum(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete", http.StatusInternalServerError, msgDeleteFailed, err)
		return
	}
	if deleted != 1 {
		h.notFound(c, "delete")
		return
	}
	h.metrics.ObserveAlbumOp("delete", "ok")
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: msgDeleted})
}

func (h *AlbumHandler) Health(c *gin.Context) {
	if err := h.svc.Healthy(c.Request.Context()); err != nil {
		logger.Error(logger.EventDBError, "Health check failed", logger.Fields(
			"error", err.Error(),
			"request_id", middleware.RequestIDFrom(c),
		))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// bindAlbum aborts with a 400 when the body is unusable, so nothing reaches
// the store.
func (h *AlbumHandler) bindAlbum(c *gin.Context, op, message string) (*dto.AlbumRequest, time.Time, bool) {
	var req dto.AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, op, message, err)
		return nil, time.Time{}, false
	}
	releaseDate, err := req.ParsedReleaseDate()
	if err != nil {
		h.invalid(c, op, message, err)
		return nil, time.Time{}, false
	}
	return &req, releaseDate, true
}

func (h *AlbumHandler) invalid(c *gin.Context, op, message string, err error) {
	logger.Warn(logger.EventValidationFailure, "Invalid album request", logger.Fields(
		"operation", op,
		"error", err.Error(),
		"request_id", middleware.RequestIDFrom(c),
	))
	h.metrics.ObserveAlbumOp(op, "invalid")
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func (h *AlbumHandler) notFound(c *gin.Context, op string) {
	h.metrics.ObserveAlbumOp(op, "not_found")
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msgNotFound})
}

func (h *AlbumHandler) fail(c *gin.Context, op string, status int, message string, err error) {
	event := logger.EventDBError
	if errors.Is(err, service.ErrMissingField) {
		event = logger.EventValidationFailure
	}
	logger.Error(event, message, logger.Fields(
		"operation", op,
		"id", c.Param("id"),
		"error", err.Error(),
		"request_id", middleware.RequestIDFrom(c),
	))
	_ = c.Error(err)
	h.metrics.ObserveAlbumOp(op, "error")
	c.JSON(status, dto.ErrorResponse{Error: message})
}
