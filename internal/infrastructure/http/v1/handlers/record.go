package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"kontora/internal/core/apperror"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/infrastructure/http/v1/dto"
)

// RecordService is the operation set the generic handler exposes.
// Family services satisfy it through embedding; an overridden Delete
// (cascading families) takes precedence over the embedded one.
type RecordService[T domain.Entity] interface {
	New() T
	All(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) error
	Update(ctx context.Context, id string, patch json.RawMessage) (T, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, f filter.Filter) ([]T, error)
	Count(ctx context.Context) (int, error)
}

// RecordHandler provides generic CRUD and search endpoints for one
// entity family.
type RecordHandler[T domain.Entity] struct {
	*BaseHandler
	service    RecordService[T]
	entityName string
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler[T domain.Entity](base *BaseHandler, service RecordService[T], entityName string) *RecordHandler[T] {
	return &RecordHandler[T]{
		BaseHandler: base,
		service:     service,
		entityName:  entityName,
	}
}

// List handles GET /{entity} - full listing with optional filters.
func (h *RecordHandler[T]) List(c *gin.Context) {
	ctx := c.Request.Context()

	var f filter.Filter
	if !h.BindQuery(c, &f) {
		return
	}

	items, err := h.service.Search(ctx, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Get handles GET /{entity}/:id.
func (h *RecordHandler[T]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	rec, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var zero T
	if rec == zero {
		h.Error(c, apperror.NewNotFound(h.entityName, c.Param("id")))
		return
	}

	h.OK(c, rec)
}

// Create handles POST /{entity}.
func (h *RecordHandler[T]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	// Bind into an allocated record, never a nil pointer: a literal
	// null body would leave a nil T and trip gin's validator.
	rec := h.service.New()
	if !h.BindJSON(c, rec) {
		return
	}

	if err := h.service.Create(ctx, rec); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, rec)
}

// Update handles PATCH /{entity}/:id - merge the body onto the record.
func (h *RecordHandler[T]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	patch, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request body"))
		return
	}

	rec, err := h.service.Update(ctx, c.Param("id"), patch)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rec)
}

// Delete handles DELETE /{entity}/:id.
func (h *RecordHandler[T]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.Delete(ctx, c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Count handles GET /{entity}/count.
func (h *RecordHandler[T]) Count(c *gin.Context) {
	ctx := c.Request.Context()

	count, err := h.service.Count(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.CountResponse{Count: count})
}

// Register attaches the CRUD routes to the group.
func (h *RecordHandler[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/count", h.Count)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// Aggregate wraps a stats computation as a GET handler.
func Aggregate(h *BaseHandler, fn func(ctx context.Context) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := fn(c.Request.Context())
		if err != nil {
			h.Error(c, err)
			return
		}
		h.OK(c, data)
	}
}
