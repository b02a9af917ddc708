package cashbook

import (
	"net/http"

	"go-bizdocs/internal/middleware"
	"go-bizdocs/internal/shared/apperror"
	"go-bizdocs/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("cashbook.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cashbook.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("cash book request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateEntry(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.CreateEntry(c.Request.Context(), cid, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), cid, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Entry deleted"}, nil)
}

func (h *Handler) ListEntries(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.ListEntries(c.Request.Context(), cid, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Layout(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	doc, err := h.service.Layout(c.Request.Context(), cid, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc, nil)
}

func (h *Handler) RenderPDF(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var q PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	body, name, err := h.service.RenderPDF(c.Request.Context(), cid, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.PDF(c, name, body, c.Query("download") != "true")
}
