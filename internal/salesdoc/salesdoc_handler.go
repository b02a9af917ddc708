package salesdoc

import (
	"net/http"
	"strings"

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
	l := zap.L().Named("salesdoc.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salesdoc.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Create(c.Request.Context(), cid, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	kind := Kind(strings.ToUpper(strings.TrimSpace(c.Query("kind"))))
	res, err := h.service.GetAll(c.Request.Context(), cid, kind)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, response.NewListMeta(len(res)))
}

func (h *Handler) GetByID(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), cid, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Update(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Update(c.Request.Context(), cid, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), cid, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Document deleted"}, nil)
}

func (h *Handler) Convert(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Convert(c.Request.Context(), cid, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// Layout returns the positioned template and inputs without rasterizing.
func (h *Handler) Layout(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	doc, err := h.service.Layout(c.Request.Context(), cid, c.Param("id"))
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

	pdf, err := h.service.RenderPDF(c.Request.Context(), cid, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.PDF(c, pdf.Filename, pdf.Body, c.Query("download") != "true")
}

func (h *Handler) RequestPDF(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	res, err := h.service.RequestPDF(c.Request.Context(), cid, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, res, nil)
}

func (h *Handler) DownloadPDF(c *gin.Context) {
	cid, ok := middleware.CompanyID(c)
	if !ok {
		return
	}

	url, err := h.service.DownloadPDF(c.Request.Context(), cid, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}
