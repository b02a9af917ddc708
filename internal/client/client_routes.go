package client

import (
	"go-bizdocs/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	logger *zap.Logger,
) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware(jwtSecret))
	clients.Use(middleware.ContextLogger(logger))
	{
		clients.GET("", middleware.RBACAuthorize(rbacService, "client", "read"), h.GetAll)
		clients.POST("", middleware.RBACAuthorize(rbacService, "client", "create"), h.Create)
		clients.GET("/:id", middleware.RBACAuthorize(rbacService, "client", "read"), h.GetByID)
		clients.PUT("/:id", middleware.RBACAuthorize(rbacService, "client", "update"), h.Update)
		clients.DELETE("/:id", middleware.RBACAuthorize(rbacService, "client", "delete"), h.Delete)
	}
}
