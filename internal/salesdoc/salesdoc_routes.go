package salesdoc

import (
	"go-bizdocs/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	jwtSecret string,
	logger *zap.Logger,
) {
	docs := r.Group("/documents")
	docs.Use(middleware.AuthMiddleware(jwtSecret))
	docs.Use(middleware.ContextLogger(logger))
	{
		docs.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.GetAll,
		)

		docs.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.GetByID,
		)

		docs.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		docs.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "update"),
			handler.Update,
		)

		docs.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "document", "delete"),
			handler.Delete,
		)

		docs.POST("/:id/convert",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "document", "create"),
			middleware.Idempotency(rdb),
			handler.Convert,
		)

		docs.GET("/:id/layout",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "document", "print"),
			handler.Layout,
		)

		// Rendering is CPU bound; keep it tight per user.
		docs.GET("/:id/pdf",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "print"),
			handler.RenderPDF,
		)

		docs.POST("/:id/pdf",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "document", "print"),
			middleware.Idempotency(rdb),
			handler.RequestPDF,
		)

		docs.GET("/:id/pdf/download",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.DownloadPDF,
		)
	}
}
