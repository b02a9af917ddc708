package cashbook

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
	book := r.Group("/cashbook")
	book.Use(middleware.AuthMiddleware(jwtSecret))
	book.Use(middleware.ContextLogger(logger))
	{
		book.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "cashbook", "read"),
			handler.ListEntries,
		)

		book.POST("/entries",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "cashbook", "create"),
			middleware.Idempotency(rdb),
			handler.CreateEntry,
		)

		book.DELETE("/entries/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "cashbook", "delete"),
			handler.DeleteEntry,
		)

		book.GET("/layout",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "cashbook", "print"),
			handler.Layout,
		)

		book.GET("/pdf",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "cashbook", "print"),
			handler.RenderPDF,
		)
	}
}
