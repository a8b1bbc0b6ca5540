package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/interface/http/handler"
	"github.com/xiebiao/catalog/internal/interface/http/middleware"
	"github.com/xiebiao/catalog/pkg/response"
)

// Options 路由开关
type Options struct {
	Mode        string // debug | release | test
	MetricsPath string // 为空时不暴露指标
	Swagger     bool
}

// Handlers 各模块处理器
type Handlers struct {
	Category  *handler.CategoryHandler
	Attribute *handler.AttributeHandler
	Product   *handler.ProductHandler
	Auth      *handler.AuthHandler
}

// New 创建Gin引擎并注册全部路由
// 读接口公开，写接口需要Bearer Token
func New(opts Options, log *zap.Logger, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})
	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/revoke", requireAuth, h.Auth.Revoke)

		categories := v1.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.GET("/:id", h.Category.Get)
			categories.POST("", requireAuth, h.Category.Create)
			categories.PATCH("/:id", requireAuth, h.Category.Update)
			categories.DELETE("/:id", requireAuth, h.Category.Delete)
		}

		attributes := v1.Group("/atributes")
		{
			attributes.GET("", h.Attribute.List)
			attributes.GET("/:id", h.Attribute.Get)
			attributes.POST("", requireAuth, h.Attribute.Create)
			attributes.PATCH("/:id", requireAuth, h.Attribute.Update)
			attributes.DELETE("/:id", requireAuth, h.Attribute.Delete)
			attributes.POST("/:id/options", requireAuth, h.Attribute.AddOptions)
		}

		options := v1.Group("/atribute-options")
		{
			options.GET("", h.Attribute.ListOptions)
			options.PATCH("/:id", requireAuth, h.Attribute.UpdateOption)
			options.DELETE("/:id", requireAuth, h.Attribute.DeleteOption)
		}

		products := v1.Group("/products")
		{
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
			products.POST("", requireAuth, h.Product.Create)
			products.PATCH("/:id", requireAuth, h.Product.Update)
			products.DELETE("/:id", requireAuth, h.Product.Delete)
		}
	}

	return r
}
