package router

import (
	"github.com/gin-gonic/gin"

	"order_compare/internal/interfaces/http/handler"
	"order_compare/internal/interfaces/http/view"
)

func RegisterRoutes(r *gin.Engine, api *handler.ComparisonHandler, pages *handler.PageHandler) {
	r.SetHTMLTemplate(view.Templates())

	r.GET("/health", api.Health)

	r.GET("/", pages.Index)
	r.POST("/", pages.SubmitPairs)
	r.GET("/compare", pages.Compare)
	r.GET("/factory", pages.FactoryOrder)

	g := r.Group("/api")
	{
		g.POST("/pairs/parse", api.ParsePairs)
		g.POST("/comparisons", api.CompareOrders)
		g.GET("/comparisons/:id", api.GetComparison)
		g.GET("/factory-orders/:id", api.GetFactoryOrder)
	}
}
