package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xuanmo666/order-management-system/internal/adapter/http/middleware"
	"github.com/xuanmo666/order-management-system/internal/logging"
)

func NewRouter(ph *ProductHandler, ih *InventoryHandler, oh *OrderHandler,
	ch *CustomerHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", authz.Require("products.write"), ph.CreateProduct)
			products.GET("", authz.Require("products.read"), ph.ListProducts)
			products.GET("/sorted", authz.Require("products.read"), ph.SortedByPrice)
			products.GET("/stats/categories", authz.Require("products.read"), ph.CategoryStatistics)
			products.GET("/:id", authz.Require("products.read"), ph.GetProduct)
			products.PUT("/:id", authz.Require("products.write"), ph.UpdateProduct)
			products.DELETE("/:id", authz.Require("products.write"), ph.DeleteProduct)
			products.POST("/:id/stock-in", authz.Require("products.write"), ph.StockIn)
			products.POST("/:id/stock-out", authz.Require("products.write"), ph.StockOut)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.POST("", authz.Require("inventory.write"), ih.CreateInventory)
			inventory.GET("", authz.Require("inventory.read"), ih.ListInventory)
			inventory.GET("/low-stock", authz.Require("inventory.read"), ih.LowStock)
			inventory.GET("/sorted", authz.Require("inventory.read"), ih.SortedByQuantity)
			inventory.GET("/stats", authz.Require("inventory.read"), ih.Statistics)
			inventory.GET("/:id", authz.Require("inventory.read"), ih.GetInventory)
			inventory.PUT("/:id", authz.Require("inventory.write"), ih.UpdateInventory)
			inventory.DELETE("/:id", authz.Require("inventory.write"), ih.DeleteInventory)
			inventory.POST("/:id/adjust", authz.Require("inventory.write"), ih.Adjust)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", authz.Require("orders.write"), oh.CreateOrder)
			orders.GET("", authz.Require("orders.read"), oh.ListOrders)
			orders.GET("/stats", authz.Require("orders.read"), oh.Statistics)
			orders.GET("/hot-products", authz.Require("orders.read"), oh.HotProducts)
			orders.GET("/:id", authz.Require("orders.read"), oh.GetOrder)
			orders.POST("/:id/status", authz.Require("orders.write"), oh.UpdateStatus)
			orders.POST("/:id/cancel", authz.Require("orders.write"), oh.CancelOrder)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", authz.Require("customers.write"), ch.CreateCustomer)
			customers.GET("", authz.Require("customers.read"), ch.ListCustomers)
			customers.GET("/:id", authz.Require("customers.read"), ch.GetCustomer)
		}
	}

	return r
}
