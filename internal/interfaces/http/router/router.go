package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Hala-ashour/Restaurant98/internal/domain/access"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/handler"
	"github.com/Hala-ashour/Restaurant98/internal/interfaces/http/middleware"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

type Handlers struct {
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
}

// RegisterRoutes mounts /healthz and the authenticated /api group.
// Reads need any valid role; writes need the matching capability.
func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret []byte, log logger.Logger) {
	r.GET("/healthz", handler.Health)

	api := r.Group("/api", middleware.AuthRequired(jwtSecret, log))

	catalogWrite := middleware.Require(access.WriteCatalog)
	categories := api.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/:id", h.Catalog.GetCategory)
		categories.POST("", catalogWrite, h.Catalog.CreateCategory)
		categories.PUT("/:id", catalogWrite, h.Catalog.UpdateCategory)
		categories.PATCH("/:id", catalogWrite, h.Catalog.UpdateCategory)
		categories.DELETE("/:id", catalogWrite, h.Catalog.DeleteCategory)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/available", h.Catalog.ListAvailableProducts)
		products.GET("/menu-by-category", h.Catalog.MenuByCategory)
		products.GET("/:id", h.Catalog.GetProduct)
		products.GET("/:id/check-availability", h.Catalog.CheckAvailability)
		products.POST("", catalogWrite, h.Catalog.CreateProduct)
		products.PUT("/:id", catalogWrite, h.Catalog.UpdateProduct)
		products.PATCH("/:id", catalogWrite, h.Catalog.UpdateProduct)
		products.DELETE("/:id", catalogWrite, h.Catalog.DeleteProduct)
	}

	customerWrite := middleware.Require(access.WriteCustomers)
	customers := api.Group("/customers")
	{
		customers.GET("", h.Customer.ListCustomers)
		customers.GET("/:id", h.Customer.GetCustomer)
		customers.POST("", customerWrite, h.Customer.CreateCustomer)
		customers.PUT("/:id", customerWrite, h.Customer.UpdateCustomer)
		customers.PATCH("/:id", customerWrite, h.Customer.UpdateCustomer)
		customers.DELETE("/:id", customerWrite, h.Customer.DeleteCustomer)
	}

	orderWrite := middleware.Require(access.WriteOrders)
	orders := api.Group("/orders")
	{
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.POST("", orderWrite, h.Order.CreateOrder)
		orders.PUT("/:id", orderWrite, h.Order.UpdateOrder)
		orders.PATCH("/:id", orderWrite, h.Order.UpdateOrder)
		orders.DELETE("/:id", middleware.Require(access.DeleteOrders), h.Order.DeleteOrder)
		orders.POST("/:id/items", orderWrite, h.Order.AddItem)
		orders.PUT("/:id/status", orderWrite, h.Order.SetStatus)
		orders.POST("/:id/recompute-total", orderWrite, h.Order.RecomputeTotal)
	}
}
