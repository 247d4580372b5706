package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/controllers"
	"github.com/romilkhanna/turing-backend/middlewares"
)

// Handlers groups the controllers the router dispatches to.
type Handlers struct {
	Customers *controllers.CustomerController
	Catalog   *controllers.CatalogController
	Shipping  *controllers.ShippingController
	Cart      *controllers.CartController
	Orders    *controllers.OrderController
}

// CORSConfig allows every origin for "*", otherwise only the listed ones.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "USER-KEY"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewRouter builds the engine with the ambient middleware stack and every route.
func NewRouter(h Handlers, verifier middlewares.CredentialVerifier, log *zap.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.PrometheusMiddleware())
	r.Use(cors.New(CORSConfig(origins)))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	SetupRoutes(r, h, middlewares.AuthMiddleware(verifier))
	return r
}

func SetupRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	customers := r.Group("/customers")
	{
		customers.POST("", h.Customers.Register)
		customers.POST("/login", h.Customers.Login)
	}
	customer := r.Group("/customer", auth)
	{
		customer.GET("", h.Customers.GetCustomer)
		customer.PUT("/address", h.Customers.UpdateAddress)
	}

	products := r.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/search", h.Catalog.SearchProducts)
		products.GET("/:product_id", h.Catalog.GetProduct)
		products.GET("/inCategory/:category_id", h.Catalog.ProductsInCategory)
		products.GET("/inDepartment/:department_id", h.Catalog.ProductsInDepartment)
	}

	departments := r.Group("/departments")
	{
		departments.GET("", h.Catalog.ListDepartments)
		departments.GET("/:department_id", h.Catalog.GetDepartment)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/:category_id", h.Catalog.GetCategory)
		categories.GET("/inProduct/:product_id", h.Catalog.CategoryOfProduct)
		categories.GET("/inDepartment/:department_id", h.Catalog.CategoriesInDepartment)
	}

	attributes := r.Group("/attributes")
	{
		attributes.GET("", h.Catalog.ListAttributes)
		attributes.GET("/:attribute_id", h.Catalog.GetAttribute)
		attributes.GET("/values/:attribute_id", h.Catalog.AttributeValues)
		attributes.GET("/inProduct/:product_id", h.Catalog.ProductAttributes)
	}

	r.GET("/shipping/regions", h.Shipping.ListRegions)
	r.GET("/shipping/regions/:shipping_region_id", h.Shipping.ShippingOptions)
	r.GET("/tax", h.Shipping.ListTaxes)
	r.GET("/tax/:tax_id", h.Shipping.GetTax)

	cart := r.Group("/shoppingcart")
	{
		cart.GET("/generateUniqueId", h.Cart.GenerateUniqueID)
		cart.POST("/add", h.Cart.AddItem)
		cart.GET("/:cart_id", h.Cart.GetItems)
		cart.PUT("/update/:item_id", h.Cart.UpdateQuantity)
		cart.DELETE("/empty/:cart_id", h.Cart.EmptyCart)
		cart.DELETE("/removeProduct/:item_id", h.Cart.RemoveProduct)
		cart.GET("/totalAmount/:cart_id", h.Cart.TotalAmount)
	}

	orders := r.Group("/orders", auth)
	{
		orders.POST("", h.Orders.CreateOrder)
		orders.GET("/inCustomer", h.Orders.GetCustomerOrders)
		orders.GET("/shortDetail/:order_id", h.Orders.GetOrderSummary)
		orders.GET("/:order_id", h.Orders.GetOrderDetails)
	}
}
