package handler

import (
	"net/http"

	"agrimart-be/internal/address"
	"agrimart-be/internal/auth"
	"agrimart-be/internal/cart"
	"agrimart-be/internal/category"
	"agrimart-be/internal/logger"
	"agrimart-be/internal/metrics"
	"agrimart-be/internal/middleware"
	"agrimart-be/internal/order"
	"agrimart-be/internal/product"
	"agrimart-be/internal/user"

	"github.com/gin-gonic/gin"
)

// Paths on the strict rate-limit tier.
const (
	PathLogin  = "/api/user/login"
	PathVerify = "/api/order/verify"
)

type Services struct {
	Users      user.Service
	Categories category.Service
	Products   product.Service
	Addresses  address.Service
	Carts      cart.Service
	Orders     order.Service
}

type Options struct {
	Tokens       *auth.Tokens
	Limiter      *middleware.RateLimiter
	CORSOrigin   string
	SecureCookie bool
}

type Handler struct {
	users      user.Service
	categories category.Service
	products   product.Service
	addresses  address.Service
	carts      cart.Service
	orders     order.Service

	tokens       *auth.Tokens
	secureCookie bool
}

func NewHandler(svc Services, opts Options) *Handler {
	return &Handler{
		users:        svc.Users,
		categories:   svc.Categories,
		products:     svc.Products,
		addresses:    svc.Addresses,
		carts:        svc.Carts,
		orders:       svc.Orders,
		tokens:       opts.Tokens,
		secureCookie: opts.SecureCookie,
	}
}

// API builds the router with every /api route and its middleware chain.
func API(svc Services, opts Options) *gin.Engine {
	h := NewHandler(svc, opts)

	r := gin.New()
	r.Use(logger.RequestID(), logger.AccessLog(), gin.Recovery())
	r.Use(middleware.CORS(opts.CORSOrigin))
	r.Use(middleware.Authenticate(opts.Tokens))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Handler())
	}

	r.GET("/ping", healthCheck)

	authed := middleware.RequireAuth()
	seller := middleware.RequireSeller()

	api := r.Group("/api")

	users := api.Group("/user")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/me", authed, h.Me)
	}

	products := api.Group("/product")
	{
		products.GET("/list", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("/add", authed, seller, h.CreateProduct)
		products.PUT("/:id", authed, seller, h.UpdateProduct)
		products.POST("/stock", authed, seller, h.SetStock)
	}

	categories := api.Group("/category")
	{
		categories.GET("/list", h.ListCategories)
		categories.POST("/add", authed, seller, h.CreateCategory)
		categories.POST("/:id/subcategory", authed, seller, h.CreateSubcategory)
	}

	addresses := api.Group("/address", authed)
	{
		addresses.POST("/add", h.CreateAddress)
		addresses.GET("/get", h.ListAddresses)
		addresses.GET("/:id", h.GetAddress)
		addresses.DELETE("/:id", h.DeleteAddress)
	}

	carts := api.Group("/cart", authed)
	{
		carts.GET("", h.GetCart)
		carts.PUT("", h.ReplaceCart)
		carts.POST("/update", h.UpdateCartItem)
		carts.DELETE("", h.ClearCart)
	}

	orders := api.Group("/order", authed)
	{
		orders.POST("/cod", h.PlaceCOD)
		orders.POST("/razorpay", h.CreateRazorpayOrder)
		orders.POST("/verify", h.VerifyPayment)
		orders.GET("/user", h.UserOrders)
		orders.GET("/seller", seller, h.SellerOrders)
		orders.POST("/status", seller, h.UpdateStatus)
		orders.GET("/:id", h.GetOrder)
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "payments": metrics.Payments.Snapshot()})
}
