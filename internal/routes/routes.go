package routes

import (
	"github.com/gin-gonic/gin"

	"smartgear_back_end/internal/handlers/admin"
	"smartgear_back_end/internal/handlers/product"
	"smartgear_back_end/internal/handlers/user"
	"smartgear_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Auth
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/me", middleware.AuthRequired(), user.Me)
	api.GET("/auth/:provider", user.BeginAuth)
	api.GET("/auth/:provider/callback", user.CallbackAuth)

	// Catalogue (public)
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/brands", product.GetBrands)
	api.GET("/brands/flash-sales", product.GetFlashSaleBrands)
	api.GET("/categories", product.GetCategories)

	// Panier : utilisateur connecté ou session invitée via X-Session-ID
	cart := api.Group("/cart", middleware.AuthOptional())
	{
		cart.GET("", user.GetCart)
		cart.POST("/items", user.AddToCart)
		cart.PUT("/items", user.UpdateCartItem)
		cart.DELETE("/items/:productId", user.RemoveFromCart)
		cart.DELETE("", user.ClearCart)
		cart.PUT("/drawer", user.SetCartOpen)
		cart.GET("/ws", user.CartWebSocket)
	}

	// Tunnel de commande
	checkout := api.Group("/checkout", middleware.AuthOptional())
	{
		checkout.GET("", user.GetCheckoutState)
		checkout.PUT("/shipping", user.SaveShipping)
		checkout.POST("/next", user.NextStep)
		checkout.POST("/back", user.BackStep)
		checkout.POST("/place-order", user.PlaceOrder)
	}

	// Espace client
	me := api.Group("/orders", middleware.AuthRequired())
	{
		me.GET("", user.GetMyOrders)
		me.GET("/:id", user.GetMyOrder)
		me.GET("/:id/receipt", user.DownloadReceipt)
		me.GET("/:id/tracking-qr", user.GetOrderTrackingQR)
	}

	// Back-office
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.POST("/products", product.CreateProduct)
		adm.PUT("/products/:id", product.UpdateProduct)
		adm.DELETE("/products/:id", product.DeleteProduct)
		adm.POST("/products/:id/images", product.UploadProductImage)
		adm.DELETE("/products/:id/images", product.DeleteProductImage)
		adm.GET("/products/low-stock", product.GetLowStockProducts)

		adm.POST("/brands", product.CreateBrand)
		adm.PUT("/brands/:id", product.UpdateBrand)
		adm.PUT("/brands/:id/flash-sale", product.ToggleFlashSale)
		adm.DELETE("/brands/:id", product.DeleteBrand)

		adm.POST("/categories", product.CreateCategory)
		adm.DELETE("/categories/:id", product.DeleteCategory)

		adm.GET("/orders", admin.GetAllOrders)
		adm.GET("/orders/:id", admin.GetOrderByID)
		adm.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		adm.DELETE("/orders/:id", admin.DeleteOrder)

		adm.GET("/users", admin.GetAllUsers)
		adm.PUT("/users/:id/role", admin.UpdateUserRole)
		adm.DELETE("/users/:id", admin.DeleteUser)

		adm.GET("/wholesale/customers", admin.GetWholesaleCustomers)
		adm.POST("/wholesale/customers", admin.CreateWholesaleCustomer)
		adm.PUT("/wholesale/customers/:id", admin.UpdateWholesaleCustomer)
		adm.DELETE("/wholesale/customers/:id", admin.DeleteWholesaleCustomer)
		adm.GET("/wholesale/pricing/:productId", admin.GetWholesalePricing)
		adm.POST("/wholesale/pricing", admin.CreateWholesalePricing)
		adm.DELETE("/wholesale/pricing/:productId/:pricingId", admin.DeleteWholesalePricing)

		adm.GET("/media", admin.GetMediaLibrary)
		adm.POST("/media", admin.UploadMedia)
		adm.DELETE("/media/:id", admin.DeleteMedia)

		adm.GET("/settings", admin.GetSettings)
		adm.GET("/settings/:key", admin.GetSetting)
		adm.PUT("/settings/:key", admin.UpsertSetting)
		adm.DELETE("/settings/:key", admin.DeleteSetting)
	}
}
