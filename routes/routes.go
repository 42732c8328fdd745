package routes

import (
	"hydrolink/config"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, cfg *config.Config) {
	uploadDir = cfg.UploadDir
	startOrderFeed()

	// Order event feed for the admin dashboard
	app.Get("/ws", orderFeedHandler())

	api := app.Group("/api")

	requireAuth := RequireRole(models.RoleAdmin, models.RoleClient)
	requireAdmin := RequireRole(models.RoleAdmin)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", register)
	authGroup.Post("/login", login)
	authGroup.Get("/me", requireAuth, me)
	authGroup.Post("/logout", requireAuth, logout)
	authGroup.Post("/refresh", requireAuth, refresh)

	// Public catalog routes
	api.Get("/categories", listCategories)
	api.Get("/categories/active", listActiveCategories)
	api.Get("/subcategories/active", listActiveSubcategories)
	api.Get("/subcategories/category/:categoryId", listSubcategoriesByCategory)

	products := api.Group("/products")
	products.Get("/", listProducts)
	products.Get("/featured/list", listFeaturedProducts)
	products.Get("/best-sellers/list", listBestSellers)
	products.Get("/new/list", listNewProducts)
	products.Get("/on-sale/list", listOnSaleProducts)
	products.Get("/status/:status", listProductsByStatus)
	products.Get("/:id", getProduct)

	// Admin resource management
	admin := api.Group("/admin", requireAdmin)

	adminCategories := admin.Group("/categories")
	adminCategories.Get("/", adminListCategories)
	adminCategories.Post("/", createCategory)
	adminCategories.Get("/:id", getCategory)
	adminCategories.Put("/:id", updateCategory)
	adminCategories.Delete("/:id", deleteCategory)

	adminSubcategories := admin.Group("/subcategories")
	adminSubcategories.Get("/", adminListSubcategories)
	adminSubcategories.Post("/", createSubcategory)
	adminSubcategories.Get("/:id", getSubcategory)
	adminSubcategories.Put("/:id", updateSubcategory)
	adminSubcategories.Delete("/:id", deleteSubcategory)

	adminProducts := admin.Group("/products")
	adminProducts.Get("/", adminListProducts)
	adminProducts.Post("/", createProduct)
	adminProducts.Get("/low-stock/list", listLowStockProducts)
	adminProducts.Get("/:id", getProduct)
	adminProducts.Put("/:id", updateProduct)
	adminProducts.Delete("/:id", deleteProduct)
	adminProducts.Patch("/:id/stock", updateProductStock)

	// Upload routes (admin only)
	upload := api.Group("/upload", requireAdmin)
	upload.Post("/image", uploadImage)
	upload.Delete("/image", deleteImage)

	// Order routes (authenticated admin or client)
	orders := api.Group("/orders", requireAuth)
	orders.Get("/", listOrders)
	orders.Post("/", createOrder)
	orders.Get("/:id", getOrder)
	orders.Put("/:id", updateOrder)
	orders.Delete("/:id", deleteOrder)
}
