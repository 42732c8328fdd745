package routes

import (
	"errors"
	"strings"

	"hydrolink/db"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type productRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Stock         *int     `json:"stock" validate:"required,gte=0"`
	CategoryID    uint     `json:"category_id" validate:"required"`
	SubcategoryID *uint    `json:"subcategory_id"`
	Images        []string `json:"images"`
	IsActive      *bool    `json:"is_active"`
	Status        []string `json:"status" validate:"omitempty,dive,oneof=best_seller new on_sale"`
}

type stockRequest struct {
	Stock *int `json:"stock" validate:"required,gte=0"`
}

var productSortColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"stock":      true,
	"created_at": true,
	"updated_at": true,
}

func productQuery() *gorm.DB {
	return db.DB.Model(&models.Product{}).Preload("Category").Preload("Subcategory")
}

// statusContains matches products whose serialized status column contains
// the given tag. Status is stored as a JSON array in a text column, so the
// quoted tag is matched as a substring.
func statusContains(query *gorm.DB, tag string) *gorm.DB {
	return query.Where("status LIKE ?", "%\""+tag+"\"%")
}

func applyProductFilters(c *fiber.Ctx, query *gorm.DB) *gorm.DB {
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if subcategoryID := c.Query("subcategory_id"); subcategoryID != "" {
		query = query.Where("subcategory_id = ?", subcategoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		query = query.Where("price <= ?", maxPrice)
	}
	if c.QueryBool("in_stock") {
		query = query.Where("stock > ?", 0)
	}
	if tag := c.Query("status_filter"); tag != "" {
		query = statusContains(query, tag)
	}

	sortBy := c.Query("sort_by", "created_at")
	if !productSortColumns[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := c.Query("sort_order", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}
	return query.Order(sortBy + " " + sortOrder)
}

// listProducts - GET /api/products (public, active only)
func listProducts(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 15)

	query := applyProductFilters(c, productQuery().Where("is_active = ?", true))

	var products []models.Product
	meta, err := paginate(query, page, perPage, &products)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get products")
	}

	return respondList(c, "Products retrieved successfully", products, meta)
}

// adminListProducts - GET /api/admin/products (all rows)
func adminListProducts(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 15)

	query := productQuery()
	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}
	query = applyProductFilters(c, query)

	var products []models.Product
	meta, err := paginate(query, page, perPage, &products)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get products")
	}

	return respondList(c, "Products retrieved successfully", products, meta)
}

// getProduct - GET /api/products/:id
func getProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := productQuery().First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to get product")
	}

	return respondData(c, fiber.StatusOK, "", product)
}

// validateProductRefs checks category existence and that the subcategory,
// when given, belongs to the same category.
func validateProductRefs(c *fiber.Ctx, req *productRequest) error {
	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		return fieldError(c, "category_id", "The selected category_id is invalid.")
	}

	if req.SubcategoryID != nil {
		var subcategory models.Subcategory
		if err := db.DB.First(&subcategory, *req.SubcategoryID).Error; err != nil {
			return fieldError(c, "subcategory_id", "The selected subcategory_id is invalid.")
		}
		if subcategory.CategoryID != req.CategoryID {
			return fieldError(c, "subcategory_id", "The selected subcategory does not belong to the given category.")
		}
	}
	return nil
}

// createProduct - POST /api/admin/products
func createProduct(c *fiber.Ctx) error {
	req := new(productRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}
	if resp := validateProductRefs(c, req); resp != nil {
		return resp
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Stock:         *req.Stock,
		Images:        req.Images,
		Status:        req.Status,
		IsActive:      boolOrTrue(req.IsActive),
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	}
	if err := db.DB.Create(&product).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create product")
	}

	productQuery().First(&product, product.ID)

	return respondData(c, fiber.StatusCreated, "Product created successfully", product)
}

// updateProduct - PUT /api/admin/products/:id
func updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	req := new(productRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find product")
	}

	if resp := validateProductRefs(c, req); resp != nil {
		return resp
	}

	// Stored files for images dropped from the list are cleaned up
	// best-effort before the new list is saved.
	kept := make(map[string]bool, len(req.Images))
	for _, img := range req.Images {
		kept[img] = true
	}
	for _, img := range product.Images {
		if !kept[img] {
			removeStoredImage(img)
		}
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = *req.Price
	product.Stock = *req.Stock
	product.Images = req.Images
	product.Status = req.Status
	product.IsActive = boolOrTrue(req.IsActive)
	product.CategoryID = req.CategoryID
	product.SubcategoryID = req.SubcategoryID

	if err := db.DB.Save(&product).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update product")
	}

	productQuery().First(&product, product.ID)

	return respondData(c, fiber.StatusOK, "Product updated successfully", product)
}

// deleteProduct - DELETE /api/admin/products/:id
func deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find product")
	}

	for _, img := range product.Images {
		removeStoredImage(img)
	}

	if err := db.DB.Delete(&product).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete product")
	}

	return respondMessage(c, "Product deleted successfully")
}

// updateProductStock - PATCH /api/admin/products/:id/stock
func updateProductStock(c *fiber.Ctx) error {
	id := c.Params("id")

	req := new(stockRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find product")
	}

	if err := db.DB.Model(&product).Update("stock", *req.Stock).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update stock")
	}

	return respondData(c, fiber.StatusOK, "Stock updated successfully", product)
}

// listFeaturedProducts - GET /api/products/featured/list
func listFeaturedProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := productQuery().
		Where("is_active = ? AND stock > ?", true, 0).
		Order("created_at desc").
		Limit(8).
		Find(&products).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get products")
	}

	return respondData(c, fiber.StatusOK, "", products)
}

func listProductsByTag(c *fiber.Ctx, tag string) error {
	var products []models.Product
	query := statusContains(productQuery().Where("is_active = ?", true), tag)
	if err := query.Order("created_at desc").Limit(12).Find(&products).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get products")
	}

	return respondData(c, fiber.StatusOK, "", products)
}

// listBestSellers - GET /api/products/best-sellers/list
func listBestSellers(c *fiber.Ctx) error {
	return listProductsByTag(c, models.StatusBestSeller)
}

// listNewProducts - GET /api/products/new/list
func listNewProducts(c *fiber.Ctx) error {
	return listProductsByTag(c, models.StatusNew)
}

// listOnSaleProducts - GET /api/products/on-sale/list
func listOnSaleProducts(c *fiber.Ctx) error {
	return listProductsByTag(c, models.StatusOnSale)
}

// listProductsByStatus - GET /api/products/status/:status
func listProductsByStatus(c *fiber.Ctx) error {
	tag := c.Params("status")

	valid := false
	for _, allowed := range models.AllowedProductStatuses {
		if tag == allowed {
			valid = true
			break
		}
	}
	if !valid {
		return respondError(c, fiber.StatusBadRequest,
			"Invalid status. Allowed statuses: "+strings.Join(models.AllowedProductStatuses, ", "))
	}

	page, perPage := pageParams(c, 15)
	query := statusContains(productQuery().Where("is_active = ?", true), tag).
		Order("created_at desc")

	var products []models.Product
	meta, err := paginate(query, page, perPage, &products)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get products")
	}

	return respondList(c, "Products retrieved successfully", products, meta)
}

// listLowStockProducts - GET /api/admin/products/low-stock/list
func listLowStockProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := productQuery().
		Where("is_active = ? AND stock > ? AND stock <= ?", true, 0, 10).
		Order("stock asc").
		Find(&products).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get products")
	}

	return respondData(c, fiber.StatusOK, "", products)
}
