package routes

import (
	"errors"

	"hydrolink/db"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
}

// listCategories - GET /api/categories (public, active only)
func listCategories(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 10)

	query := db.DB.Model(&models.Category{}).
		Preload("Subcategories").
		Where("is_active = ?", true)

	var categories []models.Category
	meta, err := paginate(query, page, perPage, &categories)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get categories")
	}

	return respondList(c, "Categories retrieved successfully", categories, meta)
}

// listActiveCategories - GET /api/categories/active
func listActiveCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.
		Preload("Subcategories", "is_active = ?", true).
		Where("is_active = ?", true).
		Find(&categories).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get categories")
	}

	return respondData(c, fiber.StatusOK, "", categories)
}

// adminListCategories - GET /api/admin/categories (all rows)
func adminListCategories(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 10)

	query := db.DB.Model(&models.Category{}).Preload("Subcategories")
	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var categories []models.Category
	meta, err := paginate(query, page, perPage, &categories)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get categories")
	}

	return respondList(c, "Categories retrieved successfully", categories, meta)
}

// getCategory - GET /api/admin/categories/:id
func getCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var category models.Category
	if err := db.DB.Preload("Subcategories").Preload("Products").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Category not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to get category")
	}

	return respondData(c, fiber.StatusOK, "", category)
}

// createCategory - POST /api/admin/categories
func createCategory(c *fiber.Ctx) error {
	req := new(categoryRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    boolOrTrue(req.IsActive),
	}
	if err := db.DB.Create(&category).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create category")
	}

	return respondData(c, fiber.StatusCreated, "Category created successfully", category)
}

// updateCategory - PUT /api/admin/categories/:id
func updateCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	req := new(categoryRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Category not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find category")
	}

	// A replaced image is cleaned up best-effort before the new path is saved.
	if category.Image != "" && category.Image != req.Image {
		removeStoredImage(category.Image)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Image = req.Image
	category.IsActive = boolOrTrue(req.IsActive)

	if err := db.DB.Save(&category).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update category")
	}

	return respondData(c, fiber.StatusOK, "Category updated successfully", category)
}

// deleteCategory - DELETE /api/admin/categories/:id
func deleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Category not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find category")
	}

	if category.Image != "" {
		removeStoredImage(category.Image)
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete category")
	}

	return respondMessage(c, "Category deleted successfully")
}

func boolOrTrue(v *bool) *bool {
	if v == nil {
		t := true
		return &t
	}
	return v
}
