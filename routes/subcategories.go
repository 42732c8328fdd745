package routes

import (
	"errors"

	"hydrolink/db"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type subcategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id" validate:"required"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
}

// listActiveSubcategories - GET /api/subcategories/active
func listActiveSubcategories(c *fiber.Ctx) error {
	var subcategories []models.Subcategory
	if err := db.DB.
		Preload("Category").
		Where("is_active = ?", true).
		Find(&subcategories).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get subcategories")
	}

	return respondData(c, fiber.StatusOK, "", subcategories)
}

// listSubcategoriesByCategory - GET /api/subcategories/category/:categoryId
func listSubcategoriesByCategory(c *fiber.Ctx) error {
	categoryID := c.Params("categoryId")

	var category models.Category
	if err := db.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Category not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find category")
	}

	var subcategories []models.Subcategory
	if err := db.DB.
		Where("category_id = ? AND is_active = ?", category.ID, true).
		Find(&subcategories).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get subcategories")
	}

	return respondData(c, fiber.StatusOK, "", subcategories)
}

// adminListSubcategories - GET /api/admin/subcategories
func adminListSubcategories(c *fiber.Ctx) error {
	page, perPage := pageParams(c, 10)

	query := db.DB.Model(&models.Subcategory{}).Preload("Category")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	switch c.Query("status") {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	var subcategories []models.Subcategory
	meta, err := paginate(query, page, perPage, &subcategories)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get subcategories")
	}

	return respondList(c, "Subcategories retrieved successfully", subcategories, meta)
}

// getSubcategory - GET /api/admin/subcategories/:id
func getSubcategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var subcategory models.Subcategory
	if err := db.DB.Preload("Category").Preload("Products").First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Subcategory not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to get subcategory")
	}

	return respondData(c, fiber.StatusOK, "", subcategory)
}

// createSubcategory - POST /api/admin/subcategories
func createSubcategory(c *fiber.Ctx) error {
	req := new(subcategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		return fieldError(c, "category_id", "The selected category_id is invalid.")
	}

	subcategory := models.Subcategory{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
		IsActive:    boolOrTrue(req.IsActive),
	}
	if err := db.DB.Create(&subcategory).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create subcategory")
	}

	db.DB.Preload("Category").First(&subcategory, subcategory.ID)

	return respondData(c, fiber.StatusCreated, "Subcategory created successfully", subcategory)
}

// updateSubcategory - PUT /api/admin/subcategories/:id
func updateSubcategory(c *fiber.Ctx) error {
	id := c.Params("id")

	req := new(subcategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var subcategory models.Subcategory
	if err := db.DB.First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Subcategory not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find subcategory")
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		return fieldError(c, "category_id", "The selected category_id is invalid.")
	}

	if subcategory.Image != "" && subcategory.Image != req.Image {
		removeStoredImage(subcategory.Image)
	}

	subcategory.Name = req.Name
	subcategory.Description = req.Description
	subcategory.CategoryID = req.CategoryID
	subcategory.Image = req.Image
	subcategory.IsActive = boolOrTrue(req.IsActive)

	if err := db.DB.Save(&subcategory).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update subcategory")
	}

	db.DB.Preload("Category").First(&subcategory, subcategory.ID)

	return respondData(c, fiber.StatusOK, "Subcategory updated successfully", subcategory)
}

// deleteSubcategory - DELETE /api/admin/subcategories/:id
func deleteSubcategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var subcategory models.Subcategory
	if err := db.DB.First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Subcategory not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find subcategory")
	}

	if subcategory.Image != "" {
		removeStoredImage(subcategory.Image)
	}

	if err := db.DB.Delete(&subcategory).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete subcategory")
	}

	return respondMessage(c, "Subcategory deleted successfully")
}
