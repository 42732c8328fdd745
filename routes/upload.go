package routes

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxImageSize = 2 << 20 // 2MB

// uploadDir is the root of the public upload storage, set by SetupRoutes.
var uploadDir = "uploads"

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type deleteImageRequest struct {
	Path string `json:"path" validate:"required"`
}

// uploadImage - POST /api/upload/image
func uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return fieldError(c, "image", "The image field is required.")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fieldError(c, "image", "The image must be a file of type: jpeg, png, jpg, gif, webp.")
	}
	if file.Size > maxImageSize {
		return fieldError(c, "image", "The image may not be greater than 2048 kilobytes.")
	}

	// Timestamp plus random suffix keeps filenames collision-resistant.
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), suffix, ext)
	storedPath := "images/" + filename

	dest := filepath.Join(uploadDir, "images")
	if err := os.MkdirAll(dest, 0755); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to upload image")
	}
	if err := c.SaveFile(file, filepath.Join(dest, filename)); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to upload image")
	}

	return respondData(c, fiber.StatusOK, "Image uploaded successfully", fiber.Map{
		"url":      "/uploads/" + storedPath,
		"path":     storedPath,
		"filename": filename,
	})
}

// deleteImage - DELETE /api/upload/image
func deleteImage(c *fiber.Ctx) error {
	req := new(deleteImageRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	full, ok := storedImagePath(req.Path)
	if !ok {
		return fieldError(c, "path", "The path field is invalid.")
	}
	if _, err := os.Stat(full); os.IsNotExist(err) {
		return respondError(c, fiber.StatusNotFound, "Image not found")
	}
	if err := os.Remove(full); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete image")
	}

	return respondMessage(c, "Image deleted successfully")
}

// storedImagePath resolves a stored path like "images/abc.jpg" under the
// upload dir, refusing anything that escapes it.
func storedImagePath(path string) (string, bool) {
	cleaned := filepath.Clean("/" + path)
	if cleaned == "/" {
		return "", false
	}
	return filepath.Join(uploadDir, cleaned), true
}

// removeStoredImage deletes a stored image file, best-effort. Resource
// deletes and image replacement must not fail because a file is already gone.
func removeStoredImage(path string) {
	full, ok := storedImagePath(path)
	if !ok {
		return
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Println("Failed to remove stored image:", path, err)
	}
}
