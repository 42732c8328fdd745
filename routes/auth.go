package routes

import (
	"errors"

	"hydrolink/auth"
	"hydrolink/db"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type registerRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 string `json:"role" validate:"omitempty,oneof=admin client"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

func register(c *fiber.Ctx) error {
	req := new(registerRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var existing models.User
	if err := db.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fieldError(c, "email", "The email has already been taken.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, fiber.StatusInternalServerError, "Failed to check email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	token, err := auth.Issue(&user)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "User registered successfully",
		"user":    userPayload(&user),
		"token":   token,
	})
}

func login(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := auth.Issue(&user)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"user":    userPayload(&user),
		"token":   token,
	})
}

func me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "success",
		"user":   userPayload(currentUser(c)),
	})
}

func logout(c *fiber.Ctx) error {
	if err := auth.Revoke(currentClaims(c)); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to logout")
	}
	return respondMessage(c, "Logout successful")
}

func refresh(c *fiber.Ctx) error {
	token, err := auth.Refresh(currentClaims(c))
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Could not refresh token")
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"token":  token,
	})
}
