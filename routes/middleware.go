package routes

import (
	"strings"

	"hydrolink/auth"
	"hydrolink/db"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser   = "currentUser"
	localClaims = "currentClaims"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// RequireRole resolves the caller from the bearer token and rejects the
// request unless the caller's role is in the allowed set. 401 for a missing,
// invalid or revoked token, 404 when the token references a deleted user,
// 403 for a disallowed role.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, err := auth.Parse(tokenStr)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		var user models.User
		if err := db.DB.First(&user, claims.UserID).Error; err != nil {
			return respondError(c, fiber.StatusNotFound, "User not found")
		}

		allowed := false
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			return respondError(c, fiber.StatusForbidden, "Access denied. Insufficient permissions.")
		}

		c.Locals(localUser, &user)
		c.Locals(localClaims, claims)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

func currentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(localClaims).(*auth.Claims)
	return claims
}
