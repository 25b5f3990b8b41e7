package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// Protected parses the jwt cookie, loads the user with their role and
// stores it in the request locals for the handlers.
func Protected(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies("jwt")
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not logged in",
			})
		}

		token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*jwt.RegisteredClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		var user models.User
		result := db.Preload("Role").Where("user_id = ? AND is_active = ?", claims.Issuer, true).First(&user)
		if result.Error != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "user not found",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireRole rejects actors whose role is not in the allowed set.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "not logged in",
			})
		}
		for _, role := range roles {
			if user.Role.RoleName == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions to access this resource",
		})
	}
}

// CurrentUser returns the authenticated user stored by Protected.
func CurrentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals("user").(models.User)
	return user
}
