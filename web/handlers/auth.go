package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
	"github.com/HalimKing/Point-of-Sale-System--sub001/web/middleware"
)

// AuthHandler handles login, logout and session introspection
type AuthHandler struct {
	DB          *gorm.DB
	JWTSecret   string
	TokenExpiry time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(db *gorm.DB, secret string, expiry time.Duration) *AuthHandler {
	return &AuthHandler{DB: db, JWTSecret: secret, TokenExpiry: expiry}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials, issues the jwt cookie and records the
// login time, which the dashboard uses as the shift-start proxy.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	var user models.User
	err := h.DB.Preload("Role").Where("username = ? AND is_active = ?", req.Username, true).First(&user).Error
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid username or password",
		})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid username or password",
		})
	}

	now := time.Now()
	if err := h.DB.Model(&user).Update("last_login_at", now).Error; err != nil {
		return respondError(c, err)
	}
	user.LastLoginAt = &now

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatUint(uint64(user.UserID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.TokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.JWTSecret))
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  now.Add(h.TokenExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// Logout clears the jwt cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"message": "logged out"})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
