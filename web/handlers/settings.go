package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// SettingsHandler handles the company settings singleton
type SettingsHandler struct {
	DB *gorm.DB
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{DB: db}
}

type settingsInput struct {
	CompanyName string  `json:"company_name"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Currency    string  `json:"currency"`
	LogoPath    *string `json:"logo_path"`
}

// Get returns the company settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	var setting models.CompanySetting
	if err := h.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "company settings", ID: 1})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(setting)
}

// Update modifies the company settings, creating the row on first save
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var input settingsInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.CompanyName == "" {
		return respondError(c, apperrors.NewValidation("company_name", "this field is required"))
	}

	var setting models.CompanySetting
	err := h.DB.First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	setting.CompanyName = input.CompanyName
	setting.Address = input.Address
	setting.Phone = input.Phone
	setting.Email = input.Email
	setting.LogoPath = input.LogoPath
	if input.Currency != "" {
		setting.Currency = input.Currency
	}

	if err := h.DB.Save(&setting).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(setting)
}
