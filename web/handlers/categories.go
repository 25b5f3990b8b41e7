package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// CategoryHandler handles category management
type CategoryHandler struct {
	DB *gorm.DB
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryInput struct {
	CategoryName string  `json:"category_name"`
	Description  *string `json:"description"`
}

// List returns all categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.DB.Order("category_name ASC").Find(&categories).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// Create adds a category
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.CategoryName == "" {
		return respondError(c, apperrors.NewValidation("category_name", "this field is required"))
	}

	category := models.Category{CategoryName: input.CategoryName, Description: input.Description}
	if err := h.DB.Create(&category).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// Update modifies a category
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
	}

	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "category", ID: id})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.CategoryName == "" {
		return respondError(c, apperrors.NewValidation("category_name", "this field is required"))
	}

	category.CategoryName = input.CategoryName
	category.Description = input.Description
	if err := h.DB.Save(&category).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(category)
}

// Delete removes a category with no products attached
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
	}

	var productCount int64
	if err := h.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	if productCount > 0 {
		return respondError(c, &apperrors.ConflictError{
			Message: "category still has products assigned",
		})
	}

	result := h.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: result.Error})
	}
	if result.RowsAffected == 0 {
		return respondError(c, &apperrors.NotFoundError{Entity: "category", ID: id})
	}
	return c.JSON(fiber.Map{"message": "category deleted"})
}
