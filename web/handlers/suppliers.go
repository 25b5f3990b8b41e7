package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// SupplierHandler handles supplier management
type SupplierHandler struct {
	DB *gorm.DB
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{DB: db}
}

type supplierInput struct {
	SupplierName  string  `json:"supplier_name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
}

// List returns all suppliers
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := h.DB.Order("supplier_name ASC").Find(&suppliers).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(fiber.Map{"suppliers": suppliers})
}

// Create adds a supplier
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var input supplierInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.SupplierName == "" {
		return respondError(c, apperrors.NewValidation("supplier_name", "this field is required"))
	}

	supplier := models.Supplier{
		SupplierName:  input.SupplierName,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		IsActive:      true,
	}
	if err := h.DB.Create(&supplier).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// Update modifies a supplier
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid supplier id"})
	}

	var supplier models.Supplier
	if err := h.DB.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "supplier", ID: id})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var input supplierInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.SupplierName == "" {
		return respondError(c, apperrors.NewValidation("supplier_name", "this field is required"))
	}

	supplier.SupplierName = input.SupplierName
	supplier.ContactPerson = input.ContactPerson
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Address = input.Address
	if err := h.DB.Save(&supplier).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(supplier)
}

// Delete removes a supplier with no products attached
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid supplier id"})
	}

	var productCount int64
	if err := h.DB.Model(&models.Product{}).Where("supplier_id = ?", id).Count(&productCount).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	if productCount > 0 {
		return respondError(c, &apperrors.ConflictError{
			Message: "supplier still has products assigned",
		})
	}

	result := h.DB.Delete(&models.Supplier{}, id)
	if result.Error != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: result.Error})
	}
	if result.RowsAffected == 0 {
		return respondError(c, &apperrors.NotFoundError{Entity: "supplier", ID: id})
	}
	return c.JSON(fiber.Map{"message": "supplier deleted"})
}
