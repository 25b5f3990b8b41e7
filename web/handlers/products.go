package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// ProductHandler handles product catalog management
type ProductHandler struct {
	DB *gorm.DB
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

type productInput struct {
	ProductName  string          `json:"product_name"`
	CategoryID   uint            `json:"category_id"`
	SupplierID   uint            `json:"supplier_id"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	ImagePath    *string         `json:"image_path"`
}

func (h *ProductHandler) validateInput(in productInput) error {
	fields := map[string]string{}
	if in.ProductName == "" {
		fields["product_name"] = "this field is required"
	}
	if in.CostPrice.IsNegative() {
		fields["cost_price"] = "cost price must not be negative"
	}
	if in.SellingPrice.IsNegative() {
		fields["selling_price"] = "selling price must not be negative"
	}

	var count int64
	if err := h.DB.Model(&models.Category{}).Where("category_id = ?", in.CategoryID).Count(&count).Error; err != nil {
		return &apperrors.InfrastructureError{Err: err}
	}
	if count == 0 {
		fields["category_id"] = "category does not exist"
	}
	if err := h.DB.Model(&models.Supplier{}).Where("supplier_id = ?", in.SupplierID).Count(&count).Error; err != nil {
		return &apperrors.InfrastructureError{Err: err}
	}
	if count == 0 {
		fields["supplier_id"] = "supplier does not exist"
	}

	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

// List returns products with search and pagination
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.DB.Model(&models.Product{}).Preload("Category").Preload("Supplier")
	if search := c.Query("search"); search != "" {
		query = query.Where("product_name LIKE ?", "%"+search+"%")
	}
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var products []models.Product
	err := query.Order("product_name ASC").Limit(limit).Offset((page - 1) * limit).Find(&products).Error
	if err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"pagination": fiber.Map{
			"current_page": page,
			"total_count":  totalCount,
			"limit":        limit,
		},
	})
}

// Get returns one product
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	var product models.Product
	err = h.DB.Preload("Category").Preload("Supplier").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "product", ID: id})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(product)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input productInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validateInput(input); err != nil {
		return respondError(c, err)
	}

	product := models.Product{
		ProductName:  input.ProductName,
		CategoryID:   input.CategoryID,
		SupplierID:   input.SupplierID,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		ExpiryDate:   input.ExpiryDate,
		ImagePath:    input.ImagePath,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// Update modifies a product
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "product", ID: id})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var input productInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validateInput(input); err != nil {
		return respondError(c, err)
	}

	product.ProductName = input.ProductName
	product.CategoryID = input.CategoryID
	product.SupplierID = input.SupplierID
	product.CostPrice = input.CostPrice
	product.SellingPrice = input.SellingPrice
	product.ExpiryDate = input.ExpiryDate
	product.ImagePath = input.ImagePath

	if err := h.DB.Save(&product).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(product)
}

// Delete soft-deletes a product. Historical sale items keep their
// snapshot of it.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}

	result := h.DB.Delete(&models.Product{}, id)
	if result.Error != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: result.Error})
	}
	if result.RowsAffected == 0 {
		return respondError(c, &apperrors.NotFoundError{Entity: "product", ID: id})
	}
	return c.JSON(fiber.Map{"message": "product deleted"})
}
