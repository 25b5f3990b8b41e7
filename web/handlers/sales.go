package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
	"github.com/HalimKing/Point-of-Sale-System--sub001/sales"
	"github.com/HalimKing/Point-of-Sale-System--sub001/web/middleware"
)

// SalesHandler handles transaction submission and sales listing
type SalesHandler struct {
	DB       *gorm.DB
	Recorder *sales.Recorder
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(db *gorm.DB) *SalesHandler {
	return &SalesHandler{DB: db, Recorder: sales.NewRecorder(db)}
}

// Create accepts a cart submission and records it as a Sale with its
// items. The success response echoes the persisted identifier and
// totals; a validation failure returns the per-field report.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var input sales.CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	actor := middleware.CurrentUser(c)
	sale, err := h.Recorder.Record(actor.UserID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sale_id":         sale.SaleID,
		"subtotal":        sale.Subtotal,
		"discount_amount": sale.DiscountAmount,
		"grand_total":     sale.GrandTotal,
		"change_amount":   sale.ChangeAmount,
		"status":          sale.Status,
	})
}

// List returns the actor's sales, newest first, with date filters and
// pagination. Admins see all cashiers' sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	actor := middleware.CurrentUser(c)
	query := h.DB.Model(&models.Sale{})
	if actor.Role.RoleName != models.RoleAdmin {
		query = query.Where("user_id = ?", actor.UserID)
	}
	if from := c.Query("date_from"); from != "" {
		query = query.Where("DATE(created_at) >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		query = query.Where("DATE(created_at) <= ?", to)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var rows []models.Sale
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	totalPages := (totalCount + int64(limit) - 1) / int64(limit)
	return c.JSON(fiber.Map{
		"sales": rows,
		"pagination": fiber.Map{
			"current_page": page,
			"total_pages":  totalPages,
			"total_count":  totalCount,
			"limit":        limit,
		},
	})
}

// Get returns one sale with its items. Cashiers may only read their
// own sales.
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	var sale models.Sale
	err := h.DB.Preload("Items").Where("sale_id = ?", id).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "sale", ID: id})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	actor := middleware.CurrentUser(c)
	if actor.Role.RoleName != models.RoleAdmin && sale.UserID != actor.UserID {
		return respondError(c, &apperrors.AuthorizationError{
			Message: "sales of other cashiers are not accessible",
		})
	}
	return c.JSON(sale)
}
