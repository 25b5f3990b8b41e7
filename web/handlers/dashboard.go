package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HalimKing/Point-of-Sale-System--sub001/dashboard"
	"github.com/HalimKing/Point-of-Sale-System--sub001/web/middleware"
)

// DashboardHandler serves the cashier and admin dashboard bundles
type DashboardHandler struct {
	Aggregator *dashboard.Aggregator
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(agg *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{Aggregator: agg}
}

// Cashier returns the cashier dashboard for the authenticated actor.
// The optional range parameter is one of today|week|month.
func (h *DashboardHandler) Cashier(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	d, err := h.Aggregator.ForCashier(actor, c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// Admin returns the admin dashboard across all cashiers.
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	d, err := h.Aggregator.ForAdmin(actor, c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}
