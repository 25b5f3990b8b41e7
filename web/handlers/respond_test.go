package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidation("quantity", "must be greater than 0"), fiber.StatusUnprocessableEntity},
		{"authorization", &apperrors.AuthorizationError{Message: "no"}, fiber.StatusForbidden},
		{"not found", &apperrors.NotFoundError{Entity: "sale", ID: "x"}, fiber.StatusNotFound},
		{"conflict", &apperrors.ConflictError{Message: "insufficient stock"}, fiber.StatusConflict},
		{"infrastructure", &apperrors.InfrastructureError{Err: assert.AnError}, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRespondErrorValidationBody(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, &apperrors.ValidationError{Fields: map[string]string{
			"items[0].quantity": "must be greater than 0",
			"total_amount":      "total amount must equal subtotal minus discount (20.00)",
		}})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Len(t, body.Fields, 2)
	assert.Contains(t, body.Fields, "items[0].quantity")
}
