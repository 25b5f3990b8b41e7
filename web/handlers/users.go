package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HalimKing/Point-of-Sale-System--sub001/apperrors"
	"github.com/HalimKing/Point-of-Sale-System--sub001/models"
)

// UserHandler handles staff account management (admin only)
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

type userInput struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	EmployeeCode string `json:"employee_code"`
	RoleID       uint   `json:"role_id"`
}

// List returns all users with their roles
func (h *UserHandler) List(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.Preload("Role").Order("full_name ASC").Find(&users).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(fiber.Map{"users": users})
}

// Create adds a staff account
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	fields := map[string]string{}
	if input.Username == "" {
		fields["username"] = "this field is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if input.FullName == "" {
		fields["full_name"] = "this field is required"
	}
	if input.EmployeeCode == "" {
		fields["employee_code"] = "this field is required"
	}

	var roleCount int64
	if err := h.DB.Model(&models.Role{}).Where("role_id = ?", input.RoleID).Count(&roleCount).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	if roleCount == 0 {
		fields["role_id"] = "role does not exist"
	}
	if len(fields) > 0 {
		return respondError(c, &apperrors.ValidationError{Fields: fields})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err)
	}

	user := models.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		EmployeeCode: input.EmployeeCode,
		RoleID:       input.RoleID,
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update modifies a staff account; empty password leaves it unchanged
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, &apperrors.NotFoundError{Entity: "user", ID: id})
		}
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}

	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.EmployeeCode != "" {
		user.EmployeeCode = input.EmployeeCode
	}
	if input.RoleID != 0 {
		user.RoleID = input.RoleID
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			return respondError(c, apperrors.NewValidation("password", "password must be at least 8 characters"))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return respondError(c, err)
		}
		user.PasswordHash = string(hash)
	}

	if err := h.DB.Save(&user).Error; err != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: err})
	}
	return c.JSON(user)
}

// Deactivate disables a staff account without deleting its history
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}

	result := h.DB.Model(&models.User{}).Where("user_id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return respondError(c, &apperrors.InfrastructureError{Err: result.Error})
	}
	if result.RowsAffected == 0 {
		return respondError(c, &apperrors.NotFoundError{Entity: "user", ID: id})
	}
	return c.JSON(fiber.Map{"message": "user deactivated"})
}
