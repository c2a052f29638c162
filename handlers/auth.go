package handlers

import (
	"errors"
	"time"

	"hr_timekeeping/config"
	"hr_timekeeping/models"
	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdatePasswordRequest struct {
	AdminID     string `json:"admin_id"`
	EmployeeID  string `json:"employee_id"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func issueToken(userID, role string) (string, error) {
	expiry, err := time.ParseDuration(config.AppConfig.TokenExpiryDuration)
	if err != nil {
		expiry = 24 * time.Hour
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	})
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// LoginAdmin verifies credentials against the bcrypt hash and issues a JWT.
func LoginAdmin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Email and password are required",
		})
	}

	var admin models.Admin
	err := DB.Where("email = ?", req.Email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Account does not exist",
		})
	}
	if err != nil {
		utils.Logger.Error("Failed to look up admin", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	token, err := issueToken(admin.ID, "admin")
	if err != nil {
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Login successful",
		Data:    fiber.Map{"userId": admin.ID, "token": token},
	})
}

// LoginEmployee is the employee-app login. Banned accounts are refused even
// with the right password.
func LoginEmployee(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Email and password are required",
		})
	}

	var employee models.Employee
	err := DB.Where("email = ?", req.Email).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Account does not exist",
		})
	}
	if err != nil {
		utils.Logger.Error("Failed to look up employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)) != nil {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}
	if employee.Status == "Banned" {
		return c.Status(403).JSON(types.APIResponse{
			Success: false,
			Error:   "your account is banned",
		})
	}

	token, err := issueToken(employee.ID, "employee")
	if err != nil {
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Login successful",
		Data:    fiber.Map{"userId": employee.ID, "token": token},
	})
}

// Register parks the account in the pending store and mails a confirmation
// link.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	err := Registration.Register(req.Email, req.Password)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Email and password are required",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   "Error sending email.",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Registration email sent. Please check your inbox.",
	})
}

// Confirm finishes a pending registration and notifies websocket clients.
func Confirm(c *fiber.Ctx) error {
	token := c.Query("token")

	err := Registration.Confirm(token)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid or expired token.",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   "Error registering user.",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Email confirmed and user registered.",
	})
}

func updatePasswordFor(c *fiber.Ctx, model interface{}, id, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	result := DB.Model(model).Where("id = ?", id).Update("password_hash", string(hash))
	if result.Error != nil {
		utils.Logger.Error("Failed to update password", zap.String("id", id), zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "account not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Password updated successfully",
	})
}

func UpdatePasswordAdmin(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.AdminID == "" || req.NewPassword == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "admin_id and newPassword are required",
		})
	}
	return updatePasswordFor(c, &models.Admin{}, req.AdminID, req.NewPassword)
}

func UpdatePasswordEmployee(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.EmployeeID == "" || req.NewPassword == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "employee_id and newPassword are required",
		})
	}
	return updatePasswordFor(c, &models.Employee{}, req.EmployeeID, req.NewPassword)
}
