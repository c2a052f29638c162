package handlers

import (
	"errors"
	"time"

	"hr_timekeeping/models"
	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AddEmployeeRequest struct {
	Name        string          `json:"name" validate:"required"`
	DOB         time.Time       `json:"dob"`
	Address     string          `json:"address"`
	IDNumber    string          `json:"idNumber"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required"`
	PaymentType string          `json:"paymentType" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	AdminID     string          `json:"admin_id" validate:"required"`
}

type UpdateEmployeeFieldRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Field      string `json:"field" validate:"required"`
	Value      string `json:"value" validate:"required"`
}

type BanRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

type EmployeeWithRate struct {
	models.Employee
	PaymentType string          `json:"payment_type"`
	Amount      decimal.Decimal `json:"amount"`
}

// GetAllEmployees lists the admin's roster joined with salary rates,
// ordered by employee id.
func GetAllEmployees(c *fiber.Ctx) error {
	adminID := c.Query("admin_id")
	if adminID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Admin ID is required",
		})
	}

	var employees []EmployeeWithRate
	err := DB.Table("employees").
		Select("employees.*, salaries.payment_type, salaries.daily_rate AS amount").
		Joins("JOIN salaries ON employees.id = salaries.employee_id").
		Where("employees.admin_id = ?", adminID).
		Order("employees.id").
		Find(&employees).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.String("admin_id", adminID), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

// AddEmployee creates the employee and its salary rate in one transaction.
func AddEmployee(c *fiber.Ctx) error {
	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.AdminID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "name, email, password and admin_id are required",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	employee := models.Employee{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		IDNumber:     req.IDNumber,
		BirthDate:    req.DOB,
		Address:      req.Address,
		Status:       "Active",
		AdminID:      req.AdminID,
	}
	salary := models.SalaryRate{
		ID:          uuid.New().String(),
		EmployeeID:  employee.ID,
		PaymentType: req.PaymentType,
		DailyRate:   req.Amount,
	}

	tx := DB.Begin()
	if err := tx.Create(&employee).Error; err != nil {
		tx.Rollback()
		utils.Logger.Error("Failed to create employee", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if err := tx.Create(&salary).Error; err != nil {
		tx.Rollback()
		utils.Logger.Error("Failed to create salary rate", zap.String("employee_id", employee.ID), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	tx.Commit()

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: "Employee and salary added successfully",
		Data:    fiber.Map{"employee_id": employee.ID},
	})
}

// Whitelisted single-field updates from the employee tab. paymentType and
// amount land on the salary row, everything else on the employee itself.
func UpdateEmployeeField(c *fiber.Ctx) error {
	var req UpdateEmployeeFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.EmployeeID == "" || req.Field == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "employee_id and field are required",
		})
	}

	employeeColumns := map[string]string{
		"name":     "name",
		"dob":      "birth_date",
		"address":  "address",
		"idNumber": "id_number",
		"phone":    "phone",
		"email":    "email",
	}

	var result *gorm.DB
	switch req.Field {
	case "password":
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Value), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(500).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrInternalError,
			})
		}
		result = DB.Model(&models.Employee{}).
			Where("id = ?", req.EmployeeID).
			Update("password_hash", string(hash))
	case "paymentType":
		result = DB.Model(&models.SalaryRate{}).
			Where("employee_id = ?", req.EmployeeID).
			Update("payment_type", req.Value)
	case "amount":
		rate, err := decimal.NewFromString(req.Value)
		if err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "amount must be a decimal number",
			})
		}
		result = DB.Model(&models.SalaryRate{}).
			Where("employee_id = ?", req.EmployeeID).
			Update("daily_rate", rate)
	default:
		column, ok := employeeColumns[req.Field]
		if !ok {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid field",
			})
		}
		result = DB.Model(&models.Employee{}).
			Where("id = ?", req.EmployeeID).
			Update(column, req.Value)
	}

	if result.Error != nil {
		utils.Logger.Error("Failed to update employee field",
			zap.String("employee_id", req.EmployeeID),
			zap.String("field", req.Field),
			zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee field updated successfully",
	})
}

func setEmployeeStatus(c *fiber.Ctx, status string) error {
	var req BanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.EmployeeID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee ID is required",
		})
	}

	result := DB.Model(&models.Employee{}).
		Where("id = ?", req.EmployeeID).
		Update("status", status)
	if result.Error != nil {
		utils.Logger.Error("Failed to update employee status",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee status updated to " + status,
	})
}

func BanEmployee(c *fiber.Ctx) error {
	return setEmployeeStatus(c, "Banned")
}

func UnbanEmployee(c *fiber.Ctx) error {
	return setEmployeeStatus(c, "Active")
}

// DeleteEmployee removes the employee; attendance and salary rows go with
// it through the foreign key cascade.
func DeleteEmployee(c *fiber.Ctx) error {
	employeeID := c.Params("id")
	if employeeID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee ID is required",
		})
	}

	result := DB.Delete(&models.Employee{}, "id = ?", employeeID)
	if result.Error != nil {
		utils.Logger.Error("Failed to delete employee",
			zap.String("employee_id", employeeID),
			zap.Error(result.Error))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee deleted successfully",
	})
}

// AccountInformation returns one employee's profile for the account screen.
func AccountInformation(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee ID is required",
		})
	}

	var employee models.Employee
	if err := DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(types.APIResponse{
				Success: false,
				Error:   "Employee not found",
			})
		}
		utils.Logger.Error("Failed to fetch employee",
			zap.String("employee_id", employeeID),
			zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employee,
	})
}
