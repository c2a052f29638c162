package handlers

import (
	"errors"

	"hr_timekeeping/types"

	"github.com/gofiber/fiber/v2"
)

// CalculateTotalSalaries computes every month's payroll for the admin's
// roster: attended days times daily rate per employee, summed per month.
func CalculateTotalSalaries(c *fiber.Ctx) error {
	adminID := c.Query("admin_id")

	payroll, err := Payroll.MonthlyPayroll(adminID)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Admin ID is required",
		})
	case errors.Is(err, types.ErrNotFound):
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "No data found",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Total salaries for each month calculated successfully",
		Data:    payroll,
	})
}
