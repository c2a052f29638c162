package handlers

import (
	"errors"

	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Color      string `json:"color" validate:"required"`
}

type CheckInRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
}

type AttendanceEntry struct {
	Status   string `json:"status"`
	Datetime string `json:"datetime"`
	Color    string `json:"color"`
}

type EmployeeAttendance struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Attendance []AttendanceEntry `json:"attendance"`
}

// InsertAttendance records one attendance row from the schedule screen.
// A row that already exists for the day is reported as a conflict, not
// overwritten.
func InsertAttendance(c *fiber.Ctx) error {
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	record, err := Attendance.RecordAttendance(req.EmployeeID, req.Date, req.Status, req.Color)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "All fields (employee_id, date, status, color) are required",
		})
	case errors.Is(err, types.ErrConflict):
		return c.Status(409).JSON(types.APIResponse{
			Success: false,
			Error:   "Attendance record already exists",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Data:    record,
	})
}

// UpdateAttendance corrects an existing row in place.
func UpdateAttendance(c *fiber.Ctx) error {
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	record, err := Attendance.CorrectAttendance(req.EmployeeID, req.Date, req.Status, req.Color)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "All fields (employee_id, date, status, color) are required",
		})
	case errors.Is(err, types.ErrNotFound):
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Attendance record not found",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    record,
	})
}

// CheckIn marks the caller attended for today. Re-checking in on the same
// workday succeeds and returns the existing row.
func CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	record, err := Attendance.CheckIn(req.EmployeeID)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee ID is required",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    record,
	})
}

// MyAttendanceMinimal answers "am I checked in right now" for the home
// screen widget.
func MyAttendanceMinimal(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")

	status, err := Attendance.CurrentStatus(employeeID)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee ID is required",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    status,
	})
}

// EmployeeAttendanceHistory returns the full ledger for one employee in
// ascending date order, plus today's date for the calendar header.
func EmployeeAttendanceHistory(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")

	employee, records, err := Attendance.History(employeeID)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee ID is required",
		})
	case errors.Is(err, types.ErrNotFound):
		return c.Status(404).JSON(types.APIResponse{
			Success: false,
			Error:   "Employee not found",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	entries := make([]AttendanceEntry, len(records))
	for i, record := range records {
		entries[i] = AttendanceEntry{
			Status:   record.Status,
			Datetime: record.Date,
			Color:    record.Color,
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"employee": EmployeeAttendance{
				ID:         employee.ID,
				Name:       employee.Name,
				Attendance: entries,
			},
			"currentDate": Attendance.Today(),
		},
	})
}

// FormattedAttendance returns the admin's whole roster with each employee's
// attendance list, grouped per employee, for the schedule screen. Employees
// with no records yet still appear with an empty list.
func FormattedAttendance(c *fiber.Ctx) error {
	adminID := c.Query("admin_id")
	if adminID == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Admin ID is required",
		})
	}

	var rows []struct {
		EmployeeID string
		Name       string
		Status     *string
		Date       *string
		Color      *string
	}
	err := DB.Table("employees").
		Select("employees.id AS employee_id, employees.name, attendance.status, attendance.date, attendance.color").
		Joins("LEFT JOIN attendance ON employees.id = attendance.employee_id").
		Where("employees.admin_id = ?", adminID).
		Order("employees.id, attendance.date").
		Find(&rows).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch formatted attendance",
			zap.String("admin_id", adminID),
			zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	employees := []EmployeeAttendance{}
	for _, row := range rows {
		if len(employees) == 0 || employees[len(employees)-1].ID != row.EmployeeID {
			employees = append(employees, EmployeeAttendance{
				ID:         row.EmployeeID,
				Name:       row.Name,
				Attendance: []AttendanceEntry{},
			})
		}
		// LEFT JOIN emits one all-NULL attendance row for employees
		// without records.
		if row.Date == nil {
			continue
		}
		employee := &employees[len(employees)-1]
		employee.Attendance = append(employee.Attendance, AttendanceEntry{
			Status:   *row.Status,
			Datetime: *row.Date,
			Color:    *row.Color,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    employees,
	})
}

// SweepAbsences backfills Absent rows for the given date (today when the
// date parameter is omitted). Mainly for operators; the scheduler calls the
// same service routine.
func SweepAbsences(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = Attendance.Today()
	}

	inserted, err := Attendance.DailyAbsenceSweep(date)
	switch {
	case errors.Is(err, types.ErrValidation):
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid date format. Use YYYY-MM-DD",
		})
	case err != nil:
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"date":     date,
			"inserted": inserted,
		},
	})
}
