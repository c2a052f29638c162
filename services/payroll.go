package services

import (
	"fmt"

	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayrollService derives monthly compensation from the attendance ledger and
// salary rates. Nothing is persisted; every call recomputes from scratch.
//
// GlobalMonths restores the legacy behavior where the month set is taken
// from the whole attendance table instead of the admin's own employees.
type PayrollService struct {
	DB           *gorm.DB
	GlobalMonths bool
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{DB: db}
}

type EmployeePayroll struct {
	EmployeeID  string          `json:"employee_id"`
	Name        string          `json:"name"`
	DailyRate   decimal.Decimal `json:"daily_salary"`
	PresentDays int             `json:"present_days"`
	TotalSalary decimal.Decimal `json:"total_salary"`
}

type MonthPayroll struct {
	Month     string            `json:"month"`
	Total     decimal.Decimal   `json:"total_salary_for_month"`
	Employees []EmployeePayroll `json:"employees"`
}

type payrollRow struct {
	Month       string
	EmployeeID  string
	Name        string
	DailyRate   decimal.Decimal
	PresentDays int
}

const adminMonthsCTE = `
		SELECT DISTINCT substr(a.date, 1, 7) AS month
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE e.admin_id = @admin_id`

const globalMonthsCTE = `
		SELECT DISTINCT substr(date, 1, 7) AS month
		FROM attendance`

// MonthlyPayroll cross-joins every month that has attendance activity with
// every employee owned by adminID, counting attended days per pair. An
// employee with no activity in a month still gets a zero row. Money math
// stays in decimals end to end.
func (s *PayrollService) MonthlyPayroll(adminID string) ([]MonthPayroll, error) {
	if adminID == "" {
		return nil, fmt.Errorf("%w: admin_id is required", types.ErrValidation)
	}

	months := adminMonthsCTE
	if s.GlobalMonths {
		months = globalMonthsCTE
	}

	query := `
	WITH months AS (` + months + `
	)
	SELECT
		m.month AS month,
		e.id AS employee_id,
		e.name AS name,
		COALESCE(s.daily_rate, 0) AS daily_rate,
		COUNT(CASE WHEN a.status = 'Attended' THEN a.date END) AS present_days
	FROM months m
	CROSS JOIN employees e
	LEFT JOIN salaries s ON e.id = s.employee_id
	LEFT JOIN attendance a ON e.id = a.employee_id AND substr(a.date, 1, 7) = m.month
	WHERE e.admin_id = @admin_id
	GROUP BY m.month, e.id, e.name, s.daily_rate
	ORDER BY m.month, e.id`

	var rows []payrollRow
	if err := s.DB.Raw(query, map[string]interface{}{"admin_id": adminID}).Scan(&rows).Error; err != nil {
		utils.Logger.Error("Failed to run payroll aggregation",
			zap.String("admin_id", adminID),
			zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.ErrNotFound
	}

	var result []MonthPayroll
	for _, row := range rows {
		total := row.DailyRate.Mul(decimal.NewFromInt(int64(row.PresentDays)))
		entry := EmployeePayroll{
			EmployeeID:  row.EmployeeID,
			Name:        row.Name,
			DailyRate:   row.DailyRate,
			PresentDays: row.PresentDays,
			TotalSalary: total,
		}

		if len(result) == 0 || result[len(result)-1].Month != row.Month {
			result = append(result, MonthPayroll{Month: row.Month, Total: decimal.Zero})
		}
		month := &result[len(result)-1]
		month.Total = month.Total.Add(total)
		month.Employees = append(month.Employees, entry)
	}

	return result, nil
}
