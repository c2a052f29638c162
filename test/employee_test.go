package test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"hr_timekeeping/handlers"
	"hr_timekeeping/models"
	"hr_timekeeping/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEmployeeCreatesSalaryRow(t *testing.T) {
	app, db := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")

	app.Post("/addEmployee", handlers.AddEmployee)

	payload, _ := json.Marshal(handlers.AddEmployeeRequest{
		Name:        "Alice",
		Email:       "alice@company.com",
		Password:    "pw",
		Phone:       "+84123456789",
		PaymentType: "daily",
		Amount:      decimal.NewFromInt(100000),
		AdminID:     admin.ID,
	})
	req := httptest.NewRequest("POST", "/addEmployee", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var employee models.Employee
	require.NoError(t, db.First(&employee, "email = ?", "alice@company.com").Error)
	assert.Equal(t, "Active", employee.Status)
	assert.NotEqual(t, "pw", employee.PasswordHash)

	var salary models.SalaryRate
	require.NoError(t, db.First(&salary, "employee_id = ?", employee.ID).Error)
	assert.True(t, salary.DailyRate.Equal(decimal.NewFromInt(100000)))
}

func TestUpdateEmployeeFieldWhitelist(t *testing.T) {
	app, db := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	employee := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "pw")
	createTestRate(t, employee.ID, 100000)

	app.Put("/updateEmployeeField", handlers.UpdateEmployeeField)

	update := func(field, value string) int {
		payload, _ := json.Marshal(handlers.UpdateEmployeeFieldRequest{
			EmployeeID: employee.ID,
			Field:      field,
			Value:      value,
		})
		req := httptest.NewRequest("PUT", "/updateEmployeeField", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 200, update("name", "Alice B."))
	var found models.Employee
	db.First(&found, "id = ?", employee.ID)
	assert.Equal(t, "Alice B.", found.Name)

	assert.Equal(t, 200, update("amount", "120000"))
	var salary models.SalaryRate
	db.First(&salary, "employee_id = ?", employee.ID)
	assert.True(t, salary.DailyRate.Equal(decimal.NewFromInt(120000)))

	assert.Equal(t, 400, update("amount", "not-a-number"))
	assert.Equal(t, 400, update("status", "Banned"), "status is not directly editable")
	assert.Equal(t, 400, update("admin_id", "hijack"), "ownership is not editable")
}

func TestBanUnbanEmployee(t *testing.T) {
	app, db := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	employee := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "pw")

	app.Patch("/banEmployee", handlers.BanEmployee)
	app.Patch("/unbanEmployee", handlers.UnbanEmployee)

	hit := func(path, employeeID string) int {
		payload, _ := json.Marshal(handlers.BanRequest{EmployeeID: employeeID})
		req := httptest.NewRequest("PATCH", path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 200, hit("/banEmployee", employee.ID))
	var found models.Employee
	db.First(&found, "id = ?", employee.ID)
	assert.Equal(t, "Banned", found.Status)

	assert.Equal(t, 200, hit("/unbanEmployee", employee.ID))
	db.First(&found, "id = ?", employee.ID)
	assert.Equal(t, "Active", found.Status)

	assert.Equal(t, 404, hit("/banEmployee", "no-such-employee"))
}

func TestDeleteEmployeeCascades(t *testing.T) {
	app, db := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	employee := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "pw")
	createTestRate(t, employee.ID, 100000)
	markAttended(t, employee.ID, "2024-03-04", "2024-03-05")

	app.Delete("/employees/:id", handlers.DeleteEmployee)

	req := httptest.NewRequest("DELETE", "/employees/"+employee.ID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var employees, salaries, records int64
	db.Model(&models.Employee{}).Where("id = ?", employee.ID).Count(&employees)
	db.Model(&models.SalaryRate{}).Where("employee_id = ?", employee.ID).Count(&salaries)
	db.Model(&models.AttendanceRecord{}).Where("employee_id = ?", employee.ID).Count(&records)
	assert.Zero(t, employees)
	assert.Zero(t, salaries)
	assert.Zero(t, records)
}

func TestGetAllEmployees(t *testing.T) {
	app, _ := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	other := createTestAdmin(t, "other@company.com")

	alice := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "pw")
	createTestRate(t, alice.ID, 100000)
	bob := createTestEmployee(t, other.ID, "Bob", "bob@company.com", "pw")
	createTestRate(t, bob.ID, 50000)

	app.Get("/getAllEmployees", handlers.GetAllEmployees)

	req := httptest.NewRequest("GET", "/getAllEmployees?admin_id="+admin.ID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	employees := response.Data.([]interface{})
	require.Len(t, employees, 1)
	assert.Equal(t, "Alice", employees[0].(map[string]interface{})["name"])
}

func TestAccountInformation(t *testing.T) {
	app, _ := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	employee := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "pw")

	app.Get("/accountInformation", handlers.AccountInformation)

	req := httptest.NewRequest("GET", "/accountInformation?employee_id="+employee.ID, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	data := response.Data.(map[string]interface{})
	assert.Equal(t, "Alice", data["name"])
	assert.NotContains(t, data, "password_hash")

	req = httptest.NewRequest("GET", "/accountInformation?employee_id=no-such-employee", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
