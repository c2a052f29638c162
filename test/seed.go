package test

import (
	"testing"

	"hr_timekeeping/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func createTestAdmin(t *testing.T, email string) models.Admin {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	admin := models.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := testDB.Create(&admin).Error; err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	return admin
}

func createTestEmployee(t *testing.T, adminID, name, email, password string) models.Employee {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	employee := models.Employee{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Status:       "Active",
		AdminID:      adminID,
	}
	if err := testDB.Create(&employee).Error; err != nil {
		t.Fatalf("Failed to create employee: %v", err)
	}
	return employee
}

func createTestRate(t *testing.T, employeeID string, rate int64) models.SalaryRate {
	t.Helper()

	salary := models.SalaryRate{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		PaymentType: "daily",
		DailyRate:   decimal.NewFromInt(rate),
	}
	if err := testDB.Create(&salary).Error; err != nil {
		t.Fatalf("Failed to create salary rate: %v", err)
	}
	return salary
}
