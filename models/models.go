package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Admin owns a roster of employees and logs into the management app.
type Admin struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

type Employee struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `json:"-"`
	IDNumber     string    `json:"id_number"`
	BirthDate    time.Time `json:"dob"`
	Address      string    `json:"address"`
	Status       string    `gorm:"not null;default:'Active'" json:"status"` // Active, Banned
	AdminID      string    `gorm:"type:uuid;not null;index" json:"admin_id"`
	Admin        Admin     `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// AttendanceRecord holds at most one row per employee per calendar day.
// Dates are stored as plain YYYY-MM-DD strings so the (employee_id, date)
// unique index compares calendar days, never instants.
type AttendanceRecord struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Date       string    `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Status     string    `gorm:"not null" json:"status"` // Attended, Absent
	Color      string    `gorm:"not null" json:"color"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

// SalaryRate is the per-attended-day compensation for one employee.
type SalaryRate struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID  string          `gorm:"type:uuid;not null;unique" json:"employee_id"`
	Employee    Employee        `gorm:"foreignKey:EmployeeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PaymentType string          `gorm:"not null" json:"payment_type"`
	DailyRate   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"daily_rate"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (SalaryRate) TableName() string {
	return "salaries"
}
