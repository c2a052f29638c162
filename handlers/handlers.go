package handlers

import (
	"hr_timekeeping/services"

	"gorm.io/gorm"
)

var (
	DB           *gorm.DB
	Attendance   *services.AttendanceService
	Payroll      *services.PayrollService
	Registration *services.RegistrationService
	Mail         services.Mailer
)

func InitHandlers(db *gorm.DB, attendance *services.AttendanceService, payroll *services.PayrollService, registration *services.RegistrationService, mailer services.Mailer) {
	DB = db
	Attendance = attendance
	Payroll = payroll
	Registration = registration
	Mail = mailer
}
