package test

import (
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"hr_timekeeping/config"
	"hr_timekeeping/handlers"
	"hr_timekeeping/services"
	"hr_timekeeping/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hr_timekeeping/models"
)

var (
	testApp        *fiber.App
	testDB         *gorm.DB
	testAttendance *services.AttendanceService
	testPayroll    *services.PayrollService
	testMailer     *RecordingMailer
)

// RecordingMailer captures outgoing mail instead of talking to a relay.
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []RecordedMail
}

type RecordedMail struct {
	To      string
	Subject string
	Text    string
}

func (m *RecordingMailer) Send(to, subject, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, RecordedMail{To: to, Subject: subject, Text: text})
	return nil
}

func (m *RecordingMailer) Last() (RecordedMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return RecordedMail{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

func init() {
	os.Setenv("JWT_SECRET", "test-secret")
	config.LoadConfig()
	utils.InitLogger()

	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=1"), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to test database:", err)
	}
	testDB.Exec("PRAGMA foreign_keys = ON")

	// sqlite permits one writer; a single pooled connection keeps
	// concurrent test writes queued instead of failing with a busy error.
	if sqlDB, err := testDB.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := testDB.AutoMigrate(
		&models.Admin{},
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.SalaryRate{},
	); err != nil {
		log.Fatal("Failed to migrate test database:", err)
	}
}

func SetupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	ResetTestDB()

	testMailer = &RecordingMailer{}
	testAttendance = services.NewAttendanceService(testDB, 7*time.Hour, "#00FF00", "#FF0000")
	testPayroll = services.NewPayrollService(testDB)
	registration := services.NewRegistrationService(
		testDB,
		services.NewPendingStore(30*time.Minute),
		testMailer,
		services.NewHub(),
		"http://localhost:3000/confirm",
	)

	handlers.InitHandlers(testDB, testAttendance, testPayroll, registration, testMailer)

	testApp = fiber.New()
	return testApp, testDB
}

func ResetTestDB() {
	testDB.Exec("DELETE FROM attendance")
	testDB.Exec("DELETE FROM salaries")
	testDB.Exec("DELETE FROM employees")
	testDB.Exec("DELETE FROM admins")
}

// Helper function to create test JWT token
func createTestToken(userID string, role string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Printf("Error creating test token: %v", err)
		return ""
	}
	return tokenString
}
