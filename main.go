package main

import (
	"log"

	"hr_timekeeping/config"
	"hr_timekeeping/handlers"
	"hr_timekeeping/middleware"
	"hr_timekeeping/models"
	"hr_timekeeping/services"
	"hr_timekeeping/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB  *gorm.DB
	hub *services.Hub
)

func initServices() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.SalaryRate{},
	); err != nil {
		return err
	}

	hub = services.NewHub()
	mailer := &services.SMTPMailer{
		Host: config.AppConfig.SMTPHost,
		Port: config.AppConfig.SMTPPort,
		User: config.AppConfig.SMTPUser,
		Pass: config.AppConfig.SMTPPass,
		From: config.AppConfig.MailFrom,
	}

	attendance := services.NewAttendanceService(
		DB,
		config.AppConfig.WorkdayOffset,
		config.AppConfig.CheckInColor,
		config.AppConfig.AbsentColor,
	)
	payroll := services.NewPayrollService(DB)
	registration := services.NewRegistrationService(
		DB,
		services.NewPendingStore(config.AppConfig.RegistrationTTL),
		mailer,
		hub,
		config.AppConfig.ConfirmBaseURL,
	)

	handlers.InitHandlers(DB, attendance, payroll, registration, mailer)
	services.StartAbsenceSweeper(attendance)

	return nil
}

func setupRoutes(app *fiber.App) {
	// Public
	app.Post("/register", handlers.Register)
	app.Get("/confirm", handlers.Confirm)
	app.Post("/loginAdmin", handlers.LoginAdmin)
	app.Post("/loginEmployee", handlers.LoginEmployee)

	// Push channel for email-confirmation events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		hub.Serve(conn)
	}))

	// Employee app
	app.Post("/checkIn", middleware.RequireAuth, handlers.CheckIn)
	app.Get("/myAttendanceMinimal", middleware.RequireAuth, handlers.MyAttendanceMinimal)
	app.Get("/employeeAttendance", middleware.RequireAuth, handlers.EmployeeAttendanceHistory)
	app.Get("/accountInformation", middleware.RequireAuth, handlers.AccountInformation)
	app.Patch("/updatePasswordEmployee", middleware.RequireAuth, handlers.UpdatePasswordEmployee)

	// Admin app
	app.Get("/getAllEmployees", middleware.RequireAdmin, handlers.GetAllEmployees)
	app.Post("/addEmployee", middleware.RequireAdmin, handlers.AddEmployee)
	app.Put("/updateEmployeeField", middleware.RequireAdmin, handlers.UpdateEmployeeField)
	app.Patch("/banEmployee", middleware.RequireAdmin, handlers.BanEmployee)
	app.Patch("/unbanEmployee", middleware.RequireAdmin, handlers.UnbanEmployee)
	app.Delete("/employees/:id", middleware.RequireAdmin, handlers.DeleteEmployee)
	app.Get("/formattedAttendance", middleware.RequireAdmin, handlers.FormattedAttendance)
	app.Post("/insertAttendance", middleware.RequireAdmin, handlers.InsertAttendance)
	app.Patch("/updateAttendance", middleware.RequireAdmin, handlers.UpdateAttendance)
	app.Post("/sweepAbsences", middleware.RequireAdmin, handlers.SweepAbsences)
	app.Get("/calculateTotalSalaries", middleware.RequireAdmin, handlers.CalculateTotalSalaries)
	app.Patch("/updatePasswordAdmin", middleware.RequireAdmin, handlers.UpdatePasswordAdmin)
	app.Post("/sendTestEmail", middleware.RequireAdmin, handlers.SendTestEmail)
}

func main() {
	config.LoadConfig()
	utils.InitLogger()

	if err := initServices(); err != nil {
		log.Fatal("Failed to initialize services:", err)
	}

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New())

	setupRoutes(app)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
