package test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"testing"

	"hr_timekeeping/handlers"
	"hr_timekeeping/middleware"
	"hr_timekeeping/models"
	"hr_timekeeping/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var tokenPattern = regexp.MustCompile(`token=([0-9a-f-]+)`)

func TestRegisterAndConfirm(t *testing.T) {
	app, db := SetupTest(t)

	app.Post("/register", handlers.Register)
	app.Get("/confirm", handlers.Confirm)

	payload, _ := json.Marshal(handlers.RegisterRequest{
		Email:    "new-admin@company.com",
		Password: "s3cret",
	})
	req := httptest.NewRequest("POST", "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	mail, ok := testMailer.Last()
	require.True(t, ok, "confirmation mail should have been sent")
	assert.Equal(t, "new-admin@company.com", mail.To)

	match := tokenPattern.FindStringSubmatch(mail.Text)
	require.Len(t, match, 2, "mail should carry a confirmation link")
	token := match[1]

	// No account before confirmation.
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Equal(t, int64(0), count)

	req = httptest.NewRequest("GET", "/confirm?token="+token, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var admin models.Admin
	require.NoError(t, db.First(&admin, "email = ?", "new-admin@company.com").Error)
	assert.NotEqual(t, "s3cret", admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))

	// Tokens are single use.
	req = httptest.NewRequest("GET", "/confirm?token="+token, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestConfirmUnknownToken(t *testing.T) {
	app, _ := SetupTest(t)

	app.Get("/confirm", handlers.Confirm)

	req := httptest.NewRequest("GET", "/confirm?token=1234567890", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLoginEmployee(t *testing.T) {
	app, db := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	employee := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "correct-horse")

	app.Post("/loginEmployee", handlers.LoginEmployee)

	login := func(email, password string) int {
		payload, _ := json.Marshal(handlers.LoginRequest{Email: email, Password: password})
		req := httptest.NewRequest("POST", "/loginEmployee", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 401, login("alice@company.com", "wrong"))
	assert.Equal(t, 404, login("nobody@company.com", "whatever"))
	assert.Equal(t, 200, login("alice@company.com", "correct-horse"))

	// Banned accounts are refused even with valid credentials.
	db.Model(&models.Employee{}).Where("id = ?", employee.ID).Update("status", "Banned")
	assert.Equal(t, 403, login("alice@company.com", "correct-horse"))
}

func TestLoginAdmin(t *testing.T) {
	app, _ := SetupTest(t)

	createTestAdmin(t, "admin@company.com")

	app.Post("/loginAdmin", handlers.LoginAdmin)

	payload, _ := json.Marshal(handlers.LoginRequest{
		Email:    "admin@company.com",
		Password: "admin-password",
	})
	req := httptest.NewRequest("POST", "/loginAdmin", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var response types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	data := response.Data.(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestRequireAdminMiddleware(t *testing.T) {
	app, _ := SetupTest(t)

	admin := createTestAdmin(t, "admin@company.com")
	alice := createTestEmployee(t, admin.ID, "Alice", "alice@company.com", "pw")
	createTestRate(t, alice.ID, 100000)

	app.Get("/getAllEmployees", middleware.RequireAdmin, handlers.GetAllEmployees)

	fetch := func(token string) int {
		req := httptest.NewRequest("GET", "/getAllEmployees?admin_id="+admin.ID, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 401, fetch(""))
	assert.Equal(t, 403, fetch(createTestToken(alice.ID, "employee")))
	assert.Equal(t, 200, fetch(createTestToken(admin.ID, "admin")))
}
