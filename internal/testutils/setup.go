package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/auth"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/config"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/role"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/server"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/token"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestSecret is shared by the app under test and the tokens tests mint.
const TestSecret = "test_secret_key_minimum_32_characters_long_for_testing_only"

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Subscription{},
		&models.UsageLog{},
		&models.AuditRecord{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func TestConfig(t *testing.T) *config.Config {
	return &config.Config{
		JWTSecret:       TestSecret,
		SessionTokenTTL: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
		FrontendURL:     "http://localhost:3000",
		ExportDir:       t.TempDir(),
	}
}

func SetupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db := TestDB(t)

	err := role.SeedDefaultRoles(db)
	assert.NoError(t, err, "Failed to seed test roles")

	app := server.New(db, TestConfig(t))
	return app, db
}

func CreateTestUser(t *testing.T, db *gorm.DB, username, email, password, roleName string) *models.User {
	hashed, err := auth.HashPassword(password, bcrypt.MinCost)
	assert.NoError(t, err, "Failed to hash test password")

	var r models.Role
	if err := db.Where("name = ?", roleName).First(&r).Error; err != nil {
		t.Fatalf("Failed to find role '%s': %v. Make sure SeedDefaultRoles was called.", roleName, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		RoleID:   r.ID,
	}
	err = db.Create(user).Error
	assert.NoError(t, err, "Failed to create test user")

	db.Preload("Role").First(user, user.ID)
	if user.Role == nil {
		t.Fatal("Role not loaded for user")
	}

	return user
}

func GetAuthToken(t *testing.T, user *models.User) string {
	tokens := token.New(TestSecret, 24*time.Hour)
	tok, err := tokens.IssueSession(user.ID, user.Username, user.Role.Name)
	assert.NoError(t, err, "Failed to generate test token")
	return tok
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode
	for k, v := range resp.Header {
		for _, val := range v {
			rec.Header().Add(k, val)
		}
	}

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Error   *ErrorDetail `json:"error"`
	Meta    *Meta        `json:"meta"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	assert.False(t, result.Success, "Expected error response")
	assert.NotNil(t, result.Error, "Expected error object")
	if result.Error != nil {
		assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
	}
}
