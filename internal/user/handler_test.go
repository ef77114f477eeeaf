package user_test

import (
	"fmt"
	"testing"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestListUsers(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)

	for i := 0; i < 5; i++ {
		testutils.CreateTestUser(t, db,
			fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@x.com", i), "Sup3r$ecret", "User")
	}

	t.Run("Success - Paginated listing", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/users?page=1&limit=3", nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)

		users := result.Data.([]interface{})
		assert.Len(t, users, 3)

		assert.NotNil(t, result.Meta)
		assert.Equal(t, int64(6), result.Meta.Total)
		assert.Equal(t, int64(2), result.Meta.TotalPages)

		// Password hashes never leave the API.
		first := users[0].(map[string]interface{})
		assert.NotContains(t, first, "password")
	})

	t.Run("Error - Non-admin role", func(t *testing.T) {
		plain := testutils.CreateTestUser(t, db, "plain", "plain@x.com", "Sup3r$ecret", "User")

		resp, err := testutils.MakeRequest(app, "GET", "/api/users", nil, testutils.GetAuthToken(t, plain))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)

		testutils.AssertError(t, resp, "FORBIDDEN")
	})
}

func TestGetUser(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)
	target := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "Reseller")

	t.Run("Success - Existing user with role preloaded", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/users/%d", target.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "alice", data["username"])

		role := data["role"].(map[string]interface{})
		assert.Equal(t, "Reseller", role["role_name"])
	})

	t.Run("Error - Unknown ID", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/users/99999", nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestCreateUser(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)

	t.Run("Success - Admin creates a reseller", func(t *testing.T) {
		body := map[string]interface{}{
			"username": "newseller",
			"email":    "seller@x.com",
			"password": "Sup3r$ecret",
			"role":     "Reseller",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/users", body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		role := data["role"].(map[string]interface{})
		assert.Equal(t, "Reseller", role["role_name"])

		var rec models.AuditRecord
		assert.NoError(t, db.Where("action = ?", "user_created_by_admin").First(&rec).Error)
		assert.Equal(t, admin.ID, *rec.PerformedBy)
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/users", map[string]interface{}{
			"username": "halfbaked",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Duplicate email or username", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/users", map[string]interface{}{
			"username": "someone",
			"email":    "seller@x.com",
			"password": "Sup3r$ecret",
			"role":     "User",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Unknown role", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/users", map[string]interface{}{
			"username": "someone",
			"email":    "someone@x.com",
			"password": "Sup3r$ecret",
			"role":     "Overlord",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)

		testutils.AssertError(t, resp, "INVALID_ROLE")
	})
}

func TestUpdateUser(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)
	target := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "User")
	testutils.CreateTestUser(t, db, "bob", "b@x.com", "Sup3r$ecret", "User")

	path := fmt.Sprintf("/api/users/%d", target.ID)

	t.Run("Success - Partial update of role and email", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{
			"email": "alice2@x.com",
			"role":  "Distributor",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "alice2@x.com", data["email"])
		assert.Equal(t, "alice", data["username"])

		role := data["role"].(map[string]interface{})
		assert.Equal(t, "Distributor", role["role_name"])
	})

	t.Run("Error - Email already taken", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{
			"email": "b@x.com",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Empty update", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)

		testutils.AssertError(t, resp, "BAD_REQUEST")
	})

	t.Run("Error - Unknown user", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", "/api/users/99999", map[string]interface{}{
			"email": "nobody@x.com",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)
	target := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "User")

	t.Run("Error - Self deletion blocked", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/api/users/%d", admin.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)

		testutils.AssertError(t, resp, "BAD_REQUEST")
	})

	t.Run("Success - Hard delete with audit trail", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/api/users/%d", target.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 204, resp.Code)

		var count int64
		db.Model(&models.User{}).Where("id = ?", target.ID).Count(&count)
		assert.Equal(t, int64(0), count)

		var rec models.AuditRecord
		assert.NoError(t, db.Where("action = ?", "user_deleted_by_admin").First(&rec).Error)
		assert.Contains(t, rec.Details, "a@x.com")
		assert.Equal(t, admin.ID, *rec.PerformedBy)
	})

	t.Run("Error - Already gone", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/api/users/%d", target.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}
