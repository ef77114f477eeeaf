package subscription_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestCreateSubscription(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)
	customer := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "User")

	t.Run("Success - Defaults to active status", func(t *testing.T) {
		body := map[string]interface{}{
			"user_id":    customer.ID,
			"plan_name":  "Pro",
			"start_date": "2026-01-01",
			"end_date":   "2026-12-31",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", body, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Pro", data["plan_name"])
		assert.Equal(t, "active", data["status"])

		var rec models.AuditRecord
		assert.NoError(t, db.Where("action = ?", "subscription_created").First(&rec).Error)
		assert.Contains(t, rec.Details, "Pro")
	})

	t.Run("Error - Missing fields", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", map[string]interface{}{
			"user_id": customer.ID,
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Unknown plan", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", map[string]interface{}{
			"user_id":    customer.ID,
			"plan_name":  "Platinum",
			"start_date": "2026-01-01",
			"end_date":   "2026-12-31",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - End date before start date", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", map[string]interface{}{
			"user_id":    customer.ID,
			"plan_name":  "Basic",
			"start_date": "2026-06-01",
			"end_date":   "2026-01-01",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)

		testutils.AssertError(t, resp, "BAD_REQUEST")
	})

	t.Run("Error - Malformed date", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", map[string]interface{}{
			"user_id":    customer.ID,
			"plan_name":  "Basic",
			"start_date": "01/06/2026",
			"end_date":   "2026-12-31",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - Unknown user", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", map[string]interface{}{
			"user_id":    99999,
			"plan_name":  "Basic",
			"start_date": "2026-01-01",
			"end_date":   "2026-12-31",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Plain user cannot create", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/subscriptions", map[string]interface{}{
			"user_id":    customer.ID,
			"plan_name":  "Basic",
			"start_date": "2026-01-01",
			"end_date":   "2026-12-31",
		}, testutils.GetAuthToken(t, customer))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)

		testutils.AssertError(t, resp, "FORBIDDEN")
	})
}

func TestUpdateSubscription(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)
	customer := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "User")

	sub := models.Subscription{
		UserID:    customer.ID,
		PlanName:  "Basic",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    models.SubscriptionActive,
	}
	assert.NoError(t, db.Create(&sub).Error)

	path := fmt.Sprintf("/api/subscriptions/%d", sub.ID)

	t.Run("Success - Upgrade plan and extend", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{
			"plan_name": "Enterprise",
			"end_date":  "2026-12-31",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Enterprise", data["plan_name"])
	})

	t.Run("Error - Update would invert the date range", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{
			"end_date": "2025-01-01",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - Invalid status", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{
			"status": "paused",
		}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - No fields", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT", path, map[string]interface{}{}, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

func TestListAndExpiring(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	admin := testutils.CreateTestUser(t, db, "admin", "admin@x.com", "Sup3r$ecret", "Admin")
	adminToken := testutils.GetAuthToken(t, admin)
	customer := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "User")

	now := time.Now()
	seed := []models.Subscription{
		{UserID: customer.ID, PlanName: "Basic", StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 0, 3), Status: models.SubscriptionActive},
		{UserID: customer.ID, PlanName: "Pro", StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 6, 0), Status: models.SubscriptionActive},
		{UserID: customer.ID, PlanName: "Free", StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, 0, 2), Status: models.SubscriptionCancelled},
	}
	for i := range seed {
		assert.NoError(t, db.Create(&seed[i]).Error)
	}

	t.Run("List returns every subscription", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/subscriptions", nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Len(t, result.Data.([]interface{}), 3)
	})

	t.Run("ByUser filters on the owner", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/subscriptions/user/%d", customer.ID), nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.Len(t, result.Data.([]interface{}), 3)

		other, err := testutils.MakeRequest(app, "GET", "/api/subscriptions/user/99999", nil, adminToken)
		assert.NoError(t, err)

		var empty testutils.StandardResponse
		testutils.ParseResponse(t, other, &empty)
		assert.Len(t, empty.Data.([]interface{}), 0)
	})

	t.Run("Expiring excludes cancelled and far-future subscriptions", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/subscriptions/expiring?days=7", nil, adminToken)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		subs := result.Data.([]interface{})
		assert.Len(t, subs, 1)

		only := subs[0].(map[string]interface{})
		assert.Equal(t, "Basic", only["plan_name"])
	})

	t.Run("Expiring is admin-only", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/subscriptions/expiring", nil, testutils.GetAuthToken(t, customer))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})
}
