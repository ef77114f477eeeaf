package role_test

import (
	"testing"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/models"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/role"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestSeedDefaultRoles(t *testing.T) {
	db := testutils.TestDB(t)

	assert.NoError(t, role.SeedDefaultRoles(db))

	var count int64
	db.Model(&models.Role{}).Count(&count)
	assert.Equal(t, int64(4), count)

	t.Run("Reseeding is idempotent", func(t *testing.T) {
		assert.NoError(t, role.SeedDefaultRoles(db))

		var again int64
		db.Model(&models.Role{}).Count(&again)
		assert.Equal(t, int64(4), again)
	})
}

func TestListRolesEndpoint(t *testing.T) {
	app, db := testutils.SetupTestApp(t)

	user := testutils.CreateTestUser(t, db, "alice", "a@x.com", "Sup3r$ecret", "User")

	resp, err := testutils.MakeRequest(app, "GET", "/api/roles", nil, testutils.GetAuthToken(t, user))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	roles := result.Data.([]interface{})
	assert.Len(t, roles, 4)

	names := map[string]bool{}
	for _, r := range roles {
		names[r.(map[string]interface{})["role_name"].(string)] = true
	}
	assert.True(t, names["Admin"])
	assert.True(t, names["Reseller"])
	assert.True(t, names["Distributor"])
	assert.True(t, names["User"])
}
