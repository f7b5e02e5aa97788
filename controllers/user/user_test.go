package userController

import (
	"encoding/json"
	"testing"

	"jubetech/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildUserViews(t *testing.T) {
	adminID := primitive.NewObjectID()
	tutorID := primitive.NewObjectID()
	danglingID := primitive.NewObjectID()

	roles := []models.Role{
		{ID: adminID, RoleName: models.RoleAdmin},
		{ID: tutorID, RoleName: models.RoleTutor},
	}
	users := []models.User{
		{Firstname: "Ada", RoleIDs: []primitive.ObjectID{adminID, tutorID}},
		{Firstname: "Grace", RoleIDs: []primitive.ObjectID{tutorID, danglingID}},
		{Firstname: "Joan"},
	}

	views := buildUserViews(users, roles)
	require.Len(t, views, 3)

	require.Len(t, views[0].Roles, 2)
	assert.Equal(t, models.RoleAdmin, views[0].Roles[0].RoleName)
	assert.Equal(t, models.RoleTutor, views[0].Roles[1].RoleName)

	// Role ids without a backing document are dropped, not invented.
	require.Len(t, views[1].Roles, 1)
	assert.Equal(t, models.RoleTutor, views[1].Roles[0].RoleName)

	// A user with no roles still serializes an empty array, not null.
	assert.NotNil(t, views[2].Roles)
	assert.Empty(t, views[2].Roles)
}

func TestUserViewSerializesRoleNames(t *testing.T) {
	roleID := primitive.NewObjectID()
	views := buildUserViews(
		[]models.User{{Firstname: "Ada", RoleIDs: []primitive.ObjectID{roleID}}},
		[]models.Role{{ID: roleID, RoleName: models.RoleAdmin}},
	)

	raw, err := json.Marshal(views[0])
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))

	rolesField, ok := payload["roles"].([]interface{})
	require.True(t, ok)
	require.Len(t, rolesField, 1)
	role := rolesField[0].(map[string]interface{})
	assert.Equal(t, models.RoleAdmin, role["role_name"])
}
