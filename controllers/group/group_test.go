package groupController

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A malformed id short-circuits to 404 before any database access, so the
// handler can run against a nil handle.
func TestGetGroupByIdMalformedId(t *testing.T) {
	ctl := NewGroupController(nil)
	app := fiber.New()
	app.Get("/group/id/:group_id", ctl.GetGroupById)

	resp, err := app.Test(httptest.NewRequest("GET", "/group/id/not-an-object-id", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "The group was not found.", payload["message"])
	assert.Equal(t, false, payload["status"])
}
