package categoryValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, handler fiber.Handler, body string) int {
	t.Helper()
	app := fiber.New()
	app.Post("/category", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("POST", "/category", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCategoriesBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			"valid batch",
			`{"categories": [{"name": "Programming"}, {"name": "Design"}]}`,
			fiber.StatusOK,
		},
		{
			"empty batch",
			`{"categories": []}`,
			fiber.StatusBadRequest,
		},
		{
			"duplicate names in one request",
			`{"categories": [{"name": "Programming"}, {"name": "Programming"}]}`,
			fiber.StatusBadRequest,
		},
		{
			"duplicate after trimming",
			`{"categories": [{"name": "Programming"}, {"name": "  Programming  "}]}`,
			fiber.StatusBadRequest,
		},
		{
			"blank name",
			`{"categories": [{"name": "   "}]}`,
			fiber.StatusBadRequest,
		},
		{
			"invalid group id",
			`{"categories": [{"name": "Programming", "group_ids": ["nope"]}]}`,
			fiber.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, post(t, CategoriesBody(), tt.body))
		})
	}
}

func TestCategoryBody(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, post(t, CategoryBody(), `{"name": "Programming"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, CategoryBody(), `{"name": ""}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, CategoryBody(),
		`{"name": "`+strings.Repeat("x", 101)+`"}`))
}

func TestDeleteBody(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, post(t, DeleteBody(),
		`{"category_ids": ["64a000000000000000000001"]}`))
	assert.Equal(t, fiber.StatusNotFound, post(t, DeleteBody(), `{"category_ids": []}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, DeleteBody(), `{"category_ids": ["nope"]}`))
}
