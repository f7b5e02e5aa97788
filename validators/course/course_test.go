package courseValidator

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCourse = `{
	"thumbnail": "thumbnails/go.png",
	"title": "Practical Go for Backend Developers",
	"description": "Build production HTTP services in Go.",
	"usePoint": true,
	"price": 500,
	"point": 300,
	"objectives": ["Understand goroutines", "Ship a REST API"],
	"status": "draft",
	"useCertificate": false,
	"duration": 12,
	"level": "beginner"
}`

func postCourse(t *testing.T, body string) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Post("/course", CourseBody(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("POST", "/course", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var payload map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp.StatusCode, payload
}

func TestCourseBodyValid(t *testing.T) {
	status, _ := postCourse(t, validCourse)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCourseBodyFieldErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(string) string
		errField string
	}{
		{"short title", func(s string) string {
			return strings.Replace(s, `"Practical Go for Backend Developers"`, `"Go"`, 1)
		}, "title"},
		{"price below floor", func(s string) string {
			return strings.Replace(s, `"price": 500`, `"price": 100`, 1)
		}, "price"},
		{"price above cap", func(s string) string {
			return strings.Replace(s, `"price": 500`, `"price": 5000`, 1)
		}, "price"},
		{"point below floor", func(s string) string {
			return strings.Replace(s, `"point": 300`, `"point": 50`, 1)
		}, "point"},
		{"empty objectives", func(s string) string {
			return strings.Replace(s, `["Understand goroutines", "Ship a REST API"]`, `[]`, 1)
		}, "objectives"},
		{"unknown status", func(s string) string {
			return strings.Replace(s, `"status": "draft"`, `"status": "pending"`, 1)
		}, "status"},
		{"unknown level", func(s string) string {
			return strings.Replace(s, `"beginner"`, `"wizard"`, 1)
		}, "level"},
		{"missing usePoint", func(s string) string {
			return strings.Replace(s, `"usePoint": true,`, "", 1)
		}, "usePoint"},
		{"bad group id", func(s string) string {
			return strings.Replace(s, `"level": "beginner"`, `"level": "beginner", "group_ids": ["nope"]`, 1)
		}, "group_ids"},
		{"bad pretest id", func(s string) string {
			return strings.Replace(s, `"level": "beginner"`, `"level": "beginner", "pretest": "nope"`, 1)
		}, "pretest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := postCourse(t, tt.mutate(validCourse))
			require.Equal(t, fiber.StatusBadRequest, status)

			data, ok := payload["data"].(map[string]interface{})
			require.True(t, ok, "expected field errors in response data")
			assert.Contains(t, data, tt.errField)
		})
	}
}
