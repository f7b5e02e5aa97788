package sectionValidator

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
	app.Post("/section", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("POST", "/section", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSectionsBody(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			"valid batch",
			`{"sections": [{"title": "Getting started"}, {"title": "Advanced topics", "lesson_ids": ["64a000000000000000000001"]}]}`,
			fiber.StatusOK,
		},
		{"empty batch", `{"sections": []}`, fiber.StatusBadRequest},
		{"blank title", `{"sections": [{"title": "  "}]}`, fiber.StatusBadRequest},
		{
			"title too long",
			`{"sections": [{"title": "` + strings.Repeat("x", 71) + `"}]}`,
			fiber.StatusBadRequest,
		},
		{
			"invalid lesson id",
			`{"sections": [{"title": "Getting started", "lesson_ids": ["nope"]}]}`,
			fiber.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, post(t, SectionsBody(), tt.body))
		})
	}
}

func TestSectionBody(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, post(t, SectionBody(), `{"title": "Getting started"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, SectionBody(), `{"title": ""}`))
}
