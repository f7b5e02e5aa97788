package authValidator

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
	app.Post("/auth", handler, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	req := httptest.NewRequest("POST", "/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

const validSignup = `{
	"firstname": "Ada",
	"lastname": "Lovelace",
	"email": "ada@example.com",
	"password": "secret123",
	"confirm_password": "secret123",
	"otp": 123456,
	"ref_code": "3f1f4c4e-9a5d-4e0e-b1a2-7c1d2e3f4a5b"
}`

func TestSignupValid(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, post(t, Signup(), validSignup))
}

func TestSignupRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(string) string
	}{
		{"blank firstname", func(s string) string {
			return strings.Replace(s, `"Ada"`, `"  "`, 1)
		}},
		{"restricted tld", func(s string) string {
			return strings.Replace(s, `"ada@example.com"`, `"ada@example.io"`, 1)
		}},
		{"not an email", func(s string) string {
			return strings.Replace(s, `"ada@example.com"`, `"ada-at-example"`, 1)
		}},
		{"password mismatch", func(s string) string {
			return strings.Replace(s, `"confirm_password": "secret123"`, `"confirm_password": "other123"`, 1)
		}},
		{"short password", func(s string) string {
			s = strings.Replace(s, `"password": "secret123"`, `"password": "abc"`, 1)
			return strings.Replace(s, `"confirm_password": "secret123"`, `"confirm_password": "abc"`, 1)
		}},
		{"otp too short", func(s string) string {
			return strings.Replace(s, `"otp": 123456`, `"otp": 1234`, 1)
		}},
		{"truncated ref code", func(s string) string {
			return strings.Replace(s, `"3f1f4c4e-9a5d-4e0e-b1a2-7c1d2e3f4a5b"`, `"3f1f4c4e"`, 1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, fiber.StatusBadRequest, post(t, Signup(), tt.mutate(validSignup)))
		})
	}
}

func TestSignupEmailTLDs(t *testing.T) {
	for email, allowed := range map[string]bool{
		"user@example.com": true,
		"user@school.edu":  true,
		"user@acme.net":    true,
		"user@nonprofit.org": true,
		"user@startup.io":  false,
		"user@company.dev": false,
	} {
		assert.Equal(t, allowed, signupEmailRe.MatchString(email), email)
	}
}

func TestSignin(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, post(t, Signin(),
		`{"email": "ada@example.com", "password": "secret123"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, Signin(),
		`{"email": "nope", "password": "secret123"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, Signin(),
		`{"email": "ada@example.com", "password": "abc"}`))
}

func TestRequestOTP(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, post(t, RequestOTP(), `{"email": "ada@example.com"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, RequestOTP(), `{"email": ""}`))
}
