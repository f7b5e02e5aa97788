package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testSecret = "test-secret"

func TestGenerateJWTClaims(t *testing.T) {
	userID := primitive.NewObjectID()
	tokenString, err := GenerateJWT(userID, testSecret)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.Hex(), claims["_id"])

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(14*24*60*60), exp-iat)
}

// The database is only touched after the token itself passes, so the
// rejection paths can run against a nil handle.
func authTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/private", VerifyToken(nil, testSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func statusTag(t *testing.T, body io.Reader) string {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	tag, _ := payload["status"].(string)
	return tag
}

func TestVerifyTokenMissingHeader(t *testing.T) {
	app := authTestApp()

	req := httptest.NewRequest("GET", "/private", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, StatusUnauthorized, statusTag(t, resp.Body))
}

func TestVerifyTokenMalformed(t *testing.T) {
	app := authTestApp()

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, StatusInvalidToken, statusTag(t, resp.Body))
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	app := authTestApp()

	tokenString, err := GenerateJWT(primitive.NewObjectID(), "another-secret")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, StatusInvalidToken, statusTag(t, resp.Body))
}

func TestVerifyTokenExpired(t *testing.T) {
	app := authTestApp()

	claims := jwt.MapClaims{
		"_id": primitive.NewObjectID().Hex(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, StatusExpired, statusTag(t, resp.Body))
}

// A store failure while resolving the token subject is reported as a
// server error, not as a rejected token.
func TestVerifyTokenStoreFailure(t *testing.T) {
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(50*time.Millisecond))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	app := fiber.New()
	app.Get("/private", VerifyToken(client.Database("jubetech_test"), testSecret), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tokenString, err := GenerateJWT(primitive.NewObjectID(), testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, statusTag(t, resp.Body))
}

func TestVerifyRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		allow      []string
		wantStatus int
	}{
		{"allowed role", []string{"Tutor"}, []string{"Tutor"}, fiber.StatusOK},
		{"one of several", []string{"Student", "Admin"}, []string{"Admin"}, fiber.StatusOK},
		{"denied role", []string{"Student"}, []string{"Admin"}, fiber.StatusForbidden},
		{"no roles", nil, []string{"Admin"}, fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/private", func(c *fiber.Ctx) error {
				c.Locals("verifyUser", AuthUser{ID: primitive.NewObjectID(), Roles: tt.roles})
				return c.Next()
			}, VerifyRole(tt.allow...), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestVerifyRoleWithoutAuthUser(t *testing.T) {
	app := fiber.New()
	app.Get("/private", VerifyRole("Admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
