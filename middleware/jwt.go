package middleware

import (
	"fmt"
	"log"
	"strings"
	"time"

	"jubetech/database"
	"jubetech/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Status tags carried in 401/403 bodies so the client can distinguish an
// expired session (refresh prompt) from a rejected token.
const (
	StatusUnauthorized = "unauthorized"
	StatusExpired      = "expired"
	StatusInvalidToken = "invalid_token"
)

// AuthUser is attached to the request context by VerifyToken.
type AuthUser struct {
	ID    primitive.ObjectID
	Roles []string
}

// GenerateJWT generates a signed token for the user, valid for 14 days.
func GenerateJWT(userID primitive.ObjectID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"_id": userID.Hex(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(14 * 24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks the bearer token, resolves the subject's roles and stores
// an AuthUser in the request context.
func VerifyToken(db *mongo.Database, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "There is no verification of user authentication.",
				"status":  StatusUnauthorized,
			})
		}
		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			if validationErr, ok := err.(*jwt.ValidationError); ok && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Your session has expired. Please log in again.",
					"status":  StatusExpired,
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "User authentication is incorrect.",
				"status":  StatusInvalidToken,
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "User authentication is incorrect.",
				"status":  StatusInvalidToken,
			})
		}
		idHex, _ := claims["_id"].(string)
		userID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "User authentication is incorrect.",
				"status":  StatusInvalidToken,
			})
		}

		// Resolve the subject's role names. Store failures here are not
		// auth rejections.
		var user models.User
		err = db.Collection(database.ColUsers).
			FindOne(c.Context(), bson.M{"_id": userID}).
			Decode(&user)
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "The user was not found.",
			})
		}
		if err != nil {
			log.Printf("Error resolving token subject: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong.",
			})
		}

		roleNames := []string{}
		if len(user.RoleIDs) > 0 {
			cursor, err := db.Collection(database.ColRoles).
				Find(c.Context(), bson.M{"_id": bson.M{"$in": user.RoleIDs}})
			if err != nil {
				log.Printf("Error resolving roles: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Something went wrong.",
				})
			}
			var roles []models.Role
			if err := cursor.All(c.Context(), &roles); err != nil {
				log.Printf("Error decoding roles: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Something went wrong.",
				})
			}
			for _, role := range roles {
				roleNames = append(roleNames, role.RoleName)
			}
		}

		c.Locals("verifyUser", AuthUser{ID: userID, Roles: roleNames})
		return c.Next()
	}
}

// VerifyRole rejects the request unless the resolved roles intersect the
// allow-list. Must run after VerifyToken.
func VerifyRole(allowRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("verifyUser").(AuthUser)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied."})
		}
		for _, role := range user.Roles {
			for _, allowed := range allowRoles {
				if role == allowed {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied."})
	}
}

// GetAuthUser returns the AuthUser stored by VerifyToken.
func GetAuthUser(c *fiber.Ctx) (AuthUser, bool) {
	user, ok := c.Locals("verifyUser").(AuthUser)
	return user, ok
}
