package authController

import (
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"jubetech/config"
	"jubetech/database"
	"jubetech/middleware"
	"jubetech/models"
	"jubetech/utils"
	authValidator "jubetech/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	DB     *mongo.Database
	Mailer *utils.Mailer
	Cfg    *config.Config
}

func NewAuthController(db *mongo.Database, mailer *utils.Mailer, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Mailer: mailer, Cfg: cfg}
}

// RequestOTP issues a 6-digit signup code with a reference number and mails it.
func (ctl *AuthController) RequestOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRequestOTP").(*authValidator.RequestOTPRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	code, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		log.Printf("Error generating OTP: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send the OTP code.", nil)
	}

	now := time.Now()
	token := models.Token{
		ForEmail:    reqData.Email,
		Token:       int(code.Int64()) + 100000,
		ReferenceNo: uuid.NewString(),
		ExpiredAt:   now.Add(models.OTPLifetime),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := ctl.DB.Collection(database.ColTokens).InsertOne(c.Context(), token); err != nil {
		log.Printf("Error saving OTP token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send the OTP code.", nil)
	}

	if err := ctl.Mailer.SendOTP(reqData.Email, token.Token, token.ReferenceNo); err != nil {
		log.Printf("Error sending OTP mail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send the OTP code.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "The OTP code was sent successfully.", fiber.Map{
		"ref_no": token.ReferenceNo,
	})
}

// Signup verifies the OTP and creates (or re-activates) the account with the
// Student role.
func (ctl *AuthController) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check the OTP token.
	var token models.Token
	err := ctl.DB.Collection(database.ColTokens).FindOne(c.Context(), bson.M{
		"for_email":    reqData.Email,
		"token":        reqData.OTP,
		"reference_no": reqData.RefCode,
		"isActive":     true,
	}).Decode(&token)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP verification failed. Please check again.", nil)
	}
	if time.Now().After(token.ExpiredAt) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "The OTP code has expired. Please request again.", nil)
	}

	var studentRole models.Role
	err = ctl.DB.Collection(database.ColRoles).FindOne(c.Context(), bson.M{
		"role_name": models.RoleStudent,
	}).Decode(&studentRole)
	if err != nil {
		log.Printf("Error resolving Student role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	now := time.Now()

	// An earlier unverified signup re-activates instead of conflicting.
	var existing models.User
	err = ctl.DB.Collection(database.ColUsers).FindOne(c.Context(), bson.M{"email": reqData.Email}).Decode(&existing)
	if err == nil {
		if existing.EmailVerifiedAt != nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "This user already exists.", nil)
		}
		_, err = ctl.DB.Collection(database.ColUsers).UpdateByID(c.Context(), existing.ID, bson.M{"$set": bson.M{
			"firstname":         reqData.Firstname,
			"lastname":          reqData.Lastname,
			"password":          string(hashedPassword),
			"status":            true,
			"email_verified_at": now,
			"updatedAt":         now,
		}})
		if err != nil {
			log.Printf("Error re-activating user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
		}
		ctl.consumeToken(c, token.ID)
		return ctl.respondWithToken(c, existing.ID)
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Error checking existing user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	newUser := models.User{
		Firstname:       reqData.Firstname,
		Lastname:        reqData.Lastname,
		Email:           reqData.Email,
		Status:          true,
		Password:        string(hashedPassword),
		EmailVerifiedAt: &now,
		RoleIDs:         []primitive.ObjectID{studentRole.ID},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	res, err := ctl.DB.Collection(database.ColUsers).InsertOne(c.Context(), newUser)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}

	userID, _ := res.InsertedID.(primitive.ObjectID)
	ctl.consumeToken(c, token.ID)
	return ctl.respondWithToken(c, userID)
}

// consumeToken deactivates a redeemed OTP so it cannot be replayed.
func (ctl *AuthController) consumeToken(c *fiber.Ctx, tokenID primitive.ObjectID) {
	_, err := ctl.DB.Collection(database.ColTokens).UpdateByID(c.Context(), tokenID, bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		log.Printf("Error deactivating OTP token: %v", err)
	}
}

// Signin authenticates against activated users only.
func (ctl *AuthController) Signin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignin").(*authValidator.SigninRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	err := ctl.DB.Collection(database.ColUsers).FindOne(c.Context(), bson.M{
		"email":  reqData.Email,
		"status": true,
	}).Decode(&user)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The email or password is incorrect.", nil)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)) != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The email or password is incorrect.", nil)
	}

	return ctl.respondWithToken(c, user.ID)
}

func (ctl *AuthController) respondWithToken(c *fiber.Ctx, userID primitive.ObjectID) error {
	token, err := middleware.GenerateJWT(userID, ctl.Cfg.JWTKey)
	if err != nil {
		log.Printf("Error signing JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong.", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signed in successfully.", fiber.Map{
		"token": token,
	})
}
