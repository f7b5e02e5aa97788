package authValidator

import (
	"regexp"
	"strings"

	"jubetech/middleware"

	"github.com/gofiber/fiber/v2"
)

// Signup mail must resolve to a deliverable mailbox on a common TLD.
var signupEmailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.(com|net|org|edu)$`)

// SignupRequest is the signup payload, including the OTP issued beforehand.
type SignupRequest struct {
	Firstname       string `json:"firstname"`
	Lastname        string `json:"lastname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	OTP             int    `json:"otp"`
	RefCode         string `json:"ref_code"`
}

// SigninRequest is the login payload.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RequestOTPRequest asks for a signup verification code.
type RequestOTPRequest struct {
	Email string `json:"email"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if name := strings.TrimSpace(reqData.Firstname); name == "" || len(name) > 150 {
			errors["firstname"] = "Firstname is required and must be at most 150 characters!"
		}
		if name := strings.TrimSpace(reqData.Lastname); name == "" || len(name) > 150 {
			errors["lastname"] = "Lastname is required and must be at most 150 characters!"
		}

		email := strings.ToLower(strings.TrimSpace(reqData.Email))
		if email == "" || len(email) > 250 || !signupEmailRe.MatchString(email) {
			errors["email"] = "Invalid email!"
		}
		reqData.Email = email

		password := strings.TrimSpace(reqData.Password)
		if len(password) < 6 || len(password) > 150 {
			errors["password"] = "Password must be between 6 and 150 characters!"
		}
		if password != strings.TrimSpace(reqData.ConfirmPassword) {
			errors["confirm_password"] = "Passwords do not match!"
		}

		if reqData.OTP < 100000 || reqData.OTP > 999999 {
			errors["otp"] = "OTP must be a 6-digit code!"
		}
		if len(reqData.RefCode) != 36 {
			errors["ref_code"] = "Reference code is invalid!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Signin validator middleware
func Signin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SigninRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		email := strings.ToLower(strings.TrimSpace(reqData.Email))
		if email == "" || len(email) > 250 || !signupEmailRe.MatchString(email) {
			errors["email"] = "Invalid email!"
		}
		reqData.Email = email

		if password := strings.TrimSpace(reqData.Password); len(password) < 6 || len(password) > 150 {
			errors["password"] = "Password must be between 6 and 150 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignin", reqData)
		return c.Next()
	}
}

// RequestOTP validator middleware
func RequestOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RequestOTPRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		if reqData.Email == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please provide an email.", nil)
		}

		c.Locals("validatedRequestOTP", reqData)
		return c.Next()
	}
}
