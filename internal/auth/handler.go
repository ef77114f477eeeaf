package auth

import (
	"errors"

	"github.com/flixnettv/flix-Xtreme-Panel/internal/response"
	"github.com/flixnettv/flix-Xtreme-Panel/internal/store"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// fail maps flow errors onto the response taxonomy. Raw store errors never
// reach the caller.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrConflict):
		return response.Conflict(c, "User with this email or username already exists")
	case errors.Is(err, ErrInvalidRole):
		return response.InvalidRole(c, "Specified role does not exist")
	case errors.Is(err, ErrAuthenticationFailed):
		return response.AuthenticationFailed(c)
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, "User")
	case errors.Is(err, ErrResetTokenInvalid):
		return response.InvalidOrExpiredToken(c)
	case errors.Is(err, ErrResetTokenMismatch):
		return response.InvalidToken(c, "Reset token not found or already used")
	case errors.Is(err, ErrResetTokenExpired):
		return response.Error(c, fiber.StatusBadRequest, "TOKEN_EXPIRED", "Reset token has expired", nil)
	case errors.Is(err, store.ErrUnavailable):
		return response.ServiceUnavailable(c)
	default:
		return response.InternalError(c, "Unexpected error")
	}
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Username == "" || body.Email == "" || body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"username": "username is required",
			"email":    "email is required",
			"password": "password is required",
		})
	}

	identity, err := h.svc.Register(RegisterInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		return fail(c, err)
	}

	return response.Created(c, identity, "User registered successfully")
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
	}

	tok, identity, err := h.svc.Login(body.Email, body.Password, c.IP())
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, fiber.Map{
		"token": tok,
		"user":  identity,
	}, "Login successful")
}

// Logout records the event only; the bearer token remains valid until it
// expires on its own.
func (h *Handler) Logout(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if identity == nil {
		return response.Unauthorized(c, "No authentication token provided")
	}

	h.svc.Logout(identity.UserID, c.IP())

	return response.Success(c, fiber.Map{"user_id": identity.UserID}, "Logged out successfully")
}

func (h *Handler) Me(c *fiber.Ctx) error {
	identity := IdentityFromCtx(c)
	if identity == nil {
		return response.Unauthorized(c, "No authentication token provided")
	}

	profile, err := h.svc.CurrentUser(identity.UserID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, profile, "")
}

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" {
		return response.ValidationError(c, map[string]string{
			"email": "email is required",
		})
	}

	if err := h.svc.ForgotPassword(body.Email); err != nil {
		return fail(c, err)
	}

	return response.Success(c, nil, "If this email exists, a reset link has been sent")
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Token == "" || body.NewPassword == "" {
		return response.ValidationError(c, map[string]string{
			"token":        "token is required",
			"new_password": "new_password is required",
		})
	}

	if err := h.svc.ResetPassword(body.Token, body.NewPassword); err != nil {
		return fail(c, err)
	}

	return response.Success(c, nil, "Password has been reset successfully")
}
