package controllers

import (
	"github.com/gofiber/fiber/v2"

	"compliance-backend/middlewares"
	"compliance-backend/models"
	"compliance-backend/services"
	"compliance-backend/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login handles the form-encoded login endpoint.
func (ct *AuthController) Login(c *fiber.Ctx) error {
	return ct.login(c)
}

// LoginJSON handles the JSON-body login endpoint.
func (ct *AuthController) LoginJSON(c *fiber.Ctx) error {
	return ct.login(c)
}

func (ct *AuthController) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	utils.NormalizeDTO(&req)

	token, _, err := ct.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Register creates a new user account.
func (ct *AuthController) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	// Role/status overrides are reserved for admins; everyone else gets the
	// client/pending defaults.
	actor := middlewares.CurrentUser(c)
	if actor == nil || actor.Role != models.RoleAdmin {
		in.Role = ""
		in.Status = ""
	}
	if actor != nil {
		in.CreatedBy = &actor.ID
	}

	user, err := ct.auth.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Me returns the authenticated user.
func (ct *AuthController) Me(c *fiber.Ctx) error {
	return c.JSON(middlewares.CurrentUser(c))
}
