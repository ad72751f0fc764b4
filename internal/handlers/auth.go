package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/views"
)

// AuthHandler handles sign in, registration and sign out
type AuthHandler struct {
	Base
}

type accountSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Login handles POST /api/auth/login
// @Summary Sign in
// @Description Authenticate with email and password and open the market view
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body services.Credentials true "Credentials"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var cr services.Credentials
	if err := parseBody(c, &cr); err != nil {
		return err
	}

	user, err := h.Console.Authenticate(c.UserContext(), cr)
	if err != nil {
		return err
	}

	currentSession(c).SignIn(user.ID)
	receipt := store.Receipt{Revision: h.Console.Store().Revision()}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Market), accountSummary{
		ID:   user.ID,
		Name: user.Name,
		Role: string(user.Role),
	})
}

// Register handles POST /api/auth/register
// @Summary Create an account
// @Description Register a customer account and return to the sign in form
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body services.Credentials true "Credentials"
// @Success 201 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var cr services.Credentials
	if err := parseBody(c, &cr); err != nil {
		return err
	}

	user, receipt, err := h.Console.Register(c.UserContext(), cr)
	if err != nil {
		return err
	}

	return h.respond(c, fiber.StatusCreated, receipt, string(views.Login), accountSummary{
		ID:   user.ID,
		Name: user.Name,
		Role: string(user.Role),
	})
}

// ToggleMode handles POST /api/auth/mode
// @Summary Switch between the sign in and register forms
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.MutationResponseStruct
// @Router /auth/mode [post]
func (h *AuthHandler) ToggleMode(c *fiber.Ctx) error {
	sess := currentSession(c)
	sess.ToggleAuthMode()
	receipt := store.Receipt{Revision: h.Console.Store().Revision()}
	return h.respond(c, fiber.StatusOK, receipt, sess.CurrentView, nil)
}

// Logout handles POST /api/auth/logout
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.MutationResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	currentSession(c).Logout()
	receipt := store.Receipt{Revision: h.Console.Store().Revision()}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Login), nil)
}
