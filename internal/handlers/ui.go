package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/localnerve/vortex-console/internal/utils"
)

// UIHandler flips the header overlays of the current view
type UIHandler struct {
	Base
}

func (h *UIHandler) toggle(c *fiber.Ctx, flip func(*session.Session)) error {
	flip(currentSession(c))
	page := h.show(c)
	return utils.MutationSuccessResponse(c, fiber.StatusOK, h.Console.Store().Revision(), nil, page, nil)
}

// ToggleMenu handles POST /api/ui/menu
// @Summary Open or close the side menu
// @Tags UI
// @Produce json
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ui/menu [post]
func (h *UIHandler) ToggleMenu(c *fiber.Ctx) error {
	return h.toggle(c, (*session.Session).ToggleMenu)
}

// ToggleSearch handles POST /api/ui/search
// @Summary Open or close the search field
// @Tags UI
// @Produce json
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ui/search [post]
func (h *UIHandler) ToggleSearch(c *fiber.Ctx) error {
	return h.toggle(c, (*session.Session).ToggleSearch)
}

// ToggleAccount handles POST /api/ui/account
// @Summary Open or close the account card
// @Description The card shows the signed-in user's name, email and role.
// @Tags UI
// @Produce json
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /ui/account [post]
func (h *UIHandler) ToggleAccount(c *fiber.Ctx) error {
	return h.toggle(c, (*session.Session).ToggleAccount)
}
