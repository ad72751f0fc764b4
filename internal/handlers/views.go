package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RevisionHeader carries the document revision a page was rendered from
const RevisionHeader = "X-Vortex-Revision"

// ViewHandler serves rendered pages
type ViewHandler struct {
	Base
}

// GetView handles GET /api/views/:view
// @Summary Navigate to a view
// @Description Render a view for the current session. Unknown views fall back to the market, protected views redirect to login.
// @Tags Views
// @Produce json
// @Param view path string true "View name"
// @Success 200 {object} views.Page
// @Router /views/{view} [get]
func (h *ViewHandler) GetView(c *fiber.Ctx) error {
	page := h.navigate(c, c.Params("view"))
	c.Set(RevisionHeader, strconv.FormatUint(h.Console.Store().Revision(), 10))
	return c.Status(fiber.StatusOK).JSON(page)
}
