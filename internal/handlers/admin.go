// admin.go
//
// Storefront and admin console service for Vortex streaming and gaming subscriptions
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of vortex-console.
// vortex-console is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// vortex-console is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with vortex-console.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/localnerve/vortex-console/internal/views"
)

// AdminHandler serves the administrator dashboard actions
type AdminHandler struct {
	Base
}

// RevisionRequest carries only the optional expected revision
type RevisionRequest struct {
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// StatusRequest sets a user's status
type StatusRequest struct {
	Status   models.UserStatus `json:"status"`
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// CatalogRequest adds one catalog item or a list of them
type CatalogRequest struct {
	Items    types.FlexList[services.CatalogInput] `json:"items"`
	Revision *types.FlexUint64                     `json:"revision,omitempty"`
}

// ItemRequest replaces a catalog item's fields
type ItemRequest struct {
	services.CatalogInput
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// ReplyRequest answers a support ticket
type ReplyRequest struct {
	Reply    string            `json:"reply"`
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// optionalBody parses a body that may be absent
func optionalBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return parseBody(c, out)
}

// ToggleBan handles POST /api/admin/users/:id/ban
// @Summary Ban or reinstate a user
// @Tags Admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id}/ban [post]
func (h *AdminHandler) ToggleBan(c *fiber.Ctx) error {
	var req RevisionRequest
	if err := optionalBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.ToggleBan(ctx, currentUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// SetStatus handles PUT /api/admin/users/:id/status
// @Summary Set a user's status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param status body StatusRequest true "Status"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id}/status [put]
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.SetUserStatus(ctx, currentUserID(c), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// SetPassword handles PUT /api/admin/users/:id/password
// @Summary Change a customer's password
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param password body PasswordRequest true "New password"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/users/{id}/password [put]
func (h *AdminHandler) SetPassword(c *fiber.Ctx) error {
	var req PasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.ChangePassword(ctx, currentUserID(c), c.Params("id"), req.Password)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// AddItems handles POST /api/admin/catalog/:category
// @Summary Add catalog items
// @Description Accepts a single item or a list under "items"
// @Tags Admin
// @Accept json
// @Produce json
// @Param category path string true "streaming or gaming"
// @Param items body CatalogRequest true "Items"
// @Success 201 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/catalog/{category} [post]
func (h *AdminHandler) AddItems(c *fiber.Ctx) error {
	category, err := categoryParam(c)
	if err != nil {
		return err
	}
	var req CatalogRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.AddCatalogItems(ctx, currentUserID(c), category, req.Items.Slice())
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusCreated, receipt, string(views.Admin), nil)
}

// EditItem handles PUT /api/admin/catalog/:category/:index
// @Summary Edit a catalog item
// @Tags Admin
// @Accept json
// @Produce json
// @Param category path string true "streaming or gaming"
// @Param index path int true "Position in the category"
// @Param item body ItemRequest true "Item"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/catalog/{category}/{index} [put]
func (h *AdminHandler) EditItem(c *fiber.Ctx) error {
	category, index, err := itemParams(c)
	if err != nil {
		return err
	}
	var req ItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.EditCatalogItem(ctx, currentUserID(c), category, index, req.CatalogInput)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// ToggleStock handles POST /api/admin/catalog/:category/:index/stock
// @Summary Flip a catalog item between available and out of stock
// @Tags Admin
// @Produce json
// @Param category path string true "streaming or gaming"
// @Param index path int true "Position in the category"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/catalog/{category}/{index}/stock [post]
func (h *AdminHandler) ToggleStock(c *fiber.Ctx) error {
	category, index, err := itemParams(c)
	if err != nil {
		return err
	}
	var req RevisionRequest
	if err := optionalBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.ToggleStock(ctx, currentUserID(c), category, index)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// DeleteItem handles DELETE /api/admin/catalog/:category/:index
// @Summary Remove a catalog item
// @Description Requires confirm=true
// @Tags Admin
// @Produce json
// @Param category path string true "streaming or gaming"
// @Param index path int true "Position in the category"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/catalog/{category}/{index} [delete]
func (h *AdminHandler) DeleteItem(c *fiber.Ctx) error {
	category, index, err := itemParams(c)
	if err != nil {
		return err
	}
	if !c.QueryBool("confirm") {
		return types.Validation("confirm", "deletion must be confirmed")
	}
	ctx, err := revisionContext(c, nil)
	if err != nil {
		return err
	}

	receipt, err := h.Console.DeleteCatalogItem(ctx, currentUserID(c), category, index)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// ReplyTicket handles POST /api/admin/tickets/:id/reply
// @Summary Answer a support ticket
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Ticket id"
// @Param reply body ReplyRequest true "Reply"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/tickets/{id}/reply [post]
func (h *AdminHandler) ReplyTicket(c *fiber.Ctx) error {
	var req ReplyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	receipt, err := h.Console.ReplyToTicket(ctx, currentUserID(c), c.Params("id"), req.Reply)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, string(views.Admin), nil)
}

// GetLogs handles GET /api/admin/logs
// @Summary Activity log, newest first
// @Tags Admin
// @Produce json
// @Success 200 {array} models.LogEntry
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/logs [get]
func (h *AdminHandler) GetLogs(c *fiber.Ctx) error {
	logs, err := h.Console.Logs(currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(logs)
}

func itemParams(c *fiber.Ctx) (models.Category, int, error) {
	category, err := categoryParam(c)
	if err != nil {
		return "", 0, err
	}
	index, err := indexParam(c)
	if err != nil {
		return "", 0, err
	}
	return category, index, nil
}
