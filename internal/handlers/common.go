// common.go
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
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/middleware"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/localnerve/vortex-console/internal/utils"
	"github.com/localnerve/vortex-console/internal/views"
)

// Base carries what every console handler needs
type Base struct {
	Console *services.Console
	Monitor *heartbeat.Monitor
}

func (b *Base) heartbeatStatus() heartbeat.Status {
	if b.Monitor == nil {
		return heartbeat.Unknown
	}
	return b.Monitor.Status()
}

// navigate re-renders view for the request's session
func (b *Base) navigate(c *fiber.Ctx, view string) views.Page {
	return views.Navigate(currentSession(c), b.Console.Store().Document(), view, b.heartbeatStatus())
}

// show re-renders the session's current view, keeping its overlays
func (b *Base) show(c *fiber.Ctx) views.Page {
	return views.Show(currentSession(c), b.Console.Store().Document(), b.heartbeatStatus())
}

// respond sends a mutation result with the session's current view re-rendered
func (b *Base) respond(c *fiber.Ctx, status int, receipt store.Receipt, view string, data interface{}) error {
	if view == "" {
		view = currentSession(c).CurrentView
	}
	page := b.navigate(c, view)
	return utils.MutationSuccessResponse(c, status, receipt.Revision, receipt.SaveErr, page, data)
}

func currentSession(c *fiber.Ctx) *session.Session {
	if s, ok := c.Locals(middleware.LocalSession).(*session.Session); ok {
		return s
	}
	return &session.Session{CurrentView: string(views.Login)}
}

// currentUserID is empty for anonymous requests
func currentUserID(c *fiber.Ctx) string {
	if u, ok := c.Locals(middleware.LocalUser).(*models.User); ok && u != nil {
		return u.ID
	}
	return ""
}

// revisionContext carries an optional expected revision from the body or
// the revision query parameter into the store.
func revisionContext(c *fiber.Ctx, rev *types.FlexUint64) (context.Context, error) {
	ctx := c.UserContext()
	if rev != nil {
		return store.WithExpectedRevision(ctx, rev.Uint64()), nil
	}
	if q := c.Query("revision"); q != "" {
		n, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			return nil, types.Validation("revision", "must be a non-negative integer")
		}
		return store.WithExpectedRevision(ctx, n), nil
	}
	return ctx, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return types.Validation("body", "invalid request body: "+err.Error())
	}
	return nil
}

func categoryParam(c *fiber.Ctx) (models.Category, error) {
	cat := models.Category(c.Params("category"))
	if !cat.Valid() {
		return "", types.NotFound("unknown catalog category")
	}
	return cat, nil
}

func indexParam(c *fiber.Ctx) (int, error) {
	index, err := c.ParamsInt("index")
	if err != nil {
		return 0, types.Validation("index", "must be an integer")
	}
	return index, nil
}

// ErrorHandler maps domain and transport errors to the JSON error envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	var (
		fe *fiber.Error
		ce *types.CustomError
		de *types.Error
	)

	switch {
	case errors.As(err, &ce):
		return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	case errors.As(err, &de):
		switch de.Kind {
		case types.KindValidation:
			return utils.ErrorResponse(c, de.Error(), fiber.StatusBadRequest, string(de.Kind))
		case types.KindNotFound:
			return utils.NotFoundResponse(c, de.Error())
		case types.KindAuth:
			return utils.ErrorResponse(c, de.Error(), fiber.StatusUnauthorized, string(de.Kind))
		case types.KindAuthorization:
			return utils.ErrorResponse(c, de.Error(), fiber.StatusForbidden, string(de.Kind))
		case types.KindConflict:
			return utils.VersionErrorResponse(c, de.Error())
		}
		return utils.ErrorResponse(c, de.Error(), fiber.StatusInternalServerError, string(de.Kind))
	case errors.As(err, &fe):
		return utils.ErrorResponse(c, fe.Message, fe.Code, "http")
	}

	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "unknown")
}

// NotFound is the catch-all route handler
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
