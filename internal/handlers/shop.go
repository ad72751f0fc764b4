package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/localnerve/vortex-console/internal/views"
	"github.com/shopspring/decimal"
)

// ShopHandler serves the customer side of the console
type ShopHandler struct {
	Base
}

// PurchaseRequest buys a catalog item by position, or records a sale by
// service name when no index is given.
type PurchaseRequest struct {
	Category models.Category   `json:"category"`
	Index    *int              `json:"index,omitempty"`
	Service  string            `json:"service,omitempty"`
	Price    *decimal.Decimal  `json:"price,omitempty"`
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// PasswordRequest changes a password
type PasswordRequest struct {
	Password string            `json:"password"`
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// TicketRequest opens a support ticket
type TicketRequest struct {
	services.TicketInput
	Revision *types.FlexUint64 `json:"revision,omitempty"`
}

// GetPurchases handles GET /api/purchases
// @Summary Purchase history
// @Description Sales made by the signed-in user, newest first
// @Tags Shop
// @Produce json
// @Success 200 {array} models.Sale
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /purchases [get]
func (h *ShopHandler) GetPurchases(c *fiber.Ctx) error {
	return c.JSON(h.Console.PurchaseHistory(currentUserID(c)))
}

// PostPurchase handles POST /api/purchases
// @Summary Buy a service
// @Tags Shop
// @Accept json
// @Produce json
// @Param purchase body PurchaseRequest true "Purchase"
// @Success 201 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /purchases [post]
func (h *ShopHandler) PostPurchase(c *fiber.Ctx) error {
	var req PurchaseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	if req.Index != nil {
		sale, receipt, err := h.Console.Purchase(ctx, currentUserID(c), req.Category, *req.Index)
		if err != nil {
			return err
		}
		return h.respond(c, fiber.StatusCreated, receipt, string(views.Market), sale)
	}

	sale, receipt, err := h.Console.RecordSale(ctx, currentUserID(c), services.SaleInput{
		Service:  req.Service,
		Price:    req.Price,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusCreated, receipt, string(views.Market), sale)
}

// PutPassword handles PUT /api/account/password
// @Summary Change own password
// @Tags Shop
// @Accept json
// @Produce json
// @Param password body PasswordRequest true "New password"
// @Success 200 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /account/password [put]
func (h *ShopHandler) PutPassword(c *fiber.Ctx) error {
	var req PasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	userID := currentUserID(c)
	receipt, err := h.Console.ChangePassword(ctx, userID, userID, req.Password)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, receipt, "", nil)
}

// GetTickets handles GET /api/tickets
// @Summary Support tickets
// @Description Own tickets for customers, every ticket for administrators
// @Tags Support
// @Produce json
// @Success 200 {array} models.Ticket
// @Router /tickets [get]
func (h *ShopHandler) GetTickets(c *fiber.Ctx) error {
	tickets, err := h.Console.Tickets(currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(tickets)
}

// PostTicket handles POST /api/tickets
// @Summary Open a support ticket
// @Tags Support
// @Accept json
// @Produce json
// @Param ticket body TicketRequest true "Ticket"
// @Success 201 {object} utils.MutationResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /tickets [post]
func (h *ShopHandler) PostTicket(c *fiber.Ctx) error {
	var req TicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, err := revisionContext(c, req.Revision)
	if err != nil {
		return err
	}

	ticket, receipt, err := h.Console.CreateTicket(ctx, currentUserID(c), req.TicketInput)
	if err != nil {
		return err
	}
	return h.respond(c, fiber.StatusCreated, receipt, string(views.Support), ticket)
}
