package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
)

type TicketInput struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=4000"`
}

type replyInput struct {
	Reply string `json:"reply" validate:"required,max=4000"`
}

// CreateTicket opens a support ticket owned by the signed-in user.
func (c *Console) CreateTicket(ctx context.Context, actorID string, in TicketInput) (models.Ticket, store.Receipt, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := c.check(in); err != nil {
		return models.Ticket{}, store.Receipt{}, err
	}

	var ticket models.Ticket
	receipt, err := c.commit(ctx, "create_ticket", func(doc *models.Document) (models.LogEntry, error) {
		owner, err := actor(doc, actorID)
		if err != nil {
			return models.LogEntry{}, err
		}
		ticket = models.Ticket{
			ID:        uuid.NewString(),
			User:      owner.Email,
			Subject:   in.Subject,
			Message:   in.Message,
			Status:    models.TicketOpen,
			CreatedAt: c.store.Now(),
		}
		doc.Tickets = append(doc.Tickets, ticket)
		return models.LogEntry{Level: models.LevelInfo, Message: "Ticket from " + owner.Email + ": " + in.Subject}, nil
	})
	return ticket, receipt, err
}

// ReplyToTicket answers a ticket. Replying again overwrites the reply.
func (c *Console) ReplyToTicket(ctx context.Context, actorID, ticketID, reply string) (store.Receipt, error) {
	reply = strings.TrimSpace(reply)
	if err := c.check(replyInput{Reply: reply}); err != nil {
		return store.Receipt{}, err
	}

	return c.commit(ctx, "reply_ticket", func(doc *models.Document) (models.LogEntry, error) {
		if _, err := requireAdmin(doc, actorID); err != nil {
			return models.LogEntry{}, err
		}
		i := doc.TicketIndex(ticketID)
		if i < 0 {
			return models.LogEntry{}, types.NotFound("ticket not found")
		}
		now := c.store.Now()
		t := &doc.Tickets[i]
		t.Status = models.TicketAnswered
		t.Reply = reply
		t.AnsweredAt = &now
		return models.LogEntry{Level: models.LevelInfo, Message: "Ticket answered: " + t.Subject}, nil
	})
}

// Tickets lists every ticket for administrators and the caller's own otherwise.
func (c *Console) Tickets(actorID string) ([]models.Ticket, error) {
	var (
		tickets []models.Ticket
		err     error
	)
	c.store.Read(func(doc *models.Document) {
		var u models.User
		if u, err = actor(doc, actorID); err != nil {
			return
		}
		tickets = doc.VisibleTickets(u)
	})
	return tickets, err
}

// Logs returns the activity log, newest first.
func (c *Console) Logs(actorID string) ([]models.LogEntry, error) {
	var (
		logs []models.LogEntry
		err  error
	)
	c.store.Read(func(doc *models.Document) {
		if _, err = requireAdmin(doc, actorID); err == nil {
			logs = doc.RecentLogs(-1)
		}
	})
	return logs, err
}
