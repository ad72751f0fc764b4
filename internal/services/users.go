package services

import (
	"context"
	"strings"

	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/security"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
)

// statusTarget loads a user whose status an administrator wants to change.
// Accounts holding the ADMIN role are never eligible.
func statusTarget(doc *models.Document, actorID, userID string) (*models.User, error) {
	if _, err := requireAdmin(doc, actorID); err != nil {
		return nil, err
	}
	i := doc.UserIndex(userID)
	if i < 0 {
		return nil, types.NotFound("user not found")
	}
	if doc.Users[i].IsAdmin() {
		return nil, types.Forbidden("administrator accounts cannot be banned or suspended")
	}
	return &doc.Users[i], nil
}

// ToggleBan bans an active user and reinstates a banned or suspended one.
func (c *Console) ToggleBan(ctx context.Context, actorID, userID string) (store.Receipt, error) {
	return c.commit(ctx, "toggle_ban", func(doc *models.Document) (models.LogEntry, error) {
		target, err := statusTarget(doc, actorID, userID)
		if err != nil {
			return models.LogEntry{}, err
		}
		if target.Status == models.StatusActive {
			target.Status = models.StatusBanned
		} else {
			target.Status = models.StatusActive
		}
		return models.LogEntry{
			Level:   models.LevelWarn,
			Message: "Status of " + target.Name + ": " + string(target.Status),
		}, nil
	})
}

type statusInput struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=Active Banned Suspended"`
}

// SetUserStatus moves a non-admin user to any status, including Suspended.
func (c *Console) SetUserStatus(ctx context.Context, actorID, userID string, status models.UserStatus) (store.Receipt, error) {
	if err := c.check(statusInput{Status: status}); err != nil {
		return store.Receipt{}, err
	}
	return c.commit(ctx, "set_user_status", func(doc *models.Document) (models.LogEntry, error) {
		target, err := statusTarget(doc, actorID, userID)
		if err != nil {
			return models.LogEntry{}, err
		}
		target.Status = status
		return models.LogEntry{
			Level:   models.LevelWarn,
			Message: "Status of " + target.Name + ": " + string(status),
		}, nil
	})
}

type passwordInput struct {
	Password string `json:"password" validate:"required,max=72"`
}

// ChangePassword replaces a user's password. Administrators may change any
// customer's password; everyone may change their own. An ADMIN account can
// only be changed by itself.
func (c *Console) ChangePassword(ctx context.Context, actorID, userID, password string) (store.Receipt, error) {
	password = strings.TrimSpace(password)
	if err := c.check(passwordInput{Password: password}); err != nil {
		return store.Receipt{}, err
	}
	if err := checkPasswordBytes(password); err != nil {
		return store.Receipt{}, err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return store.Receipt{}, err
	}

	return c.commit(ctx, "change_password", func(doc *models.Document) (models.LogEntry, error) {
		by, err := actor(doc, actorID)
		if err != nil {
			return models.LogEntry{}, err
		}
		i := doc.UserIndex(userID)
		if i < 0 {
			return models.LogEntry{}, types.NotFound("user not found")
		}
		target := &doc.Users[i]
		self := target.ID == by.ID
		if !self && !by.IsAdmin() {
			return models.LogEntry{}, types.Forbidden("cannot change another user's password")
		}
		if !self && target.IsAdmin() {
			return models.LogEntry{}, types.Forbidden("administrator passwords can only be changed by their owner")
		}
		target.PassHash = hash
		return models.LogEntry{Level: models.LevelInfo, Message: "Password updated for " + target.Email}, nil
	})
}

// Users lists accounts for the admin dashboard.
func (c *Console) Users(actorID string) ([]models.User, error) {
	var (
		users []models.User
		err   error
	)
	c.store.Read(func(doc *models.Document) {
		if _, err = requireAdmin(doc, actorID); err == nil {
			users = append([]models.User(nil), doc.Users...)
		}
	})
	return users, err
}
