package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/vortex-console/internal/metrics"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/security"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
)

// Credentials is the login and registration form.
type Credentials struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

func (cr *Credentials) normalize() {
	cr.Email = strings.TrimSpace(cr.Email)
	cr.Password = strings.TrimSpace(cr.Password)
}

// checkCredentials also enforces the bcrypt byte limit, which the max tag
// cannot express because it counts runes.
func (c *Console) checkCredentials(cr Credentials) error {
	if err := c.check(cr); err != nil {
		return err
	}
	return checkPasswordBytes(cr.Password)
}

// Authenticate returns the active user matching the credentials. The error
// never tells which of the two fields was wrong.
func (c *Console) Authenticate(ctx context.Context, cr Credentials) (models.User, error) {
	cr.normalize()
	if err := c.checkCredentials(cr); err != nil {
		metrics.Observe("authenticate", err)
		return models.User{}, err
	}

	var (
		user  models.User
		found bool
	)
	c.store.Read(func(doc *models.Document) {
		if i := doc.UserByEmail(cr.Email); i >= 0 {
			user, found = doc.Users[i], true
		}
	})

	var err error
	switch {
	case !found:
		security.BurnCompare(cr.Password)
		err = types.ErrInvalidCredentials
	case !security.CheckPassword(user.PassHash, cr.Password):
		err = types.ErrInvalidCredentials
	case user.Status != models.StatusActive:
		err = types.ErrAccountSuspended
	}

	metrics.Observe("authenticate", err)
	if err != nil {
		c.log.Warn().Str("email", cr.Email).Err(err).Msg("authentication failed")
		return models.User{}, err
	}
	return user, nil
}

// Register creates an active USER account named after the email's local part.
func (c *Console) Register(ctx context.Context, cr Credentials) (models.User, store.Receipt, error) {
	cr.normalize()
	if err := c.checkCredentials(cr); err != nil {
		metrics.Observe("register", err)
		return models.User{}, store.Receipt{}, err
	}

	hash, err := security.HashPassword(cr.Password)
	if err != nil {
		return models.User{}, store.Receipt{}, err
	}

	var created models.User
	receipt, err := c.commit(ctx, "register", func(doc *models.Document) (models.LogEntry, error) {
		if doc.UserByEmail(cr.Email) >= 0 {
			return models.LogEntry{}, types.Validation("email", "is already registered")
		}
		created = models.User{
			ID:        uuid.NewString(),
			Name:      store.DisplayName(cr.Email),
			Email:     cr.Email,
			PassHash:  hash,
			Role:      models.RoleUser,
			Status:    models.StatusActive,
			CreatedAt: c.store.Now(),
		}
		doc.Users = append(doc.Users, created)
		return models.LogEntry{Level: models.LevelInfo, Message: "New account: " + created.Email}, nil
	})
	if err != nil {
		return models.User{}, receipt, err
	}
	return created, receipt, nil
}
