// Package services implements the console operations. Every mutation runs
// through store.Commit so it validates, changes the document, appends one
// log entry and persists once.
package services

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/vortex-console/internal/metrics"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Console is the entry point for every business operation.
type Console struct {
	store    *store.Store
	validate *validator.Validate
	log      zerolog.Logger
}

func NewConsole(st *store.Store, log zerolog.Logger) *Console {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Console{
		store:    st,
		validate: v,
		log:      log.With().Str("component", "console").Logger(),
	}
}

func (c *Console) Store() *store.Store {
	return c.store
}

// commit runs fn through the store and records the outcome.
func (c *Console) commit(ctx context.Context, operation string, fn store.Mutation) (store.Receipt, error) {
	receipt, err := c.store.Commit(ctx, fn)
	metrics.Observe(operation, err)
	if err != nil {
		c.log.Debug().Err(err).Str("operation", operation).Msg("operation rejected")
		return receipt, err
	}
	if receipt.SaveErr != nil {
		c.log.Warn().Err(receipt.SaveErr).Str("operation", operation).Msg("operation applied but not saved")
	}
	return receipt, nil
}

// check validates s and converts the first failure into a validation error.
func (c *Console) check(s interface{}) error {
	err := c.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return types.Validation(fe.Field(), describe(fe))
	}
	return types.Validation("", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}

// checkPrice rejects a missing price so an omitted field never becomes $0.00.
func checkPrice(field string, price *decimal.Decimal) error {
	if price == nil {
		return types.Validation(field, "is required")
	}
	if price.IsNegative() {
		return types.Validation(field, "must not be negative")
	}
	return nil
}

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

func checkPasswordBytes(password string) error {
	if len(password) > maxPasswordBytes {
		return types.Validation("password", "must be at most 72 bytes")
	}
	return nil
}

func checkCategory(category models.Category) error {
	if !category.Valid() {
		return types.Validation("category", "must be streaming or gaming")
	}
	return nil
}

// actor resolves the signed-in user against the live document.
func actor(doc *models.Document, actorID string) (models.User, error) {
	u, ok := doc.FindUser(actorID)
	if !ok || actorID == "" {
		return models.User{}, types.ErrSignInRequired
	}
	if u.Status != models.StatusActive {
		return models.User{}, types.ErrAccountSuspended
	}
	return u, nil
}

func requireAdmin(doc *models.Document, actorID string) (models.User, error) {
	u, err := actor(doc, actorID)
	if err != nil {
		return u, err
	}
	if !u.IsAdmin() {
		return u, types.Forbidden("administrator role required")
	}
	return u, nil
}

func bucketItem(doc *models.Document, category models.Category, index int) (*models.CatalogItem, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	bucket := *doc.Catalog.Bucket(category)
	if index < 0 || index >= len(bucket) {
		return nil, types.NotFound("no catalog item at that position")
	}
	return &bucket[index], nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
