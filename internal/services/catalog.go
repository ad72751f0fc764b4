package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/shopspring/decimal"
)

// CatalogInput describes a catalog item as entered in the admin form.
type CatalogInput struct {
	Name  string           `json:"name" validate:"required,max=120"`
	Price *decimal.Decimal `json:"price"`
	Image string           `json:"image,omitempty" validate:"max=2048"`
}

func (c *Console) checkItem(in *CatalogInput) error {
	in.Name = strings.ToUpper(strings.TrimSpace(in.Name))
	in.Image = strings.TrimSpace(in.Image)
	if err := c.check(in); err != nil {
		return err
	}
	return checkPrice("price", in.Price)
}

// AddCatalogItem appends one available item to a catalog bucket.
func (c *Console) AddCatalogItem(ctx context.Context, actorID string, category models.Category, in CatalogInput) (store.Receipt, error) {
	return c.AddCatalogItems(ctx, actorID, category, []CatalogInput{in})
}

// AddCatalogItems appends several items at once under a single log entry.
// Nothing is added when any item is invalid.
func (c *Console) AddCatalogItems(ctx context.Context, actorID string, category models.Category, items []CatalogInput) (store.Receipt, error) {
	if err := checkCategory(category); err != nil {
		return store.Receipt{}, err
	}
	if len(items) == 0 {
		return store.Receipt{}, types.Validation("items", "is required")
	}
	for i := range items {
		if err := c.checkItem(&items[i]); err != nil {
			return store.Receipt{}, err
		}
	}

	return c.commit(ctx, "add_catalog_item", func(doc *models.Document) (models.LogEntry, error) {
		if _, err := requireAdmin(doc, actorID); err != nil {
			return models.LogEntry{}, err
		}
		bucket := doc.Catalog.Bucket(category)
		for _, in := range items {
			*bucket = append(*bucket, models.CatalogItem{
				Name:   in.Name,
				Price:  *in.Price,
				Status: models.ItemAvailable,
				Image:  in.Image,
			})
		}
		msg := items[0].Name + " added to " + string(category)
		if len(items) > 1 {
			msg = fmt.Sprintf("%d items added to %s", len(items), category)
		}
		return models.LogEntry{Level: models.LevelInfo, Message: msg}, nil
	})
}

// EditCatalogItem replaces the name, price and image of an item. Its stock
// status is kept.
func (c *Console) EditCatalogItem(ctx context.Context, actorID string, category models.Category, index int, in CatalogInput) (store.Receipt, error) {
	if err := c.checkItem(&in); err != nil {
		return store.Receipt{}, err
	}
	return c.commit(ctx, "edit_catalog_item", func(doc *models.Document) (models.LogEntry, error) {
		if _, err := requireAdmin(doc, actorID); err != nil {
			return models.LogEntry{}, err
		}
		item, err := bucketItem(doc, category, index)
		if err != nil {
			return models.LogEntry{}, err
		}
		item.Name = in.Name
		item.Price = *in.Price
		item.Image = in.Image
		return models.LogEntry{Level: models.LevelInfo, Message: item.Name + " updated (" + money(item.Price) + ")"}, nil
	})
}

// ToggleStock flips an item between Available and OutOfStock.
func (c *Console) ToggleStock(ctx context.Context, actorID string, category models.Category, index int) (store.Receipt, error) {
	return c.commit(ctx, "toggle_stock", func(doc *models.Document) (models.LogEntry, error) {
		if _, err := requireAdmin(doc, actorID); err != nil {
			return models.LogEntry{}, err
		}
		item, err := bucketItem(doc, category, index)
		if err != nil {
			return models.LogEntry{}, err
		}
		if item.Status == models.ItemOutOfStock {
			item.Status = models.ItemAvailable
		} else {
			item.Status = models.ItemOutOfStock
		}
		return models.LogEntry{Level: models.LevelWarn, Message: item.Name + ": " + string(item.Status)}, nil
	})
}

// DeleteCatalogItem removes an item. Confirmation happens before this call.
func (c *Console) DeleteCatalogItem(ctx context.Context, actorID string, category models.Category, index int) (store.Receipt, error) {
	return c.commit(ctx, "delete_catalog_item", func(doc *models.Document) (models.LogEntry, error) {
		if _, err := requireAdmin(doc, actorID); err != nil {
			return models.LogEntry{}, err
		}
		item, err := bucketItem(doc, category, index)
		if err != nil {
			return models.LogEntry{}, err
		}
		name := item.Name
		bucket := doc.Catalog.Bucket(category)
		*bucket = append((*bucket)[:index], (*bucket)[index+1:]...)
		return models.LogEntry{Level: models.LevelWarn, Message: name + " removed from " + string(category)}, nil
	})
}
