package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/shopspring/decimal"
)

// SaleInput describes a purchase recorded directly by service name.
type SaleInput struct {
	Service  string           `json:"service" validate:"required,max=120"`
	Price    *decimal.Decimal `json:"price"`
	Category models.Category  `json:"type" validate:"required"`
}

// RecordSale appends a sale for the signed-in buyer. Stock is neither
// checked nor changed.
func (c *Console) RecordSale(ctx context.Context, buyerID string, in SaleInput) (models.Sale, store.Receipt, error) {
	in.Service = strings.TrimSpace(in.Service)
	if err := c.check(in); err != nil {
		return models.Sale{}, store.Receipt{}, err
	}
	if err := checkPrice("price", in.Price); err != nil {
		return models.Sale{}, store.Receipt{}, err
	}
	if err := checkCategory(in.Category); err != nil {
		return models.Sale{}, store.Receipt{}, err
	}

	var sale models.Sale
	receipt, err := c.commit(ctx, "record_sale", func(doc *models.Document) (models.LogEntry, error) {
		buyer, err := actor(doc, buyerID)
		if err != nil {
			return models.LogEntry{}, err
		}
		var entry models.LogEntry
		sale, entry = c.appendSale(doc, buyer, in)
		return entry, nil
	})
	return sale, receipt, err
}

// Purchase buys the catalog item at index. Out-of-stock items are refused.
func (c *Console) Purchase(ctx context.Context, buyerID string, category models.Category, index int) (models.Sale, store.Receipt, error) {
	var sale models.Sale
	receipt, err := c.commit(ctx, "purchase", func(doc *models.Document) (models.LogEntry, error) {
		buyer, err := actor(doc, buyerID)
		if err != nil {
			return models.LogEntry{}, err
		}
		item, err := bucketItem(doc, category, index)
		if err != nil {
			return models.LogEntry{}, err
		}
		if !item.InStock() {
			return models.LogEntry{}, types.Validation("index", item.Name+" is out of stock")
		}
		price := item.Price
		var entry models.LogEntry
		sale, entry = c.appendSale(doc, buyer, SaleInput{Service: item.Name, Price: &price, Category: category})
		return entry, nil
	})
	return sale, receipt, err
}

func (c *Console) appendSale(doc *models.Document, buyer models.User, in SaleInput) (models.Sale, models.LogEntry) {
	date := c.store.Now().Format(models.DateLayout)
	sale := models.Sale{
		ID:       uuid.NewString(),
		ClientID: buyer.ID,
		Service:  in.Service,
		Amount:   *in.Price,
		Date:     date,
		Expiry:   models.ExpiryFor(date),
		Type:     in.Category,
	}
	doc.Sales = append(doc.Sales, sale)
	return sale, models.LogEntry{
		Level:   models.LevelSale,
		Message: "Sale: " + in.Service + " (" + money(*in.Price) + ") - " + buyer.Name,
	}
}

// PurchaseHistory returns the user's own sales, newest first.
func (c *Console) PurchaseHistory(userID string) []models.Sale {
	var sales []models.Sale
	c.store.Read(func(doc *models.Document) {
		sales = doc.SalesFor(userID)
	})
	if sales == nil {
		sales = []models.Sale{}
	}
	return sales
}
