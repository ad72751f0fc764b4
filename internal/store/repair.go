package store

import (
	"github.com/localnerve/vortex-console/internal/models"
)

// repair brings a decoded document to a usable state. Running it twice
// yields the same document as running it once.
func repair(doc *models.Document, logCap int) error {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Sales == nil {
		doc.Sales = []models.Sale{}
	}
	if doc.Catalog.Streaming == nil {
		doc.Catalog.Streaming = []models.CatalogItem{}
	}
	if doc.Catalog.Gaming == nil {
		doc.Catalog.Gaming = []models.CatalogItem{}
	}
	if doc.Tickets == nil {
		doc.Tickets = []models.Ticket{}
	}
	if doc.Logs == nil {
		doc.Logs = []models.LogEntry{}
	}

	if err := ensureReservedAdmin(doc); err != nil {
		return err
	}

	for i := range doc.Sales {
		if doc.Sales[i].Expiry == "" {
			doc.Sales[i].Expiry = models.ExpiryFor(doc.Sales[i].Date)
		}
	}

	doc.TrimLogs(logCap)
	doc.Version = models.SchemaVersion
	return nil
}

// ensureReservedAdmin restores the built-in administrator when its account
// is gone, and promotes it when nobody else holds the ADMIN role.
func ensureReservedAdmin(doc *models.Document) error {
	i := doc.UserByEmail(models.ReservedAdminEmail)
	if i < 0 {
		def, err := DefaultDocument()
		if err != nil {
			return err
		}
		doc.Users = append(doc.Users, def.Users[def.UserByEmail(models.ReservedAdminEmail)])
		return nil
	}
	if !doc.HasAdmin() {
		doc.Users[i].Role = models.RoleAdmin
	}
	return nil
}
