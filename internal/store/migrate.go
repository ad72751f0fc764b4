package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/security"
	"github.com/shopspring/decimal"
)

// seedNamespace derives stable ids for records stored without one.
var seedNamespace = uuid.MustParse("5f0c7a52-8d7e-4b8e-9a43-6f1e0d2c9b10")

// rawDocument accepts both the current shape and the legacy one, where ids
// were numbers, enums were Spanish, passwords were plaintext and sales
// referenced their buyer by display name.
type rawDocument struct {
	Version int         `json:"version"`
	Users   []rawUser   `json:"users"`
	Sales   []rawSale   `json:"sales"`
	Catalog *rawCatalog `json:"catalog"`
	Tickets []rawTicket `json:"tickets"`
	Logs    []rawLog    `json:"logs"`
}

type rawUser struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Pass      string          `json:"pass"`
	PassHash  string          `json:"passHash"`
	Role      string          `json:"role"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
}

type rawSale struct {
	ID          json.RawMessage `json:"id"`
	ClientID    string          `json:"clientId"`
	ClientLabel string          `json:"clientLabel"`
	Client      string          `json:"client"`
	Service     string          `json:"service"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Expiry      string          `json:"expiry"`
	Type        string          `json:"type"`
}

type rawCatalog struct {
	Streaming []rawItem `json:"streaming"`
	Gaming    []rawItem `json:"gaming"`
}

type rawItem struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Status string          `json:"status"`
	Image  string          `json:"image"`
	Logo   string          `json:"logo"`
}

type rawTicket struct {
	ID         json.RawMessage `json:"id"`
	User       string          `json:"user"`
	Subject    string          `json:"subject"`
	Message    string          `json:"message"`
	Status     string          `json:"status"`
	Reply      string          `json:"reply"`
	CreatedAt  string          `json:"createdAt"`
	AnsweredAt string          `json:"answeredAt"`
}

type rawLog struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

// decoded is a stored blob converted to the current schema
type decoded struct {
	doc        *models.Document
	hasUsers   bool
	hasCatalog bool
	// locked lists accounts whose legacy password could not be hashed
	locked []string
}

// decode parses a stored blob and converts it to the current schema.
// hasUsers is false when the users list is missing or empty, and doc is
// nil in that case.
func decode(blob []byte) (decoded, error) {
	var raw rawDocument
	if err := json.Unmarshal(blob, &raw); err != nil {
		return decoded{}, err
	}
	if len(raw.Users) == 0 {
		return decoded{}, nil
	}
	doc, locked := raw.migrate()
	return decoded{
		doc:        doc,
		hasUsers:   true,
		hasCatalog: raw.Catalog != nil,
		locked:     locked,
	}, nil
}

// migrate never fails as a whole. A missing catalog is left empty for the
// caller to restore.
func (raw *rawDocument) migrate() (*models.Document, []string) {
	doc := &models.Document{Version: raw.Version}

	var locked []string
	for i, ru := range raw.Users {
		u, ok := ru.toUser(i)
		if !ok {
			locked = append(locked, u.Email)
		}
		doc.Users = append(doc.Users, u)
	}

	for i, rs := range raw.Sales {
		doc.Sales = append(doc.Sales, rs.toSale(doc, i))
	}

	if raw.Catalog != nil {
		doc.Catalog.Streaming = toItems(raw.Catalog.Streaming)
		doc.Catalog.Gaming = toItems(raw.Catalog.Gaming)
	}

	for i, rt := range raw.Tickets {
		doc.Tickets = append(doc.Tickets, rt.toTicket(i))
	}

	for _, rl := range raw.Logs {
		doc.Logs = append(doc.Logs, models.LogEntry{
			Timestamp: parseTime(rl.Timestamp),
			Level:     models.LogLevel(strings.ToUpper(rl.Level)),
			Message:   rl.Message,
		})
	}

	return doc, locked
}

// toUser reports false when a legacy plaintext password could not be
// hashed. The user is kept with no password hash, so it cannot sign in.
func (ru rawUser) toUser(index int) (models.User, bool) {
	u := models.User{
		ID:        rawID(ru.ID, "user", ru.Email, index),
		Name:      ru.Name,
		Email:     ru.Email,
		PassHash:  ru.PassHash,
		Role:      models.Role(strings.ToUpper(ru.Role)),
		Status:    userStatus(ru.Status),
		CreatedAt: parseTime(ru.CreatedAt),
	}
	if u.Role != models.RoleAdmin {
		u.Role = models.RoleUser
	}
	ok := true
	if u.PassHash == "" && ru.Pass != "" {
		if security.IsHash(ru.Pass) {
			u.PassHash = ru.Pass
		} else {
			hash, err := security.HashPassword(ru.Pass)
			if err != nil {
				ok = false
			}
			u.PassHash = hash
		}
	}
	if u.Name == "" {
		u.Name = DisplayName(u.Email)
	}
	return u, ok
}

func (rs rawSale) toSale(doc *models.Document, index int) models.Sale {
	s := models.Sale{
		ID:          rawID(rs.ID, "sale", "", index),
		ClientID:    rs.ClientID,
		ClientLabel: rs.ClientLabel,
		Service:     rs.Service,
		Amount:      rs.Amount,
		Date:        rs.Date,
		Expiry:      rs.Expiry,
		Type:        models.Category(strings.ToLower(rs.Type)),
	}
	if s.ClientID == "" && rs.Client != "" {
		if id, ok := resolveClient(doc, rs.Client); ok {
			s.ClientID = id
		} else {
			s.ClientLabel = rs.Client
		}
	}
	return s
}

// resolveClient matches a legacy buyer reference against email first, then name.
func resolveClient(doc *models.Document, ref string) (string, bool) {
	if i := doc.UserByEmail(ref); i >= 0 {
		return doc.Users[i].ID, true
	}
	for _, u := range doc.Users {
		if strings.EqualFold(u.Name, ref) {
			return u.ID, true
		}
	}
	return "", false
}

func toItems(raw []rawItem) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(raw))
	for _, ri := range raw {
		image := ri.Image
		if image == "" {
			image = ri.Logo
		}
		items = append(items, models.CatalogItem{
			Name:   ri.Name,
			Price:  ri.Price,
			Status: itemStatus(ri.Status),
			Image:  image,
		})
	}
	return items
}

func (rt rawTicket) toTicket(index int) models.Ticket {
	t := models.Ticket{
		ID:        rawID(rt.ID, "ticket", "", index),
		User:      rt.User,
		Subject:   rt.Subject,
		Message:   rt.Message,
		Status:    models.TicketOpen,
		Reply:     rt.Reply,
		CreatedAt: parseTime(rt.CreatedAt),
	}
	if strings.EqualFold(rt.Status, string(models.TicketAnswered)) || strings.EqualFold(rt.Status, "Respondido") {
		t.Status = models.TicketAnswered
	}
	if rt.AnsweredAt != "" {
		at := parseTime(rt.AnsweredAt)
		t.AnsweredAt = &at
	}
	return t
}

func userStatus(s string) models.UserStatus {
	switch strings.ToLower(s) {
	case "banned", "baneado":
		return models.StatusBanned
	case "suspended", "suspendido":
		return models.StatusSuspended
	}
	return models.StatusActive
}

func itemStatus(s string) models.ItemStatus {
	switch strings.ToLower(s) {
	case "outofstock", "agotado":
		return models.ItemOutOfStock
	}
	return models.ItemAvailable
}

// rawID keeps string ids, renders numeric ids as text, and derives a stable
// UUID from key (or the kind and position) when the id is absent.
func rawID(raw json.RawMessage, kind, key string, index int) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	if key == "" {
		key = fmt.Sprintf("%d", index)
	}
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+key)).String()
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, models.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// DisplayName derives a user's name from the local part of an email.
func DisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ToUpper(local)
}
