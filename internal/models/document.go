package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// SchemaVersion is written on every save. A blob without it is legacy (0).
	SchemaVersion = 1

	// ReservedAdminEmail identifies the built-in administrator account.
	ReservedAdminEmail = "admin"

	// DefaultLogCap bounds the activity log ring.
	DefaultLogCap = 15

	// DateLayout is the calendar format of sale dates.
	DateLayout = "2006-01-02"

	// SubscriptionDays is the length of every purchased subscription.
	SubscriptionDays = 30

	// NoExpiry marks a sale whose expiry cannot be computed.
	NoExpiry = "N/A"
)

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	PassHash  string     `json:"passHash"`
	Role      Role       `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Sale struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	// ClientLabel keeps a legacy buyer reference that matched no user.
	ClientLabel string          `json:"clientLabel,omitempty"`
	Service     string          `json:"service"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Expiry      string          `json:"expiry"`
	Type        Category        `json:"type"`
}

type CatalogItem struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Status ItemStatus      `json:"status"`
	Image  string          `json:"image,omitempty"`
}

func (i CatalogItem) InStock() bool {
	return i.Status != ItemOutOfStock
}

type Catalog struct {
	Streaming []CatalogItem `json:"streaming"`
	Gaming    []CatalogItem `json:"gaming"`
}

// Bucket returns a pointer to the slice backing category c, or nil.
func (c *Catalog) Bucket(cat Category) *[]CatalogItem {
	switch cat {
	case CategoryStreaming:
		return &c.Streaming
	case CategoryGaming:
		return &c.Gaming
	}
	return nil
}

type Ticket struct {
	ID         string       `json:"id"`
	User       string       `json:"user"`
	Subject    string       `json:"subject"`
	Message    string       `json:"message"`
	Status     TicketStatus `json:"status"`
	Reply      string       `json:"reply"`
	CreatedAt  time.Time    `json:"createdAt"`
	AnsweredAt *time.Time   `json:"answeredAt,omitempty"`
}

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
}

// Document is the whole persisted business state.
type Document struct {
	Version int        `json:"version"`
	Users   []User     `json:"users"`
	Sales   []Sale     `json:"sales"`
	Catalog Catalog    `json:"catalog"`
	Tickets []Ticket   `json:"tickets"`
	Logs    []LogEntry `json:"logs"`
}

// Clone returns a deep copy that shares no slices with d.
func (d *Document) Clone() *Document {
	c := &Document{
		Version: d.Version,
		Users:   cloneSlice(d.Users),
		Sales:   cloneSlice(d.Sales),
		Catalog: Catalog{
			Streaming: cloneSlice(d.Catalog.Streaming),
			Gaming:    cloneSlice(d.Catalog.Gaming),
		},
		Tickets: cloneSlice(d.Tickets),
		Logs:    cloneSlice(d.Logs),
	}
	for i := range c.Tickets {
		if at := c.Tickets[i].AnsweredAt; at != nil {
			t := *at
			c.Tickets[i].AnsweredAt = &t
		}
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

// UserIndex returns the position of the user with id, or -1.
func (d *Document) UserIndex(id string) int {
	return slices.IndexFunc(d.Users, func(u User) bool { return u.ID == id })
}

// UserByEmail returns the position of the user with an exact email match, or -1.
func (d *Document) UserByEmail(email string) int {
	return slices.IndexFunc(d.Users, func(u User) bool { return u.Email == email })
}

func (d *Document) FindUser(id string) (User, bool) {
	if i := d.UserIndex(id); i >= 0 {
		return d.Users[i], true
	}
	return User{}, false
}

func (d *Document) TicketIndex(id string) int {
	return slices.IndexFunc(d.Tickets, func(t Ticket) bool { return t.ID == id })
}

func (d *Document) HasAdmin() bool {
	return slices.ContainsFunc(d.Users, User.IsAdmin)
}

// VisibleTickets returns every ticket for an administrator and only their own
// tickets for anyone else. The result is never nil.
func (d *Document) VisibleTickets(u User) []Ticket {
	out := []Ticket{}
	for _, t := range d.Tickets {
		if u.IsAdmin() || t.User == u.Email {
			out = append(out, t)
		}
	}
	return out
}

// TotalRevenue sums every recorded sale.
func (d *Document) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, s := range d.Sales {
		total = total.Add(s.Amount)
	}
	return total
}

// SalesFor returns the sales bought by userID, newest first.
func (d *Document) SalesFor(userID string) []Sale {
	var out []Sale
	for i := len(d.Sales) - 1; i >= 0; i-- {
		if d.Sales[i].ClientID == userID {
			out = append(out, d.Sales[i])
		}
	}
	return out
}

// ClientName resolves the display name of a sale's buyer.
func (d *Document) ClientName(s Sale) string {
	if u, ok := d.FindUser(s.ClientID); ok {
		return u.Name
	}
	if s.ClientLabel != "" {
		return s.ClientLabel
	}
	return s.ClientID
}

// ExpiryFor computes the subscription end for a sale date.
func ExpiryFor(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return NoExpiry
	}
	return t.AddDate(0, 0, SubscriptionDays).Format(DateLayout)
}
