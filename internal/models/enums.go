package models

// Role separates administrators from customers.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// UserStatus gates sign-in. Only Active users may authenticate.
type UserStatus string

const (
	StatusActive    UserStatus = "Active"
	StatusBanned    UserStatus = "Banned"
	StatusSuspended UserStatus = "Suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusActive, StatusBanned, StatusSuspended:
		return true
	}
	return false
}

// Category names a catalog bucket.
type Category string

const (
	CategoryStreaming Category = "streaming"
	CategoryGaming    Category = "gaming"
)

// Categories lists the buckets in display order.
var Categories = []Category{CategoryStreaming, CategoryGaming}

func (c Category) Valid() bool {
	return c == CategoryStreaming || c == CategoryGaming
}

type ItemStatus string

const (
	ItemAvailable  ItemStatus = "Available"
	ItemOutOfStock ItemStatus = "OutOfStock"
)

type TicketStatus string

const (
	TicketOpen     TicketStatus = "Open"
	TicketAnswered TicketStatus = "Answered"
)

type LogLevel string

const (
	LevelInfo LogLevel = "INFO"
	LevelWarn LogLevel = "WARN"
	LevelSale LogLevel = "SALE"
)
