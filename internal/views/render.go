package views

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/localnerve/vortex-console/data"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/shopspring/decimal"
)

var suggestions = sync.OnceValue(func() map[string][]string {
	out := map[string][]string{}
	_ = json.Unmarshal(data.ServiceSuggestions, &out)
	return out
})

var navOrder = []struct {
	view  View
	label string
	admin bool
}{
	{Market, "Market", false},
	{Streaming, "Streaming", false},
	{Gaming, "Gaming", false},
	{Support, "Support", false},
	{Admin, "Dashboard", true},
}

// Render describes view v for the session's user. It does not check access;
// Navigate does.
func Render(v View, doc *models.Document, sess *session.Session, hb heartbeat.Status) Page {
	user := CurrentUser(doc, sess)
	page := Page{View: v, Header: header(v, user, sess, hb)}

	switch v {
	case Login, Register:
		page.Auth = authForm(v)
	case Market:
		for _, cat := range models.Categories {
			page.Sections = append(page.Sections, shopSection(doc, cat))
		}
		if user != nil {
			page.History = history(doc, user.ID)
		}
	case Streaming:
		page.Sections = []Section{shopSection(doc, models.CategoryStreaming)}
	case Gaming:
		page.Sections = []Section{shopSection(doc, models.CategoryGaming)}
	case Admin:
		page.Dashboard = dashboard(doc)
	case Support:
		page.Support = supportDesk(doc, user)
	}
	return page
}

func header(v View, user *models.User, sess *session.Session, hb heartbeat.Status) Header {
	h := Header{ActiveView: v}
	if user == nil {
		return h
	}
	h.UserName = user.Name
	h.IsAdmin = user.IsAdmin()
	if h.IsAdmin {
		h.Heartbeat = string(hb)
	}
	for _, n := range navOrder {
		if n.admin && !h.IsAdmin {
			continue
		}
		h.Nav = append(h.Nav, NavLink{View: n.view, Label: n.label, Active: n.view == v})
	}
	h.Logout = &Action{Name: "logout", Method: "POST", Path: "/api/auth/logout"}

	h.Toggles = []Action{
		{Name: "toggle_menu", Method: "POST", Path: "/api/ui/menu"},
		{Name: "toggle_search", Method: "POST", Path: "/api/ui/search"},
		{Name: "toggle_account", Method: "POST", Path: "/api/ui/account"},
	}
	if sess != nil {
		h.MenuOpen = sess.MenuOpen
		h.SearchOpen = sess.SearchOpen
		if sess.AccountOpen {
			h.Account = &AccountCard{Name: user.Name, Email: user.Email, Role: string(user.Role)}
		}
	}
	return h
}

func authForm(v View) *AuthForm {
	if v == Register {
		return &AuthForm{
			Mode:   Register,
			Title:  "Create account",
			Submit: Action{Name: "register", Method: "POST", Path: "/api/auth/register"},
			Switch: Action{Name: "toggle_auth_mode", Method: "POST", Path: "/api/auth/mode"},
		}
	}
	return &AuthForm{
		Mode:   Login,
		Title:  "Sign in",
		Submit: Action{Name: "login", Method: "POST", Path: "/api/auth/login"},
		Switch: Action{Name: "toggle_auth_mode", Method: "POST", Path: "/api/auth/mode"},
	}
}

func sectionTitle(cat models.Category) string {
	return strings.ToUpper(string(cat[:1])) + string(cat[1:])
}

func shopSection(doc *models.Document, cat models.Category) Section {
	items := *doc.Catalog.Bucket(cat)
	sec := Section{Category: string(cat), Title: sectionTitle(cat), Cards: make([]Card, 0, len(items))}
	for i, item := range items {
		badge := "VORTEX"
		if !item.InStock() {
			badge = "OUT OF STOCK"
		}
		sec.Cards = append(sec.Cards, Card{
			Index:  i,
			Name:   item.Name,
			Price:  price(item.Price),
			Status: string(item.Status),
			Image:  item.Image,
			Badge:  badge,
			Actions: []Action{{
				Name:     "purchase",
				Method:   "POST",
				Path:     "/api/purchases",
				Args:     map[string]interface{}{"category": string(cat), "index": i},
				Disabled: !item.InStock(),
			}},
		})
	}
	return sec
}

func history(doc *models.Document, userID string) []HistoryRow {
	rows := []HistoryRow{}
	for _, s := range doc.SalesFor(userID) {
		rows = append(rows, HistoryRow{
			ID:      s.ID,
			Service: s.Service,
			Amount:  price(s.Amount),
			Date:    s.Date,
			Expiry:  s.Expiry,
			Type:    string(s.Type),
		})
	}
	return rows
}

func dashboard(doc *models.Document) *Dashboard {
	d := &Dashboard{
		Revenue:     price(doc.TotalRevenue()),
		UserCount:   len(doc.Users),
		Users:       make([]UserRow, 0, len(doc.Users)),
		Sales:       make([]SaleRow, 0, len(doc.Sales)),
		Suggestions: suggestions(),
	}

	for _, u := range doc.Users {
		row := UserRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), Status: string(u.Status)}
		path := "/api/admin/users/" + u.ID
		if !u.IsAdmin() {
			label := "ban"
			if u.Status != models.StatusActive {
				label = "reinstate"
			}
			row.Actions = append(row.Actions,
				Action{Name: label, Method: "POST", Path: path + "/ban"},
				Action{Name: "suspend", Method: "PUT", Path: path + "/status", Args: map[string]interface{}{"status": string(models.StatusSuspended)}, Disabled: u.Status == models.StatusSuspended},
				Action{Name: "change_password", Method: "PUT", Path: path + "/password"},
			)
		}
		d.Users = append(d.Users, row)
	}

	for _, cat := range models.Categories {
		d.Inventory = append(d.Inventory, inventorySection(doc, cat))
	}

	for i := len(doc.Sales) - 1; i >= 0; i-- {
		s := doc.Sales[i]
		d.Sales = append(d.Sales, SaleRow{
			ID:      s.ID,
			Client:  doc.ClientName(s),
			Service: s.Service,
			Amount:  price(s.Amount),
			Date:    s.Date,
			Expiry:  s.Expiry,
			Type:    string(s.Type),
		})
	}

	for _, e := range doc.RecentLogs(-1) {
		d.Logs = append(d.Logs, LogRow{Timestamp: e.Timestamp.Format(time.RFC3339), Level: string(e.Level), Message: e.Message})
	}
	if d.Logs == nil {
		d.Logs = []LogRow{}
	}

	d.Tickets = make([]TicketRow, 0, len(doc.Tickets))
	for _, t := range doc.Tickets {
		d.Tickets = append(d.Tickets, ticketRow(t, true))
	}
	return d
}

func inventorySection(doc *models.Document, cat models.Category) Section {
	items := *doc.Catalog.Bucket(cat)
	base := "/api/admin/catalog/" + string(cat)
	sec := Section{
		Category: string(cat),
		Title:    sectionTitle(cat),
		Cards:    make([]Card, 0, len(items)),
		Add:      &Action{Name: "add_item", Method: "POST", Path: base},
	}
	for i, item := range items {
		path := fmt.Sprintf("%s/%d", base, i)
		sec.Cards = append(sec.Cards, Card{
			Index:  i,
			Name:   item.Name,
			Price:  price(item.Price),
			Status: string(item.Status),
			Image:  item.Image,
			Badge:  string(item.Status),
			Actions: []Action{
				{Name: "toggle_stock", Method: "POST", Path: path + "/stock"},
				{Name: "edit_item", Method: "PUT", Path: path},
				{Name: "delete_item", Method: "DELETE", Path: path + "?confirm=true", Confirm: "Delete " + item.Name + "?"},
			},
		})
	}
	return sec
}

func ticketRow(t models.Ticket, admin bool) TicketRow {
	row := TicketRow{
		ID:        t.ID,
		User:      t.User,
		Subject:   t.Subject,
		Message:   t.Message,
		Status:    string(t.Status),
		Reply:     t.Reply,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	if admin {
		row.Actions = []Action{{Name: "reply", Method: "POST", Path: "/api/admin/tickets/" + t.ID + "/reply"}}
	}
	return row
}

func supportDesk(doc *models.Document, user *models.User) *SupportDesk {
	desk := &SupportDesk{
		Tickets: []TicketRow{},
		Create:  Action{Name: "create_ticket", Method: "POST", Path: "/api/tickets"},
	}
	if user == nil {
		return desk
	}
	for _, t := range doc.VisibleTickets(*user) {
		desk.Tickets = append(desk.Tickets, ticketRow(t, user.IsAdmin()))
	}
	return desk
}

func price(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
