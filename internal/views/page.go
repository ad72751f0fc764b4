package views

// Page is the complete description of one screen.
type Page struct {
	View           View         `json:"view"`
	RedirectedFrom View         `json:"redirectedFrom,omitempty"`
	Header         Header       `json:"header"`
	Auth           *AuthForm    `json:"auth,omitempty"`
	Sections       []Section    `json:"sections,omitempty"`
	History        []HistoryRow `json:"history,omitempty"`
	Dashboard      *Dashboard   `json:"dashboard,omitempty"`
	Support        *SupportDesk `json:"support,omitempty"`
}

type Header struct {
	UserName   string    `json:"userName,omitempty"`
	IsAdmin    bool      `json:"isAdmin"`
	ActiveView View      `json:"activeView"`
	Heartbeat  string    `json:"heartbeat,omitempty"`
	Nav        []NavLink `json:"nav"`
	Logout     *Action   `json:"logout,omitempty"`

	MenuOpen   bool         `json:"menuOpen"`
	SearchOpen bool         `json:"searchOpen"`
	Account    *AccountCard `json:"account,omitempty"`
	Toggles    []Action     `json:"toggles,omitempty"`
}

// AccountCard is the signed-in user's profile overlay. It never carries a
// password or its hash.
type AccountCard struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type NavLink struct {
	View   View   `json:"view"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Action is a request the client may send. It carries data only.
type Action struct {
	Name     string                 `json:"name"`
	Method   string                 `json:"method"`
	Path     string                 `json:"path"`
	Args     map[string]interface{} `json:"args,omitempty"`
	Disabled bool                   `json:"disabled,omitempty"`
	Confirm  string                 `json:"confirm,omitempty"`
}

type AuthForm struct {
	Mode   View   `json:"mode"`
	Title  string `json:"title"`
	Submit Action `json:"submit"`
	Switch Action `json:"switch"`
}

type Section struct {
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Cards    []Card  `json:"cards"`
	Add      *Action `json:"add,omitempty"`
}

type Card struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Price   string   `json:"price"`
	Status  string   `json:"status"`
	Image   string   `json:"image,omitempty"`
	Badge   string   `json:"badge"`
	Actions []Action `json:"actions"`
}

type HistoryRow struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Amount  string `json:"amount"`
	Date    string `json:"date"`
	Expiry  string `json:"expiry"`
	Type    string `json:"type"`
}

type Dashboard struct {
	Revenue     string              `json:"revenue"`
	UserCount   int                 `json:"userCount"`
	Users       []UserRow           `json:"users"`
	Inventory   []Section           `json:"inventory"`
	Sales       []SaleRow           `json:"sales"`
	Logs        []LogRow            `json:"logs"`
	Tickets     []TicketRow         `json:"tickets"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

// UserRow never carries a password or its hash.
type UserRow struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	Status  string   `json:"status"`
	Actions []Action `json:"actions"`
}

type SaleRow struct {
	ID      string `json:"id"`
	Client  string `json:"client"`
	Service string `json:"service"`
	Amount  string `json:"amount"`
	Date    string `json:"date"`
	Expiry  string `json:"expiry"`
	Type    string `json:"type"`
}

type LogRow struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

type TicketRow struct {
	ID        string   `json:"id"`
	User      string   `json:"user"`
	Subject   string   `json:"subject"`
	Message   string   `json:"message"`
	Status    string   `json:"status"`
	Reply     string   `json:"reply,omitempty"`
	CreatedAt string   `json:"createdAt"`
	Actions   []Action `json:"actions,omitempty"`
}

type SupportDesk struct {
	Tickets []TicketRow `json:"tickets"`
	Create  Action      `json:"create"`
}
