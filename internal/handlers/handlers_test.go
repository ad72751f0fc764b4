package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/vortex-console/internal/config"
	"github.com/localnerve/vortex-console/internal/database"
	"github.com/localnerve/vortex-console/internal/handlers"
	"github.com/localnerve/vortex-console/internal/heartbeat"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/security"
	"github.com/localnerve/vortex-console/internal/services"
	"github.com/localnerve/vortex-console/internal/session"
	"github.com/localnerve/vortex-console/internal/store"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	security.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

// setupTestApp builds the full route table over an in-memory SQLite database
func setupTestApp(t *testing.T) (*fiber.App, *services.Console) {
	t.Helper()
	db, err := database.OpenSQLiteMemory()
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	blobs := database.NewBlobRepository(db)
	st, err := store.Open(context.Background(), blobs, store.Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	console := services.NewConsole(st, zerolog.Nop())

	monitor := heartbeat.NewMonitor("http://heartbeat.test", time.Minute, time.Second, zerolog.Nop()).
		WithProbe(func(ctx context.Context, url string, timeout time.Duration) error { return nil })
	monitor.Check(context.Background())

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app, handlers.Deps{
		Config:   &config.Config{DBType: "sqlite", DBDatabase: ":memory:"},
		DB:       db,
		Console:  console,
		Sessions: session.NewManager(blobs, zerolog.Nop()),
		Monitor:  monitor,
		Log:      zerolog.Nop(),
	})
	app.Use(handlers.NotFound)

	return app, console
}

// client keeps the session cookie between requests like a browser would
type client struct {
	t       *testing.T
	app     *fiber.App
	cookies []*http.Cookie
}

func newClient(t *testing.T, app *fiber.App) *client {
	return &client{t: t, app: app}
}

func (cl *client) do(method, path string, body interface{}) (int, map[string]interface{}) {
	cl.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			cl.t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}

	resp, err := cl.app.Test(req, -1)
	if err != nil {
		cl.t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	if set := resp.Cookies(); len(set) > 0 {
		cl.cookies = set
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		cl.t.Fatalf("Failed to read response: %v", err)
	}
	result := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &result); err != nil {
			cl.t.Fatalf("Failed to decode response %s: %v", raw, err)
		}
	} else if len(raw) > 0 {
		var list []interface{}
		if err := json.Unmarshal(raw, &list); err != nil {
			cl.t.Fatalf("Failed to decode response %s: %v", raw, err)
		}
		result["items"] = list
	}
	return resp.StatusCode, result
}

func (cl *client) login(email, password string) {
	cl.t.Helper()
	status, result := cl.do("POST", "/api/auth/login", map[string]string{"email": email, "password": password})
	if status != fiber.StatusOK {
		cl.t.Fatalf("Login %s: expected status 200, got %d (%v)", email, status, result)
	}
}

func pageView(result map[string]interface{}) string {
	page, ok := result["page"].(map[string]interface{})
	if !ok {
		page = result
	}
	view, _ := page["view"].(string)
	return view
}

func userID(t *testing.T, c *services.Console, email string) string {
	t.Helper()
	doc := c.Store().Document()
	i := doc.UserByEmail(email)
	if i < 0 {
		t.Fatalf("No user %s", email)
	}
	return doc.Users[i].ID
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, result := cl.do("GET", "/api/views/admin", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if pageView(result) != "login" {
		t.Errorf("Expected login view, got %v", result["view"])
	}
	if result["redirectedFrom"] != "admin" {
		t.Errorf("Expected redirectedFrom admin, got %v", result["redirectedFrom"])
	}
	if len(cl.cookies) == 0 || cl.cookies[0].Name != session.CookieName {
		t.Errorf("Expected %s cookie, got %v", session.CookieName, cl.cookies)
	}
}

func TestLoginAndDashboard(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, result := cl.do("POST", "/api/auth/login", map[string]string{"email": "admin", "password": "admin"})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d (%v)", status, result)
	}
	if result["ok"] != true || pageView(result) != "market" {
		t.Errorf("Expected ok market page, got %v", result)
	}

	status, result = cl.do("GET", "/api/views/dashboard", nil)
	if status != fiber.StatusOK || pageView(result) != "admin" {
		t.Fatalf("Expected admin view, got %d %v", status, result["view"])
	}
	header, _ := result["header"].(map[string]interface{})
	if header["heartbeat"] != string(heartbeat.Online) {
		t.Errorf("Expected heartbeat Online, got %v", header["heartbeat"])
	}
	dashboard, _ := result["dashboard"].(map[string]interface{})
	if dashboard["revenue"] != "$5.50" {
		t.Errorf("Expected revenue $5.50, got %v", dashboard["revenue"])
	}

	status, _ = cl.do("POST", "/api/auth/logout", nil)
	if status != fiber.StatusOK {
		t.Errorf("Expected status 200 on logout, got %d", status)
	}
	_, result = cl.do("GET", "/api/views/admin", nil)
	if pageView(result) != "login" {
		t.Errorf("Expected login after logout, got %v", result["view"])
	}
}

func TestLoginFailures(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, result := cl.do("POST", "/api/auth/login", map[string]string{"email": "admin", "password": "wrong"})
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", status)
	}
	if result["message"] != "invalid credentials" {
		t.Errorf("Expected generic message, got %v", result["message"])
	}

	status, _ = cl.do("POST", "/api/auth/login", map[string]string{"email": "", "password": "x"})
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected status 400 for empty email, got %d", status)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, result := cl.do("POST", "/api/auth/mode", nil)
	if status != fiber.StatusOK || pageView(result) != "register" {
		t.Fatalf("Expected register form, got %d %v", status, pageView(result))
	}

	creds := map[string]string{"email": "ana@mail.com", "password": "secret"}
	status, result = cl.do("POST", "/api/auth/register", creds)
	if status != fiber.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%v)", status, result)
	}
	if pageView(result) != "login" {
		t.Errorf("Expected login form after register, got %v", pageView(result))
	}

	status, _ = cl.do("POST", "/api/auth/register", creds)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected status 400 for duplicate email, got %d", status)
	}

	cl.login("ana@mail.com", "secret")
}

func TestCustomerPurchase(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, _ := cl.do("GET", "/api/purchases", nil)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401 before login, got %d", status)
	}

	cl.login("juan@mail.com", "123")

	status, result := cl.do("POST", "/api/purchases", map[string]interface{}{"category": "streaming", "index": 0})
	if status != fiber.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%v)", status, result)
	}
	sale, _ := result["data"].(map[string]interface{})
	if sale["service"] != "NETFLIX" {
		t.Errorf("Expected NETFLIX sale, got %v", sale["service"])
	}

	status, result = cl.do("GET", "/api/purchases", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if items, _ := result["items"].([]interface{}); len(items) != 1 {
		t.Errorf("Expected 1 purchase, got %v", result["items"])
	}

	status, _ = cl.do("POST", "/api/purchases", map[string]interface{}{"category": "gaming", "index": 9})
	if status != fiber.StatusNotFound {
		t.Errorf("Expected status 404 for missing item, got %d", status)
	}

	status, result = cl.do("POST", "/api/purchases", map[string]interface{}{"category": "streaming", "service": "SPOTIFY"})
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected status 400 for a sale without a price, got %d (%v)", status, result)
	}
}

func TestOverlayToggles(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, _ := cl.do("POST", "/api/ui/menu", nil)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401 before login, got %d", status)
	}

	cl.login("juan@mail.com", "123")
	cl.do("GET", "/api/views/gaming", nil)

	status, result := cl.do("POST", "/api/ui/menu", nil)
	if status != fiber.StatusOK || pageView(result) != "gaming" {
		t.Fatalf("Expected the gaming view re-rendered, got %d %v", status, result)
	}
	page, _ := result["page"].(map[string]interface{})
	header, _ := page["header"].(map[string]interface{})
	if header["menuOpen"] != true || header["searchOpen"] != false {
		t.Errorf("Expected only the menu open, got %v", header)
	}

	_, result = cl.do("POST", "/api/ui/account", nil)
	page, _ = result["page"].(map[string]interface{})
	header, _ = page["header"].(map[string]interface{})
	if header["menuOpen"] != true {
		t.Error("Opening the account card should leave the menu open")
	}
	account, _ := header["account"].(map[string]interface{})
	if account["email"] != "juan@mail.com" || account["name"] != "JUAN" || account["role"] != "USER" {
		t.Errorf("Unexpected account card: %v", account)
	}
	if _, leaked := account["password"]; leaked {
		t.Error("The account card must not carry a password")
	}
	if _, leaked := account["passHash"]; leaked {
		t.Error("The account card must not carry a password hash")
	}

	// navigating closes every overlay
	_, result = cl.do("GET", "/api/views/market", nil)
	header, _ = result["header"].(map[string]interface{})
	if header["menuOpen"] != false || header["account"] != nil {
		t.Errorf("Expected overlays closed after navigation, got %v", header)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app, _ := setupTestApp(t)

	anon := newClient(t, app)
	status, _ := anon.do("GET", "/api/admin/logs", nil)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401 for anonymous, got %d", status)
	}

	customer := newClient(t, app)
	customer.login("juan@mail.com", "123")
	status, _ = customer.do("POST", "/api/admin/catalog/streaming", map[string]interface{}{
		"items": map[string]interface{}{"name": "hbo", "price": 4},
	})
	if status != fiber.StatusForbidden {
		t.Errorf("Expected status 403 for customer, got %d", status)
	}
}

func TestAdminCatalog(t *testing.T) {
	app, console := setupTestApp(t)
	cl := newClient(t, app)
	cl.login("admin", "admin")

	status, result := cl.do("POST", "/api/admin/catalog/gaming", map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "valorant topup", "price": "9.99"},
			{"name": "roblox", "price": 4},
		},
	})
	if status != fiber.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%v)", status, result)
	}
	if pageView(result) != "admin" {
		t.Errorf("Expected admin page, got %v", pageView(result))
	}
	gaming := console.Store().Document().Catalog.Gaming
	if len(gaming) != 3 || gaming[1].Name != "VALORANT TOPUP" {
		t.Fatalf("Unexpected gaming catalog: %+v", gaming)
	}

	status, _ = cl.do("POST", "/api/admin/catalog/gaming/1/stock", nil)
	if status != fiber.StatusOK {
		t.Errorf("Expected status 200 on toggle, got %d", status)
	}
	if got := console.Store().Document().Catalog.Gaming[1].Status; got != models.ItemOutOfStock {
		t.Errorf("Expected out of stock, got %s", got)
	}

	status, _ = cl.do("DELETE", "/api/admin/catalog/gaming/1", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected status 400 without confirmation, got %d", status)
	}
	status, _ = cl.do("DELETE", "/api/admin/catalog/gaming/1?confirm=true", nil)
	if status != fiber.StatusOK {
		t.Errorf("Expected status 200 on delete, got %d", status)
	}
	status, _ = cl.do("DELETE", "/api/admin/catalog/gaming/7?confirm=true", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("Expected status 404 for bad index, got %d", status)
	}
	status, _ = cl.do("POST", "/api/admin/catalog/music", map[string]interface{}{"items": map[string]interface{}{"name": "x", "price": 1}})
	if status != fiber.StatusNotFound {
		t.Errorf("Expected status 404 for unknown category, got %d", status)
	}

	status, result = cl.do("GET", "/api/admin/logs", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	logs, _ := result["items"].([]interface{})
	if len(logs) == 0 {
		t.Fatal("Expected log entries")
	}
	if newest, _ := logs[0].(map[string]interface{}); newest["level"] != string(models.LevelWarn) {
		t.Errorf("Expected newest entry to be the WARN delete, got %v", newest)
	}
}

func TestStaleRevisionConflict(t *testing.T) {
	app, console := setupTestApp(t)
	cl := newClient(t, app)
	cl.login("admin", "admin")

	stale := console.Store().Revision() + 5
	status, result := cl.do("POST", "/api/admin/catalog/streaming/0/stock", map[string]interface{}{"revision": stale})
	if status != fiber.StatusConflict {
		t.Fatalf("Expected status 409, got %d", status)
	}
	if result["versionError"] != true {
		t.Errorf("Expected versionError, got %v", result)
	}

	current := console.Store().Revision()
	status, result = cl.do("POST", "/api/admin/catalog/streaming/0/stock", map[string]interface{}{"revision": current})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200 with current revision, got %d (%v)", status, result)
	}
	if result["revision"] == "" {
		t.Error("Expected revision in response")
	}
}

func TestBannedUserLosesSession(t *testing.T) {
	app, console := setupTestApp(t)

	customer := newClient(t, app)
	customer.login("juan@mail.com", "123")

	admin := newClient(t, app)
	admin.login("admin", "admin")
	status, _ := admin.do("POST", "/api/admin/users/"+userID(t, console, "juan@mail.com")+"/ban", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200 on ban, got %d", status)
	}

	status, _ = customer.do("GET", "/api/purchases", nil)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected status 401 for banned user, got %d", status)
	}

	status, _ = admin.do("POST", "/api/admin/users/"+userID(t, console, "admin")+"/ban", nil)
	if status != fiber.StatusForbidden {
		t.Errorf("Expected status 403 banning an admin, got %d", status)
	}
}

func TestTicketRoundTrip(t *testing.T) {
	app, _ := setupTestApp(t)

	customer := newClient(t, app)
	customer.login("juan@mail.com", "123")
	status, result := customer.do("POST", "/api/tickets", map[string]string{"subject": "Login", "message": "Cannot watch"})
	if status != fiber.StatusCreated {
		t.Fatalf("Expected status 201, got %d (%v)", status, result)
	}
	ticket, _ := result["data"].(map[string]interface{})
	id, _ := ticket["id"].(string)

	admin := newClient(t, app)
	admin.login("admin", "admin")
	status, _ = admin.do("POST", "/api/admin/tickets/"+id+"/reply", map[string]string{"reply": "Fixed"})
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200 on reply, got %d", status)
	}

	status, result = customer.do("GET", "/api/tickets", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	items, _ := result["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 ticket, got %v", items)
	}
	if got, _ := items[0].(map[string]interface{}); got["reply"] != "Fixed" {
		t.Errorf("Expected reply Fixed, got %v", got["reply"])
	}
}

func TestHealthAndHeartbeat(t *testing.T) {
	app, _ := setupTestApp(t)
	cl := newClient(t, app)

	status, result := cl.do("GET", "/health", nil)
	if status != fiber.StatusOK || result["status"] != "healthy" {
		t.Errorf("Expected healthy 200, got %d %v", status, result)
	}

	status, result = cl.do("GET", "/api/heartbeat", nil)
	if status != fiber.StatusOK || result["status"] != string(heartbeat.Online) {
		t.Errorf("Expected Online heartbeat, got %d %v", status, result)
	}
}

func TestNotFound(t *testing.T) {
	app, _ := setupTestApp(t)
	status, result := newClient(t, app).do("GET", "/api/nothing/here", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("Expected status 404, got %d", status)
	}
	if result["ok"] != false {
		t.Errorf("Expected ok false, got %v", result["ok"])
	}
}
