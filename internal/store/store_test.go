package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/localnerve/vortex-console/internal/database"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/security"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	security.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

// memBlobs is an in-memory Blobs with injectable failures.
type memBlobs struct {
	mu     sync.Mutex
	values map[string][]byte
	revs   map[string]uint64
	puts   int
	getErr error
	putErr error
}

func newMemBlobs() *memBlobs {
	return &memBlobs{values: map[string][]byte{}, revs: map[string]uint64{}}
}

func (m *memBlobs) Get(ctx context.Context, key string) ([]byte, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, 0, m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, 0, database.ErrNotFound
	}
	return v, m.revs[key], nil
}

func (m *memBlobs) Put(ctx context.Context, key string, value []byte, expected uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return 0, m.putErr
	}
	if _, ok := m.values[key]; ok && expected != database.AnyRevision && m.revs[key] != expected {
		return 0, database.ErrVersion
	}
	m.values[key] = append([]byte(nil), value...)
	m.revs[key]++
	return m.revs[key], nil
}

func (m *memBlobs) set(key, value string) {
	m.values[key] = []byte(value)
	m.revs[key] = 1
}

func openStore(t *testing.T, blobs Blobs) *Store {
	t.Helper()
	s, err := Open(context.Background(), blobs, Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func assertDefaults(t *testing.T, doc *models.Document) {
	t.Helper()
	if len(doc.Users) != 2 {
		t.Fatalf("Expected 2 default users, got %d", len(doc.Users))
	}
	admin := doc.Users[doc.UserByEmail("admin")]
	if admin.Role != models.RoleAdmin || admin.Status != models.StatusActive {
		t.Errorf("Unexpected default admin: %+v", admin)
	}
	if !security.CheckPassword(admin.PassHash, "admin") {
		t.Error("Default admin password should be 'admin'")
	}
	if i := doc.UserByEmail("juan@mail.com"); i < 0 || !security.CheckPassword(doc.Users[i].PassHash, "123") {
		t.Error("Expected default user juan@mail.com with password 123")
	}
	if len(doc.Sales) != 1 {
		t.Fatalf("Expected 1 default sale, got %d", len(doc.Sales))
	}
	sale := doc.Sales[0]
	if sale.Service != "NETFLIX 4K" || !sale.Amount.Equal(decimal.RequireFromString("5.50")) || sale.ClientID != admin.ID {
		t.Errorf("Unexpected default sale: %+v", sale)
	}
	if sale.Expiry != "2026-03-14" {
		t.Errorf("Expected backfilled expiry 2026-03-14, got %s", sale.Expiry)
	}
	if len(doc.Catalog.Streaming) != 2 || len(doc.Catalog.Gaming) != 1 {
		t.Errorf("Unexpected default catalog: %+v", doc.Catalog)
	}
	if doc.Catalog.Gaming[0].Name != "FREE FIRE" || doc.Catalog.Gaming[0].Status != models.ItemAvailable {
		t.Errorf("Unexpected gaming item: %+v", doc.Catalog.Gaming[0])
	}
	if len(doc.Tickets) != 0 || len(doc.Logs) != 0 {
		t.Error("Expected no default tickets or logs")
	}
	if doc.Version != models.SchemaVersion {
		t.Errorf("Expected schema version %d, got %d", models.SchemaVersion, doc.Version)
	}
}

func TestOpenWithoutStoredDocument(t *testing.T) {
	blobs := newMemBlobs()
	s := openStore(t, blobs)
	assertDefaults(t, s.Document())
	if blobs.puts != 0 {
		t.Errorf("Loading defaults should not write, got %d puts", blobs.puts)
	}
}

func TestOpenCorruptDocument(t *testing.T) {
	blobs := newMemBlobs()
	blobs.set(DefaultKey, "{not json")
	assertDefaults(t, openStore(t, blobs).Document())
}

func TestOpenEmptyUsers(t *testing.T) {
	for _, blob := range []string{`{"users":[]}`, `{"sales":[]}`} {
		blobs := newMemBlobs()
		blobs.set(DefaultKey, blob)
		assertDefaults(t, openStore(t, blobs).Document())
	}
}

func TestOpenReadFailureReturnsDefaults(t *testing.T) {
	blobs := newMemBlobs()
	blobs.getErr = errors.New("disk on fire")

	s, err := Open(context.Background(), blobs, Options{Logger: zerolog.Nop()})
	if err == nil {
		t.Fatal("Expected the read failure to be returned")
	}
	if s == nil {
		t.Fatal("Expected a usable store alongside the error")
	}
	assertDefaults(t, s.Document())
}

func TestCommitAfterReadFailureKeepsStoredDocument(t *testing.T) {
	blobs := newMemBlobs()
	blobs.set(DefaultKey, `{"users":[{"id":"r","email":"real@x.com","passHash":"x","role":"ADMIN"}]}`)
	blobs.getErr = errors.New("timeout")

	s, err := Open(context.Background(), blobs, Options{Logger: zerolog.Nop()})
	if err == nil {
		t.Fatal("Expected the read failure to be returned")
	}
	receipt, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		return models.LogEntry{Level: models.LevelInfo, Message: "x"}, nil
	})
	if err != nil {
		t.Fatalf("Commit should succeed in memory, got %v", err)
	}
	if types.KindOf(receipt.SaveErr) != types.KindPersistence {
		t.Errorf("Expected a persistence error, got %v", receipt.SaveErr)
	}
	if err := s.Flush(context.Background()); types.KindOf(err) != types.KindPersistence {
		t.Errorf("Expected Flush to refuse, got %v", err)
	}
	if blobs.puts != 0 {
		t.Errorf("Expected no writes, got %d", blobs.puts)
	}
	if !bytes.Contains(blobs.values[DefaultKey], []byte("real@x.com")) {
		t.Errorf("Stored document was overwritten: %s", blobs.values[DefaultKey])
	}
}

func TestCommitReloadsAfterReadRecovers(t *testing.T) {
	blobs := newMemBlobs()
	blobs.set(DefaultKey, `{"users":[{"id":"r","email":"real@x.com","passHash":"x","role":"ADMIN"}]}`)
	blobs.getErr = errors.New("timeout")

	s, _ := Open(context.Background(), blobs, Options{Logger: zerolog.Nop()})
	blobs.getErr = nil

	receipt, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		if doc.UserByEmail("real@x.com") < 0 {
			return models.LogEntry{}, errors.New("mutation saw the defaults")
		}
		return models.LogEntry{Level: models.LevelInfo, Message: "x"}, nil
	})
	if err != nil || receipt.SaveErr != nil {
		t.Fatalf("Expected the commit to land on the reloaded document, got %v / %v", err, receipt.SaveErr)
	}
	if receipt.Revision != 2 {
		t.Errorf("Expected revision 2, got %d", receipt.Revision)
	}
	if !bytes.Contains(blobs.values[DefaultKey], []byte("real@x.com")) {
		t.Errorf("Stored document lost its user: %s", blobs.values[DefaultKey])
	}
}

func TestFlushWritesOnlyPendingChanges(t *testing.T) {
	blobs := newMemBlobs()
	s := openStore(t, blobs)
	if err := s.Flush(context.Background()); err != nil || blobs.puts != 0 {
		t.Fatalf("Expected a clean Flush to skip the write, got %v / %d puts", err, blobs.puts)
	}

	blobs.putErr = errors.New("quota exceeded")
	if _, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		return models.LogEntry{Level: models.LevelInfo, Message: "x"}, nil
	}); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	blobs.putErr = nil
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if blobs.puts != 2 {
		t.Errorf("Expected the pending change to be written, got %d puts", blobs.puts)
	}
	if err := s.Flush(context.Background()); err != nil || blobs.puts != 2 {
		t.Errorf("Expected a second Flush to skip the write, got %v / %d puts", err, blobs.puts)
	}
}

func TestOpenMigratesLegacyDocument(t *testing.T) {
	legacy := `{
		"users": [
			{"id": 7, "name": "Maria Lopez", "email": "maria@mail.com", "pass": "pw", "role": "USER", "status": "Baneado"},
			{"id": 8, "name": "Pedro", "email": "pedro@mail.com", "pass": "pw2", "role": "USER", "status": "Suspendido"}
		],
		"sales": [
			{"id": 101, "client": "Maria Lopez", "service": "MAX", "amount": 3.80, "date": "2026-01-01", "type": "streaming"},
			{"id": 102, "client": "Ghost", "service": "ROBLOX", "amount": 2, "date": "yesterday", "type": "gaming"}
		],
		"catalog": {"streaming": [{"name": "MAX", "price": 3.8, "status": "Agotado"}]}
	}`
	blobs := newMemBlobs()
	blobs.set(DefaultKey, legacy)
	doc := openStore(t, blobs).Document()

	maria := doc.Users[doc.UserByEmail("maria@mail.com")]
	if maria.ID != "7" || maria.Status != models.StatusBanned {
		t.Errorf("Unexpected migrated user: %+v", maria)
	}
	if !security.CheckPassword(maria.PassHash, "pw") {
		t.Error("Legacy plaintext password should be hashed and still verify")
	}
	if doc.Users[doc.UserByEmail("pedro@mail.com")].Status != models.StatusSuspended {
		t.Error("Expected Suspendido to migrate to Suspended")
	}

	admin := doc.UserByEmail(models.ReservedAdminEmail)
	if admin < 0 || doc.Users[admin].Role != models.RoleAdmin {
		t.Fatal("Expected the reserved admin to be restored")
	}

	if doc.Sales[0].ClientID != "7" || doc.Sales[0].Expiry != "2026-01-31" {
		t.Errorf("Unexpected first sale: %+v", doc.Sales[0])
	}
	if doc.Sales[1].ClientLabel != "Ghost" || doc.Sales[1].Expiry != models.NoExpiry {
		t.Errorf("Unexpected second sale: %+v", doc.Sales[1])
	}
	if doc.Catalog.Streaming[0].Status != models.ItemOutOfStock {
		t.Errorf("Expected Agotado to migrate to OutOfStock, got %s", doc.Catalog.Streaming[0].Status)
	}
	if doc.Catalog.Gaming == nil || doc.Tickets == nil || doc.Logs == nil {
		t.Error("Expected repaired collections to be non-nil")
	}
}

func TestOpenMissingCatalogGetsDefault(t *testing.T) {
	blobs := newMemBlobs()
	blobs.set(DefaultKey, `{"users":[{"id":"a","email":"admin","passHash":"x","role":"ADMIN","status":"Active"}]}`)
	doc := openStore(t, blobs).Document()
	if len(doc.Catalog.Streaming) != 2 || len(doc.Catalog.Gaming) != 1 {
		t.Errorf("Expected default catalog, got %+v", doc.Catalog)
	}
}

func TestDecodeMissingCatalogLeavesItEmpty(t *testing.T) {
	d, err := decode([]byte(`{"users":[{"id":"a","email":"admin","passHash":"x","role":"ADMIN"}]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if d.hasCatalog {
		t.Error("Expected hasCatalog to be false")
	}
	if len(d.doc.Catalog.Streaming) != 0 || len(d.doc.Catalog.Gaming) != 0 {
		t.Errorf("decode should not fill the catalog, got %+v", d.doc.Catalog)
	}
}

func TestOpenLocksUnhashableLegacyPassword(t *testing.T) {
	long := strings.Repeat("p", 80)
	blobs := newMemBlobs()
	blobs.set(DefaultKey, `{"users":[
		{"id":1,"email":"admin","pass":"admin","role":"ADMIN"},
		{"id":2,"email":"keep@x.com","pass":"`+long+`","role":"USER"},
		{"id":3,"email":"other@x.com","pass":"fine","role":"USER"}
	],"sales":[{"id":1,"client":"keep@x.com","amount":2,"date":"2026-05-01","type":"gaming"}]}`)
	doc := openStore(t, blobs).Document()

	i := doc.UserByEmail("keep@x.com")
	if i < 0 {
		t.Fatal("Expected keep@x.com to survive the migration")
	}
	if doc.Users[i].PassHash != "" {
		t.Errorf("Expected an empty password hash, got %q", doc.Users[i].PassHash)
	}
	if j := doc.UserByEmail("other@x.com"); j < 0 || !security.CheckPassword(doc.Users[j].PassHash, "fine") {
		t.Error("Expected the other legacy users to migrate normally")
	}
	if len(doc.Sales) != 1 || doc.Sales[0].ClientID != doc.Users[i].ID {
		t.Errorf("Expected the stored sales to survive, got %+v", doc.Sales)
	}
}

func TestReservedAdminPromotedWhenNoAdmin(t *testing.T) {
	blobs := newMemBlobs()
	blobs.set(DefaultKey, `{"users":[{"id":"a","email":"admin","passHash":"x","role":"USER","status":"Active"}]}`)
	doc := openStore(t, blobs).Document()
	if len(doc.Users) != 1 || doc.Users[0].Role != models.RoleAdmin {
		t.Errorf("Expected the reserved admin to be promoted, got %+v", doc.Users)
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	legacy := []byte(`{"users":[{"id":1,"email":"x@mail.com","pass":"p","status":"Activo"}],
		"sales":[{"id":1,"client":"x@mail.com","amount":1,"date":"2026-05-01","type":"gaming"}]}`)
	d, err := decode(legacy)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	doc := d.doc
	if err := repair(doc, 15); err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	once, _ := json.Marshal(doc)
	if err := repair(doc, 15); err != nil {
		t.Fatalf("second repair failed: %v", err)
	}
	twice, _ := json.Marshal(doc)
	if !bytes.Equal(once, twice) {
		t.Errorf("repair is not idempotent:\n%s\n%s", once, twice)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	blobs := newMemBlobs()
	s := openStore(t, blobs)

	_, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		doc.Tickets = append(doc.Tickets, models.Ticket{ID: "t1", User: "admin", Subject: "s", Message: "m", Status: models.TicketOpen, CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
		return models.LogEntry{Level: models.LevelInfo, Message: "ticket"}, nil
	})
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	first, _ := json.Marshal(s.Document())
	reopened := openStore(t, blobs)
	second, _ := json.Marshal(reopened.Document())
	if !bytes.Equal(first, second) {
		t.Errorf("Document changed across save and load:\n%s\n%s", first, second)
	}
	if reopened.Revision() != s.Revision() {
		t.Errorf("Expected revision %d after reload, got %d", s.Revision(), reopened.Revision())
	}
}

func TestCommitAppendsOneLogAndPersistsOnce(t *testing.T) {
	blobs := newMemBlobs()
	s := openStore(t, blobs)

	receipt, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		doc.Catalog.Gaming[0].Status = models.ItemOutOfStock
		return models.LogEntry{Level: models.LevelWarn, Message: "stock"}, nil
	})
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if receipt.SaveErr != nil {
		t.Errorf("Unexpected save error: %v", receipt.SaveErr)
	}
	if blobs.puts != 1 {
		t.Errorf("Expected exactly 1 write, got %d", blobs.puts)
	}
	doc := s.Document()
	if len(doc.Logs) != 1 || doc.Logs[0].Timestamp.IsZero() {
		t.Errorf("Expected one timestamped log entry, got %+v", doc.Logs)
	}
	if receipt.Revision != 1 {
		t.Errorf("Expected revision 1, got %d", receipt.Revision)
	}
}

func TestCommitErrorLeavesDocumentUntouched(t *testing.T) {
	blobs := newMemBlobs()
	s := openStore(t, blobs)
	before, _ := json.Marshal(s.Document())

	_, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		doc.Users = nil
		return models.LogEntry{}, types.Validation("name", "required")
	})
	if types.KindOf(err) != types.KindValidation {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	after, _ := json.Marshal(s.Document())
	if !bytes.Equal(before, after) {
		t.Error("A failed mutation changed the document")
	}
	if blobs.puts != 0 {
		t.Errorf("A failed mutation wrote %d times", blobs.puts)
	}
}

func TestCommitSaveFailureKeepsMemory(t *testing.T) {
	blobs := newMemBlobs()
	blobs.putErr = errors.New("quota exceeded")
	s := openStore(t, blobs)

	receipt, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		doc.Catalog.Streaming = append(doc.Catalog.Streaming, models.CatalogItem{Name: "MAX", Price: decimal.NewFromInt(4), Status: models.ItemAvailable})
		return models.LogEntry{Level: models.LevelInfo, Message: "add"}, nil
	})
	if err != nil {
		t.Fatalf("Commit should succeed in memory, got %v", err)
	}
	if types.KindOf(receipt.SaveErr) != types.KindPersistence {
		t.Errorf("Expected a persistence error, got %v", receipt.SaveErr)
	}
	if len(s.Document().Catalog.Streaming) != 3 {
		t.Error("In-memory change should be kept after a failed save")
	}
}

func TestCommitExpectedRevision(t *testing.T) {
	s := openStore(t, newMemBlobs())
	noop := func(doc *models.Document) (models.LogEntry, error) {
		return models.LogEntry{Level: models.LevelInfo, Message: "noop"}, nil
	}

	if _, err := s.Commit(WithExpectedRevision(context.Background(), 0), noop); err != nil {
		t.Fatalf("Commit at the current revision failed: %v", err)
	}
	_, err := s.Commit(WithExpectedRevision(context.Background(), 0), noop)
	if types.KindOf(err) != types.KindConflict {
		t.Errorf("Expected a conflict for a stale revision, got %v", err)
	}
}

func TestCommitOverwritesMovedRevision(t *testing.T) {
	blobs := newMemBlobs()
	s := openStore(t, blobs)
	blobs.set(DefaultKey, `{"users":[]}`)
	blobs.revs[DefaultKey] = 9

	receipt, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
		return models.LogEntry{Level: models.LevelInfo, Message: "x"}, nil
	})
	if err != nil || receipt.SaveErr != nil {
		t.Fatalf("Expected the write to win, got %v / %v", err, receipt.SaveErr)
	}
	if receipt.Revision != 10 {
		t.Errorf("Expected revision 10, got %d", receipt.Revision)
	}
}

func TestLogCapAcrossCommits(t *testing.T) {
	s, err := Open(context.Background(), newMemBlobs(), Options{Logger: zerolog.Nop(), LogCap: 3})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		msg := fmt.Sprintf("op %d", i)
		if _, err := s.Commit(context.Background(), func(doc *models.Document) (models.LogEntry, error) {
			return models.LogEntry{Level: models.LevelInfo, Message: msg}, nil
		}); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	}
	logs := s.Document().Logs
	if len(logs) != 3 || logs[0].Message != "op 2" {
		t.Errorf("Expected the last 3 entries, got %+v", logs)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("juan@mail.com"); got != "JUAN" {
		t.Errorf("Expected JUAN, got %s", got)
	}
	if got := DisplayName("admin"); got != "ADMIN" {
		t.Errorf("Expected ADMIN, got %s", got)
	}
}
