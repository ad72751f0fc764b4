// Package store keeps the single business document in memory and persists
// it whole to a key/value medium after every successful mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/localnerve/vortex-console/internal/database"
	"github.com/localnerve/vortex-console/internal/metrics"
	"github.com/localnerve/vortex-console/internal/models"
	"github.com/localnerve/vortex-console/internal/types"
	"github.com/rs/zerolog"
)

// DefaultKey is the storage key of the business document.
const DefaultKey = "vortex_v3_data"

var errStoredUnread = errors.New("stored document could not be read")

// Blobs is the persistence medium: whole values addressed by key, each
// carrying a revision that advances on every write.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, uint64, error)
	Put(ctx context.Context, key string, value []byte, expected uint64) (uint64, error)
}

type Options struct {
	Key    string
	LogCap int
	Logger zerolog.Logger
	Now    func() time.Time
}

// Receipt describes a committed mutation. SaveErr is set when the change was
// applied in memory but could not be written.
type Receipt struct {
	Revision uint64
	SaveErr  error
}

// Store serializes every mutation of the document.
type Store struct {
	mu       sync.RWMutex
	blobs    Blobs
	key      string
	logCap   int
	log      zerolog.Logger
	now      func() time.Time
	doc      *models.Document
	revision uint64
	// unloaded is set while the stored document could not be read. Writes
	// are refused so the real document is never overwritten.
	unloaded bool
	dirty    bool
}

// Open loads the document from blobs. The returned Store is always usable:
// when the medium cannot be read the error is returned alongside a Store
// holding the default document.
func Open(ctx context.Context, blobs Blobs, opts Options) (*Store, error) {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.LogCap < 1 {
		opts.LogCap = models.DefaultLogCap
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	s := &Store{
		blobs:  blobs,
		key:    opts.Key,
		logCap: opts.LogCap,
		log:    opts.Logger.With().Str("component", "store").Str("key", opts.Key).Logger(),
		now:    opts.Now,
	}

	doc, revision, err := s.load(ctx)
	if doc == nil {
		var derr error
		if doc, derr = DefaultDocument(); derr != nil {
			return nil, derr
		}
	}
	s.doc = doc
	s.revision = revision
	s.unloaded = err != nil
	return s, err
}

// load returns a nil document when defaults should be used. An error means
// the medium could not be read.
func (s *Store) load(ctx context.Context) (*models.Document, uint64, error) {
	blob, revision, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.log.Info().Msg("no stored document, starting from defaults")
			return nil, 0, nil
		}
		s.log.Error().Err(err).Msg("failed to read stored document")
		return nil, 0, fmt.Errorf("failed to read %s: %w", s.key, err)
	}

	d, err := decode(blob)
	switch {
	case err != nil:
		s.log.Warn().Err(types.Integrity(err)).Msg("stored document is unreadable, restoring defaults")
		return nil, revision, nil
	case !d.hasUsers:
		s.log.Warn().Msg("stored document has no users, restoring defaults")
		return nil, revision, nil
	}

	doc := d.doc
	for _, email := range d.locked {
		s.log.Warn().Str("email", email).Msg("legacy password could not be hashed, account locked")
	}
	if !d.hasCatalog {
		def, err := DefaultDocument()
		if err != nil {
			return nil, revision, err
		}
		s.log.Warn().Msg("stored document has no catalog, restoring the default one")
		doc.Catalog = def.Catalog
	}

	if err := repair(doc, s.logCap); err != nil {
		return nil, revision, err
	}
	return doc, revision, nil
}

// reload retries a failed initial read. It must be called with the write
// lock held.
func (s *Store) reload(ctx context.Context) {
	doc, revision, err := s.load(ctx)
	if err != nil {
		return
	}
	if doc == nil {
		if doc, err = DefaultDocument(); err != nil {
			return
		}
	}
	s.log.Info().Uint64("revision", revision).Msg("stored document reloaded")
	s.doc = doc
	s.revision = revision
	s.unloaded = false
	s.dirty = false
}

// Document returns a deep copy of the current document.
func (s *Store) Document() *models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Read calls fn with the live document under the read lock. fn must not
// retain or modify it.
func (s *Store) Read(fn func(doc *models.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) LogCap() int {
	return s.logCap
}

func (s *Store) Now() time.Time {
	return s.now()
}

// Flush writes the document only when it holds changes that were not saved.
// The error, if any, is a persistence error.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.persist(ctx)
}

// Mutation changes doc and returns the one log entry that describes it.
type Mutation func(doc *models.Document) (models.LogEntry, error)

// Commit applies fn to a copy of the document. When fn fails nothing changes.
// Otherwise its log entry is appended, the copy becomes current and the
// document is written once. A failed write is reported in the receipt; the
// in-memory change is kept.
func (s *Store) Commit(ctx context.Context, fn Mutation) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unloaded {
		s.reload(ctx)
	}

	if expected, ok := ExpectedRevision(ctx); ok && expected != s.revision {
		return Receipt{Revision: s.revision}, types.Conflict(
			fmt.Sprintf("document changed (revision %d, expected %d)", s.revision, expected))
	}

	next := s.doc.Clone()
	entry, err := fn(next)
	if err != nil {
		return Receipt{Revision: s.revision}, err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	next.AppendLog(entry, s.logCap)
	next.Version = models.SchemaVersion
	s.doc = next
	s.dirty = true

	saveErr := s.persist(ctx)
	return Receipt{Revision: s.revision, SaveErr: saveErr}, nil
}

// persist must be called with the write lock held.
func (s *Store) persist(ctx context.Context) error {
	if s.unloaded {
		metrics.DocumentSaves.WithLabelValues("error").Inc()
		s.log.Warn().Msg("stored document was never read, refusing to overwrite it")
		return types.Persistence(errStoredUnread)
	}

	blob, err := json.Marshal(s.doc)
	if err != nil {
		metrics.DocumentSaves.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("failed to encode document")
		return types.Persistence(err)
	}

	revision, err := s.blobs.Put(ctx, s.key, blob, s.revision)
	if errors.Is(err, database.ErrVersion) {
		// this process owns the document, so the last write wins
		s.log.Warn().Uint64("revision", s.revision).Msg("stored revision moved, overwriting")
		revision, err = s.blobs.Put(ctx, s.key, blob, database.AnyRevision)
	}
	if err != nil {
		metrics.DocumentSaves.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("failed to save document")
		return types.Persistence(err)
	}

	metrics.DocumentSaves.WithLabelValues("ok").Inc()
	s.revision = revision
	s.dirty = false
	return nil
}

type expectedRevisionKey struct{}

// WithExpectedRevision makes the next Commit on ctx fail with a conflict
// unless the document is still at revision.
func WithExpectedRevision(ctx context.Context, revision uint64) context.Context {
	return context.WithValue(ctx, expectedRevisionKey{}, revision)
}

func ExpectedRevision(ctx context.Context) (uint64, bool) {
	rev, ok := ctx.Value(expectedRevisionKey{}).(uint64)
	return rev, ok
}
