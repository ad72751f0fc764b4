// blobs.go
//
// Storefront and admin console service for Vortex streaming and gaming subscriptions
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of vortex-console.
// vortex-console is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// vortex-console is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with vortex-console.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/vortex-console/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

var (
	// ErrNotFound is returned by Get when no row exists for the key.
	ErrNotFound = errors.New("not found")

	// ErrVersion is returned by Put when the stored revision moved on.
	ErrVersion = errors.New("E_VERSION")
)

// AnyRevision skips the revision check in Put.
const AnyRevision = ^uint64(0)

// BlobRepository reads and writes whole JSON values in the key/value table.
type BlobRepository struct {
	db *gorm.DB
}

func NewBlobRepository(db *gorm.DB) *BlobRepository {
	return &BlobRepository{db: db}
}

func (r *BlobRepository) quiet(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Session(&gorm.Session{Logger: r.db.Logger.LogMode(logger.Silent)})
}

// Get returns the value and revision stored under key.
func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, uint64, error) {
	var entry models.KVEntry
	err := r.quiet(ctx).
		Clauses(hints.Comment("select", "vortex:blob_get")).
		Where("blob_key = ?", key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	return []byte(entry.Value.JSON), entry.Revision, nil
}

// Put replaces the whole value under key and returns the new revision.
// The write succeeds only while the stored revision equals expected,
// unless expected is AnyRevision. A missing row is created at revision 1.
func (r *BlobRepository) Put(ctx context.Context, key string, value []byte, expected uint64) (uint64, error) {
	var newRevision uint64

	err := r.quiet(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.KVEntry
		err := tx.Clauses(hints.Comment("select", "vortex:blob_put")).
			Where("blob_key = ?", key).
			First(&entry).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.KVEntry{
				Key:      key,
				Value:    models.JSON{JSON: value},
				Revision: 1,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create %s: %w", key, err)
			}
			newRevision = 1
			return nil
		}
		if err != nil {
			return err
		}

		if expected != AnyRevision && entry.Revision != expected {
			return ErrVersion
		}

		result := tx.Model(&models.KVEntry{}).
			Clauses(hints.Comment("update", "vortex:blob_put")).
			Where("blob_key = ? AND revision = ?", key, entry.Revision).
			Updates(map[string]interface{}{
				"blob_value": models.JSON{JSON: value},
				"revision":   entry.Revision + 1,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w - failed to update %s due to concurrent modification", ErrVersion, key)
		}
		newRevision = entry.Revision + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newRevision, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	return r.quiet(ctx).
		Clauses(hints.Comment("delete", "vortex:blob_delete")).
		Where("blob_key = ?", key).
		Delete(&models.KVEntry{}).Error
}
