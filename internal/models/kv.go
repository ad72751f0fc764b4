package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// KVEntry is one row of the key/value table holding whole JSON blobs.
// The business document and each session live under their own key.
type KVEntry struct {
	Key       string `gorm:"column:blob_key;primaryKey;size:191"`
	Value     JSON   `gorm:"column:blob_value;not null"`
	Revision  uint64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for KVEntry
func (KVEntry) TableName() string {
	return "vortex_kv"
}

// JSON wraps datatypes.JSON so the column type can follow the dialect.
type JSON struct {
	datatypes.JSON
}

func (j JSON) Value() (driver.Value, error) {
	if len(j.JSON) == 0 {
		return "null", nil
	}
	return string(j.JSON), nil
}

func (j *JSON) Scan(value interface{}) error {
	return j.JSON.Scan(value)
}

// GormDBDataType picks a JSON-capable column per driver; MSSQL has no json type.
func (JSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}
