package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/localnerve/vortex-console/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	path := flag.String("db", ":memory:", "sqlite database file to inspect")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&schema)
		fmt.Println(schema)
	}

	// List stored blobs without their values
	var entries []models.KVEntry
	if err := db.Select("blob_key", "revision", "updated_at").Order("blob_key").Find(&entries).Error; err != nil {
		log.Fatal(err)
	}
	if len(entries) > 0 {
		fmt.Printf("\n=== Entries ===\n")
	}
	for _, e := range entries {
		fmt.Printf("%s\trevision %d\t%s\n", e.Key, e.Revision, e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}
