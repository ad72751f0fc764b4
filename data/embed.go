package data

import (
	_ "embed"
)

// DefaultDocument is the document served when nothing usable is stored.
// It is written in the legacy shape and goes through load migration.
//
//go:embed seed/default_document.json
var DefaultDocument []byte

// ServiceSuggestions lists well known service names per catalog bucket.
//
//go:embed seed/service_suggestions.json
var ServiceSuggestions []byte

//go:embed initdb/mariadb/001-ddl-tables.sql
var InitdbMariaDBTables string

//go:embed initdb/mariadb/002-ddl-privileges.sql
var InitdbMariaDBPrivileges string
