// Package store persists validated contacts and rejected-row
// diagnostics. The importer only sees the two small interfaces below;
// the Postgres implementation enforces the per-user email uniqueness
// constraint and reports violations as field errors so the importer can
// route them like any other validation failure.
package store

import (
	"context"

	"contact-importer/internal/contact"
)

// ContactStore is the record store consumed by the importer.
type ContactStore interface {
	// CreateContact persists a validated contact. A uniqueness
	// violation on (email, owner) is returned as contact.FieldErrors
	// with kind KindConflict; any other error is infrastructural.
	CreateContact(ctx context.Context, c *contact.Contact) error
}

// ErrorLog captures rejected-row diagnostics: the raw field mapping and
// the joined human-readable message. Entries are append-only.
type ErrorLog interface {
	Append(ctx context.Context, data map[string]string, message string) error
}
