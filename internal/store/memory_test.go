package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"contact-importer/internal/contact"
)

func TestMemStoreUniqueEmailPerOwner(t *testing.T) {
	st := NewMemStore()
	ctx := context.Background()
	owner := uuid.New()

	first := &contact.Contact{Name: "John Doe", Email: "john@example.com", OwnerID: owner}
	if err := st.CreateContact(ctx, first); err != nil {
		t.Fatalf("CreateContact returned error: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected assigned ID")
	}

	dup := &contact.Contact{Name: "John Clone", Email: "John@Example.com", OwnerID: owner}
	err := st.CreateContact(ctx, dup)
	if err == nil {
		t.Fatal("expected conflict for duplicate email")
	}
	var fieldErrs contact.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("error type = %T, want FieldErrors", err)
	}
	if !fieldErrs.Has(contact.FieldEmail, contact.KindConflict) {
		t.Errorf("errors = %v, want email conflict", fieldErrs)
	}

	other := &contact.Contact{Name: "John Doe", Email: "john@example.com", OwnerID: uuid.New()}
	if err := st.CreateContact(ctx, other); err != nil {
		t.Errorf("same email under another owner should succeed, got %v", err)
	}
}

func TestMemErrorLogCopiesData(t *testing.T) {
	el := NewMemErrorLog()
	data := map[string]string{"name": "John Doe"}

	if err := el.Append(context.Background(), data, "Name can't be blank"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	data["name"] = "mutated"

	if got := el.Entries[0].Data["name"]; got != "John Doe" {
		t.Errorf("entry data = %q, want snapshot of original", got)
	}
	if el.Entries[0].Message != "Name can't be blank" {
		t.Errorf("message = %q", el.Entries[0].Message)
	}
}
