// Package inventory tests for the recency-gated upsert engine.
package inventory

import (
	"strings"
	"testing"

	"github.com/kimhsiao/inventory/internal/date"
	"github.com/kimhsiao/inventory/internal/db"
	apperrors "github.com/kimhsiao/inventory/internal/errors"
)

// setupTestService builds a Service over a migrated in-memory store.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	store, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := db.NewMigrator(store.DB).Up(); err != nil {
		t.Fatalf("Failed to migrate test store: %v", err)
	}
	return NewService(db.NewProductRepository(store.DB))
}

func candidate(name string, qty, price int64, day string) Candidate {
	return Candidate{Name: name, Quantity: qty, Price: price, UpdatedAt: date.MustParse(day)}
}

// TestParseCandidate verifies edit-boundary validation.
func TestParseCandidate(t *testing.T) {
	today := date.MustParse("2026-09-01")

	tests := []struct {
		name     string
		pname    string
		quantity string
		price    string
		wantErr  bool
	}{
		{"valid", "Widget", "5", "1000", false},
		{"valid with spaces", "  Widget  ", " 5 ", " 1000 ", false},
		{"empty name", "", "5", "1000", true},
		{"blank name", "   ", "5", "1000", true},
		{"non-integer quantity", "Widget", "five", "1000", true},
		{"float quantity", "Widget", "5.5", "1000", true},
		{"non-integer price", "Widget", "5", "$10.00", true},
		{"negative quantity", "Widget", "-1", "1000", true},
		{"negative price", "Widget", "5", "-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCandidate(tt.pname, tt.quantity, tt.price, today)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !apperrors.Is(err, apperrors.ErrInvalidInput) {
					t.Errorf("error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCandidate failed: %v", err)
			}
			if c.Name != "Widget" || c.Quantity != 5 || c.Price != 1000 {
				t.Errorf("candidate = %+v", c)
			}
		})
	}
}

// TestUpsertThenGet verifies a created record carries exactly the
// candidate fields.
func TestUpsertThenGet(t *testing.T) {
	svc := setupTestService(t)

	outcome, err := svc.Upsert(candidate("Widget", 5, 2495, "2026-01-15"))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Errorf("outcome = %v, want created", outcome)
	}

	p, err := svc.store.GetByName("Widget")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if p.Quantity != 5 || p.Price != 2495 {
		t.Errorf("stored = %+v", p)
	}
	if !p.UpdatedAt.Equal(date.MustParse("2026-01-15")) {
		t.Errorf("UpdatedAt = %v, want 2026-01-15", p.UpdatedAt)
	}
}

// TestUpsertIdempotence verifies an equal timestamp never overwrites.
func TestUpsertIdempotence(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.Upsert(candidate("Widget", 5, 1000, "2026-01-15")); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	// Same timestamp, different payload: must be a no-op, repeatedly.
	for i := 0; i < 3; i++ {
		outcome, err := svc.Upsert(candidate("Widget", 99, 9999, "2026-01-15"))
		if err != nil {
			t.Fatalf("replay Upsert failed: %v", err)
		}
		if outcome != OutcomeSkipped {
			t.Errorf("outcome = %v, want skipped", outcome)
		}
	}

	p, err := svc.store.GetByName("Widget")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if p.Quantity != 5 || p.Price != 1000 {
		t.Errorf("stored = %+v, want first write preserved", p)
	}
}

// TestUpsertMonotonicity verifies only strictly newer dates win.
func TestUpsertMonotonicity(t *testing.T) {
	t.Run("newer wins", func(t *testing.T) {
		svc := setupTestService(t)

		if _, err := svc.Upsert(candidate("Widget", 5, 1000, "2026-01-15")); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		outcome, err := svc.Upsert(candidate("Widget", 7, 1250, "2026-02-01"))
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if outcome != OutcomeUpdated {
			t.Errorf("outcome = %v, want updated", outcome)
		}

		p, _ := svc.store.GetByName("Widget")
		if p.Quantity != 7 || p.Price != 1250 || !p.UpdatedAt.Equal(date.MustParse("2026-02-01")) {
			t.Errorf("stored = %+v, want newer state", p)
		}
	})

	t.Run("older discarded", func(t *testing.T) {
		svc := setupTestService(t)

		if _, err := svc.Upsert(candidate("Widget", 5, 1000, "2026-02-01")); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		outcome, err := svc.Upsert(candidate("Widget", 7, 1250, "2026-01-15"))
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if outcome != OutcomeSkipped {
			t.Errorf("outcome = %v, want skipped", outcome)
		}

		p, _ := svc.store.GetByName("Widget")
		if p.Quantity != 5 || p.Price != 1000 || !p.UpdatedAt.Equal(date.MustParse("2026-02-01")) {
			t.Errorf("stored = %+v, want original state", p)
		}
	})
}

// TestUpsertUniqueness verifies a name never yields two records.
func TestUpsertUniqueness(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.Upsert(candidate("Widget", 5, 1000, "2026-01-15")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := svc.Upsert(candidate("Widget", 7, 1250, "2026-02-01")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	count, err := svc.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

// TestUpsertRejectsInvalidCandidate verifies the engine validates even
// when ParseCandidate was bypassed.
func TestUpsertRejectsInvalidCandidate(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Upsert(Candidate{Name: "", Quantity: 1, Price: 1, UpdatedAt: date.MustParse("2026-01-15")})
	if !apperrors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}

	count, _ := svc.Count()
	if count != 0 {
		t.Errorf("Count = %d, want 0 after rejected upsert", count)
	}
}

// TestView verifies the lookup and the valid-range hint on a miss.
func TestView(t *testing.T) {
	svc := setupTestService(t)

	if _, err := svc.Upsert(candidate("Widget", 5, 1000, "2026-01-15")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	p, err := svc.View(1)
	if err != nil {
		t.Fatalf("View(1) failed: %v", err)
	}
	if p.Name != "Widget" {
		t.Errorf("View(1).Name = %q", p.Name)
	}

	_, err = svc.View(42)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("View(42) error = %v, want NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "only 1 product(s)") {
		t.Errorf("View(42) message = %q, want inventory size hint", err.Error())
	}

	// A failed lookup must not mutate state.
	count, _ := svc.Count()
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}
