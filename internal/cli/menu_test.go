// Package cli tests for menu dispatch and the interactive loop.
package cli

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kimhsiao/inventory/internal/config"
	"github.com/kimhsiao/inventory/internal/csvio"
	"github.com/kimhsiao/inventory/internal/date"
	"github.com/kimhsiao/inventory/internal/db"
	"github.com/kimhsiao/inventory/internal/inventory"
)

// TestParseAction verifies the tagged dispatch table.
func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"a", ActionAddProduct},
		{"A", ActionAddProduct},
		{" a ", ActionAddProduct},
		{"v", ActionViewProduct},
		{"b", ActionBackup},
		{"q", ActionQuit},
		{"Q", ActionQuit},
		{"", ActionUnknown},
		{"x", ActionUnknown},
		{"add", ActionUnknown},
	}
	for _, tt := range tests {
		if got := parseAction(tt.in); got != tt.want {
			t.Errorf("parseAction(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// setupTestApp builds an App over a migrated in-memory store with file
// paths inside a temp dir.
func setupTestApp(t *testing.T) *App {
	t.Helper()

	store, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := db.NewMigrator(store.DB).Up(); err != nil {
		t.Fatalf("Failed to migrate test store: %v", err)
	}

	repo := db.NewProductRepository(store.DB)
	svc := inventory.NewService(repo)
	dir := t.TempDir()
	return &App{
		Config: config.Config{
			DataDir:      dir,
			SnapshotPath: filepath.Join(dir, "inventory.csv"),
			BackupPath:   filepath.Join(dir, "backup.csv"),
			LogLevel:     "info",
		},
		Service:  svc,
		Importer: csvio.NewImporter(svc),
		Exporter: csvio.NewExporter(repo),
	}
}

// runMenu drives the interactive loop with a scripted session.
func runMenu(t *testing.T, app *App, script string) string {
	t.Helper()
	var out bytes.Buffer
	m := &Menu{
		app: app,
		in:  bufio.NewScanner(strings.NewReader(script)),
		out: &out,
	}
	m.Run()
	return out.String()
}

// TestMenu_addViewBackupQuit verifies a full interactive session.
func TestMenu_addViewBackupQuit(t *testing.T) {
	app := setupTestApp(t)

	out := runMenu(t, app, strings.Join([]string{
		"a",      // add
		"Widget", // name
		"5",      // quantity
		"2495",   // price in cents
		"v",      // view
		"1",      // id
		"b",      // backup
		"q",      // quit
	}, "\n")+"\n")

	if !strings.Contains(out, "Product: Widget") {
		t.Errorf("output missing product view:\n%s", out)
	}
	if !strings.Contains(out, "Price: $24.95") {
		t.Errorf("output missing formatted price:\n%s", out)
	}
	if !strings.Contains(out, "Backup created.") {
		t.Errorf("output missing backup confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Errorf("output missing goodbye:\n%s", out)
	}

	count, err := app.Service.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

// TestMenu_invalidInputReprompts verifies validation failures guide and
// re-prompt instead of crashing.
func TestMenu_invalidInputReprompts(t *testing.T) {
	app := setupTestApp(t)

	out := runMenu(t, app, strings.Join([]string{
		"a",
		"Widget",
		"five", // bad quantity, re-prompts
		"100",
		"Widget",
		"5",
		"100",
		"q",
	}, "\n")+"\n")

	if !strings.Contains(out, "Quantity must be an integer") {
		t.Errorf("output missing guidance:\n%s", out)
	}

	count, _ := app.Service.Count()
	if count != 1 {
		t.Errorf("Count = %d, want 1 after corrected retry", count)
	}
}

// TestMenu_viewMissingIDHintsRange verifies the id-range hint.
func TestMenu_viewMissingIDHintsRange(t *testing.T) {
	app := setupTestApp(t)
	if _, err := app.Service.Upsert(inventory.Candidate{
		Name: "Widget", Quantity: 1, Price: 100,
		UpdatedAt: date.MustParse("2026-01-15"),
	}); err != nil {
		t.Fatalf("seed upsert failed: %v", err)
	}

	out := runMenu(t, app, "v\n9\n1\nq\n")

	if !strings.Contains(out, "Only 1 product(s) in the inventory. Try again.") {
		t.Errorf("output missing range hint:\n%s", out)
	}
	if !strings.Contains(out, "Product: Widget") {
		t.Errorf("output missing eventual view:\n%s", out)
	}
}

// TestMenu_invalidChoice verifies unknown menu choices re-prompt.
func TestMenu_invalidChoice(t *testing.T) {
	app := setupTestApp(t)

	out := runMenu(t, app, "x\nq\n")
	if !strings.Contains(out, "Please choose a valid action!") {
		t.Errorf("output missing invalid-choice guidance:\n%s", out)
	}
}
