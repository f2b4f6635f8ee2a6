// Package csvio reads and writes inventory CSV snapshots.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kimhsiao/inventory/internal/date"
	apperrors "github.com/kimhsiao/inventory/internal/errors"
	"github.com/kimhsiao/inventory/internal/inventory"
	"github.com/kimhsiao/inventory/internal/logging"
)

// Import snapshot columns, located by header name.
const (
	colName     = "product_name"
	colQuantity = "product_quantity"
	colPrice    = "product_price"
	colDate     = "date_updated"
)

// NormalizePrice converts a currency string such as "$24.95" into
// integer cents by stripping the dollar sign and the decimal separator
// and parsing the remaining digits. Inputs are assumed to carry exactly
// two fraction digits: "$24.9" normalizes to 249, matching the snapshot
// format this tool has always consumed.
func NormalizePrice(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cents, err := strconv.ParseInt(strings.TrimSpace(cleaned), 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "price "+strconv.Quote(raw)+" is not a currency amount", err)
	}
	if cents < 0 {
		return 0, apperrors.New(apperrors.ErrInvalidInput, "price cannot be negative")
	}
	return cents, nil
}

// columnIndex maps the snapshot header to field positions.
type columnIndex struct {
	name     int
	quantity int
	price    int
	date     int
}

func indexHeader(header []string) (columnIndex, error) {
	idx := columnIndex{name: -1, quantity: -1, price: -1, date: -1}
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case colName:
			idx.name = i
		case colQuantity:
			idx.quantity = i
		case colPrice:
			idx.price = i
		case colDate:
			idx.date = i
		}
	}
	for _, missing := range []struct {
		col string
		pos int
	}{
		{colName, idx.name},
		{colQuantity, idx.quantity},
		{colPrice, idx.price},
		{colDate, idx.date},
	} {
		if missing.pos < 0 {
			return idx, apperrors.New(apperrors.ErrImportFailed, "snapshot header is missing column "+missing.col)
		}
	}
	return idx, nil
}

// normalizeRow converts one raw snapshot row into a candidate state.
func normalizeRow(rec []string, idx columnIndex) (inventory.Candidate, error) {
	name := strings.TrimSpace(rec[idx.name])
	if name == "" {
		return inventory.Candidate{}, apperrors.New(apperrors.ErrInvalidInput, "product name is empty")
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(rec[idx.quantity]), 10, 64)
	if err != nil {
		return inventory.Candidate{}, apperrors.Wrap(apperrors.ErrInvalidInput, "quantity "+strconv.Quote(rec[idx.quantity])+" is not an integer", err)
	}
	if qty < 0 {
		return inventory.Candidate{}, apperrors.New(apperrors.ErrInvalidInput, "quantity cannot be negative")
	}

	cents, err := NormalizePrice(rec[idx.price])
	if err != nil {
		return inventory.Candidate{}, err
	}

	updated, err := date.ParseSlash(strings.TrimSpace(rec[idx.date]))
	if err != nil {
		return inventory.Candidate{}, apperrors.Wrap(apperrors.ErrInvalidInput, "bad date_updated value", err)
	}

	return inventory.Candidate{Name: name, Quantity: qty, Price: cents, UpdatedAt: updated}, nil
}

// ReadSnapshot parses and normalizes every row of an import snapshot.
// The whole file is read and validated before anything is returned, so
// one malformed row rejects the batch with MALFORMED_ROW naming the
// 1-based data row; no partial result escapes. Re-reading the source
// restarts the sequence from the top.
func ReadSnapshot(r io.Reader) ([]inventory.Candidate, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, "reading snapshot", err)
	}
	if len(records) == 0 {
		return nil, apperrors.New(apperrors.ErrImportFailed, "snapshot has no header row")
	}

	idx, err := indexHeader(records[0])
	if err != nil {
		return nil, err
	}

	candidates := make([]inventory.Candidate, 0, len(records)-1)
	for i, rec := range records[1:] {
		c, err := normalizeRow(rec, idx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrMalformedRow, "row "+strconv.Itoa(i+1), err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Importer loads snapshot rows into the store through the upsert engine.
type Importer struct {
	svc *inventory.Service
}

// NewImporter creates a new Importer instance.
func NewImporter(svc *inventory.Service) *Importer {
	return &Importer{svc: svc}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	ImportID string
	Rows     int
	Created  int
	Updated  int
	Skipped  int
	Duration time.Duration
}

// Run imports the snapshot at path. Every row is normalized before the
// first write, so a malformed row aborts with the store untouched.
func (im *Importer) Run(path string) (*ImportResult, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFailed, "opening snapshot "+path, err)
	}
	defer f.Close()

	candidates, err := ReadSnapshot(f)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{
		ImportID: uuid.New().String(),
		Rows:     len(candidates),
	}
	for _, c := range candidates {
		outcome, err := im.svc.Upsert(c)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case inventory.OutcomeCreated:
			res.Created++
		case inventory.OutcomeUpdated:
			res.Updated++
		case inventory.OutcomeSkipped:
			res.Skipped++
		}
	}
	res.Duration = time.Since(start)

	logging.Info("snapshot imported", map[string]interface{}{
		"import_id": res.ImportID,
		"path":      path,
		"rows":      res.Rows,
		"created":   res.Created,
		"updated":   res.Updated,
		"skipped":   res.Skipped,
	})
	return res, nil
}
