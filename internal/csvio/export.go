package csvio

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kimhsiao/inventory/internal/errors"
	"github.com/kimhsiao/inventory/internal/logging"
	"github.com/kimhsiao/inventory/internal/models"
)

// exportHeader is the column order of a backup snapshot.
var exportHeader = []string{
	"product_id",
	"product_name",
	"product_quantity",
	"product_price",
	"date_updated",
}

// Lister is the store surface the exporter reads from.
type Lister interface {
	ListOrderedByID() ([]*models.Product, error)
}

// Exporter serializes the store back to a snapshot file.
type Exporter struct {
	store Lister
}

// NewExporter creates a new Exporter instance.
func NewExporter(store Lister) *Exporter {
	return &Exporter{store: store}
}

// ExportResult summarizes one backup run.
type ExportResult struct {
	BackupID string
	Rows     int
	Duration time.Duration
}

// Run appends a header row and every product in ascending id order to
// the file at path, creating it when absent. The destination is opened
// in append mode, so repeated backups accumulate sections, each with
// its own header. Prices are written as integer cents and dates in ISO
// form.
func (e *Exporter) Run(path string) (*ExportResult, error) {
	start := time.Now()

	products, err := e.store.ListOrderedByID()
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "opening backup "+path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "writing header", err)
	}
	for _, p := range products {
		rec := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatInt(p.Price, 10),
			p.UpdatedAt.String(),
		}
		if err := w.Write(rec); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrExportFailed, "writing product "+p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrExportFailed, "flushing backup", err)
	}

	res := &ExportResult{
		BackupID: uuid.New().String(),
		Rows:     len(products),
		Duration: time.Since(start),
	}
	logging.Info("backup created", map[string]interface{}{
		"backup_id": res.BackupID,
		"path":      path,
		"rows":      res.Rows,
	})
	return res, nil
}
