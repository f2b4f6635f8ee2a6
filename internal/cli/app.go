// Package cli provides the inventory command surface: one-shot
// subcommands and the interactive menu.
package cli

import (
	stderrors "errors"

	"github.com/google/subcommands"

	"github.com/kimhsiao/inventory/internal/config"
	"github.com/kimhsiao/inventory/internal/csvio"
	apperrors "github.com/kimhsiao/inventory/internal/errors"
	"github.com/kimhsiao/inventory/internal/inventory"
)

// App wires the inventory core to the command surface.
type App struct {
	Config   config.Config
	Service  *inventory.Service
	Importer *csvio.Importer
	Exporter *csvio.Exporter
}

// Commands returns every subcommand backed by the app.
func (a *App) Commands() []subcommands.Command {
	return []subcommands.Command{
		&menuCmd{app: a},
		&importCmd{app: a},
		&backupCmd{app: a},
		&viewCmd{app: a},
		&addCmd{app: a},
	}
}

// userMessage strips the error code prefix for prompt feedback.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
