// Package main provides the inventory command line interface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/kimhsiao/inventory/internal/cli"
	"github.com/kimhsiao/inventory/internal/config"
	"github.com/kimhsiao/inventory/internal/csvio"
	"github.com/kimhsiao/inventory/internal/db"
	"github.com/kimhsiao/inventory/internal/inventory"
	"github.com/kimhsiao/inventory/internal/logging"
)

func main() {
	cfg := config.Load()
	logging.Init(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	store, err := db.Open(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening inventory store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := db.NewMigrator(store.DB).Up(); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing inventory store: %v\n", err)
		os.Exit(1)
	}

	repo := db.NewProductRepository(store.DB)
	svc := inventory.NewService(repo)
	app := &cli.App{
		Config:   cfg,
		Service:  svc,
		Importer: csvio.NewImporter(svc),
		Exporter: csvio.NewExporter(repo),
	}

	topFlags := flag.NewFlagSet(path.Base(os.Args[0]), flag.ExitOnError)
	commander := subcommands.NewCommander(topFlags, topFlags.Name())
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range app.Commands() {
		commander.Register(c, "")
	}

	// A bare invocation drops straight into the interactive menu.
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"menu"}
	}
	topFlags.Parse(args)

	os.Exit(int(commander.Execute(context.Background())))
}
