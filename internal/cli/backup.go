package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type backupCmd struct {
	app  *App
	file string
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "export the inventory to a CSV snapshot" }
func (*backupCmd) Usage() string {
	return `backup [-file <csv>]

  Appends a header row and every product in id order to the
  destination file. Prices are written as integer cents and dates in
  ISO form.
`
}

func (c *backupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Destination file (default: the configured backup path)")
}

func (c *backupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := c.file
	if path == "" {
		path = c.app.Config.BackupPath
	}

	res, err := c.app.Exporter.Run(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Backup created: %d row(s) written to %s.\n", res.Rows, path)
	return subcommands.ExitSuccess
}
