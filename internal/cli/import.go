package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type importCmd struct {
	app  *App
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a CSV snapshot into the inventory" }
func (*importCmd) Usage() string {
	return `import [-file <csv>]

  Reads a snapshot with columns product_name, product_quantity,
  product_price (e.g. "$24.95") and date_updated (MM/DD/YYYY), and
  applies every row through the recency-gated upsert. A malformed row
  rejects the whole batch.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Snapshot file (default: the configured snapshot)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path := c.file
	if path == "" {
		path = c.app.Config.SnapshotPath
	}

	res, err := c.app.Importer.Run(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d row(s): %d created, %d updated, %d skipped.\n",
		res.Rows, res.Created, res.Updated, res.Skipped)
	return subcommands.ExitSuccess
}
