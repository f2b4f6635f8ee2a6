package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/kimhsiao/inventory/internal/date"
	"github.com/kimhsiao/inventory/internal/inventory"
)

type addCmd struct {
	app      *App
	name     string
	quantity string
	price    string
	date     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add or update a product" }
func (*addCmd) Usage() string {
	return `add -name <name> -quantity <n> -price <cents> [-date <YYYY-MM-DD>]

  Upserts a product. An existing name is overwritten only when the
  date is strictly newer than the stored one; older or equal dates
  leave the record unchanged.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Product name (required)")
	f.StringVar(&c.quantity, "quantity", "", "Units on hand, integer (required)")
	f.StringVar(&c.price, "price", "", "Price in cents, integer (required)")
	f.StringVar(&c.date, "date", "", "Update date, ISO form (default: today)")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	updatedAt := date.Today()
	if c.date != "" {
		parsed, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		updatedAt = parsed
	}

	candidate, err := inventory.ParseCandidate(c.name, c.quantity, c.price, updatedAt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s.\n", sentence(userMessage(err)))
		return subcommands.ExitUsageError
	}

	outcome, err := c.app.Service.Upsert(candidate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving product: %v\n", err)
		return subcommands.ExitFailure
	}

	switch outcome {
	case inventory.OutcomeCreated:
		fmt.Printf("Product %q created.\n", candidate.Name)
	case inventory.OutcomeUpdated:
		fmt.Printf("Product %q updated.\n", candidate.Name)
	case inventory.OutcomeSkipped:
		fmt.Printf("Product %q unchanged: stored state is newer or as new.\n", candidate.Name)
	}
	return subcommands.ExitSuccess
}
