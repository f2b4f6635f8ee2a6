package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
)

type viewCmd struct {
	app *App
	id  int64
}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "view a product by its id" }
func (*viewCmd) Usage() string {
	return `view -id <n>

  Prints the product with the given store-assigned id.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Product id (required, positive)")
}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -id must be a positive integer.")
		return subcommands.ExitUsageError
	}

	p, err := c.app.Service.View(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s.\n", sentence(userMessage(err)))
		return subcommands.ExitFailure
	}

	fmt.Printf("Product: %s\n", p.Name)
	fmt.Printf("Quantity: %d\n", p.Quantity)
	fmt.Printf("Price: %s\n", money.New(p.Price, money.USD).Display())
	fmt.Printf("Date updated: %s\n", p.UpdatedAt)
	return subcommands.ExitSuccess
}
