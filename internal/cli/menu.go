package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"

	"github.com/kimhsiao/inventory/internal/date"
	apperrors "github.com/kimhsiao/inventory/internal/errors"
	"github.com/kimhsiao/inventory/internal/inventory"
	"github.com/kimhsiao/inventory/internal/models"
)

// Action is one dispatchable menu choice.
type Action int

const (
	ActionUnknown Action = iota
	ActionAddProduct
	ActionViewProduct
	ActionBackup
	ActionQuit
)

// parseAction maps a menu choice to its Action.
func parseAction(input string) Action {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "a":
		return ActionAddProduct
	case "v":
		return ActionViewProduct
	case "b":
		return ActionBackup
	case "q":
		return ActionQuit
	default:
		return ActionUnknown
	}
}

type menuCmd struct {
	app *App
}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "run the interactive inventory menu" }
func (*menuCmd) Usage() string {
	return `menu

  Seeds the store from the configured snapshot, then prompts for
  actions: add a product, view a product by id, backup, quit.
`
}

func (*menuCmd) SetFlags(f *flag.FlagSet) {}

func (c *menuCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Seed the store before entering the loop. A snapshot that cannot
	// be read is fatal at startup.
	if _, err := c.app.Importer.Run(c.app.Config.SnapshotPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	m := &Menu{
		app: c.app,
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}
	m.Run()
	return subcommands.ExitSuccess
}

// Menu drives the interactive prompt loop.
type Menu struct {
	app *App
	in  *bufio.Scanner
	out io.Writer
}

// Run loops printing the action list and dispatching choices until the
// user quits or input ends.
func (m *Menu) Run() {
	for {
		m.printActions()
		line, ok := m.readLine("\nAction: ")
		if !ok {
			return
		}

		switch parseAction(line) {
		case ActionAddProduct:
			m.clear()
			m.runAdd()
		case ActionViewProduct:
			m.clear()
			m.runView()
		case ActionBackup:
			m.clear()
			m.runBackup()
		case ActionQuit:
			fmt.Fprintln(m.out, "\nGoodbye!")
			return
		default:
			fmt.Fprintln(m.out, "\nPlease choose a valid action!")
		}
	}
}

func (m *Menu) printActions() {
	fmt.Fprintln(m.out, "\nEnter 'q' to quit.")
	fmt.Fprintln(m.out, "a) Add a product")
	fmt.Fprintln(m.out, "v) View a product")
	fmt.Fprintln(m.out, "b) Backup the inventory")
}

// runAdd prompts for a candidate state and upserts it with today's
// date. Invalid input prints guidance and re-prompts.
func (m *Menu) runAdd() {
	for {
		name, ok := m.readLine("\nProduct name: ")
		if !ok {
			return
		}
		quantity, ok := m.readLine("Quantity(integers only): ")
		if !ok {
			return
		}
		price, ok := m.readLine("Price in cents(integers only): ")
		if !ok {
			return
		}

		c, err := inventory.ParseCandidate(name, quantity, price, date.Today())
		if err != nil {
			fmt.Fprintf(m.out, "\n%s\n", sentence(userMessage(err)))
			continue
		}

		if _, err := m.app.Service.Upsert(c); err != nil {
			fmt.Fprintf(m.out, "\nError saving product: %v\n", err)
		}
		return
	}
}

// runView prompts for a product id until a stored one is given, then
// prints the record.
func (m *Menu) runView() {
	for {
		line, ok := m.readLine("\nPlease enter the product ID: ")
		if !ok {
			return
		}

		id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(m.out, "\nProduct ID must be an integer.")
			continue
		}
		if id <= 0 {
			fmt.Fprintln(m.out, "\nThe ID must be a positive integer.")
			continue
		}

		p, err := m.app.Service.View(id)
		if apperrors.Is(err, apperrors.ErrNotFound) {
			fmt.Fprintf(m.out, "\n%s. Try again.\n", sentence(userMessage(err)))
			continue
		}
		if err != nil {
			fmt.Fprintf(m.out, "\nError: %v\n", err)
			return
		}

		m.clear()
		m.printProduct(p)
		return
	}
}

func (m *Menu) printProduct(p *models.Product) {
	fmt.Fprintf(m.out, "\nProduct: %s\n", p.Name)
	fmt.Fprintf(m.out, "Quantity: %d\n", p.Quantity)
	fmt.Fprintf(m.out, "Price: %s\n", money.New(p.Price, money.USD).Display())
	fmt.Fprintf(m.out, "Date updated: %s\n\n", p.UpdatedAt)
}

func (m *Menu) runBackup() {
	if _, err := m.app.Exporter.Run(m.app.Config.BackupPath); err != nil {
		fmt.Fprintf(m.out, "\nError creating backup: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "\nBackup created.")
}

// readLine prints a prompt and reads one line. ok is false on EOF.
func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// clear wipes the terminal with ANSI escapes.
func (m *Menu) clear() {
	fmt.Fprint(m.out, "\033[2J\033[H")
}

// sentence upper-cases the first letter of a message for display.
func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
