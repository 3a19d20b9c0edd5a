// Package cmd implements the mtk command line tool.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/etnz/tracker/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "user")
	c.Register(&settingsCmd{}, "user")
	c.Register(&resetCmd{}, "user")
	c.Register(&profileCmd{}, "user")
	c.Register(&usersCmd{}, "user")

	c.Register(&accountsCmd{}, "accounts")
	c.Register(&addAccountCmd{}, "accounts")
	c.Register(&editAccountCmd{}, "accounts")
	c.Register(&rmAccountCmd{}, "accounts")
	c.Register(&transferCmd{}, "accounts")

	c.Register(&categoriesCmd{}, "categories")
	c.Register(&addCategoryCmd{}, "categories")
	c.Register(&editCategoryCmd{}, "categories")
	c.Register(&rmCategoryCmd{}, "categories")

	c.Register(&txCmd{}, "transactions")
	c.Register(&addTxCmd{}, "transactions")
	c.Register(&editTxCmd{}, "transactions")
	c.Register(&rmTxCmd{}, "transactions")

	c.Register(&budgetsCmd{}, "budgets")
	c.Register(&addBudgetCmd{}, "budgets")
	c.Register(&editBudgetCmd{}, "budgets")
	c.Register(&rmBudgetCmd{}, "budgets")

	c.Register(&shopCmd{}, "shopping")
	c.Register(&addItemCmd{}, "shopping")
	c.Register(&editItemCmd{}, "shopping")
	c.Register(&rmItemCmd{}, "shopping")
	c.Register(&buyItemCmd{}, "shopping")

	c.Register(&debtsCmd{}, "debts")
	c.Register(&addDebtCmd{}, "debts")
	c.Register(&rmDebtCmd{}, "debts")

	c.Register(&reportCmd{}, "reports")
	c.Register(&dashboardCmd{}, "reports")
	c.Register(&auditCmd{}, "reports")

	c.Register(&exportCmd{}, "exchange")
	c.Register(&importCmd{}, "exchange")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the configuration file (default mtk.toml in the current directory)")
	dataPath    = flag.String("data", "", "Path to the storage directory or database file (default .mtk)")
	storageKind = flag.String("storage", "", "Storage backend: dir, sqlite or memory (default dir)")
	userName    = flag.String("u", "", "Active user")
	rawOutput   = flag.Bool("raw", false, "Print markdown as is, without terminal rendering")
	Verbose     = flag.Bool("v", false, "Log engine events to stderr")
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// app is the state shared by the commands during one invocation.
type app struct {
	cfg   Config
	store *store.Store
	close func() error
	theme string
}

// openApp loads the configuration and opens the storage.
func openApp() (*app, error) {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
	cfg, err := loadConfig(*configFile, dotEnv, Config{Storage: *storageKind, Data: *dataPath, User: *userName})
	if err != nil {
		return nil, err
	}
	s, closer, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("using %s storage %q", cfg.Storage, cfg.Data)
	return &app{cfg: cfg, store: store.New(s), close: closer, theme: "auto"}, nil
}

// Close releases the storage.
func (a *app) Close() error { return a.close() }

// book opens the book of the active user.
func (a *app) book() (*tracker.Book, error) {
	if a.cfg.User == "" {
		return nil, errors.New("no active user: use -u <name> or MTK_USER, or create one with mtk init <name>")
	}
	b := tracker.Open(a.store, store.Session{User: a.cfg.User})
	ok, err := b.Seeded()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("user %q has no book, create it with mtk init %s", a.cfg.User, a.cfg.User)
	}
	if s, err := b.Settings(); err == nil {
		a.theme = s.Theme
	}
	return b, nil
}

// currency returns the display currency, the configured one first.
func (a *app) currency(b *tracker.Book) tracker.Currency {
	if a.cfg.Currency != "" {
		c, err := tracker.ParseCurrency(a.cfg.Currency)
		if err == nil {
			return c
		}
		log.Printf("ignoring configured currency: %v", err)
	}
	s, err := b.Settings()
	if err != nil {
		log.Printf("cannot read settings: %v", err)
		return tracker.Dollar
	}
	return s.Currency
}

// names indexes the account and category names of b.
func names(b *tracker.Book) (renderer.Names, error) {
	accounts, err := b.Accounts()
	if err != nil {
		return renderer.Names{}, err
	}
	categories, err := b.Categories()
	if err != nil {
		return renderer.Names{}, err
	}
	return renderer.NewNames(accounts, categories), nil
}

// print renders markdown with the user's theme.
func (a *app) print(md string) { printMarkdown(md, a.theme) }

// printMarkdown renders md for the terminal, unless -raw is set.
func printMarkdown(md string, style string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(120)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// run opens the app, calls f and turns its error into an exit status.
func run(f func(a *app) error) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	if err := f(a); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// withBook is run for commands working on the active user's book.
func withBook(f func(a *app, b *tracker.Book) error) subcommands.ExitStatus {
	return run(func(a *app) error {
		b, err := a.book()
		if err != nil {
			return err
		}
		return f(a, b)
	})
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, errUsage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// errUsage marks errors in the command line itself.
var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}
