package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/store"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the book as a JSON document" }
func (*exportCmd) Usage() string {
	return `mtk export [-o <file>]
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file (default standard output).")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		if c.output == "" {
			return b.Export(stdout)
		}
		file, err := os.Create(c.output)
		if err != nil {
			return err
		}
		w := bufio.NewWriter(file)
		if err := b.Export(w); err != nil {
			file.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Exported %s to %s\n", b.User(), c.output)
		return nil
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the book with an exported document" }
func (*importCmd) Usage() string {
	return `mtk import <file>|-

  Replaces every collection of the active user with the content of the
  document. Nothing changes if the document is malformed.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		path, err := oneArg(f, "file")
		if err != nil {
			return err
		}
		var r io.Reader = os.Stdin
		if path != "-" {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			r = file
		}
		if a.cfg.User == "" {
			return usage("no active user to import into")
		}
		// importing creates the book of a new user
		b := tracker.Open(a.store, store.Session{User: a.cfg.User})
		if err := b.Import(r); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %s into %s.\n", path, b.User())
		return nil
	})
}
