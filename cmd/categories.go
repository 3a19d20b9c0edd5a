package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type categoriesCmd struct {
	kind string
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list categories" }
func (*categoriesCmd) Usage() string {
	return `mtk categories [-type income|expense]
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "Only list categories of this type.")
}

func (c *categoriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		var kinds []tracker.Kind
		if c.kind != "" {
			k, err := tracker.ParseKind(c.kind)
			if err != nil {
				return err
			}
			kinds = append(kinds, k)
		}
		categories, err := b.Categories(kinds...)
		if err != nil {
			return err
		}
		a.print(renderer.RenderCategories(categories))
		return nil
	})
}

type addCategoryCmd struct {
	name string
	kind string
	icon string
}

func (*addCategoryCmd) Name() string     { return "add-category" }
func (*addCategoryCmd) Synopsis() string { return "create a category" }
func (*addCategoryCmd) Usage() string {
	return `mtk add-category -name <name> -type income|expense [-icon <file>]
`
}

func (c *addCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Category name.")
	f.StringVar(&c.kind, "type", "expense", "Category type: income or expense.")
	f.StringVar(&c.icon, "icon", "", "Icon image file.")
}

func (c *addCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		kind, err := tracker.ParseKind(c.kind)
		if err != nil {
			return err
		}
		icon, err := readImage(ctx, c.icon)
		if err != nil {
			return err
		}
		cat, err := b.CreateCategory(tracker.CategoryInput{Name: c.name, Type: kind, Icon: icon})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created %s category %q (%s).\n", cat.Type, cat.Name, cat.ID)
		return nil
	})
}

type editCategoryCmd struct {
	name string
	kind string
	icon string
}

func (*editCategoryCmd) Name() string     { return "edit-category" }
func (*editCategoryCmd) Synopsis() string { return "rename a category or change its type" }
func (*editCategoryCmd) Usage() string {
	return `mtk edit-category [-name <name>] [-type income|expense] [-icon <file>] <category>

  The type of a category in use cannot change.
`
}

func (c *editCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name.")
	f.StringVar(&c.kind, "type", "", "New type.")
	f.StringVar(&c.icon, "icon", "", "New icon image file.")
}

func (c *editCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		ref, err := oneArg(f, "category")
		if err != nil {
			return err
		}
		cat, err := b.FindCategory(ref, "")
		if err != nil {
			return err
		}
		in := tracker.CategoryInput{Name: cat.Name, Type: cat.Type, Icon: cat.Icon}
		if isSet(f, "name") {
			in.Name = c.name
		}
		if isSet(f, "type") {
			if in.Type, err = tracker.ParseKind(c.kind); err != nil {
				return err
			}
		}
		if isSet(f, "icon") {
			if in.Icon, err = readImage(ctx, c.icon); err != nil {
				return err
			}
		}
		cat, err = b.EditCategory(cat.ID, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Updated %s category %q.\n", cat.Type, cat.Name)
		return nil
	})
}

type rmCategoryCmd struct{}

func (*rmCategoryCmd) Name() string     { return "rm-category" }
func (*rmCategoryCmd) Synopsis() string { return "delete an unused category" }
func (*rmCategoryCmd) Usage() string {
	return `mtk rm-category <category>

  Categories used by a transaction, a budget or a shopping item cannot be
  deleted.
`
}

func (c *rmCategoryCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		ref, err := oneArg(f, "category")
		if err != nil {
			return err
		}
		cat, err := b.FindCategory(ref, "")
		if err != nil {
			return err
		}
		if err := b.DeleteCategory(cat.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted category %q.\n", cat.Name)
		return nil
	})
}
