package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/tracker"
	"github.com/google/subcommands"
)

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a user with a seeded book" }
func (*initCmd) Usage() string {
	return `mtk init [<username>]

  Creates a user with the default accounts (Cash, Bank Account) and
  categories. The username defaults to the active user.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		name := a.cfg.User
		if f.NArg() > 0 {
			name = f.Arg(0)
		}
		b, err := tracker.Register(a.store, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created user %q. Select it with -u %s or MTK_USER=%s.\n", b.User(), b.User(), b.User())
		return nil
	})
}

type settingsCmd struct {
	theme    string
	currency string
	picture  string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the settings of the active user" }
func (*settingsCmd) Usage() string {
	return `mtk settings [-theme light|dark] [-currency dollar|euros|reais|kwanza] [-picture <file>]

  Without flags, shows the current settings.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.theme, "theme", "", "Theme: light or dark.")
	f.StringVar(&c.currency, "currency", "", "Display currency: dollar, euros, reais or kwanza.")
	f.StringVar(&c.picture, "picture", "", "Profile picture image file.")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		s, err := b.Settings()
		if err != nil {
			return err
		}
		if f.NFlag() > 0 {
			if c.theme != "" {
				s.Theme = c.theme
			}
			if c.currency != "" {
				s.Currency = tracker.Currency(c.currency)
			}
			if c.picture != "" {
				if s.ProfilePicture, err = readImage(ctx, c.picture); err != nil {
					return err
				}
			}
			if s, err = b.UpdateSettings(s); err != nil {
				return err
			}
			a.theme = s.Theme
		}
		var md strings.Builder
		fmt.Fprintf(&md, "# Settings of %s\n\n", b.User())
		fmt.Fprintf(&md, "- Theme: %s\n", s.Theme)
		fmt.Fprintf(&md, "- Currency: %s (%s)\n", s.Currency, strings.TrimSpace(s.Currency.Symbol()))
		if pic := s.ProfilePicture.ContentType(); pic != "" {
			fmt.Fprintf(&md, "- Picture: %s\n", pic)
		}
		a.print(md.String())
		return nil
	})
}

type profileCmd struct {
	email   string
	picture string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or edit the profile of the active user" }
func (*profileCmd) Usage() string {
	return `mtk profile [-email <address>] [-picture <file>]

  Without flags, shows the profile. The profile is part of the exported
  document.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address.")
	f.StringVar(&c.picture, "picture", "", "Profile picture image file.")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		p, err := b.Profile()
		if err != nil {
			return err
		}
		if f.NFlag() > 0 {
			if isSet(f, "email") {
				p.Email = strings.TrimSpace(c.email)
			}
			if c.picture != "" {
				if p.Picture, err = readImage(ctx, c.picture); err != nil {
					return err
				}
			}
			if err := b.SaveProfile(p); err != nil {
				return err
			}
		}
		var md strings.Builder
		fmt.Fprintf(&md, "# Profile of %s\n\n", p.Username)
		if p.Email != "" {
			fmt.Fprintf(&md, "- Email: %s\n", p.Email)
		}
		if !p.JoinedAt.IsZero() {
			fmt.Fprintf(&md, "- Joined: %s\n", p.JoinedAt.Format("2006-01-02"))
		}
		if pic := p.Picture.ContentType(); pic != "" {
			fmt.Fprintf(&md, "- Picture: %s\n", pic)
		}
		a.print(md.String())
		return nil
	})
}

type usersCmd struct{}

func (*usersCmd) Name() string     { return "users" }
func (*usersCmd) Synopsis() string { return "list the users of the storage" }
func (*usersCmd) Usage() string {
	return `mtk users

  Lists registered users, and users holding data without being registered
  (for instance after an import).
`
}

func (*usersCmd) SetFlags(f *flag.FlagSet) {}

func (*usersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		registered, err := tracker.Users(a.store)
		if err != nil {
			return err
		}
		owners, err := a.store.Users()
		if err != nil {
			return err
		}
		var md strings.Builder
		md.WriteString("# Users\n\n")
		seen := make(map[string]bool)
		for _, u := range registered {
			seen[u.Username] = true
			fmt.Fprintf(&md, "- %s (since %s)\n", u.Username, u.CreatedAt.Format("2006-01-02"))
		}
		for _, u := range owners {
			if !seen[u] {
				fmt.Fprintf(&md, "- %s (not registered)\n", u)
			}
		}
		if len(seen) == 0 && len(owners) == 0 {
			md.WriteString("No users.\n")
		}
		a.print(md.String())
		return nil
	})
}

type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "delete all the data of the active user" }
func (*resetCmd) Usage() string {
	return `mtk reset -yes

  Deletes every record of the active user and seeds the book again.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset.")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(stderr, "Error: reset deletes all your data, confirm with -yes")
		return subcommands.ExitUsageError
	}
	return withBook(func(a *app, b *tracker.Book) error {
		if err := b.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Reset the book of %q.\n", b.User())
		return nil
	})
}
