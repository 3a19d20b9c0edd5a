package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/tracker/store"
)

// Settings are the preferences of a user.
type Settings struct {
	Theme          string   `json:"theme"` // "light" or "dark"
	Currency       Currency `json:"currency"`
	ProfilePicture Image    `json:"profilePicture"`
}

// DefaultSettings are the settings of a new user.
var DefaultSettings = Settings{Theme: "light", Currency: Dollar}

// User is an entry of the global users collection.
type User struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	Settings  Settings  `json:"settings"`
}

func (s Settings) validate() (Settings, error) {
	switch s.Theme {
	case "":
		s.Theme = DefaultSettings.Theme
	case "light", "dark":
	default:
		return s, invalid("unknown theme %q want light or dark", s.Theme)
	}
	c, err := ParseCurrency(string(s.Currency))
	if err != nil {
		return s, err
	}
	s.Currency = c
	return s, nil
}

// Users returns the registered users.
func Users(s *store.Store) ([]User, error) { return store.LoadGlobal[User](s, store.Users) }

// Register creates a user and seeds its book with default accounts and
// categories.
func Register(s *store.Store, username string) (*Book, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.ContainsAny(username, `/\_ `) {
		return nil, invalid("invalid username %q", username)
	}
	users, err := Users(s)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(users, func(u User) bool { return u.Username == username }) {
		return nil, invalid("user %q already exists", username)
	}
	b := Open(s, store.Session{User: username})
	users = append(users, User{Username: username, CreatedAt: b.now(), Settings: DefaultSettings})
	if err := store.SaveGlobal(s, store.Users, users); err != nil {
		return nil, err
	}
	return b, b.seed()
}

// seed writes the default accounts and categories.
func (b *Book) seed() error {
	now := b.now()
	accounts := []Account{
		{ID: NewID(), Name: "Cash", Icon: "default-cash", CreatedAt: now},
		{ID: NewID(), Name: "Bank Account", Icon: "default-bank", CreatedAt: now},
	}
	var categories []Category
	for _, c := range []struct {
		name string
		kind Kind
	}{
		{"Salary", Income}, {"Gift", Income},
		{"Food", Expense}, {"Transport", Expense}, {"Shopping", Expense}, {"Bills", Expense},
	} {
		icon := Image("default-" + strings.ToLower(c.name))
		categories = append(categories, Category{ID: NewID(), Name: c.name, Type: c.kind, Icon: icon, CreatedAt: now})
	}
	if err := b.saveAccounts(accounts); err != nil {
		return err
	}
	if err := b.saveCategories(categories); err != nil {
		return err
	}
	for _, c := range []string{store.Transactions, store.Budgets, store.DebtsLoans, store.ShoppingList, store.Profile} {
		if err := store.Save(b.store, b.sess, c, []struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

// Seeded reports whether the book holds data.
func (b *Book) Seeded() (bool, error) { return b.store.Has(b.sess, store.Accounts) }

// Reset deletes all the data of the book and seeds it again.
func (b *Book) Reset() error {
	if err := b.store.Clear(b.sess); err != nil {
		return err
	}
	return b.seed()
}

func (b *Book) user() (User, []User, int, error) {
	users, err := Users(b.store)
	if err != nil {
		return User{}, nil, -1, err
	}
	i := indexByID(users, b.sess.User, func(u User) string { return u.Username })
	if i < 0 {
		return User{}, users, -1, notFound("user", b.sess.User)
	}
	return users[i], users, i, nil
}

// Settings returns the settings of the book's user, the default ones if the
// user is not registered.
func (b *Book) Settings() (Settings, error) {
	u, _, _, err := b.user()
	if errors.Is(err, ErrNotFound) {
		return DefaultSettings, nil
	}
	return u.Settings, err
}

// UpdateSettings replaces the settings of the book's user.
func (b *Book) UpdateSettings(s Settings) (Settings, error) {
	s, err := s.validate()
	if err != nil {
		return Settings{}, err
	}
	_, users, i, err := b.user()
	if err != nil {
		return Settings{}, err
	}
	users[i].Settings = s
	if err := store.SaveGlobal(b.store, store.Users, users); err != nil {
		return Settings{}, fmt.Errorf("cannot save settings: %w", err)
	}
	return s, nil
}

// Profile returns the stored profile, or one derived from the user settings.
func (b *Book) Profile() (Profile, error) {
	profiles, err := store.Load[Profile](b.store, b.sess, store.Profile)
	if err != nil {
		return Profile{}, err
	}
	if len(profiles) > 0 {
		return profiles[0], nil
	}
	p := Profile{Username: b.sess.User, Theme: DefaultSettings.Theme, Currency: Dollar}
	if u, _, _, err := b.user(); err == nil {
		p.JoinedAt = u.CreatedAt
		p.Theme = u.Settings.Theme
		p.Currency = u.Settings.Currency
		p.Picture = u.Settings.ProfilePicture
	}
	return p, nil
}

// SaveProfile stores the profile of the book's user.
func (b *Book) SaveProfile(p Profile) error {
	if strings.TrimSpace(p.Username) == "" {
		p.Username = b.sess.User
	}
	return store.Save(b.store, b.sess, store.Profile, []Profile{p})
}
