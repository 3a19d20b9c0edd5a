package renderer

import (
	"github.com/etnz/tracker"
)

// Names resolves account and category ids into display names.
type Names struct {
	accounts   map[string]string
	categories map[string]string
}

// NewNames indexes the names of accounts and categories.
func NewNames(accounts []tracker.Account, categories []tracker.Category) Names {
	n := Names{accounts: make(map[string]string), categories: make(map[string]string)}
	for _, a := range accounts {
		n.accounts[a.ID] = a.Name
	}
	for _, c := range categories {
		n.categories[c.ID] = c.Name
	}
	return n
}

// Account returns the name of an account, or a marker for a missing one.
func (n Names) Account(id string) string {
	if name, ok := n.accounts[id]; ok {
		return name
	}
	if id == "" {
		return ""
	}
	return "(unknown " + id + ")"
}

// Category returns the name of a category, or a marker for a missing one.
func (n Names) Category(id string) string {
	if name, ok := n.categories[id]; ok {
		return name
	}
	if id == "" {
		return ""
	}
	return "(unknown " + id + ")"
}
