package tracker

import (
	"fmt"
	"log"
	"slices"
	"strings"
)

// CategoryInput holds the editable fields of a category.
type CategoryInput struct {
	Name string
	Type Kind
	Icon Image
}

func (in CategoryInput) validate() (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("category name is required")
	}
	if !in.Type.Valid() {
		return in, invalid("unknown category type %q", in.Type)
	}
	return in, nil
}

// Categories returns the categories of the given kinds, all of them if none
// is given.
func (b *Book) Categories(kinds ...Kind) ([]Category, error) {
	categories, err := b.categories()
	if err != nil || len(kinds) == 0 {
		return categories, err
	}
	return slices.DeleteFunc(categories, func(c Category) bool { return !slices.Contains(kinds, c.Type) }), nil
}

// CreateOrFindSystemCategory returns the category with this name and kind,
// creating it if needed. There is at most one category per (name, kind).
func (b *Book) CreateOrFindSystemCategory(name string, kind Kind) (Category, error) {
	categories, err := b.categories()
	if err != nil {
		return Category{}, err
	}
	for _, c := range categories {
		if c.Name == name && c.Type == kind {
			return c, nil
		}
	}
	c := Category{ID: NewID(), Name: name, Type: kind, CreatedAt: b.now()}
	if err := b.saveCategories(append(categories, c)); err != nil {
		return Category{}, err
	}
	log.Printf("created system category %q (%s)", name, kind)
	return c, nil
}

// CreateCategory adds a user category.
func (b *Book) CreateCategory(in CategoryInput) (Category, error) {
	in, err := in.validate()
	if err != nil {
		return Category{}, err
	}
	categories, err := b.categories()
	if err != nil {
		return Category{}, err
	}
	c := Category{ID: NewID(), Name: in.Name, Type: in.Type, Icon: in.Icon, CreatedAt: b.now()}
	if err := b.saveCategories(append(categories, c)); err != nil {
		return Category{}, err
	}
	return c, nil
}

// EditCategory updates a category. Its type cannot change while any
// transaction, budget or shopping item refers to it.
func (b *Book) EditCategory(id string, in CategoryInput) (Category, error) {
	in, err := in.validate()
	if err != nil {
		return Category{}, err
	}
	categories, err := b.categories()
	if err != nil {
		return Category{}, err
	}
	i := indexByID(categories, id, func(c Category) string { return c.ID })
	if i < 0 {
		return Category{}, notFound("category", id)
	}
	if categories[i].Type != in.Type {
		if err := b.categoryInUse(categories[i]); err != nil {
			return Category{}, fmt.Errorf("cannot change type: %w", err)
		}
	}
	categories[i].Name = in.Name
	categories[i].Type = in.Type
	categories[i].Icon = in.Icon
	if err := b.saveCategories(categories); err != nil {
		return Category{}, err
	}
	return categories[i], nil
}

// DeleteCategory deletes a category no transaction, budget or shopping item
// refers to.
func (b *Book) DeleteCategory(id string) error {
	categories, err := b.categories()
	if err != nil {
		return err
	}
	i := indexByID(categories, id, func(c Category) string { return c.ID })
	if i < 0 {
		return notFound("category", id)
	}
	if err := b.categoryInUse(categories[i]); err != nil {
		return err
	}
	return b.saveCategories(slices.Delete(categories, i, i+1))
}

// categoryInUse returns an ErrReferenced error if anything refers to c.
func (b *Book) categoryInUse(c Category) error {
	txs, err := b.transactions()
	if err != nil {
		return err
	}
	if n := countFunc(txs, func(t Transaction) bool { return t.CategoryID == c.ID }); n > 0 {
		return fmt.Errorf("category %q is used by %d transaction(s): %w", c.Name, n, ErrReferenced)
	}
	budgets, err := b.budgets()
	if err != nil {
		return err
	}
	if n := countFunc(budgets, func(x Budget) bool { return x.CategoryID == c.ID }); n > 0 {
		return fmt.Errorf("category %q is used by %d budget(s): %w", c.Name, n, ErrReferenced)
	}
	items, err := b.shoppingList()
	if err != nil {
		return err
	}
	if n := countFunc(items, func(it ShoppingItem) bool { return it.CategoryID == c.ID }); n > 0 {
		return fmt.Errorf("category %q is used by %d shopping item(s): %w", c.Name, n, ErrReferenced)
	}
	return nil
}

func countFunc[T any](records []T, f func(T) bool) int {
	n := 0
	for _, r := range records {
		if f(r) {
			n++
		}
	}
	return n
}
