package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxItemNameLen bounds item names, in runes.
const MaxItemNameLen = 64

var (
	// ErrDuplicateItem is returned when an inventory already holds an item name.
	ErrDuplicateItem = errors.New("duplicate item")
	// ErrInvalidItemName is returned for names that cannot be stored as one record.
	ErrInvalidItemName = errors.New("invalid item name")
)

// ValidateItemName checks that name is a single printable line with no comma,
// not blank and at most MaxItemNameLen runes long.
func ValidateItemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: blank", ErrInvalidItemName)
	}
	if n := utf8.RuneCountInString(name); n > MaxItemNameLen {
		return fmt.Errorf("%w: %d runes, max %d", ErrInvalidItemName, n, MaxItemNameLen)
	}
	for _, r := range name {
		if r == ',' {
			return fmt.Errorf("%w: %q contains a comma", ErrInvalidItemName, name)
		}
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q contains %U", ErrInvalidItemName, name, r)
		}
	}
	return nil
}

// Item is one product slot in the machine.
type Item struct {
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Quantity int    `json:"quantity"`
}

// InStock returns true if at least one unit can be dispensed.
func (i Item) InStock() bool {
	return i.Quantity > 0
}

// StockValue is price times quantity.
func (i Item) StockValue() Money {
	return i.Price * Money(i.Quantity)
}

// Inventory is the set of items keyed by name. Iteration follows insertion order
// so a load followed by a save reproduces the file's record order.
type Inventory struct {
	order []string
	items map[string]Item
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]Item)}
}

// Add appends a new item. It fails with ErrDuplicateItem if the name is taken.
func (inv *Inventory) Add(item Item) error {
	if _, ok := inv.items[item.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateItem, item.Name)
	}
	inv.order = append(inv.order, item.Name)
	inv.items[item.Name] = item
	return nil
}

// Get looks up an item by name.
func (inv *Inventory) Get(name string) (Item, bool) {
	item, ok := inv.items[name]
	return item, ok
}

// Set replaces an existing item in place. It reports false if the name is unknown.
func (inv *Inventory) Set(item Item) bool {
	if _, ok := inv.items[item.Name]; !ok {
		return false
	}
	inv.items[item.Name] = item
	return true
}

// Items returns all items in insertion order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, 0, len(inv.order))
	for _, name := range inv.order {
		out = append(out, inv.items[name])
	}
	return out
}

// Len returns the number of items.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

// Clone returns an independent copy.
func (inv *Inventory) Clone() *Inventory {
	c := &Inventory{
		order: make([]string, len(inv.order)),
		items: make(map[string]Item, len(inv.items)),
	}
	copy(c.order, inv.order)
	for k, v := range inv.items {
		c.items[k] = v
	}
	return c
}
