package domain

import (
	"sort"
	"strings"
)

// MenuItemRef is a reference to a catalog menu item. Price is in cents.
type MenuItemRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

// Customization is an additive option on a menu item (e.g. "extra cheese").
// Price is in cents and non-negative. Customizations are immutable and
// compared by ID only.
type Customization struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// CartLine is one distinct (item, customization-set) entry in the cart.
// Name, Price, and ImageURL are denormalized from the MenuItemRef at the time
// of first add, so later catalog changes do not alter lines already in the cart.
type CartLine struct {
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Price          int64           `json:"price"`
	ImageURL       string          `json:"image_url,omitempty"`
	Customizations []Customization `json:"customizations,omitempty"`
	Quantity       int             `json:"quantity"`
}

// NormalizeCustomizations returns the customizations as a set: sorted by ID
// with duplicates removed (first occurrence wins). A nil or empty input yields
// an empty slice, so "no customizations" always normalizes the same way.
func NormalizeCustomizations(customizations []Customization) []Customization {
	normalized := make([]Customization, 0, len(customizations))
	seen := make(map[string]struct{}, len(customizations))
	for _, c := range customizations {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		normalized = append(normalized, c)
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].ID < normalized[j].ID
	})
	return normalized
}

// LineKey builds the identity key for a cart line: two lines are the same line
// iff their item IDs are equal and their customization ID sets are equal,
// independent of insertion order.
func LineKey(itemID string, customizations []Customization) string {
	ids := make([]string, 0, len(customizations))
	seen := make(map[string]struct{}, len(customizations))
	for _, c := range customizations {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(itemID)
	b.WriteByte('|')
	b.WriteString(strings.Join(ids, ","))
	return b.String()
}

// Key returns the identity key for this line.
func (l *CartLine) Key() string {
	return LineKey(l.ItemID, l.Customizations)
}

// UnitPrice returns the per-unit price of the line in cents: the base item
// price plus the sum of all customization prices.
func (l *CartLine) UnitPrice() int64 {
	price := l.Price
	for _, c := range l.Customizations {
		price += c.Price
	}
	return price
}

// LineTotal returns UnitPrice multiplied by the quantity, in cents.
func (l *CartLine) LineTotal() int64 {
	return l.UnitPrice() * int64(l.Quantity)
}
