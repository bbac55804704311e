package cart

import (
	"sync"

	"github.com/prat555/Food-Delivery-App/internal/domain"
)

// Snapshot is an immutable copy of the store state passed to observers.
type Snapshot struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
}

// Observer receives a snapshot after every mutating store operation.
type Observer func(Snapshot)

// Store owns the canonical list of lines the user intends to purchase.
// Lines are unique by (item ID, customization set) and kept in insertion
// order. All operations are safe for concurrent use; observers are notified
// synchronously, after the mutation and outside the lock, before the
// operation returns.
type Store struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	observers []Observer
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers an observer. Observers are invoked in registration
// order on every mutating operation, including no-op mutations.
func (s *Store) Subscribe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// AddItem inserts a new line with quantity 1, or increments the quantity of
// the existing line matching the same item and customization set. It never
// fails; nil customizations are treated as the empty set.
func (s *Store) AddItem(ref domain.MenuItemRef, customizations []domain.Customization) {
	normalized := domain.NormalizeCustomizations(customizations)
	key := domain.LineKey(ref.ID, normalized)

	s.mu.Lock()
	if i := s.findLocked(key); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ItemID:         ref.ID,
			Name:           ref.Name,
			Price:          ref.Price,
			ImageURL:       ref.ImageURL,
			Customizations: normalized,
			Quantity:       1,
		})
	}
	snap := s.snapshotLocked()
	observers := s.observers
	s.mu.Unlock()

	notify(observers, snap)
}

// IncreaseQuantity increments the quantity of the matching line by 1.
// Returns false (a silent no-op) if no line matches.
func (s *Store) IncreaseQuantity(itemID string, customizations []domain.Customization) bool {
	key := domain.LineKey(itemID, customizations)

	s.mu.Lock()
	found := false
	if i := s.findLocked(key); i >= 0 {
		s.lines[i].Quantity++
		found = true
	}
	snap := s.snapshotLocked()
	observers := s.observers
	s.mu.Unlock()

	notify(observers, snap)
	return found
}

// DecreaseQuantity decrements the quantity of the matching line by 1, floored
// at 1. Decrementing a line already at quantity 1 leaves it at 1; the store
// never removes a line through decrement. Returns false if no line matches.
func (s *Store) DecreaseQuantity(itemID string, customizations []domain.Customization) bool {
	key := domain.LineKey(itemID, customizations)

	s.mu.Lock()
	found := false
	if i := s.findLocked(key); i >= 0 {
		if s.lines[i].Quantity > 1 {
			s.lines[i].Quantity--
		}
		found = true
	}
	snap := s.snapshotLocked()
	observers := s.observers
	s.mu.Unlock()

	notify(observers, snap)
	return found
}

// RemoveItem deletes the matching line entirely, regardless of quantity.
// Returns false if no line matches.
func (s *Store) RemoveItem(itemID string, customizations []domain.Customization) bool {
	key := domain.LineKey(itemID, customizations)

	s.mu.Lock()
	found := false
	if i := s.findLocked(key); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
		found = true
	}
	snap := s.snapshotLocked()
	observers := s.observers
	s.mu.Unlock()

	notify(observers, snap)
	return found
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	snap := s.snapshotLocked()
	observers := s.observers
	s.mu.Unlock()

	notify(observers, snap)
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

// TotalItemCount returns the sum of quantities over all lines.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemCount(s.lines)
}

// TotalPrice returns the cart subtotal in cents: the sum over all lines of
// (base price + customization prices) * quantity.
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.lines)
}

// Snapshot returns a consistent copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// findLocked returns the index of the line with the given identity key, or -1.
// Callers must hold s.mu.
func (s *Store) findLocked(key string) int {
	for i := range s.lines {
		if s.lines[i].Key() == key {
			return i
		}
	}
	return -1
}

// snapshotLocked builds a Snapshot. Callers must hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Lines:     copyLines(s.lines),
		ItemCount: itemCount(s.lines),
		Subtotal:  subtotal(s.lines),
	}
}

func notify(observers []Observer, snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	for i := range out {
		if len(out[i].Customizations) > 0 {
			custs := make([]domain.Customization, len(out[i].Customizations))
			copy(custs, out[i].Customizations)
			out[i].Customizations = custs
		}
	}
	return out
}

func itemCount(lines []domain.CartLine) int {
	var count int
	for i := range lines {
		count += lines[i].Quantity
	}
	return count
}

func subtotal(lines []domain.CartLine) int64 {
	var total int64
	for i := range lines {
		total += lines[i].LineTotal()
	}
	return total
}
