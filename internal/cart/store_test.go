package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prat555/Food-Delivery-App/internal/domain"
)

func burger() domain.MenuItemRef {
	return domain.MenuItemRef{ID: "burger", Name: "Classic Burger", Price: 1000}
}

func fries() domain.MenuItemRef {
	return domain.MenuItemRef{ID: "fries", Name: "Fries", Price: 350}
}

func cheese() domain.Customization {
	return domain.Customization{ID: "cheese", Name: "Extra Cheese", Price: 150}
}

func bacon() domain.Customization {
	return domain.Customization{ID: "bacon", Name: "Bacon", Price: 200}
}

// ============================================================================
// AddItem Tests
// ============================================================================

func TestAddItem_NewLine(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "burger", lines[0].ItemID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddItem_RepeatedAddsMergeIntoOneLine(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		s.AddItem(burger(), []domain.Customization{cheese()})
	}

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddItem_DifferentCustomizationSetsNeverMerge(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), []domain.Customization{cheese()})
	s.AddItem(burger(), []domain.Customization{bacon()})

	assert.Len(t, s.Lines(), 2)
}

func TestAddItem_CustomizationOrderIrrelevant(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), []domain.Customization{cheese(), bacon()})
	s.AddItem(burger(), []domain.Customization{bacon(), cheese()})

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddItem_SnapshotsPriceAtFirstAdd(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)

	// Catalog price change must not alter the line already in the cart.
	changed := burger()
	changed.Price = 9999
	s.AddItem(changed, nil)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1000), lines[0].Price)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)
	s.AddItem(fries(), nil)
	s.AddItem(burger(), []domain.Customization{cheese()})

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "burger", lines[0].ItemID)
	assert.Equal(t, "fries", lines[1].ItemID)
	assert.Equal(t, "burger", lines[2].ItemID)
}

// ============================================================================
// Increase / Decrease Tests
// ============================================================================

func TestIncreaseQuantity_Match(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)

	found := s.IncreaseQuantity("burger", nil)

	assert.True(t, found)
	assert.Equal(t, 2, s.Lines()[0].Quantity)
}

func TestIncreaseQuantity_NoMatchIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)

	found := s.IncreaseQuantity("burger", []domain.Customization{cheese()})

	assert.False(t, found)
	assert.Equal(t, 1, s.Lines()[0].Quantity)
}

func TestDecreaseQuantity_FlooredAtOne(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)
	s.IncreaseQuantity("burger", nil)

	assert.True(t, s.DecreaseQuantity("burger", nil))
	assert.Equal(t, 1, s.Lines()[0].Quantity)

	// Decrementing at quantity 1 leaves the line in place at 1.
	assert.True(t, s.DecreaseQuantity("burger", nil))
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 1, s.Lines()[0].Quantity)
}

func TestDecreaseQuantity_NoMatchIsNoOp(t *testing.T) {
	s := NewStore()
	assert.False(t, s.DecreaseQuantity("burger", nil))
	assert.Empty(t, s.Lines())
}

// ============================================================================
// RemoveItem / Clear Tests
// ============================================================================

func TestRemoveItem_RemovesAtAnyQuantity(t *testing.T) {
	s := NewStore()
	for i := 0; i < 4; i++ {
		s.AddItem(burger(), nil)
	}

	assert.True(t, s.RemoveItem("burger", nil))
	assert.Empty(t, s.Lines())
}

func TestRemoveItem_OnlyMatchingLine(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), []domain.Customization{cheese()})
	s.AddItem(burger(), []domain.Customization{bacon()})

	assert.True(t, s.RemoveItem("burger", []domain.Customization{cheese()}))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "bacon", lines[0].Customizations[0].ID)
}

func TestRemoveItem_NoMatchIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)

	assert.False(t, s.RemoveItem("fries", nil))
	assert.Len(t, s.Lines(), 1)
}

func TestClear_EmptiesStore(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)
	s.AddItem(fries(), nil)

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItemCount())
	assert.Equal(t, int64(0), s.TotalPrice())
}

// ============================================================================
// Totals Tests
// ============================================================================

func TestTotalPrice_IncludesCustomizations(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), []domain.Customization{cheese(), bacon()})
	s.IncreaseQuantity("burger", []domain.Customization{bacon(), cheese()})

	// (1000 + 150 + 200) * 2
	assert.Equal(t, int64(2700), s.TotalPrice())
}

func TestScenario_BurgerLifecycle(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), nil)
	s.AddItem(burger(), nil)
	assert.Equal(t, int64(2000), s.TotalPrice())

	s.IncreaseQuantity("burger", nil)
	assert.Equal(t, 3, s.Lines()[0].Quantity)
	assert.Equal(t, int64(3000), s.TotalPrice())

	s.RemoveItem("burger", nil)
	assert.Empty(t, s.Lines())
}

// TestTotalPrice_RandomOperationSequences recomputes the expected total
// independently after a random interleaving of operations and compares.
func TestTotalPrice_RandomOperationSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	items := []domain.MenuItemRef{burger(), fries(), {ID: "soda", Name: "Soda", Price: 250}}
	custSets := [][]domain.Customization{
		nil,
		{cheese()},
		{bacon()},
		{cheese(), bacon()},
	}

	for run := 0; run < 20; run++ {
		s := NewStore()
		for op := 0; op < 200; op++ {
			item := items[rng.Intn(len(items))]
			custs := custSets[rng.Intn(len(custSets))]
			switch rng.Intn(4) {
			case 0:
				s.AddItem(item, custs)
			case 1:
				s.IncreaseQuantity(item.ID, custs)
			case 2:
				s.DecreaseQuantity(item.ID, custs)
			case 3:
				s.RemoveItem(item.ID, custs)
			}
		}

		var wantTotal int64
		var wantCount int
		for _, l := range s.Lines() {
			unit := l.Price
			for _, c := range l.Customizations {
				unit += c.Price
			}
			wantTotal += unit * int64(l.Quantity)
			wantCount += l.Quantity
			require.GreaterOrEqual(t, l.Quantity, 1)
		}

		assert.Equal(t, wantTotal, s.TotalPrice(), "run %d", run)
		assert.Equal(t, wantCount, s.TotalItemCount(), "run %d", run)
	}
}

// ============================================================================
// Observer Tests
// ============================================================================

func TestSubscribe_NotifiedSynchronouslyOnEveryMutation(t *testing.T) {
	s := NewStore()

	var snaps []Snapshot
	s.Subscribe(func(snap Snapshot) {
		snaps = append(snaps, snap)
	})

	s.AddItem(burger(), nil)
	s.IncreaseQuantity("burger", nil)
	s.DecreaseQuantity("burger", nil)
	s.RemoveItem("burger", nil)
	s.Clear()

	require.Len(t, snaps, 5)
	assert.Equal(t, 1, snaps[0].ItemCount)
	assert.Equal(t, 2, snaps[1].ItemCount)
	assert.Equal(t, 1, snaps[2].ItemCount)
	assert.Equal(t, 0, snaps[3].ItemCount)
}

func TestSubscribe_ObserverCanReadStore(t *testing.T) {
	s := NewStore()

	// Observers reading the store back must not deadlock.
	var observed int
	s.Subscribe(func(Snapshot) {
		observed = s.TotalItemCount()
	})

	s.AddItem(burger(), nil)
	assert.Equal(t, 1, observed)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore()
	s.AddItem(burger(), []domain.Customization{cheese()})

	snap := s.Snapshot()
	snap.Lines[0].Quantity = 99
	snap.Lines[0].Customizations[0].Price = 0

	lines := s.Lines()
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, int64(150), lines[0].Customizations[0].Price)
}
