package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems(t *testing.T) {
	tables := [][][]string{
		{
			{"Description", "Qty", "Unit Price", "Amount"},
			{"Widget", "10", "5.00", "50.00"},
			{"Gadget", "2", "3.50", "7.00"},
			{"subtotal"}, // fewer than 3 columns, skipped
		},
	}

	items := LineItems(tables)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Description)
	assert.Equal(t, "Widget", *items[0].Description)
	assert.Equal(t, "10", *items[0].Quantity)
	assert.Equal(t, "5", *items[0].UnitPrice)
	assert.Equal(t, "50", *items[0].Amount)

	assert.Equal(t, "Gadget", *items[1].Description)
	assert.Equal(t, "7", *items[1].Amount)
}

func TestLineItemsHeaderNeverEmitted(t *testing.T) {
	tables := [][][]string{
		{
			{"Item", "Qty", "Price"},
			{"Bolt", "100", "0.25"},
		},
	}
	items := LineItems(tables)
	require.Len(t, items, 1)
	assert.Equal(t, "Bolt", *items[0].Description)
	// 3-column row has no amount cell
	assert.Nil(t, items[0].Amount)
}

func TestLineItemsHeaderOnlyTable(t *testing.T) {
	assert.Empty(t, LineItems([][][]string{{{"Item", "Qty", "Price"}}}))
	assert.Empty(t, LineItems(nil))
}

func TestLineItemsUnparseableNumbers(t *testing.T) {
	tables := [][][]string{
		{
			{"Item", "Qty", "Price", "Amount"},
			{"Consulting", "n/a", "hourly", "1,200.00"},
		},
	}
	items := LineItems(tables)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Quantity)
	assert.Nil(t, items[0].UnitPrice)
	assert.Equal(t, "1200", *items[0].Amount)
}
