package cart

import (
	"testing"

	"tienda-pos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rate36 = decimal.NewFromInt(36)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func addLine(t *testing.T, c *Cart, productID string, quantity int, priceLocal string) {
	t.Helper()
	require.NoError(t, c.AddLine(AddLineInput{
		ProductID:      productID,
		Quantity:       quantity,
		UnitPriceLocal: dec(priceLocal),
	}, rate36))
}

func TestAddLine_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   AddLineInput
		wantErr error
	}{
		{
			name:    "missing product",
			input:   AddLineInput{Quantity: 1, UnitPriceLocal: dec("10")},
			wantErr: model.ErrMissingProduct,
		},
		{
			name:    "zero quantity",
			input:   AddLineInput{ProductID: "P1", Quantity: 0, UnitPriceLocal: dec("10")},
			wantErr: model.ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			input:   AddLineInput{ProductID: "P1", Quantity: -2, UnitPriceLocal: dec("10")},
			wantErr: model.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.AddLine(tt.input, rate36)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestAddLine_DerivesBasePriceFromRate(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 2, "72")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.Equal(dec("2")), "got %s", lines[0].UnitPrice)
	assert.True(t, lines[0].UnitPriceLocal.Equal(dec("72")))
}

func TestAddLine_ZeroBasePriceWhenRateNotPositive(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(AddLineInput{
		ProductID:      "P1",
		Quantity:       1,
		UnitPriceLocal: dec("72"),
	}, decimal.Zero))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].UnitPrice.IsZero())
}

func TestAddLine_IdenticalLinesNeverMerge(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 1, "10")
	addLine(t, c, "P1", 1, "10")

	assert.Equal(t, 2, c.Len())
}

func TestRemoveLine_RoundTrip(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 1, "10")
	addLine(t, c, "P2", 2, "20")

	before := c.Lines()

	addLine(t, c, "P3", 3, "30")
	require.NoError(t, c.RemoveLine(2))

	after := c.Lines()
	assert.Equal(t, before, after)
}

func TestRemoveLine_ShiftsSubsequentIndices(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 1, "10")
	addLine(t, c, "P2", 1, "10")
	addLine(t, c, "P3", 1, "10")

	require.NoError(t, c.RemoveLine(0))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "P2", lines[0].ProductID)
	assert.Equal(t, "P3", lines[1].ProductID)
}

func TestRemoveLine_OutOfRange(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 1, "10")

	assert.ErrorIs(t, c.RemoveLine(-1), model.ErrLineNotFound)
	assert.ErrorIs(t, c.RemoveLine(1), model.ErrLineNotFound)
}

func TestSetFlags(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 1, "10")

	require.NoError(t, c.SetSuppressPromotion(0, true))
	assert.True(t, c.Lines()[0].SuppressPromotion)

	require.NoError(t, c.SetForcedPromotion(0, strPtr("PR1")))
	require.NotNil(t, c.Lines()[0].ForcedPromotionID)
	assert.Equal(t, "PR1", *c.Lines()[0].ForcedPromotionID)

	require.NoError(t, c.SetForcedPromotion(0, nil))
	assert.Nil(t, c.Lines()[0].ForcedPromotionID)

	assert.ErrorIs(t, c.SetSuppressPromotion(3, true), model.ErrLineNotFound)
	assert.ErrorIs(t, c.SetForcedPromotion(3, nil), model.ErrLineNotFound)
}

func TestClear(t *testing.T) {
	c := New()
	addLine(t, c, "P1", 1, "10")
	c.Clear()

	assert.True(t, c.IsEmpty())
}
