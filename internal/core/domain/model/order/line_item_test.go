package order_test

import (
	"testing"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("should create line item and compute line total", func(t *testing.T) {
		item, err := order.NewLineItem(productID, " AC-12000 ", "Split AC 12000 BTU", 3, eur(t, 79900))

		require.NoError(t, err)
		assert.True(t, item.ProductID().IsEqual(productID))
		assert.Equal(t, "AC-12000", item.SKU())
		assert.Equal(t, "Split AC 12000 BTU", item.Name())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "2397.00 EUR", item.LineTotal().Format())
	})

	t.Run("should reject quantity out of range", func(t *testing.T) {
		for _, q := range []int{0, -1, 1000} {
			_, err := order.NewLineItem(productID, "SKU", "Name", q, eur(t, 100))

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, q)
		}
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := order.NewLineItem(productID, "SKU", "Name", 1, eur(t, -1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should join every validation error", func(t *testing.T) {
		var noID kernel.UUID
		var noPrice kernel.Money

		_, err := order.NewLineItem(noID, "", " ", 0, noPrice)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "name")
	})
}
