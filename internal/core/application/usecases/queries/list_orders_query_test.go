package queries_test

import (
	"testing"

	"climasite/internal/core/application/usecases/queries"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(nil, 0, 0)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, 1, query.Page())
		assert.Equal(t, queries.DefaultPageSize, query.PageSize())
		assert.Empty(t, query.Statuses())
	})

	t.Run("parses status names", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery([]string{"paid", "Shipped"}, 2, 50)

		require.NoError(t, err)
		assert.Equal(t, []order.Status{order.Paid, order.Shipped}, query.Statuses())
		assert.Equal(t, 2, query.Page())
		assert.Equal(t, 50, query.PageSize())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		for name, tc := range map[string]struct {
			statuses       []string
			page, pageSize int
		}{
			"negative page":   {nil, -1, 10},
			"page size large": {nil, 1, queries.MaxPageSize + 1},
			"negative size":   {nil, 1, -5},
			"unknown status":  {[]string{"Lost"}, 1, 10},
		} {
			_, err := queries.NewListOrdersQuery(tc.statuses, tc.page, tc.pageSize)

			require.Error(t, err, name)
			assert.True(t, errs.IsInvalidArgument(err), name)
		}
	})

	t.Run("not constructed", func(t *testing.T) {
		assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	})
}
