package order_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later     = createdAt.Add(2 * time.Hour)
)

func eur(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, "EUR")
	require.NoError(t, err)
	return m
}

func lineItem(t *testing.T, quantity int, unitPrice int64) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "AC-9000", "Split AC 9000 BTU", quantity, eur(t, unitPrice))
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"CS-20260301-1A2B3C4D",
		[]order.LineItem{lineItem(t, 2, 45000)},
		eur(t, 1500), eur(t, 0), eur(t, 0),
		createdAt,
	)
	require.NoError(t, err)
	return o
}

// orderInStatus restores an order directly into s with no timestamps or notes.
func orderInStatus(t *testing.T, s order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:          kernel.NewUUID(),
		OrderNumber: "CS-20260301-00000001",
		Status:      s,
		Items:       []order.LineItem{lineItem(t, 1, 10000)},
		Shipping:    eur(t, 0),
		Tax:         eur(t, 0),
		Discount:    eur(t, 0),
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with derived totals", func(t *testing.T) {
		items := []order.LineItem{lineItem(t, 2, 45000), lineItem(t, 1, 12000)}

		o, err := order.NewOrder(kernel.NewUUID(), "CS-20260301-1A2B3C4D", items,
			eur(t, 1500), eur(t, 19950), eur(t, 5000), createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "CS-20260301-1A2B3C4D", o.OrderNumber())
		assert.Equal(t, int64(102000), o.Subtotal().Amount())
		assert.Equal(t, int64(102000+1500+19950-5000), o.Total().Amount())
		assert.Equal(t, "EUR", o.Currency())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Len(t, o.Items(), 2)
		assert.Empty(t, o.Notes())
		assert.Empty(t, o.PaymentIntentID())
		assert.Nil(t, o.PaidAt())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "CS-1", nil, eur(t, 0), eur(t, 0), eur(t, 0), createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
	})

	t.Run("should fail on mixed currencies", func(t *testing.T) {
		usd, err := kernel.NewMoney(1000, "USD")
		require.NoError(t, err)

		o, err := order.NewOrder(kernel.NewUUID(), "CS-1", []order.LineItem{lineItem(t, 1, 100)},
			usd, eur(t, 0), eur(t, 0), createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})

	t.Run("should fail when discount exceeds order value", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "CS-1", []order.LineItem{lineItem(t, 1, 100)},
			eur(t, 0), eur(t, 0), eur(t, 101), createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "discount")
	})

	t.Run("should fail on negative shipping", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "CS-1", []order.LineItem{lineItem(t, 1, 100)},
			eur(t, -1), eur(t, 0), eur(t, 0), createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, "  ", nil, eur(t, 0), eur(t, 0), eur(t, 0), createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "items")
	})
}

func TestRestoreOrder(t *testing.T) {
	paidAt := createdAt.Add(time.Minute)
	id := kernel.NewUUID()
	notes := []order.Note{order.NewNote(paidAt, order.AuthorPaymentGateway, "Status changed to Paid")}

	t.Run("should restore persisted state", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:              id,
			OrderNumber:     "CS-20260301-1A2B3C4D",
			Status:          order.Paid,
			PaymentIntentID: "pi_123",
			TrackingNumber:  "1Z999",
			ShippingMethod:  "DHL",
			Items:           []order.LineItem{lineItem(t, 1, 10000)},
			Shipping:        eur(t, 500),
			Tax:             eur(t, 0),
			Discount:        eur(t, 0),
			Notes:           notes,
			CreatedAt:       createdAt,
			PaidAt:          &paidAt,
		})

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, "pi_123", o.PaymentIntentID())
		assert.Equal(t, "1Z999", o.TrackingNumber())
		assert.Equal(t, "DHL", o.ShippingMethod())
		assert.Equal(t, int64(10500), o.Total().Amount())
		require.NotNil(t, o.PaidAt())
		assert.Equal(t, paidAt, *o.PaidAt())
		assert.Equal(t, notes, o.Notes())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:          id,
			OrderNumber: "CS-1",
			Status:      order.Unknown,
			Items:       []order.LineItem{lineItem(t, 1, 10000)},
			Shipping:    eur(t, 0),
			Tax:         eur(t, 0),
			Discount:    eur(t, 0),
			CreatedAt:   createdAt,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	var nilOrder *order.Order

	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	require.NoError(t, newPendingOrder(t).Validate())
}

func TestOrder_Transition(t *testing.T) {
	t.Run("should apply legal transition with reason", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Transition(order.Paid, "Payment confirmed via webhook", order.AuthorPaymentGateway, later)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, o.Status())
		require.NotNil(t, o.PaidAt())
		assert.Equal(t, later, *o.PaidAt())
		notes := o.Notes()
		require.Len(t, notes, 1)
		assert.Equal(t, "Status changed to Paid: Payment confirmed via webhook", notes[0].Text())
		assert.Equal(t, order.AuthorPaymentGateway, notes[0].Author())
		assert.Equal(t, "[2026-03-01 11:00:00] Status changed to Paid: Payment confirmed via webhook", o.FormattedNotes())
	})

	t.Run("should flatten a multi-line reason", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Transition(order.PaymentFailed, "Card declined\nInsufficient funds", order.AuthorPaymentGateway, later))

		assert.Equal(t, "[2026-03-01 11:00:00] Status changed to PaymentFailed: Card declined Insufficient funds", o.FormattedNotes())
	})

	t.Run("should omit suffix when reason is blank", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Transition(order.Cancelled, "  ", order.AuthorSystem, later))

		assert.Equal(t, "Status changed to Cancelled", o.Notes()[0].Text())
		require.NotNil(t, o.CancelledAt())
	})

	t.Run("should reject Unknown target", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Transition(order.Unknown, "", order.AuthorSystem, later)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("every pair outside the table fails and leaves the order untouched", func(t *testing.T) {
		for _, from := range order.AllStatuses() {
			for _, to := range order.AllStatuses() {
				if from.CanTransitionTo(to) {
					continue
				}
				o := orderInStatus(t, from)

				err := o.Transition(to, "nope", order.AuthorSystem, later)

				var invalid *order.InvalidTransitionError
				require.ErrorAs(t, err, &invalid, "%s -> %s", from, to)
				assert.Equal(t, from, invalid.From)
				assert.Equal(t, to, invalid.To)
				assert.Equal(t, from, o.Status())
				assert.Empty(t, o.Notes())
				assert.Nil(t, o.PaidAt())
				assert.Nil(t, o.ShippedAt())
				assert.Nil(t, o.DeliveredAt())
				assert.Nil(t, o.CancelledAt())
			}
		}
	})

	t.Run("every pair in the table succeeds and stamps the matching timestamp", func(t *testing.T) {
		for from, targets := range order.AllowedTransitions() {
			for _, to := range targets {
				o := orderInStatus(t, from)

				require.NoError(t, o.Transition(to, "", order.AuthorSystem, later), "%s -> %s", from, to)

				assert.Equal(t, to, o.Status())
				assert.Len(t, o.Notes(), 1)
				stamped := map[order.Status]*time.Time{
					order.Paid:      o.PaidAt(),
					order.Shipped:   o.ShippedAt(),
					order.Delivered: o.DeliveredAt(),
					order.Cancelled: o.CancelledAt(),
				}
				for status, ts := range stamped {
					if status == to {
						require.NotNil(t, ts, "%s -> %s", from, to)
						assert.Equal(t, later, *ts)
					} else {
						assert.Nil(t, ts, "%s -> %s stamped %s", from, to, status)
					}
				}
			}
		}
	})

	t.Run("re-entering Paid keeps the first timestamp", func(t *testing.T) {
		first := later
		second := later.Add(time.Hour)
		o := orderInStatus(t, order.PaymentFailed)
		paidAt := first
		restored, err := order.RestoreOrder(order.RestoreParams{
			ID:          o.ID(),
			OrderNumber: o.OrderNumber(),
			Status:      order.PaymentFailed,
			Items:       o.Items(),
			Shipping:    o.Shipping(),
			Tax:         o.Tax(),
			Discount:    o.Discount(),
			CreatedAt:   createdAt,
			PaidAt:      &paidAt,
		})
		require.NoError(t, err)

		require.NoError(t, restored.Transition(order.Paid, "", order.AuthorSystem, second))

		assert.Equal(t, first, *restored.PaidAt())
	})
}

func TestOrder_HappyPathLifecycle(t *testing.T) {
	o := newPendingOrder(t)
	steps := []order.Status{order.Paid, order.Processing, order.Shipped, order.Delivered, order.Refunded}

	for i, s := range steps {
		require.NoError(t, o.Transition(s, "", order.AuthorSystem, later.Add(time.Duration(i)*time.Minute)))
	}

	assert.Equal(t, order.Refunded, o.Status())
	assert.Len(t, o.Notes(), len(steps))
	assert.Equal(t, later, *o.PaidAt())
	assert.Equal(t, later.Add(2*time.Minute), *o.ShippedAt())
	assert.Equal(t, later.Add(3*time.Minute), *o.DeliveredAt())
	assert.Nil(t, o.CancelledAt())
	assert.True(t, o.Status().IsTerminal())
}

func TestOrder_AppendNote(t *testing.T) {
	o := newPendingOrder(t)

	o.AppendNote("admin@climasite.test", "Customer called about delivery window", createdAt)
	o.AppendNote(order.AuthorSystem, "Second", later)

	notes := o.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "admin@climasite.test", notes[0].Author())
	assert.Equal(t,
		"[2026-03-01 09:00:00] Customer called about delivery window\n[2026-03-01 11:00:00] Second",
		o.FormattedNotes())

	t.Run("returned notes are a copy", func(t *testing.T) {
		got := o.Notes()
		got[0] = order.NewNote(later, "x", "tampered")

		assert.Equal(t, "Customer called about delivery window", o.Notes()[0].Text())
	})
}

func TestOrder_SetTrackingInfo(t *testing.T) {
	t.Run("should update only non-empty fields", func(t *testing.T) {
		o := orderInStatus(t, order.Processing)

		require.NoError(t, o.SetTrackingInfo("1Z999", "", false, "ops", later))
		require.NoError(t, o.SetTrackingInfo("", "DHL Express", false, "ops", later))

		assert.Equal(t, "1Z999", o.TrackingNumber())
		assert.Equal(t, "DHL Express", o.ShippingMethod())
		assert.Equal(t, order.Processing, o.Status())
		assert.Empty(t, o.Notes())
	})

	t.Run("should mark shipped from Processing", func(t *testing.T) {
		o := orderInStatus(t, order.Processing)

		require.NoError(t, o.SetTrackingInfo("1Z999", "UPS", true, "ops", later))

		assert.Equal(t, order.Shipped, o.Status())
		require.NotNil(t, o.ShippedAt())
		assert.Equal(t, later, *o.ShippedAt())
		assert.Equal(t, "Status changed to Shipped: Tracking number 1Z999", o.Notes()[0].Text())
	})

	t.Run("failed mark shipped changes nothing", func(t *testing.T) {
		o := orderInStatus(t, order.Pending)

		err := o.SetTrackingInfo("1Z999", "UPS", true, "ops", later)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Empty(t, o.TrackingNumber())
		assert.Empty(t, o.ShippingMethod())
		assert.Empty(t, o.Notes())
		assert.Nil(t, o.ShippedAt())
	})
}

func TestOrder_AttachPaymentIntent(t *testing.T) {
	o := newPendingOrder(t)

	require.NoError(t, o.AttachPaymentIntent("pi_123"))
	require.NoError(t, o.AttachPaymentIntent("pi_123"))
	assert.Equal(t, "pi_123", o.PaymentIntentID())

	err := o.AttachPaymentIntent("pi_other")
	require.ErrorIs(t, err, order.ErrPaymentIntentAlreadyAttached)
	assert.True(t, errs.IsInvalidArgument(err))
	var invalid *errs.ValueIsInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "paymentIntentId", invalid.ParamName)
	assert.Equal(t, "pi_123", o.PaymentIntentID())

	require.ErrorIs(t, o.AttachPaymentIntent(" "), errs.ErrValueIsRequired)
}

func TestOrder_RecordGatewayRefund(t *testing.T) {
	t.Run("should refund from every refundable status", func(t *testing.T) {
		for _, s := range []order.Status{order.Paid, order.Processing, order.Shipped, order.Delivered} {
			o := orderInStatus(t, s)

			require.NoError(t, o.RecordGatewayRefund("Refund of 50.00 EUR processed via webhook",
				order.AuthorPaymentGateway, later), s.String())

			assert.Equal(t, order.Refunded, o.Status())
			assert.Equal(t, "Status changed to Refunded: Refund of 50.00 EUR processed via webhook", o.Notes()[0].Text())
		}
	})

	t.Run("should reject non refundable statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.PaymentFailed, order.Cancelled, order.Refunded} {
			o := orderInStatus(t, s)

			err := o.RecordGatewayRefund("", order.AuthorPaymentGateway, later)

			require.ErrorIs(t, err, order.ErrInvalidTransition, s.String())
			assert.Equal(t, s, o.Status())
			assert.Empty(t, o.Notes())
		}
	})
}

func TestOrder_Scenarios(t *testing.T) {
	t.Run("late success after failure", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Transition(order.PaymentFailed, "Card declined", order.AuthorPaymentGateway, createdAt.Add(time.Minute)))
		require.NoError(t, o.Transition(order.Paid, "Payment confirmed via webhook", order.AuthorPaymentGateway, later))

		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, later, *o.PaidAt())
		assert.Len(t, o.Notes(), 2)
	})

	t.Run("replayed success on shipped order is rejected", func(t *testing.T) {
		o := orderInStatus(t, order.Shipped)

		err := o.Transition(order.Paid, "", order.AuthorPaymentGateway, later)

		require.True(t, errors.Is(err, order.ErrInvalidTransition))
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("cancelled order cannot be paid", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Transition(order.Cancelled, "Customer request", "admin", later))

		err := o.Transition(order.Paid, "", order.AuthorPaymentGateway, later)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.True(t, strings.HasSuffix(o.Notes()[0].Text(), "Customer request"))
	})
}
