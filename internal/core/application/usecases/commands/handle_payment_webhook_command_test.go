package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"climasite/internal/core/application/usecases/commands"
	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/core/domain/services"
	"climasite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	repo    *MockOrderRepository
	events  *MockPaymentEventRepository
	uow     *MockWebhookUoW
	factory *MockWebhookUoWFactory
	metrics *MockWebhookMetrics
	handler commands.HandlePaymentWebhookCommandHandler
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		repo:    new(MockOrderRepository),
		events:  new(MockPaymentEventRepository),
		uow:     new(MockWebhookUoW),
		factory: new(MockWebhookUoWFactory),
		metrics: new(MockWebhookMetrics),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("OrderRepository").Return(f.repo).Maybe()
	f.uow.On("PaymentEventRepository").Return(f.events).Maybe()
	f.handler = commands.NewHandlePaymentWebhookCommandHandler(
		f.factory, f.metrics, kernel.NewFixedClock(fixedNow), slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func webhookCommand(t *testing.T, eventType string) commands.HandlePaymentWebhookCommand {
	t.Helper()
	cmd, err := commands.NewHandlePaymentWebhookCommand(services.PaymentEvent{
		ID:              "evt_1",
		Type:            eventType,
		PaymentIntentID: "pi_123",
	})
	require.NoError(t, err)
	return cmd
}

func TestNewHandlePaymentWebhookCommand(t *testing.T) {
	t.Run("requires a payment intent", func(t *testing.T) {
		_, err := commands.NewHandlePaymentWebhookCommand(services.PaymentEvent{Type: services.EventPaymentSucceeded})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("trims identifiers", func(t *testing.T) {
		cmd, err := commands.NewHandlePaymentWebhookCommand(services.PaymentEvent{
			ID: " evt_1 ", Type: " charge.refunded ", PaymentIntentID: " pi_1 ",
		})

		require.NoError(t, err)
		assert.Equal(t, "evt_1", cmd.Event().ID)
		assert.Equal(t, services.EventChargeRefunded, cmd.Event().Type)
		assert.Equal(t, "pi_1", cmd.Event().PaymentIntentID)
	})
}

func TestHandlePaymentWebhookCommandHandler_Handle_Applied(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	o := orderInStatus(t, order.Pending)
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.events.On("Record", ctx, "evt_1", services.EventPaymentSucceeded, "pi_123", fixedNow).Return(true, nil).Once(),
		f.repo.On("GetByPaymentIntentID", ctx, "pi_123").Return(o, nil).Once(),
		f.repo.On("Update", ctx, o).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)
	f.metrics.On("ObserveWebhook", services.EventPaymentSucceeded, "applied").Once()

	outcome, err := f.handler.Handle(ctx, webhookCommand(t, services.EventPaymentSucceeded))

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeApplied, outcome)
	assert.Equal(t, order.Paid, o.Status())
	assert.Equal(t, fixedNow, *o.PaidAt())
	f.uow.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.events.AssertExpectations(t)
	f.metrics.AssertExpectations(t)
}

func TestHandlePaymentWebhookCommandHandler_Handle_Duplicate(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("Record", ctx, "evt_1", services.EventPaymentSucceeded, "pi_123", fixedNow).Return(false, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.metrics.On("ObserveWebhook", services.EventPaymentSucceeded, "duplicate").Once()

	outcome, err := f.handler.Handle(ctx, webhookCommand(t, services.EventPaymentSucceeded))

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeDuplicate, outcome)
	f.repo.AssertNotCalled(t, "GetByPaymentIntentID", mock.Anything, mock.Anything)
	f.metrics.AssertExpectations(t)
}

func TestHandlePaymentWebhookCommandHandler_Handle_WithoutEventIDSkipsDedup(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	o := orderInStatus(t, order.Paid)
	cmd, err := commands.NewHandlePaymentWebhookCommand(services.PaymentEvent{
		Type: services.EventPaymentSucceeded, PaymentIntentID: "pi_123",
	})
	require.NoError(t, err)
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.repo.On("GetByPaymentIntentID", ctx, "pi_123").Return(o, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.metrics.On("ObserveWebhook", services.EventPaymentSucceeded, "rejected").Once()

	outcome, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeRejected, outcome)
	f.events.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandlePaymentWebhookCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("Record", ctx, "evt_1", services.EventPaymentFailed, "pi_123", fixedNow).Return(true, nil).Once()
	f.repo.On("GetByPaymentIntentID", ctx, "pi_123").Return(nil, nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.metrics.On("ObserveWebhook", services.EventPaymentFailed, "order_not_found").Once()

	outcome, err := f.handler.Handle(ctx, webhookCommand(t, services.EventPaymentFailed))

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeOrderNotFound, outcome)
	f.uow.AssertExpectations(t)
}

func TestHandlePaymentWebhookCommandHandler_Handle_RefundOnShippedOrder(t *testing.T) {
	ctx := t.Context()
	f := newWebhookFixture()
	o := orderInStatus(t, order.Shipped)
	amount := int64(5000)
	cmd, err := commands.NewHandlePaymentWebhookCommand(services.PaymentEvent{
		ID: "evt_9", Type: services.EventChargeRefunded, PaymentIntentID: "pi_123", AmountRefunded: &amount,
	})
	require.NoError(t, err)
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.events.On("Record", ctx, "evt_9", services.EventChargeRefunded, "pi_123", fixedNow).Return(true, nil).Once()
	f.repo.On("GetByPaymentIntentID", ctx, "pi_123").Return(o, nil).Once()
	f.repo.On("Update", ctx, o).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.metrics.On("ObserveWebhook", services.EventChargeRefunded, "applied").Once()

	outcome, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, services.OutcomeApplied, outcome)
	assert.Equal(t, order.Refunded, o.Status())
	assert.Contains(t, o.FormattedNotes(), "Refund of 50.00 EUR processed via webhook")
}

func TestHandlePaymentWebhookCommandHandler_Handle_InfrastructureErrorsAreReturned(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(f *webhookFixture, o *order.Order)
	}{
		{
			name: "begin",
			setup: func(f *webhookFixture, _ *order.Order) {
				f.uow.On("Begin", mock.Anything).Return(errors.New("db down")).Once()
			},
		},
		{
			name: "record",
			setup: func(f *webhookFixture, _ *order.Order) {
				f.uow.On("Begin", mock.Anything).Return(nil).Once()
				f.events.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(false, errors.New("db down")).Once()
				f.uow.On("Rollback", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "lookup",
			setup: func(f *webhookFixture, _ *order.Order) {
				f.uow.On("Begin", mock.Anything).Return(nil).Once()
				f.events.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(true, nil).Once()
				f.repo.On("GetByPaymentIntentID", mock.Anything, "pi_123").Return(nil, errors.New("db down")).Once()
				f.uow.On("Rollback", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "update",
			setup: func(f *webhookFixture, o *order.Order) {
				f.uow.On("Begin", mock.Anything).Return(nil).Once()
				f.events.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(true, nil).Once()
				f.repo.On("GetByPaymentIntentID", mock.Anything, "pi_123").Return(o, nil).Once()
				f.repo.On("Update", mock.Anything, o).Return(errors.New("db down")).Once()
				f.uow.On("Rollback", mock.Anything).Return(nil).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newWebhookFixture()
			tc.setup(f, orderInStatus(t, order.Pending))

			outcome, err := f.handler.Handle(t.Context(), webhookCommand(t, services.EventPaymentSucceeded))

			require.EqualError(t, err, "db down")
			assert.Empty(t, outcome)
			f.metrics.AssertNotCalled(t, "ObserveWebhook", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}
