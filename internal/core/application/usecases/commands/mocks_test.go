package commands_test

import (
	"context"
	"testing"
	"time"

	"climasite/internal/core/application/usecases/commands"
	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/model/order"
	"climasite/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*order.Order, error) {
	args := m.Called(ctx, paymentIntentID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, createdBefore, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockPaymentEventRepository struct{ mock.Mock }

func (m *MockPaymentEventRepository) Record(
	ctx context.Context,
	eventID, eventType, paymentIntentID string,
	receivedAt time.Time,
) (bool, error) {
	args := m.Called(ctx, eventID, eventType, paymentIntentID, receivedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentEventRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWebhookUoW struct {
	MockOrderUoW
}

func (m *MockWebhookUoW) PaymentEventRepository() ports.PaymentEventRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentEventRepository)
}

type MockWebhookUoWFactory struct{ mock.Mock }

func (m *MockWebhookUoWFactory) Create() commands.WebhookUoW {
	args := m.Called()
	return args.Get(0).(commands.WebhookUoW)
}

type MockEventLogUoW struct{ mock.Mock }

func (m *MockEventLogUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventLogUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventLogUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventLogUoW) PaymentEventRepository() ports.PaymentEventRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentEventRepository)
}

type MockEventLogUoWFactory struct{ mock.Mock }

func (m *MockEventLogUoWFactory) Create() commands.EventLogUoW {
	args := m.Called()
	return args.Get(0).(commands.EventLogUoW)
}

type MockWebhookMetrics struct{ mock.Mock }

func (m *MockWebhookMetrics) ObserveWebhook(eventType, outcome string) {
	m.Called(eventType, outcome)
}

// newOrderUoW wires a unit of work mock returning repo from a factory mock.
func newOrderUoW(repo *MockOrderRepository) (*MockOrderUoW, *MockOrderUoWFactory) {
	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(repo).Maybe()
	return uow, factory
}

func eur(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount, "EUR")
	require.NoError(t, err)
	return m
}

func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "AC-9000", "Split AC 9000 BTU", 1, eur(t, 89900))
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:              kernel.NewUUID(),
		OrderNumber:     "CS-20260301-0A0B0C0D",
		Status:          status,
		PaymentIntentID: "pi_123",
		Items:           []order.LineItem{item},
		Shipping:        eur(t, 0),
		Tax:             eur(t, 0),
		Discount:        eur(t, 0),
		CreatedAt:       fixedNow.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	return o
}
