package http_test

import (
	"context"

	"climasite/internal/core/application/usecases/commands"
	"climasite/internal/core/application/usecases/queries"
	"climasite/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockChangeOrderStatusHandler struct {
	mock.Mock
}

func (m *MockChangeOrderStatusHandler) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAddOrderNoteHandler struct {
	mock.Mock
}

func (m *MockAddOrderNoteHandler) Handle(ctx context.Context, cmd commands.AddOrderNoteCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSetTrackingInfoHandler struct {
	mock.Mock
}

func (m *MockSetTrackingInfoHandler) Handle(ctx context.Context, cmd commands.SetTrackingInfoCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPaymentWebhookHandler struct {
	mock.Mock
}

func (m *MockPaymentWebhookHandler) Handle(
	ctx context.Context,
	cmd commands.HandlePaymentWebhookCommand,
) (services.Outcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(services.Outcome), args.Error(1)
}

type MockGetOrderHandler struct {
	mock.Mock
}

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.OrderDetails), args.Error(1)
}

type MockListOrdersHandler struct {
	mock.Mock
}

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) (*queries.OrderPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.OrderPage), args.Error(1)
}
