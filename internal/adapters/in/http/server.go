// Package http exposes the order service over HTTP. Handlers implement the
// generated servers.ServerInterface and translate between the API models and
// the application's commands and queries.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"climasite/internal/core/application/usecases/commands"
	"climasite/internal/core/application/usecases/queries"
	"climasite/internal/core/domain/model/kernel"
	"climasite/internal/core/domain/services"
	"climasite/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxWebhookBody bounds gateway payloads.
const maxWebhookBody = 1 << 20

// Use case ports consumed by the server.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
	}

	AddOrderNoteHandler interface {
		Handle(ctx context.Context, cmd commands.AddOrderNoteCommand) error
	}

	SetTrackingInfoHandler interface {
		Handle(ctx context.Context, cmd commands.SetTrackingInfoCommand) error
	}

	PaymentWebhookHandler interface {
		Handle(ctx context.Context, cmd commands.HandlePaymentWebhookCommand) (services.Outcome, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderDetails, error)
	}

	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (*queries.OrderPage, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	ChangeOrderStatus ChangeOrderStatusHandler
	AddOrderNote      AddOrderNoteHandler
	SetTrackingInfo   SetTrackingInfoHandler
	PaymentWebhook    PaymentWebhookHandler
	GetOrder          GetOrderHandler
	ListOrders        ListOrdersHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers        Handlers
	defaultCurrency string
	logger          *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server. defaultCurrency applies to orders
// submitted without a currency.
func NewServer(handlers Handlers, defaultCurrency string, logger *slog.Logger) *Server {
	return &Server{
		handlers:        handlers,
		defaultCurrency: defaultCurrency,
		logger:          logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders - creates a pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	items := make([]commands.OrderItemInput, len(body.Items))
	for i, item := range body.Items {
		productID, err := kernel.UUIDFromBytes(item.ProductId[:])
		if err != nil {
			return s.respondWithError(ctx, err, "Failed to create order")
		}
		items[i] = commands.OrderItemInput{
			ProductID: productID,
			SKU:       deref(item.Sku),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	currency := deref(body.Currency)
	if strings.TrimSpace(currency) == "" {
		currency = s.defaultCurrency
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		currency,
		items,
		derefInt(body.Shipping),
		derefInt(body.Tax),
		derefInt(body.Discount),
		deref(body.PaymentIntentId),
	)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to create order")
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{
		Id:          result.OrderID.Bytes(),
		OrderNumber: result.OrderNumber,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId} - order details with the audit trail.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to retrieve order")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to retrieve order")
	}

	details, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderDetails(details))
}

// HandlePaymentWebhook handles POST /api/v1/webhooks/payments.
//
// Every parseable event is acknowledged with 200, including events that cannot
// be correlated to an order and transitions that no longer apply. Only
// malformed payloads (400) and infrastructure failures (500) are refused, the
// latter so that the gateway retries.
func (s *Server) HandlePaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBody))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	event, err := parsePaymentEvent(body)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if event.PaymentIntentID == "" {
		if !event.IsKnown() {
			s.logger.DebugContext(ctx.Request().Context(), "ignoring payment event", "event_id", event.ID, "type", event.Type)
			return ctx.JSON(http.StatusOK, servers.WebhookAck{Received: true, Outcome: string(services.OutcomeIgnored)})
		}
		s.logger.WarnContext(ctx.Request().Context(), "payment event has no payment intent",
			"event_id", event.ID, "type", event.Type)
		return ctx.JSON(http.StatusOK, servers.WebhookAck{Received: true, Outcome: string(services.OutcomeOrderNotFound)})
	}

	cmd, err := commands.NewHandlePaymentWebhookCommand(event)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	outcome, err := s.handlers.PaymentWebhook.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, http.StatusInternalServerError, "Failed to process event")
	}

	return ctx.JSON(http.StatusOK, servers.WebhookAck{Received: true, Outcome: string(outcome)})
}

// ListOrders handles GET /api/v1/admin/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var statuses []string
	if params.Status != nil {
		for _, value := range *params.Status {
			for _, name := range strings.Split(value, ",") {
				if name = strings.TrimSpace(name); name != "" {
					statuses = append(statuses, name)
				}
			}
		}
	}

	query, err := queries.NewListOrdersQuery(statuses, derefInt(params.Page), derefInt(params.PageSize))
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to list orders")
	}

	page, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to list orders")
	}

	response := servers.OrderPage{
		Orders:   make([]servers.OrderSummary, len(page.Orders)),
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	}
	for i, o := range page.Orders {
		response.Orders[i] = servers.OrderSummary{
			Id:             parseID(o.ID),
			OrderNumber:    o.OrderNumber,
			Status:         o.Status,
			Currency:       o.Currency,
			Total:          o.Total,
			TrackingNumber: optional(o.TrackingNumber),
			CreatedAt:      o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeOrderStatus handles POST /api/v1/admin/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.StatusChange
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to change order status")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, body.Status, deref(body.Reason), adminSubject(ctx))
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to change order status")
	}

	if err = s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondWithError(ctx, err, "Failed to change order status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddOrderNote handles POST /api/v1/admin/orders/{orderId}/notes.
func (s *Server) AddOrderNote(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.NewNote
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to add note")
	}

	cmd, err := commands.NewAddOrderNoteCommand(id, adminSubject(ctx), body.Text)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to add note")
	}

	if err = s.handlers.AddOrderNote.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondWithError(ctx, err, "Failed to add note")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetTrackingInfo handles PUT /api/v1/admin/orders/{orderId}/tracking.
func (s *Server) SetTrackingInfo(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.TrackingInfo
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to set tracking info")
	}

	markShipped := body.MarkShipped != nil && *body.MarkShipped
	cmd, err := commands.NewSetTrackingInfoCommand(
		id, deref(body.TrackingNumber), deref(body.ShippingMethod), markShipped, adminSubject(ctx),
	)
	if err != nil {
		return s.respondWithError(ctx, err, "Failed to set tracking info")
	}

	if err = s.handlers.SetTrackingInfo.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondWithError(ctx, err, "Failed to set tracking info")
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderDetails(d *queries.OrderDetails) servers.OrderDetails {
	items := make([]servers.OrderItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = servers.OrderItem{
			ProductId: parseID(item.ProductID),
			Sku:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
	}

	allowed := d.AllowedNext
	if allowed == nil {
		allowed = []string{}
	}

	return servers.OrderDetails{
		Id:              parseID(d.ID),
		OrderNumber:     d.OrderNumber,
		Status:          d.Status,
		AllowedNext:     allowed,
		PaymentIntentId: optional(d.PaymentIntentID),
		TrackingNumber:  optional(d.TrackingNumber),
		ShippingMethod:  optional(d.ShippingMethod),
		Currency:        d.Currency,
		Subtotal:        d.Subtotal,
		Shipping:        d.Shipping,
		Tax:             d.Tax,
		Discount:        d.Discount,
		Total:           d.Total,
		Items:           items,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		PaidAt:          d.PaidAt,
		ShippedAt:       d.ShippedAt,
		DeliveredAt:     d.DeliveredAt,
		CancelledAt:     d.CancelledAt,
	}
}

// parseID converts read model ids, which come from the database and are
// always well formed.
func parseID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt[T int | int64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}
