// Package commands contains business operations that modify order state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"climasite/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentEventRepoFactory provides access to the processed event log within a transaction.
	PaymentEventRepoFactory interface {
		PaymentEventRepository() ports.PaymentEventRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// WebhookUoW manages transactions that record a gateway event and update the
	// order it refers to.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   fresh, err := uow.PaymentEventRepository().Record(ctx, id, typ, pi, now)
	//   o, err := uow.OrderRepository().GetByPaymentIntentID(ctx, pi)
	//   // ... reconcile
	//
	//   err = uow.Commit(ctx)
	WebhookUoW interface {
		TxManager
		OrderRepoFactory
		PaymentEventRepoFactory
	}

	// EventLogUoW manages transactions that only touch the processed event log.
	EventLogUoW interface {
		TxManager
		PaymentEventRepoFactory
	}

	// EventLogUoWFactory creates new event log unit of work instances.
	EventLogUoWFactory interface {
		Create() EventLogUoW
	}

	// WebhookUoWFactory creates new webhook unit of work instances.
	WebhookUoWFactory interface {
		Create() WebhookUoW
	}
)
