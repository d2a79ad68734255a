package commands

import (
	"errors"
	"fmt"
	"time"

	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

var ErrPruneWebhookEventsCommandIsNotConstructed = errors.New(
	"PruneWebhookEventsCommand must be created via NewPruneWebhookEventsCommand constructor",
)

// PruneWebhookEventsCommand removes processed event ids older than the retention.
// Gateways stop redelivering long before the retention ends.
type PruneWebhookEventsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPruneWebhookEventsCommand creates the command.
func NewPruneWebhookEventsCommand(retention time.Duration) (PruneWebhookEventsCommand, error) {
	if retention <= 0 {
		return PruneWebhookEventsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"retention", fmt.Errorf("%s is not positive", retention))
	}

	return PruneWebhookEventsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PruneWebhookEventsCommand) Validate() error {
	return c.guard.Validate(ErrPruneWebhookEventsCommandIsNotConstructed)
}

// Retention returns how long event ids are kept.
func (c PruneWebhookEventsCommand) Retention() time.Duration {
	return c.retention
}
