package commands

import (
	"errors"
	"fmt"
	"time"

	"climasite/internal/pkg/errs"
	"climasite/internal/pkg/guard"
)

const (
	defaultExpireBatchSize = 100
	maxExpireBatchSize     = 1000
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand cancels orders that never received a payment.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand creates the command. A zero batchSize uses the default.
func NewExpirePendingOrdersCommand(ttl time.Duration, batchSize int) (ExpirePendingOrdersCommand, error) {
	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not positive", ttl))
	}
	if batchSize == 0 {
		batchSize = defaultExpireBatchSize
	}
	if batchSize < 1 || batchSize > maxExpireBatchSize {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxExpireBatchSize)
	}

	return ExpirePendingOrdersCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

// TTL returns how long an order may wait for payment.
func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}

// BatchSize returns the maximum number of orders cancelled per run.
func (c ExpirePendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
