package kernel_test

import (
	"testing"
	"time"

	"climasite/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.FixedZone("CET", 3600))
	clock := kernel.NewFixedClock(at)

	assert.True(t, at.Equal(clock.Now()))
	assert.Equal(t, time.UTC, clock.Now().Location())
	assert.Equal(t, clock.Now(), clock.Now())
}

func TestSystemClock(t *testing.T) {
	before := time.Now().UTC()
	now := kernel.NewSystemClock().Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.False(t, now.Before(before.Add(-time.Second)))
}
