package statemachine

import (
	"testing"

	"pho-paradise-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFollowsLinearOrder(t *testing.T) {
	next, ok := Next(models.StatusPending)
	require.True(t, ok)
	assert.Equal(t, models.StatusPreparing, next)

	next, ok = Next(models.StatusPreparing)
	require.True(t, ok)
	assert.Equal(t, models.StatusReady, next)

	next, ok = Next(models.StatusReady)
	require.True(t, ok)
	assert.Equal(t, models.StatusDelivered, next)

	_, ok = Next(models.StatusDelivered)
	assert.False(t, ok, "delivered must have no successor")
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	for _, status := range []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusReady} {
		assert.False(t, IsTerminal(status), "%s should not be terminal", status)
	}
}

func TestValid(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, Valid(status))
	}
	assert.False(t, Valid("cancelled"))
	assert.False(t, Valid(""))
}

func TestCanAdvance(t *testing.T) {
	// same status is an idempotent no-op
	assert.NoError(t, CanAdvance(models.StatusPreparing, models.StatusPreparing))
	assert.NoError(t, CanAdvance(models.StatusDelivered, models.StatusDelivered))

	// single forward edge
	assert.NoError(t, CanAdvance(models.StatusPending, models.StatusPreparing))
	assert.NoError(t, CanAdvance(models.StatusReady, models.StatusDelivered))

	// skips and regressions are rejected
	assert.Error(t, CanAdvance(models.StatusPending, models.StatusReady))
	assert.Error(t, CanAdvance(models.StatusPending, models.StatusDelivered))
	assert.Error(t, CanAdvance(models.StatusReady, models.StatusPending))
	assert.Error(t, CanAdvance(models.StatusDelivered, models.StatusPending))
}
