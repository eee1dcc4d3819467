package progression

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"pho-paradise-api/models"
	"pho-paradise-api/statemachine"
	"pho-paradise-api/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(dwell time.Duration) (*Engine, *store.MemoryOrderStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	orders := store.NewMemoryOrderStore()
	orders.Now = clock.Now
	engine := NewEngine(orders, DwellTimes{
		models.StatusPending:   dwell,
		models.StatusPreparing: dwell,
		models.StatusReady:     dwell,
	}, slog.Default())
	engine.now = clock.Now
	return engine, orders, clock
}

func addOrder(t *testing.T, orders *store.MemoryOrderStore, status models.OrderStatus) string {
	t.Helper()
	order := &models.Order{ID: uuid.NewString(), Status: status, Total: 19.99}
	require.NoError(t, orders.Create(context.Background(), order))
	return order.ID
}

func TestSweepAdvancesAfterDwell(t *testing.T) {
	engine, orders, clock := newTestEngine(6 * time.Second)
	id := addOrder(t, orders, models.StatusPending)

	// not enough dwell yet
	clock.Advance(3 * time.Second)
	result, err := engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Examined: 1, Advanced: 0}, result)

	clock.Advance(3 * time.Second)
	result, err = engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Examined: 1, Advanced: 1}, result)

	order, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, order.Status)
}

func TestSweepIsIdempotentWithinDwellWindow(t *testing.T) {
	engine, orders, clock := newTestEngine(6 * time.Second)
	id := addOrder(t, orders, models.StatusPending)

	clock.Advance(10 * time.Second)
	result, err := engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Advanced)

	// immediate second sweep changes nothing: the dwell check is
	// recomputed from the fresh UpdatedAt
	result, err = engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Advanced)

	order, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, order.Status)
}

func TestSweepIgnoresDeliveredOrders(t *testing.T) {
	engine, orders, clock := newTestEngine(time.Second)
	id := addOrder(t, orders, models.StatusDelivered)

	clock.Advance(time.Hour)
	result, err := engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{Examined: 0, Advanced: 0}, result)

	order, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestSweepEmptyOrderSetIsNotAnError(t *testing.T) {
	engine, _, _ := newTestEngine(time.Second)
	result, err := engine.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, result)
}

func TestSweepReachesTerminalStateAndStops(t *testing.T) {
	engine, orders, clock := newTestEngine(6 * time.Second)
	id := addOrder(t, orders, models.StatusPending)

	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		_, err := engine.Sweep(context.Background())
		require.NoError(t, err)
	}

	order, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

// Random sweep cadences must never skip a stage or move backwards.
func TestSweepNeverSkipsOrRegresses(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	rank := map[models.OrderStatus]int{
		models.StatusPending:   0,
		models.StatusPreparing: 1,
		models.StatusReady:     2,
		models.StatusDelivered: 3,
	}

	for trial := 0; trial < 20; trial++ {
		dwell := time.Duration(1+rng.Intn(10)) * time.Second
		engine, orders, clock := newTestEngine(dwell)

		ids := make([]string, 5)
		for i := range ids {
			ids[i] = addOrder(t, orders, statemachine.AllStatuses[rng.Intn(3)])
		}
		last := make(map[string]models.OrderStatus)
		for _, id := range ids {
			order, err := orders.FindByID(context.Background(), id)
			require.NoError(t, err)
			last[id] = order.Status
		}

		for step := 0; step < 30; step++ {
			clock.Advance(time.Duration(rng.Intn(12)) * time.Second)
			_, err := engine.Sweep(context.Background())
			require.NoError(t, err)

			for _, id := range ids {
				order, err := orders.FindByID(context.Background(), id)
				require.NoError(t, err)
				prev, cur := rank[last[id]], rank[order.Status]
				assert.GreaterOrEqual(t, cur, prev, "status regressed: %s → %s", last[id], order.Status)
				assert.LessOrEqual(t, cur-prev, 1, "status skipped a stage: %s → %s", last[id], order.Status)
				last[id] = order.Status
			}
		}
	}
}
