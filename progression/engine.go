package progression

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pho-paradise-api/models"
	"pho-paradise-api/statemachine"
	"pho-paradise-api/store"
)

// DwellTimes holds the minimum time an order must sit in each status
// before a sweep may advance it.
type DwellTimes map[models.OrderStatus]time.Duration

// DefaultDwellTimes returns the demo-scale dwell of six seconds per
// status (stands in for real kitchen timing measured in minutes).
func DefaultDwellTimes() DwellTimes {
	return DwellTimes{
		models.StatusPending:   6 * time.Second,
		models.StatusPreparing: 6 * time.Second,
		models.StatusReady:     6 * time.Second,
	}
}

// SweepResult reports one sweep over the order set.
type SweepResult struct {
	Examined int `json:"examined"`
	Advanced int `json:"advanced"`
}

// Engine advances orders through the kitchen lifecycle without human
// intervention. It holds no timer of its own: callers invoke Sweep on
// whatever cadence they like, and repeated sweeps inside one dwell
// window are no-ops.
type Engine struct {
	orders store.OrderStore
	dwell  DwellTimes
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(orders store.OrderStore, dwell DwellTimes, logger *slog.Logger) *Engine {
	if dwell == nil {
		dwell = DefaultDwellTimes()
	}
	return &Engine{
		orders: orders,
		dwell:  dwell,
		logger: logger.With("component", "progression"),
		now:    time.Now,
	}
}

// Sweep examines every non-terminal order and moves each one that has
// dwelt long enough to its single next status. An empty order set is not
// an error. Overlapping sweeps can race on the same order; the update is
// a plain overwrite, so the worst case is one harmless extra advance.
func (e *Engine) Sweep(ctx context.Context) (SweepResult, error) {
	orders, err := e.orders.Find(ctx, store.OrderFilter{ExcludeStatus: models.StatusDelivered})
	if err != nil {
		return SweepResult{}, fmt.Errorf("load active orders: %w", err)
	}

	now := e.now()
	result := SweepResult{Examined: len(orders)}
	for _, order := range orders {
		next, ok := statemachine.Next(order.Status)
		if !ok {
			continue
		}
		if now.Sub(order.LastActivity()) < e.dwell[order.Status] {
			continue
		}
		if _, err := e.orders.UpdateByID(ctx, order.ID, map[string]any{"status": next}); err != nil {
			e.logger.Error("failed to advance order", "order_id", order.ID, "error", err)
			continue
		}
		result.Advanced++
		// TODO: dispatch a status-update notification here once the
		// sweep gets a customer email for every order; today only the
		// manual paths notify.
		e.logger.Info("order progressed", "order_id", order.ID, "status", next)
	}
	return result, nil
}
