package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted through checkout or direct creation",
	})

	OrdersAdvanced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_advanced_total",
		Help: "Status advances applied by the auto-progression sweep",
	})

	PaymentEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_events_total",
		Help: "Webhook deliveries by outcome",
	}, []string{"result"})

	SweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sweep_duration_seconds",
		Help:    "Wall time of one auto-progression sweep",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(OrdersCreated, OrdersAdvanced, PaymentEvents, SweepDuration)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
