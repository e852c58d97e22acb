package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully created",
	})

	ordersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Orders cancelled by the caller",
	})

	ordersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Order creations rejected, by reason",
	}, []string{"reason"})

	lowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "low_stock_products",
		Help: "Inventory records currently below their minimum threshold",
	})
)
