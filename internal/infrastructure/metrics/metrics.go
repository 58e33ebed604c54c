package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operación expuestos en /metrics. Los incrementa la capa HTTP
// al completar cada operación; los colectores de proceso/Go vienen del
// registry por defecto.
var (
	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cardstock",
		Name:      "stock_movements_total",
		Help:      "Movimientos de stock completados, por operación (intake, stock_out, stock_in, sale).",
	}, []string{"operation"})

	ApprovalDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cardstock",
		Name:      "approval_decisions_total",
		Help:      "Decisiones de aprobación procesadas, por acción (APPROVE, REJECT).",
	}, []string{"action"})

	LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cardstock",
		Name:      "low_stock_alerts_total",
		Help:      "Alertas LOW_STOCK generadas por el monitor.",
	})
)
