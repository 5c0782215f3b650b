package market

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes market activity to Prometheus. Optional: a nil *Metrics
// disables recording.
type Metrics struct {
	Buys        prometheus.Counter
	Sells       prometheus.Counter
	Graduations prometheus.Counter

	OrderFailures *prometheus.CounterVec
	QuoteVolume   *prometheus.CounterVec

	CurrentSupply prometheus.Gauge
	QuoteReserve  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if namespace == "" {
		namespace = "launchcurve"
	}
	factory := promauto.With(reg)
	return &Metrics{
		Buys: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "buys_total",
			Help:      "Total number of completed buy orders",
		}),
		Sells: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "sells_total",
			Help:      "Total number of completed sell orders",
		}),
		Graduations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "graduations_total",
			Help:      "Total number of markets graduated to the external pool",
		}),
		OrderFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "order_failures_total",
			Help:      "Total number of rejected orders by reason",
		}, []string{"direction", "reason"}),
		QuoteVolume: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "quote_volume_wad_total",
			Help:      "Cumulative quote-currency volume in wad by direction",
		}, []string{"direction"}),
		CurrentSupply: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "current_supply_wad",
			Help:      "Tokens minted along the bonding curve, wad",
		}),
		QuoteReserve: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "quote_reserve_wad",
			Help:      "Quote currency held against the curve, wad",
		}),
	}
}

func (mt *Metrics) recordOrder(direction string, volume *big.Int) {
	if mt == nil {
		return
	}
	switch direction {
	case "buy":
		mt.Buys.Inc()
	case "sell":
		mt.Sells.Inc()
	}
	mt.QuoteVolume.WithLabelValues(direction).Add(wadToFloat(volume))
}

func (mt *Metrics) recordFailure(direction string, err error) {
	if mt == nil {
		return
	}
	mt.OrderFailures.WithLabelValues(direction, err.Error()).Inc()
}

func (mt *Metrics) recordGraduation() {
	if mt == nil {
		return
	}
	mt.Graduations.Inc()
}

func (mt *Metrics) recordState(currentSupply, quoteReserve *big.Int) {
	if mt == nil {
		return
	}
	mt.CurrentSupply.Set(wadToFloat(currentSupply))
	mt.QuoteReserve.Set(wadToFloat(quoteReserve))
}

func wadToFloat(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f / 1e18
}
