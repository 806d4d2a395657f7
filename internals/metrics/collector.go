package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"wsb.com/wchain/internals/ledger"
)

const namespace = "wchain"

// ChainCollector reports the state of a ledger at scrape time.
type ChainCollector struct {
	ledger *ledger.Ledger

	height  *prometheus.Desc
	pending *prometheus.Desc
	valid   *prometheus.Desc
	nonces  *prometheus.Desc
}

func NewChainCollector(l *ledger.Ledger) *ChainCollector {
	return &ChainCollector{
		ledger: l,
		height: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "chain", "height"),
			"Index of the latest block",
			nil, nil,
		),
		pending: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pending", "transactions"),
			"Transactions waiting for the next mined block",
			nil, nil,
		),
		valid: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "chain", "valid"),
			"1 if every block hash and link verifies, 0 otherwise",
			nil, nil,
		),
		nonces: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "mining", "nonce_total"),
			"Sum of the nonces of all blocks on the chain",
			nil, nil,
		),
	}
}

func (c *ChainCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.height
	ch <- c.pending
	ch <- c.valid
	ch <- c.nonces
}

func (c *ChainCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.ledger.Stats()

	valid := 0.0
	if stats.Valid {
		valid = 1
	}

	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(stats.Height))
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(stats.Pending))
	ch <- prometheus.MustNewConstMetric(c.valid, prometheus.GaugeValue, valid)
	ch <- prometheus.MustNewConstMetric(c.nonces, prometheus.CounterValue, float64(stats.NonceTotal))
}
