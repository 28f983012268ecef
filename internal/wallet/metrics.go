package wallet

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "teer_wallet_fetches_total",
		Help: "Full wallet refreshes that reached the network",
	})
	fetchesSuppressed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "teer_wallet_fetches_suppressed_total",
		Help: "Refresh calls swallowed by the debounce window or an in-flight fetch",
	})
	fetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "teer_wallet_fetch_errors_total",
		Help: "Wallet refreshes that failed and left stale state in place",
	})
)

func init() {
	prometheus.MustRegister(fetchesTotal, fetchesSuppressed, fetchErrors)
}
