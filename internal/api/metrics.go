package api

import "github.com/prometheus/client_golang/prometheus"

var requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "teer_api_requests_total",
	Help: "Backend requests by endpoint and outcome",
}, []string{"endpoint", "outcome"})

func init() {
	prometheus.MustRegister(requestsTotal)
}
