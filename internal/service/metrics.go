package service

import "github.com/prometheus/client_golang/prometheus"

var mutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "business_mutations_total", Help: "Successful business writes"},
	[]string{"op"},
)

func init() { prometheus.MustRegister(mutations) }
