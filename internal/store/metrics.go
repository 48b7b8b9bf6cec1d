package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storeWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fitlog",
	Subsystem: "store",
	Name:      "writes_total",
	Help:      "Full-document writes of the data file by result (ok, error).",
}, []string{"result"})
