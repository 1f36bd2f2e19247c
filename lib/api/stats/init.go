package stats

import (
	"github.com/ether/wsclient-go/lib"
	"github.com/gofiber/adaptor/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"

	// UnknownService labels calls to names that are not stored. It is not a valid
	// machine name so it never collides with a real service.
	UnknownService = "(unknown)"
)

var serviceInvocations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "wsclient",
		Name:      "invocations_total",
		Help:      "Number of service operations invoked through the API",
	},
	[]string{"service", "outcome"},
)

func RecordInvocation(service string, outcome string) {
	serviceInvocations.WithLabelValues(service, outcome).Inc()
}

func Init(store *lib.InitStore) {
	checks := []Checker{
		DBChecker{store.Store},
		ServicesChecker{store.Store},
		EndpointTypesChecker{store.Registry},
	}

	store.PrivateAPI.Get("/health", Handler(
		store.RetrievedSettings.GitVersion,
		"wsclient-api",
		checks,
	))

	if store.RetrievedSettings.EnableMetrics {
		storedServices := prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "wsclient",
				Name:      "services",
				Help:      "Number of stored service descriptions",
			},
			func() float64 {
				ids, err := store.Store.GetServiceIds()
				if err != nil {
					return 0
				}
				return float64(len(ids))
			},
		)
		endpointTypes := prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "wsclient",
				Name:      "endpoint_types",
				Help:      "Number of registered endpoint types",
			},
			func() float64 {
				return float64(len(store.Registry.Names()))
			},
		)

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			serviceInvocations,
			storedServices,
			endpointTypes,
		)
		handler := promhttp.HandlerFor(
			reg,
			promhttp.HandlerOpts{},
		)
		store.C.Get("/metrics", adaptor.HTTPHandler(handler))
	}
}
