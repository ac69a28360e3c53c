package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RegistrationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "board_registrations_total",
			Help: "Total number of registered accounts.",
		},
	)
	PostingsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "board_postings_created_total",
			Help: "Total number of created postings.",
		},
	)
	ApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "board_applications_total",
			Help: "Total number of candidate applications received.",
		},
	)
	SearchDuration = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Name:       "board_search_duration_seconds",
			Help:       "Duration of full-text posting searches.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
	)
)

func StartMetricsServer(address string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(RegistrationsCounter)
	prometheus.MustRegister(PostingsCreatedCounter)
	prometheus.MustRegister(ApplicationsCounter)
	prometheus.MustRegister(SearchDuration)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(address, mux))
	}()
}
