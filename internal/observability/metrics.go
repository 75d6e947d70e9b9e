package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_pages_fetched_total",
			Help: "Listing pages fetched, by result (ok, empty, error)",
		},
		[]string{"result"},
	)
	ProductsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "etl_products_extracted_total",
			Help: "Raw product cards extracted",
		},
	)
	RowsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_rows_dropped_total",
			Help: "Rows removed by the validity filter, by reason",
		},
		[]string{"reason"},
	)
	RowsTransformed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "etl_rows_transformed_total",
			Help: "Rows that survived the transform",
		},
	)
	SinkWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etl_sink_writes_total",
			Help: "Sink write attempts, by sink and result",
		},
		[]string{"sink", "result"},
	)
)

// Collectors lists every metric this package defines.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{PagesFetched, ProductsExtracted, RowsDropped, RowsTransformed, SinkWrites}
}

// Start registers the metrics and serves them on :port in the background.
func Start(port string) {
	prometheus.MustRegister(Collectors()...)
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":"+port, nil)
}
