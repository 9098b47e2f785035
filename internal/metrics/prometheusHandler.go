package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of ingestion jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start a worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var documentsIndexedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "documents_indexed_total",
	Help: "Documents successfully processed and added to the term index",
})

var searchesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "searches_total",
	Help: "Search queries served",
})

var indexTermCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "index_term_count",
	Help: "Distinct terms currently held by the inverted index",
})

var extractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "extraction_duration_seconds",
	Help:    "Time spent extracting plain text from uploads.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"media_type"})

var jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "job_duration_seconds",
	Help:    "Total time spent executing an ingestion job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}

func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func IncrementDocumentsIndexed() {
	documentsIndexedTotal.Inc()
}

func IncrementSearches() {
	searchesTotal.Inc()
}

func SetIndexTermCount(count int) {
	indexTermCount.Set(float64(count))
}

func CaptureExtractionDuration(mediaType string, elapsed time.Duration) {
	extractionDuration.WithLabelValues(mediaType).Observe(elapsed.Seconds())
}

func CaptureJobMetrics(label string, elapsed time.Duration) {
	jobDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}
