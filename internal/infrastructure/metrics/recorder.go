// Package metrics contadores Prometheus de pagos, revisiones, proxy y HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/shopspring/decimal"
)

var _ ports.Metrics = (*Recorder)(nil)

// Recorder registra sobre su propio registry para no chocar entre tests.
type Recorder struct {
	reg          *prometheus.Registry
	payments     *prometheus.CounterVec
	paidAmount   *prometheus.CounterVec
	reviews      *prometheus.CounterVec
	proxied      *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		payments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datacapture_payments_total",
			Help: "Payment operations by kind and outcome",
		}, []string{"kind", "outcome"}),
		paidAmount: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datacapture_payments_amount_total",
			Help: "Sum of verified payment amounts by kind",
		}, []string{"kind"}),
		reviews: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datacapture_reviews_total",
			Help: "Super-admin reviews by kind and outcome",
		}, []string{"kind", "outcome"}),
		proxied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datacapture_proxy_requests_total",
			Help: "Requests forwarded to the backend by method and status class",
		}, []string{"method", "class"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datacapture_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObservePayment solo los pagos exitosos suman al monto.
func (r *Recorder) ObservePayment(kind, outcome string, amount decimal.Decimal) {
	r.payments.WithLabelValues(kind, outcome).Inc()
	if outcome == "successful" && amount.IsPositive() {
		f, _ := amount.Float64()
		r.paidAmount.WithLabelValues(kind).Add(f)
	}
}

func (r *Recorder) ObserveReview(kind, outcome string) {
	r.reviews.WithLabelValues(kind, outcome).Inc()
}

func (r *Recorder) ObserveProxy(method string, status int) {
	r.proxied.WithLabelValues(method, strconv.Itoa(status/100)+"xx").Inc()
}

func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler exposición en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
