package kit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelService = "service"
	labelMethod  = "method"
	labelPath    = "path"
	labelStatus  = "status"
	labelResult  = "result"

	defaultStatusCode = http.StatusOK
)

// Checkout results reported on storefront_checkouts_total.
const (
	CheckoutConfirmed = "confirmed"
	CheckoutInvalid   = "invalid"
	CheckoutEmpty     = "empty"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec

	Sessions  prometheus.Gauge
	CartAdds  prometheus.Counter
	Checkouts *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{labelService, labelMethod, labelPath, labelStatus},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP latency",
			},
			[]string{labelService, labelMethod, labelPath},
		),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_sessions_active",
			Help: "Shopping sessions currently held in memory",
		}),
		CartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_cart_adds_total",
			Help: "Products added to a cart",
		}),
		Checkouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_checkouts_total",
				Help: "Checkout attempts by result",
			},
			[]string{labelResult},
		),
	}

	reg.MustRegister(m.Requests, m.Latency, m.Sessions, m.CartAdds, m.Checkouts)
	return m
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (m *Metrics) Middleware(service string, pathLabel func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{
				ResponseWriter: w,
				status:         defaultStatusCode,
			}

			start := time.Now()
			next.ServeHTTP(sw, r)

			path := pathLabel(r)
			m.Latency.WithLabelValues(service, r.Method, path).
				Observe(time.Since(start).Seconds())

			m.Requests.WithLabelValues(service, r.Method, path, strconv.Itoa(sw.status)).
				Inc()
		})
	}
}
