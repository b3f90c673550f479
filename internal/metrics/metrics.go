package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Histogram tracks count and cumulative duration, enough for an average.
type Histogram struct {
	count Counter
	total Counter // nanoseconds
}

func (h *Histogram) Observe(d time.Duration) {
	h.count.Inc()
	if d > 0 {
		h.total.Add(uint64(d))
	}
}

func (h *Histogram) Snapshot() HistogramSnapshot {
	n := h.count.Load()
	s := HistogramSnapshot{Count: n}
	if n > 0 {
		s.AvgMillis = float64(h.total.Load()) / float64(n) / float64(time.Millisecond)
	}
	return s
}

type HistogramSnapshot struct {
	Count     uint64  `json:"count"`
	AvgMillis float64 `json:"avg_ms"`
}

// Registry holds the process wide counters exposed on /api/metrics.
type Registry struct {
	Requests2xx Counter
	Requests4xx Counter
	Requests5xx Counter
	Latency     Histogram

	OrdersPlaced     Counter
	CheckoutDuration Histogram

	mu                 sync.Mutex
	checkoutRejections map[string]*Counter
}

func NewRegistry() *Registry {
	return &Registry{checkoutRejections: make(map[string]*Counter)}
}

func (r *Registry) ObserveRequest(status int, d time.Duration) {
	switch {
	case status >= 500:
		r.Requests5xx.Inc()
	case status >= 400:
		r.Requests4xx.Inc()
	default:
		r.Requests2xx.Inc()
	}
	r.Latency.Observe(d)
}

// RejectCheckout counts a failed placeOrder by its error code.
func (r *Registry) RejectCheckout(code string) {
	r.mu.Lock()
	c, ok := r.checkoutRejections[code]
	if !ok {
		c = &Counter{}
		r.checkoutRejections[code] = c
	}
	r.mu.Unlock()
	c.Inc()
}

type Snapshot struct {
	Requests           map[string]uint64 `json:"requests"`
	Latency            HistogramSnapshot `json:"latency"`
	OrdersPlaced       uint64            `json:"orders_placed"`
	CheckoutDuration   HistogramSnapshot `json:"checkout_duration"`
	CheckoutRejections map[string]uint64 `json:"checkout_rejections"`
}

func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Requests: map[string]uint64{
			"2xx": r.Requests2xx.Load(),
			"4xx": r.Requests4xx.Load(),
			"5xx": r.Requests5xx.Load(),
		},
		Latency:            r.Latency.Snapshot(),
		OrdersPlaced:       r.OrdersPlaced.Load(),
		CheckoutDuration:   r.CheckoutDuration.Snapshot(),
		CheckoutRejections: make(map[string]uint64),
	}

	r.mu.Lock()
	for code, c := range r.checkoutRejections {
		s.CheckoutRejections[code] = c.Load()
	}
	r.mu.Unlock()

	return s
}
