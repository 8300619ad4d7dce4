package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	requestMillis  map[string]int64
	errorCount     map[string]int64
	slaStatusCount map[domain.SLAStatus]int64
	slaTransitions map[string]int64
	seededHolidays int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Requests       map[string]int64           `json:"requests"`
	RequestMillis  map[string]int64           `json:"request_millis"`
	Errors         map[string]int64           `json:"errors"`
	SLAStatuses    map[domain.SLAStatus]int64 `json:"sla_statuses"`
	SLATransitions map[string]int64           `json:"sla_transitions"`
	SeededHolidays int64                      `json:"seeded_holidays"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		requestMillis:  make(map[string]int64),
		errorCount:     make(map[string]int64),
		slaStatusCount: make(map[domain.SLAStatus]int64),
		slaTransitions: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestMillis[key] += duration.Milliseconds()
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordSLAStatus counts a classification produced while reading a ticket.
func (m *Metrics) RecordSLAStatus(status domain.SLAStatus) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slaStatusCount[status]++
}

// RecordSLATransition counts a persisted status change.
func (m *Metrics) RecordSLATransition(from, to domain.SLAStatus) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slaTransitions[string(from)+"->"+string(to)]++
}

// RecordSeededHolidays adds n inserted default holidays.
func (m *Metrics) RecordSeededHolidays(n int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seededHolidays += int64(n)
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return MetricsSnapshot{
		Requests:       copyCounts(m.requestCount),
		RequestMillis:  copyCounts(m.requestMillis),
		Errors:         copyCounts(m.errorCount),
		SLAStatuses:    copyCounts(m.slaStatusCount),
		SLATransitions: copyCounts(m.slaTransitions),
		SeededHolidays: m.seededHolidays,
	}
}

func copyCounts[K comparable](src map[K]int64) map[K]int64 {
	out := make(map[K]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
