package observability

import "sync"

// Metrics keeps in-process counters for the health endpoints. There is no
// metrics backend in this deployment; counters reset on restart and are
// served as a snapshot by the liveness probe.
type Metrics struct {
	mu       sync.Mutex
	requests int64
	failures int64
	byRoute  map[routeKey]int64
	byCode   map[string]int64
}

type routeKey struct {
	method string
	path   string
	status int
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		byRoute: make(map[routeKey]int64),
		byCode:  make(map[string]int64),
	}
}

// RecordRequest counts a completed request. Status codes of 500 and above
// count as failures.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	if status >= 500 {
		m.failures++
	}
	m.byRoute[routeKey{method: method, path: path, status: status}]++
}

// RecordError counts a request that failed with the given domain error
// code (VALIDATION_FAILED, CONFLICT, AUTH_FAILED, ...).
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCode[code]++
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests     int64            `json:"requests"`
	Failures     int64            `json:"failures"`
	ErrorsByCode map[string]int64 `json:"errors_by_code,omitempty"`
}

// Snapshot returns a copy safe to serialize while recording continues.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{Requests: m.requests, Failures: m.failures}
	if len(m.byCode) > 0 {
		snap.ErrorsByCode = make(map[string]int64, len(m.byCode))
		for code, count := range m.byCode {
			snap.ErrorsByCode[code] = count
		}
	}
	return snap
}
