package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Status is a point-in-time copy of the monitor's counters.
type Status struct {
	Healthy          bool      `json:"healthy"`
	Summary          string    `json:"summary"`
	Successes        int       `json:"successes"`
	PartialFailures  int       `json:"partial_failures"`
	CriticalFailures int       `json:"critical_failures"`
	LastRunTime      time.Time `json:"last_run_time,omitempty"`
	LastError        string    `json:"last_error,omitempty"`
}

// Monitor tracks the outcome of summarizer actions. Partial failures
// (bad URLs, missing transcripts) are counted but do not affect health;
// a critical failure (the agent failing) marks the service unhealthy
// until the next success.
type Monitor struct {
	mu sync.Mutex

	lastRunSuccess   bool
	lastRunTime      time.Time
	lastError        string
	successes        int
	partialFailures  int
	criticalFailures int
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastError = ""
	m.successes++
	m.mu.Unlock()

	log.Printf("✅ %s (took %v)", summary, duration)
}

func (m *Monitor) RecordPartialFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.partialFailures++
	m.mu.Unlock()

	log.Printf("⚠️  PARTIAL FAILURE: %s (Duration: %v)", err.Error(), duration)
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	now := time.Now()

	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = now
	m.lastError = err.Error()
	m.criticalFailures++
	m.mu.Unlock()

	log.Printf("🚨 CRITICAL FAILURE: %s (Duration: %v)", err.Error(), duration)
	log.Printf("Failure occurred at: %s", now.Format("2006-01-02 15:04:05"))
}

func (m *Monitor) IsHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthy()
}

func (m *Monitor) healthy() bool {
	if m.lastRunTime.IsZero() {
		return true
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary()
}

func (m *Monitor) summary() string {
	if m.lastRunTime.IsZero() {
		return "No requests yet"
	}
	if m.lastRunSuccess {
		return fmt.Sprintf("✅ Last request: %s", m.lastRunTime.Format("Jan 2 15:04"))
	}
	return fmt.Sprintf("❌ Last request failed: %s", m.lastRunTime.Format("Jan 2 15:04"))
}

func (m *Monitor) Snapshot() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Status{
		Healthy:          m.healthy(),
		Summary:          m.summary(),
		Successes:        m.successes,
		PartialFailures:  m.partialFailures,
		CriticalFailures: m.criticalFailures,
		LastRunTime:      m.lastRunTime,
		LastError:        m.lastError,
	}
}
