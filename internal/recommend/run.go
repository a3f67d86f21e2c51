package recommend

import (
	"time"
)

const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusExhausted = "EXHAUSTED"
	RunStatusFailed    = "FAILED"
)

// Run is one recorded genre fetch.
type Run struct {
	ID         string     `json:"id"`
	Genre      string     `json:"genre"`
	Status     string     `json:"status"`
	Pages      int        `json:"pages"`
	Books      int        `json:"books"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
