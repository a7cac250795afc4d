package model

import "time"

// Run statuses
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// StepResult is the immutable outcome of one pipeline step. The orchestrator
// threads a result through the step list instead of mutating shared run state.
type StepResult struct {
	Index      int       `json:"index"`
	Name       string    `json:"name"`
	Status     string    `json:"status"` // completed, failed, skipped
	OutputFile string    `json:"output_file"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Err        error     `json:"-"`
}

// RunSummary is what the tracking store reports back for a run
type RunSummary struct {
	ID         string    `json:"id"`
	StoreID    int       `json:"store_id"`
	StoreName  string    `json:"store_name"`
	Status     string    `json:"status"`
	FailedStep int       `json:"failed_step"` // -1 when no step failed
	LogFile    string    `json:"log_file"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StepProgress mirrors one row of the run_steps table
type StepProgress struct {
	RunID      string     `json:"run_id"`
	StepIndex  int        `json:"step_index"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	OutputFile string     `json:"output_file"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
