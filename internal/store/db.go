package store

import (
	"database/sql"
	"time"

	"catalog-migrate/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the tracking database and creates tables if needed
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		store_id INTEGER,
		store_name TEXT,
		status TEXT,
		failed_step INTEGER DEFAULT -1,
		log_file TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	stepTable := `
	CREATE TABLE IF NOT EXISTS run_steps (
		run_id TEXT,
		step_index INTEGER,
		name TEXT,
		status TEXT,
		output_file TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		PRIMARY KEY (run_id, step_index)
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		step_index INTEGER,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{runTable, stepTable, errorTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Ready reports whether the tracking database was initialized. The standalone
// step commands run without it.
func Ready() bool {
	return db != nil
}

// SaveRun stores a new migration run
func SaveRun(runID string, storeID int, storeName, logFile string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (id, store_id, store_name, status, failed_step, log_file, created_at, updated_at)
		VALUES (?, ?, ?, ?, -1, ?, ?, ?)`,
		runID, storeID, storeName, model.StatusPending, logFile, now, now)
	return err
}

// UpdateRunStatus updates the run status
func UpdateRunStatus(runID, status string) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), runID)
	return err
}

// SetFailedStep records which step index aborted the run
func SetFailedStep(runID string, stepIndex int) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`UPDATE runs SET failed_step = ?, updated_at = ? WHERE id = ?`,
		stepIndex, time.Now().UTC(), runID)
	return err
}

// SaveStepProgress upserts one step's progress
func SaveStepProgress(runID string, stepIndex int, name, status, outputFile string, startedAt time.Time, finishedAt *time.Time) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO run_steps (run_id, step_index, name, status, output_file, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id, step_index) DO UPDATE SET
			status = excluded.status,
			output_file = excluded.output_file,
			finished_at = excluded.finished_at`,
		runID, stepIndex, name, status, outputFile, startedAt, finishedAt)
	return err
}

// SaveRunError records an error for a run
func SaveRunError(runID string, stepIndex int, err error) error {
	if db == nil || err == nil {
		return nil
	}
	_, e := db.Exec(`INSERT INTO run_errors (run_id, step_index, error_message, created_at)
		VALUES (?, ?, ?, ?)`,
		runID, stepIndex, err.Error(), time.Now().UTC())
	return e
}

// ListRuns returns all runs, newest first
func ListRuns() ([]model.RunSummary, error) {
	rows, err := db.Query(`SELECT id, store_id, store_name, status, failed_step, log_file, created_at, updated_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(&r.ID, &r.StoreID, &r.StoreName, &r.Status, &r.FailedStep, &r.LogFile, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun fetches one run summary
func GetRun(runID string) (model.RunSummary, error) {
	var r model.RunSummary
	err := db.QueryRow(`SELECT id, store_id, store_name, status, failed_step, log_file, created_at, updated_at
		FROM runs WHERE id = ?`, runID).
		Scan(&r.ID, &r.StoreID, &r.StoreName, &r.Status, &r.FailedStep, &r.LogFile, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// GetRunSteps returns per-step progress for a run, in step order
func GetRunSteps(runID string) ([]model.StepProgress, error) {
	rows, err := db.Query(`SELECT run_id, step_index, name, status, output_file, started_at, finished_at
		FROM run_steps WHERE run_id = ? ORDER BY step_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []model.StepProgress
	for rows.Next() {
		var s model.StepProgress
		var finished sql.NullTime
		if err := rows.Scan(&s.RunID, &s.StepIndex, &s.Name, &s.Status, &s.OutputFile, &s.StartedAt, &finished); err != nil {
			return nil, err
		}
		if finished.Valid {
			s.FinishedAt = &finished.Time
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

// RunError is one recorded error row
type RunError struct {
	StepIndex int       `json:"step_index"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// GetRunErrors returns recorded errors for a run
func GetRunErrors(runID string) ([]RunError, error) {
	rows, err := db.Query(`SELECT step_index, error_message, created_at
		FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []RunError
	for rows.Next() {
		var e RunError
		if err := rows.Scan(&e.StepIndex, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}
