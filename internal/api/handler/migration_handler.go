package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"catalog-migrate/internal/model"
	"catalog-migrate/internal/pipeline"
	"catalog-migrate/internal/store"
	"catalog-migrate/pkg/utils"

	"github.com/google/uuid"
)

// CreateMigrationRequest is the POST /migrations payload. Omitted fields fall
// back to the default configuration.
type CreateMigrationRequest struct {
	Config    model.Config `json:"config"`
	StartFrom int          `json:"startFrom"`
}

// CreateMigration starts a new migration run
// @Summary Start a migration run
// @Description Start a catalog migration run with the provided configuration; the run executes asynchronously
// @Tags migrations
// @Accept json
// @Produce json
// @Param migration body CreateMigrationRequest true "Migration configuration"
// @Success 200 {object} map[string]interface{} "Run started"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /migrations [post]
func CreateMigration(w http.ResponseWriter, r *http.Request) {
	req := CreateMigrationRequest{Config: model.DefaultConfig()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	cfg := req.Config
	if cfg.StoreID <= 0 && cfg.StoreName == "" {
		http.Error(w, "A store id or store name is required", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()
	ws := utils.NewWorkspace(cfg.Paths.OutputDir)
	if err := ws.EnsureOutputDirExists(); err != nil {
		http.Error(w, "Failed to create output directory", http.StatusInternalServerError)
		return
	}
	logPath := ws.LogFilePath(time.Now())

	if err := store.SaveRun(runID, cfg.StoreID, cfg.StoreName, logPath); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	go func() {
		runLog, err := pipeline.NewRunLog(logPath)
		if err != nil {
			log.Printf("run %s: %v", runID, err)
			store.SaveRunError(runID, -1, err)
			store.UpdateRunStatus(runID, model.StatusFailed)
			return
		}
		defer runLog.Close()
		if _, _, err := pipeline.Run(cfg, runID, req.StartFrom, runLog); err != nil {
			log.Printf("run %s failed: %v", runID, err)
		}
	}()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      runID,
		"status":  model.StatusPending,
		"logFile": logPath,
	})
}

// ListMigrations returns all migration runs
// @Summary List migration runs
// @Tags migrations
// @Produce json
// @Success 200 {array} model.RunSummary
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /migrations [get]
func ListMigrations(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetMigration returns one run with its step progress
// @Summary Get a migration run
// @Tags migrations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /migrations/{id} [get]
func GetMigration(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")
	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	steps, err := store.GetRunSteps(runID)
	if err != nil {
		http.Error(w, "Failed to load steps", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run":   run,
		"steps": steps,
	})
}

// GetMigrationSteps returns per-step progress for a run
// @Summary Get step progress for a run
// @Tags migrations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} model.StepProgress
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /migrations/{id}/steps [get]
func GetMigrationSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := store.GetRunSteps(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to load steps", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, steps)
}

// GetMigrationErrors returns recorded errors for a run
// @Summary Get errors for a run
// @Tags migrations
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} store.RunError
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /migrations/{id}/errors [get]
func GetMigrationErrors(w http.ResponseWriter, r *http.Request) {
	errs, err := store.GetRunErrors(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to load errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, errs)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
