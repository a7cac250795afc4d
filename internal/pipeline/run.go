package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"catalog-migrate/internal/model"
	"catalog-migrate/internal/store"
)

// Step is one unit of the migration chain. Run receives the previous step's
// output file and returns its own.
type Step struct {
	Name    string
	Enabled bool
	Output  string // resolved output path, informational for disabled steps
	Run     func(input string) (string, error)
}

// StepError wraps a step failure with the index needed to resume
type StepError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// BuildSteps assembles the migration chain from the configuration
func BuildSteps(cfg model.Config, log *RunLog) []Step {
	outDir := cfg.Paths.OutputDir
	resolve := func(name string) string { return filepath.Join(outDir, name) }

	filterOut := resolve(cfg.Steps.Filter.Output)
	seoOut := resolve(cfg.Steps.SEO.Output)
	assetsOut := resolve(cfg.Steps.Assets.Output)
	ticketsOut := resolve(cfg.Steps.TicketMerge.Output)
	mappingOut := resolve(cfg.Steps.Mapping.Output)
	zipOut := resolve(cfg.Steps.Packaging.Output)
	stagingDir := resolve("MDSF_Import_Package")

	return []Step{
		{
			Name:    "filter",
			Enabled: cfg.Steps.Filter.Enabled,
			Output:  filterOut,
			Run: func(string) (string, error) {
				// Disabled filter passes the raw export straight through
				if !cfg.Steps.Filter.Enabled {
					if _, err := os.Stat(cfg.Steps.Filter.Input); err != nil {
						return "", fmt.Errorf("input file not found: %s", cfg.Steps.Filter.Input)
					}
					return cfg.Steps.Filter.Input, nil
				}
				// Reuse an existing filter output unless --force
				if _, err := os.Stat(filterOut); err == nil && !cfg.Force {
					log.Infof("Using existing filtered file: %s (run with --force to re-filter)", filterOut)
					return filterOut, nil
				}
				log.Infof("Store ID: %d", cfg.StoreID)
				log.Infof("Store Name: %s", cfg.StoreName)
				if err := FilterByStore(log, cfg.Steps.Filter.Input, filterOut, cfg.StoreID, cfg.StoreName); err != nil {
					return "", err
				}
				return filterOut, nil
			},
		},
		{
			Name:    "seo_generation",
			Enabled: cfg.Steps.SEO.Enabled,
			Output:  seoOut,
			Run: func(input string) (string, error) {
				if err := GenerateSEO(log, input, seoOut, cfg.SEO); err != nil {
					return "", err
				}
				return seoOut, nil
			},
		},
		{
			Name:    "asset_linking",
			Enabled: cfg.Steps.Assets.Enabled,
			Output:  assetsOut,
			Run: func(input string) (string, error) {
				log.Infof("Assets directory: %s", cfg.Paths.AssetsDir)
				log.Infof("Thumbnails directory: %s", cfg.Paths.ThumbnailsDir)
				if err := LinkAssets(log, input, assetsOut, cfg.Paths.AssetsDir, cfg.Paths.ThumbnailsDir); err != nil {
					return "", err
				}
				return assetsOut, nil
			},
		},
		{
			Name:    "ticket_merge",
			Enabled: cfg.Steps.TicketMerge.Enabled,
			Output:  ticketsOut,
			Run: func(input string) (string, error) {
				if cfg.PricingCSV == "" {
					return "", fmt.Errorf("ticket_merge enabled but pricingCsv is not configured")
				}
				if err := MergeTickets(log, input, cfg.PricingCSV, ticketsOut); err != nil {
					return "", err
				}
				return ticketsOut, nil
			},
		},
		{
			Name:    "mdsf_mapping",
			Enabled: cfg.Steps.Mapping.Enabled,
			Output:  mappingOut,
			Run: func(input string) (string, error) {
				log.Infof("Use AutoThumbnail: %t", cfg.UseAutoThumbnail)
				log.Infof("Test Mode: %t", cfg.TestMode)
				opts := MapOptions{
					UseAutoThumbnail: cfg.UseAutoThumbnail,
					TestMode:         cfg.TestMode,
					TestLimit:        cfg.TestProductLimit,
					Defaults:         cfg.Mapping.Defaults,
				}
				if err := MapFields(log, input, mappingOut, opts); err != nil {
					return "", err
				}
				return mappingOut, nil
			},
		},
		{
			Name:    "packaging",
			Enabled: cfg.Steps.Packaging.Enabled,
			Output:  zipOut,
			Run: func(input string) (string, error) {
				opts := PackageOptions{
					TestMode:   cfg.TestMode,
					StagingDir: stagingDir,
					ZipPath:    zipOut,
				}
				if err := CreatePackage(log, input, cfg.Paths.AssetsDir, cfg.Paths.ThumbnailsDir, opts); err != nil {
					return "", err
				}
				return zipOut, nil
			},
		},
	}
}

// Run executes the step chain, starting at startFrom. Earlier step outputs
// are assumed to exist on disk when resuming. Returns the final artifact path
// and the per-step results.
func Run(cfg model.Config, runID string, startFrom int, log *RunLog) (string, []model.StepResult, error) {
	steps := BuildSteps(cfg, log)
	if startFrom < 0 || startFrom >= len(steps) {
		return "", nil, fmt.Errorf("invalid start step %d (valid range 0-%d)", startFrom, len(steps)-1)
	}

	if err := os.MkdirAll(cfg.Paths.OutputDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	log.Banner("uStore to MDSF Migration Pipeline")
	log.Infof("Configuration:")
	log.Infof("  Store: %s (ID: %d)", cfg.StoreName, cfg.StoreID)
	log.Infof("  Test Mode: %t", cfg.TestMode)
	log.Infof("  Auto Thumbnail: %t", cfg.UseAutoThumbnail)
	log.Infof("  Output Directory: %s", cfg.Paths.OutputDir)
	if log.Path() != "" {
		log.Infof("  Log File: %s", log.Path())
	}

	store.UpdateRunStatus(runID, model.StatusRunning)

	// When resuming, pick up the nearest prior enabled step's output
	current := ""
	for i := startFrom - 1; i >= 0; i-- {
		if steps[i].Enabled {
			current = steps[i].Output
			break
		}
	}

	results := make([]model.StepResult, 0, len(steps)-startFrom)
	start := time.Now()

	for i := startFrom; i < len(steps); i++ {
		step := steps[i]
		stepStart := time.Now()

		if !step.Enabled && step.Name != "filter" {
			log.Infof("Step %d (%s) disabled in configuration, skipping...", i, step.Name)
			results = append(results, model.StepResult{
				Index: i, Name: step.Name, Status: model.StatusSkipped,
				OutputFile: current, StartedAt: stepStart, FinishedAt: time.Now(),
			})
			continue
		}

		log.Banner(fmt.Sprintf("STEP %d: %s", i, step.Name))
		store.SaveStepProgress(runID, i, step.Name, model.StatusRunning, "", stepStart, nil)

		output, err := step.Run(current)
		finished := time.Now()

		if err != nil {
			store.SaveStepProgress(runID, i, step.Name, model.StatusFailed, "", stepStart, &finished)
			store.SetFailedStep(runID, i)
			store.SaveRunError(runID, i, err)
			store.UpdateRunStatus(runID, model.StatusFailed)

			log.Banner("MIGRATION FAILED!")
			log.Errorf("Error at step %d (%s): %v", i, step.Name, err)
			log.Infof("Completed steps: %s", completedNames(results))
			log.Infof("To resume from this step, run:")
			log.Infof("  migrate --start-from %d", i)

			results = append(results, model.StepResult{
				Index: i, Name: step.Name, Status: model.StatusFailed,
				StartedAt: stepStart, FinishedAt: finished, Err: err,
			})
			return "", results, &StepError{Index: i, Name: step.Name, Err: err}
		}

		store.SaveStepProgress(runID, i, step.Name, model.StatusCompleted, output, stepStart, &finished)
		log.Infof("Step %d (%s) completed: %s", i, step.Name, output)

		results = append(results, model.StepResult{
			Index: i, Name: step.Name, Status: model.StatusCompleted,
			OutputFile: output, StartedAt: stepStart, FinishedAt: finished,
		})
		current = output
	}

	store.UpdateRunStatus(runID, model.StatusCompleted)

	log.Banner("MIGRATION COMPLETE!")
	log.Infof("Total duration: %s", time.Since(start).Round(time.Millisecond))
	log.Infof("Completed steps: %s", completedNames(results))
	log.Infof("Final package: %s", current)
	log.Infof("Next steps:")
	log.Infof("  1. Review the final package")
	log.Infof("  2. Go to MDSF: Administration > Export / Import")
	log.Infof("  3. Upload the ZIP file")
	log.Infof("  4. Verify import results")

	return current, results, nil
}

func completedNames(results []model.StepResult) string {
	out := "["
	for i, r := range results {
		if r.Status != model.StatusCompleted {
			continue
		}
		if i > 0 && out != "[" {
			out += " "
		}
		out += fmt.Sprintf("%d", r.Index)
	}
	return out + "]"
}
