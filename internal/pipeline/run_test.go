package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"catalog-migrate/internal/model"
)

// migrationConfig builds a config over a disposable export/asset tree
func migrationConfig(t *testing.T) model.Config {
	t.Helper()
	dir := t.TempDir()

	export := filepath.Join(dir, "uStore_Complete_Export.csv")
	csv := "uStore_ProductID,uStore_StoreID,uStore_StoreName,Name,DisplayName,Type,SKU/ProductId,BriefDescription,StoreFront/Categories\n" +
		"101,70,AFC Urgent Care,Business Card - Beaverton,Business Card,Document,SKU-101,Standard 3.5x2 card,Marketing/Cards\n" +
		"102,70,AFC Urgent Care,Appointment Card,Appointment Card,Document,SKU-102,,Marketing/Cards\n" +
		"201,12,Summit Dental,Flier,Flier,Document,SKU-201,,\n"
	if err := os.WriteFile(export, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	assets := filepath.Join(dir, "assets")
	thumbs := filepath.Join(dir, "thumbnails")
	touch(t, filepath.Join(assets, "Product_101", "card.pdf"))
	touch(t, filepath.Join(assets, "Product_102", "appointment.pdf"))
	touch(t, filepath.Join(thumbs, "Product_101", "Pages", "Thumbnails", "page1.jpg"))
	if err := os.MkdirAll(filepath.Join(thumbs, "Product_102"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := model.DefaultConfig()
	cfg.Steps.Filter.Input = export
	cfg.Paths.AssetsDir = assets
	cfg.Paths.ThumbnailsDir = thumbs
	cfg.Paths.OutputDir = filepath.Join(dir, "output")
	return cfg
}

func TestRunFullChain(t *testing.T) {
	cfg := migrationConfig(t)

	artifact, results, err := Run(cfg, "run-test", 0, ConsoleLog())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantZip := filepath.Join(cfg.Paths.OutputDir, "MDSF_Import_Package.zip")
	if artifact != wantZip {
		t.Fatalf("artifact = %q, want %q", artifact, wantZip)
	}
	if _, err := os.Stat(wantZip); err != nil {
		t.Fatalf("final package missing: %v", err)
	}

	if len(results) != 6 {
		t.Fatalf("got %d step results, want 6", len(results))
	}
	for _, r := range results {
		switch r.Name {
		case "ticket_merge":
			if r.Status != model.StatusSkipped {
				t.Fatalf("ticket_merge status = %s, want skipped", r.Status)
			}
		default:
			if r.Status != model.StatusCompleted {
				t.Fatalf("step %s status = %s, want completed", r.Name, r.Status)
			}
		}
	}
}

func TestRunFailureStopsChain(t *testing.T) {
	cfg := migrationConfig(t)
	cfg.StoreID = 999
	cfg.StoreName = ""

	_, results, err := Run(cfg, "run-fail", 0, ConsoleLog())
	if err == nil {
		t.Fatal("expected failure for unknown store")
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("error is not a StepError: %v", err)
	}
	if stepErr.Index != 0 || stepErr.Name != "filter" {
		t.Fatalf("failed step = %d (%s), want 0 (filter)", stepErr.Index, stepErr.Name)
	}
	// nothing after the failed step runs
	if len(results) != 1 || results[0].Status != model.StatusFailed {
		t.Fatalf("results after failure: %+v", results)
	}
}

func TestRunResume(t *testing.T) {
	cfg := migrationConfig(t)

	if _, _, err := Run(cfg, "run-first", 0, ConsoleLog()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// resume at mdsf_mapping; its input is the nearest prior enabled step's
	// output, skipping the disabled ticket_merge
	_, results, err := Run(cfg, "run-resume", 4, ConsoleLog())
	if err != nil {
		t.Fatalf("resumed run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("resumed run produced %d results, want 2", len(results))
	}
	if results[0].Name != "mdsf_mapping" || results[1].Name != "packaging" {
		t.Fatalf("resumed steps: %s, %s", results[0].Name, results[1].Name)
	}
}

func TestRunInvalidStartStep(t *testing.T) {
	cfg := migrationConfig(t)
	if _, _, err := Run(cfg, "run-bad", 99, ConsoleLog()); err == nil {
		t.Fatal("expected error for out-of-range start step")
	}
}

func TestDisabledFilterPassesInputThrough(t *testing.T) {
	cfg := migrationConfig(t)
	cfg.Steps.Filter.Enabled = false

	steps := BuildSteps(cfg, ConsoleLog())
	out, err := steps[0].Run("")
	if err != nil {
		t.Fatalf("pass-through filter: %v", err)
	}
	if out != cfg.Steps.Filter.Input {
		t.Fatalf("pass-through output = %q, want raw export %q", out, cfg.Steps.Filter.Input)
	}
}

func TestFilterReuseAndForce(t *testing.T) {
	cfg := migrationConfig(t)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0755); err != nil {
		t.Fatal(err)
	}

	// a pre-existing filter output is reused untouched
	existing := filepath.Join(cfg.Paths.OutputDir, cfg.Steps.Filter.Output)
	if err := os.WriteFile(existing, []byte("uStore_StoreID,Name\n70,Stale\n"), 0644); err != nil {
		t.Fatal(err)
	}
	steps := BuildSteps(cfg, ConsoleLog())
	out, err := steps[0].Run("")
	if err != nil {
		t.Fatalf("filter reuse: %v", err)
	}
	if out != existing {
		t.Fatalf("filter output = %q, want reused %q", out, existing)
	}
	stale, err := os.ReadFile(existing)
	if err != nil || string(stale) != "uStore_StoreID,Name\n70,Stale\n" {
		t.Fatalf("reused file was rewritten: %q (%v)", stale, err)
	}

	// --force refilters from the raw export
	cfg.Force = true
	steps = BuildSteps(cfg, ConsoleLog())
	if _, err := steps[0].Run(""); err != nil {
		t.Fatalf("forced filter: %v", err)
	}
	fresh, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(fresh) == string(stale) {
		t.Fatal("force did not rewrite the filter output")
	}
}
