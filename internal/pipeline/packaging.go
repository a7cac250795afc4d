package pipeline

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalog-migrate/internal/table"
)

// PackageOptions controls the final packaging step
type PackageOptions struct {
	TestMode   bool
	StagingDir string // flat staging area, recreated on every run
	ZipPath    string
}

// missingFile records a referenced asset that was not found on disk
type missingFile struct {
	Product  string
	Filename string
	Kind     string // content, icon, detail
	Expected string
}

// CreatePackage copies every referenced asset into a flat staging directory,
// strips the helper columns, writes products.csv and zips everything at the
// archive root.
func CreatePackage(log *RunLog, inputCSV, assetsDir, thumbnailsDir string, opts PackageOptions) error {
	log.Banner("MDSF PACKAGER")

	if _, err := os.Stat(assetsDir); err != nil {
		return fmt.Errorf("assets folder not found: %s", assetsDir)
	}
	if _, err := os.Stat(thumbnailsDir); err != nil {
		return fmt.Errorf("thumbnails folder not found: %s", thumbnailsDir)
	}

	log.Infof("Reading CSV: %s", inputCSV)
	t, err := table.Read(inputCSV)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d products", len(t.Rows))

	if !t.HasColumn(colProductID) {
		return fmt.Errorf("%s column not found in CSV; use the fields mapper output", colProductID)
	}

	if opts.TestMode {
		log.Infof("TEST MODE: Processing only first product")
		t.Head(1)
		if len(t.Rows) > 0 {
			log.Infof("Test product: %s", t.Rows[0]["Name"])
		}
	}

	if err := os.RemoveAll(opts.StagingDir); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(opts.StagingDir, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	log.Infof("Created staging directory: %s", opts.StagingDir)

	var (
		contentCopied, iconCopied, detailCopied int
		missing                                 []missingFile
	)
	copied := make(map[string]bool) // dedupe by file name

	copyRole := func(row table.Row, column, kind string, sourceDir func(id string) string, counter *int) {
		value := strings.TrimSpace(row[column])
		if value == "" || value == AutoThumbnail {
			return
		}
		productID := row[colProductID]
		productName := row["Name"]
		for _, filename := range strings.Split(value, ",") {
			filename = strings.TrimSpace(filename)
			if filename == "" || copied[filename] {
				continue
			}
			src := filepath.Join(sourceDir(productID), filename)
			if err := copyFile(src, filepath.Join(opts.StagingDir, filename)); err != nil {
				missing = append(missing, missingFile{productName, filename, kind, src})
				continue
			}
			copied[filename] = true
			*counter++
		}
	}

	contentDir := func(id string) string { return filepath.Join(assetsDir, "Product_"+id) }
	thumbDir := func(id string) string {
		return filepath.Join(thumbnailsDir, "Product_"+id, "Pages", "Thumbnails")
	}

	log.Infof("Processing %d product(s)...", len(t.Rows))
	for _, row := range t.Rows {
		copyRole(row, "ContentFile", "content", contentDir, &contentCopied)
		copyRole(row, "Icon", "icon", thumbDir, &iconCopied)
		copyRole(row, "DetailImage", "detail", thumbDir, &detailCopied)
	}
	log.Infof("Copied %d unique asset files", len(copied))

	// Strip helper columns before the table ships
	log.Infof("Cleaning CSV...")
	if removed := t.DropColumns(helperColumns...); len(removed) > 0 {
		log.Infof("Removed helper columns: %s", strings.Join(removed, ", "))
	}

	csvPath := filepath.Join(opts.StagingDir, "products.csv")
	if err := t.Write(csvPath); err != nil {
		return err
	}
	log.Infof("Saved cleaned CSV: products.csv (%d columns)", len(t.Columns))

	log.Infof("Creating ZIP package...")
	fileCount, err := zipFlat(opts.StagingDir, opts.ZipPath)
	if err != nil {
		return fmt.Errorf("failed to create ZIP: %w", err)
	}
	log.Infof("Created: %s (%d files)", opts.ZipPath, fileCount)

	log.Banner("PACKAGING COMPLETE")
	log.Infof("Package: %s", opts.ZipPath)
	log.Infof("Staging directory: %s (can be deleted)", opts.StagingDir)
	log.Infof("Statistics:")
	log.Infof("  Products: %d", len(t.Rows))
	log.Infof("  PDFs copied: %d", contentCopied)
	log.Infof("  Icons copied: %d", iconCopied)
	log.Infof("  Detail images copied: %d", detailCopied)
	log.Infof("  Total files: %d", len(copied)+1)

	if len(missing) > 0 {
		log.Warnf("%d missing files", len(missing))
		limit := len(missing)
		if limit > 5 {
			limit = 3
		}
		for _, m := range missing[:limit] {
			log.Warnf("  - %s (%s): %s", m.Filename, m.Kind, m.Product)
			log.Warnf("    Expected at: %s", m.Expected)
		}
		if limit < len(missing) {
			log.Warnf("  ... and %d more", len(missing)-limit)
		}
	} else {
		log.Infof("All asset files found and copied!")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// zipFlat writes every regular file of dir into a zip at the archive root
func zipFlat(dir, zipPath string) (int, error) {
	if err := os.Remove(zipPath); err != nil && !os.IsNotExist(err) {
		return 0, err
	}

	f, err := os.Create(zipPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		w, err := zw.Create(e.Name())
		if err != nil {
			return count, err
		}
		in, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			return count, err
		}
		_, err = io.Copy(w, in)
		in.Close()
		if err != nil {
			return count, err
		}
		count++
	}
	if err := zw.Close(); err != nil {
		return count, err
	}
	return count, f.Close()
}
