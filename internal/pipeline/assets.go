package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-migrate/internal/table"
)

var thumbnailExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
}

// findContentFiles returns the PDF file names under assets/Product_<id>,
// excluding proof files. A missing product folder yields an empty list.
func findContentFiles(productID, assetsDir string) []string {
	entries, err := os.ReadDir(filepath.Join(assetsDir, "Product_"+productID))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		if strings.Contains(strings.ToLower(name), "proof") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// findThumbnailFiles returns the image file names under
// thumbnails/Product_<id>/Pages/Thumbnails.
func findThumbnailFiles(productID, thumbnailsDir string) []string {
	dir := filepath.Join(thumbnailsDir, "Product_"+productID, "Pages", "Thumbnails")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if thumbnailExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	return names
}

// LinkAssets resolves content and thumbnail files for every product and
// records them as comma-joined lists in the ContentFile, Icon and DetailImage
// columns. Products without assets get empty values, not errors.
func LinkAssets(log *RunLog, inputCSV, outputCSV, assetsDir, thumbnailsDir string) error {
	log.Banner("ASSET LINKER")

	log.Infof("Reading CSV: %s", inputCSV)
	t, err := table.Read(inputCSV)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d products", len(t.Rows))

	if !t.HasColumn(colProductID) {
		return fmt.Errorf("missing required column: %s; available columns: %v", colProductID, t.Columns)
	}

	if _, err := os.Stat(assetsDir); err != nil {
		return fmt.Errorf("assets directory not found: %s", assetsDir)
	}
	if _, err := os.Stat(thumbnailsDir); err != nil {
		return fmt.Errorf("thumbnails directory not found: %s", thumbnailsDir)
	}
	log.Infof("Assets directory: %s", assetsDir)
	log.Infof("Thumbnails directory: %s", thumbnailsDir)

	t.EnsureColumn("ContentFile")
	t.EnsureColumn("Icon")
	t.EnsureColumn("DetailImage")

	var (
		withPDFs, withoutPDFs             int
		withThumbnails, withoutThumbnails int
		totalPDFs, totalThumbnails        int
		missingPDFs, missingThumbs        []string
	)

	log.Infof("Processing %d products...", len(t.Rows))
	for _, row := range t.Rows {
		productID := row[colProductID]
		productName := row["Name"]
		if productName == "" {
			productName = "Product " + productID
		}

		contentFiles := findContentFiles(productID, assetsDir)
		if len(contentFiles) > 0 {
			row["ContentFile"] = strings.Join(contentFiles, ", ")
			withPDFs++
			totalPDFs += len(contentFiles)
		} else {
			row["ContentFile"] = ""
			withoutPDFs++
			missingPDFs = append(missingPDFs, fmt.Sprintf("Product %s: %s", productID, productName))
		}

		thumbFiles := findThumbnailFiles(productID, thumbnailsDir)
		if len(thumbFiles) > 0 {
			joined := strings.Join(thumbFiles, ", ")
			row["Icon"] = joined
			row["DetailImage"] = joined // same thumbnails serve both roles
			withThumbnails++
			totalThumbnails += len(thumbFiles)
		} else {
			row["Icon"] = ""
			row["DetailImage"] = ""
			withoutThumbnails++
			missingThumbs = append(missingThumbs, fmt.Sprintf("Product %s: %s", productID, productName))
		}
	}

	if err := t.Write(outputCSV); err != nil {
		return err
	}

	log.Banner("ASSET LINKING COMPLETE")
	log.Infof("Output saved to: %s", outputCSV)
	log.Infof("Statistics:")
	log.Infof("  Total products processed: %d", len(t.Rows))
	log.Infof("  Products with PDFs: %d", withPDFs)
	log.Infof("  Products WITHOUT PDFs: %d", withoutPDFs)
	log.Infof("  Products with thumbnails: %d", withThumbnails)
	log.Infof("  Products WITHOUT thumbnails: %d", withoutThumbnails)
	log.Infof("  Total PDF files found: %d", totalPDFs)
	log.Infof("  Total thumbnail files found: %d", totalThumbnails)

	reportMissing(log, "products missing PDFs", missingPDFs)
	reportMissing(log, "products missing thumbnails", missingThumbs)
	if len(missingPDFs) == 0 && len(missingThumbs) == 0 {
		log.Infof("All products have complete assets!")
	}
	return nil
}

// reportMissing lists up to a handful of missing entries
func reportMissing(log *RunLog, what string, missing []string) {
	if len(missing) == 0 {
		return
	}
	log.Warnf("%d %s", len(missing), what)
	if len(missing) <= 5 {
		for _, m := range missing {
			log.Warnf("  - %s", m)
		}
		return
	}
	for _, m := range missing[:3] {
		log.Warnf("  - %s", m)
	}
	log.Warnf("  ... and %d more", len(missing)-3)
}
