package pipeline

import (
	"fmt"
	"sort"
	"strconv"

	"catalog-migrate/internal/table"
)

// Store column names in the uStore export
const (
	colStoreID   = "uStore_StoreID"
	colStoreName = "uStore_StoreName"
	colProductID = "uStore_ProductID"
)

// StoreCount is one entry of the store breakdown
type StoreCount struct {
	ID       string
	Name     string
	Products int
}

// FilterByStore keeps only the rows of one storefront. Filters by ID when
// storeID > 0, otherwise by name. Zero matches is an error and the output file
// is left unwritten.
func FilterByStore(log *RunLog, inputCSV, outputCSV string, storeID int, storeName string) error {
	log.Banner("STORE FILTER")

	if storeID <= 0 && storeName == "" {
		return fmt.Errorf("must provide either store_id or store_name")
	}

	log.Infof("Reading CSV: %s", inputCSV)
	t, err := table.Read(inputCSV)
	if err != nil {
		return err
	}
	log.Infof("Total products loaded: %d", len(t.Rows))

	if !t.HasColumn(colStoreID) && !t.HasColumn(colStoreName) {
		return fmt.Errorf("CSV missing store columns (%s or %s); available columns: %v",
			colStoreID, colStoreName, t.Columns)
	}

	// Store breakdown for diagnostics
	counts := storeCounts(t)
	log.Infof("Stores in export:")
	for i, sc := range counts {
		if i >= 10 {
			log.Infof("  ... and %d more stores", len(counts)-10)
			break
		}
		log.Infof("  %s (ID: %s): %d products", sc.Name, sc.ID, sc.Products)
	}

	var filterDesc string
	filtered := &table.Table{Columns: t.Columns}
	if storeID > 0 {
		if !t.HasColumn(colStoreID) {
			return fmt.Errorf("%s column not found; available columns: %v", colStoreID, t.Columns)
		}
		want := strconv.Itoa(storeID)
		filterDesc = fmt.Sprintf("Store ID %d", storeID)
		for _, row := range t.Rows {
			if row[colStoreID] == want {
				filtered.Rows = append(filtered.Rows, row)
			}
		}
	} else {
		if !t.HasColumn(colStoreName) {
			return fmt.Errorf("%s column not found; available columns: %v", colStoreName, t.Columns)
		}
		filterDesc = fmt.Sprintf("Store Name %q", storeName)
		for _, row := range t.Rows {
			if row[colStoreName] == storeName {
				filtered.Rows = append(filtered.Rows, row)
			}
		}
	}

	if len(filtered.Rows) == 0 {
		log.Warnf("No products found for %s", filterDesc)
		log.Infof("Available stores:")
		for i, sc := range counts {
			if i >= 20 {
				break
			}
			log.Infof("  - %s", sc.Name)
		}
		return fmt.Errorf("no products found for %s", filterDesc)
	}

	log.Infof("Filter: %s", filterDesc)
	log.Infof("Products found: %d", len(filtered.Rows))

	if err := filtered.Write(outputCSV); err != nil {
		return err
	}

	log.Banner("FILTERING COMPLETE")
	log.Infof("Output saved to: %s", outputCSV)
	log.Infof("Products: %d", len(filtered.Rows))
	if t.HasColumn(colStoreName) {
		log.Infof("Store: %s (ID: %s)", filtered.Rows[0][colStoreName], filtered.Rows[0][colStoreID])
	}
	for i, row := range filtered.Rows {
		if i >= 5 {
			log.Infof("  ... and %d more", len(filtered.Rows)-5)
			break
		}
		log.Infof("  - %s", row["Name"])
	}
	return nil
}

// ListStores prints every store in the export with its product count
func ListStores(log *RunLog, inputCSV string) error {
	t, err := table.Read(inputCSV)
	if err != nil {
		return err
	}
	if !t.HasColumn(colStoreName) {
		return fmt.Errorf("%s column not found; available columns: %v", colStoreName, t.Columns)
	}

	log.Infof("All stores in export:")
	for _, sc := range storeCounts(t) {
		log.Infof("  Store ID %3s: %-50s (%4d products)", sc.ID, sc.Name, sc.Products)
	}
	return nil
}

// storeCounts groups rows by store, sorted by product count descending
func storeCounts(t *table.Table) []StoreCount {
	type key struct{ id, name string }
	counts := make(map[key]int)
	var order []key
	for _, row := range t.Rows {
		k := key{row[colStoreID], row[colStoreName]}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]StoreCount, 0, len(order))
	for _, k := range order {
		out = append(out, StoreCount{ID: k.id, Name: k.name, Products: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Products > out[j].Products })
	return out
}
