package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"catalog-migrate/internal/table"
)

// Pricing elements that are billing notes rather than production specs
var nonProductionElement = regexp.MustCompile(`(?i)Note for|Billing|Assignment`)

// pickBestPricingElement chooses one element per product: prefer entries with
// dimensions, then any non-Base entry, then whatever is left.
func pickBestPricingElement(elements []string) string {
	if len(elements) == 0 {
		return ""
	}
	var nonBase []string
	for _, e := range elements {
		if !strings.EqualFold(e, "base") {
			nonBase = append(nonBase, e)
		}
	}
	if len(nonBase) == 0 {
		return elements[0]
	}
	for _, e := range nonBase {
		if strings.Contains(strings.ToLower(e), "x") || strings.ContainsAny(e, "0123456789") {
			return e
		}
	}
	return nonBase[0]
}

// MergeTickets fills empty TicketTemplate values from a pricing-element
// export. Populated templates are never overwritten.
func MergeTickets(log *RunLog, productCSV, pricingCSV, outputCSV string) error {
	log.Banner("TICKET TEMPLATE MERGER")

	log.Infof("Reading product CSV: %s", productCSV)
	products, err := table.Read(productCSV)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d products with %d columns", len(products.Rows), len(products.Columns))

	log.Infof("Reading pricing elements CSV: %s", pricingCSV)
	pricing, err := table.Read(pricingCSV)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d pricing element records", len(pricing.Rows))

	idCol := ""
	switch {
	case products.HasColumn(colProductID):
		idCol = colProductID
	case products.HasColumn("ProductID"):
		idCol = "ProductID"
	default:
		return fmt.Errorf("no ProductID column found in product CSV; available columns: %v", products.Columns)
	}
	log.Infof("Using %q column from product CSV", idCol)

	if !pricing.HasColumn("ProductID") || !pricing.HasColumn("PricingElement") {
		return fmt.Errorf("pricing CSV must have ProductID and PricingElement columns; available columns: %v", pricing.Columns)
	}

	// Group production elements per product, keeping file order
	log.Infof("Filtering pricing elements...")
	elements := make(map[string][]string)
	kept := 0
	for _, row := range pricing.Rows {
		element := row["PricingElement"]
		if nonProductionElement.MatchString(element) {
			continue
		}
		kept++
		id := row["ProductID"]
		elements[id] = append(elements[id], element)
	}
	log.Infof("After filtering: %d pricing element records", kept)

	pricingMap := make(map[string]string, len(elements))
	for id, els := range elements {
		pricingMap[id] = pickBestPricingElement(els)
	}
	log.Infof("Created mapping for %d unique products", len(pricingMap))

	products.EnsureColumn("TicketTemplate")

	var alreadyHad, filled, stillMissing int
	var updated []string
	for _, row := range products.Rows {
		if strings.TrimSpace(row["TicketTemplate"]) != "" {
			alreadyHad++
			continue
		}
		if tmpl, ok := pricingMap[row[idCol]]; ok && tmpl != "" {
			row["TicketTemplate"] = tmpl
			filled++
			updated = append(updated, fmt.Sprintf("%-50.50s -> %s", row["Name"], tmpl))
		} else {
			stillMissing++
		}
	}

	if err := products.Write(outputCSV); err != nil {
		return err
	}

	log.Banner("MERGE COMPLETE")
	log.Infof("Output saved to: %s", outputCSV)
	log.Infof("Statistics:")
	log.Infof("  Total products: %d", len(products.Rows))
	log.Infof("  Already had TicketTemplate: %d", alreadyHad)
	log.Infof("  Filled from pricing elements: %d", filled)
	log.Infof("  Still missing TicketTemplate: %d", stillMissing)
	if len(updated) > 0 {
		log.Infof("Sample of updated products:")
		for i, u := range updated {
			if i >= 10 {
				log.Infof("  ... and %d more", len(updated)-10)
				break
			}
			log.Infof("  - %s", u)
		}
	}
	return nil
}
