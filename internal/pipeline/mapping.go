package pipeline

import (
	"catalog-migrate/internal/table"
)

// AutoThumbnail tells the destination platform to generate thumbnails itself
const AutoThumbnail = "AutoThumbnail"

// Helper columns carried through mapping for the packager and stripped from
// the final import table
var helperColumns = []string{colProductID, colStoreID, colStoreName}

// mdsfColumns is the destination import template, in the exact order the
// platform expects
var mdsfColumns = []string{
	"Name", "DisplayName", "Type", "ProductId", "BriefDescription", "Icon",
	"LongDescription", "DetailImage", "Active", "TurnAroundTime", "TurnAroundTimeUnit",
	"QuantityType", "MaxOrderQuantityPermitted", "Quantities",
	"AllowBuyerToEditMultipleQuantity", "EnforceMaxQuantityPermittedInCart",
	"OrderQuantitiesAllowSplitAcrossMultipleRecipients", "DescriptionFooter",
	"ProductNotes", "KeyWords", "SEOTitle", "UrlSlug", "MetaDescription",
	"MobileSupported", "BuyerDeliverableType", "WeightValue", "WeightUnit",
	"WidthValue", "LengthValue", "HeightValue", "DimensionUnit",
	"MaxQuantityPerSubcontainer", "ShipItemSeparately", "ContentFile",
	"TicketTemplate", "ProductNameToCopySecuritySettings", "MISItemTemplate",
	"SmartCanvasTemplateName", "DynamicPreview", "AllowBuyerConfiguration",
	"StartDate", "EndDate", "PickLocation", "WareHouseName", "IsHighValueProduct",
	"HasUniqueSkid", "PickStrategy", "NotifyOnInventoryReceive", "CustomerRep",
	"SalesRep", "PhysicalCountInterval", "StorageType", "AllowBackOrder",
	"BackOrderRule", "BackOrderMaxQty", "ShowInventoryWhenBackOrderAllowed",
	"Threshold", "Emails", "Storefront/Categories", "Barcode",
	"EnableProductReturn", "BuyNowButtonDescription", "UseNewSmartCanvas",
}

// fieldMapping renames source columns into the destination schema
var fieldMapping = map[string]string{
	"Name":                  "Name",
	"DisplayName":           "DisplayName",
	"Type":                  "Type",
	"SKU/ProductId":         "ProductId",
	"BriefDescription":      "BriefDescription",
	"Icon":                  "Icon",
	"LongDescription":       "LongDescription",
	"DetailImage":           "DetailImage",
	"Active":                "Active",
	"QuantityType":          "QuantityType",
	"MaxOrderQuantityPermitted": "MaxOrderQuantityPermitted",
	"KeyWords":              "KeyWords",
	"SEOTitle":              "SEOTitle",
	"MetaDescription":       "MetaDescription",
	"MobileSupported":       "MobileSupported",
	"ContentFile":           "ContentFile",
	"TicketTemplate":        "TicketTemplate",
	"StoreFront/Categories": "Storefront/Categories", // capitalization differs between platforms
}

// builtinDefaults fills destination columns with no source counterpart.
// Columns absent from this map default to the empty string.
var builtinDefaults = map[string]string{
	"AllowBuyerToEditMultipleQuantity":  "FALSE",
	"EnforceMaxQuantityPermittedInCart": "FALSE",
	"OrderQuantitiesAllowSplitAcrossMultipleRecipients": "FALSE",
	"BuyerDeliverableType":                              "Print",
}

// MapOptions controls field mapping behavior
type MapOptions struct {
	UseAutoThumbnail bool
	TestMode         bool
	TestLimit        int
	// Defaults overrides builtinDefaults per destination column
	Defaults map[string]string
}

// ValidationReport collects destination-schema problems. They are reported,
// never auto-fixed, and do not block writing the output.
type ValidationReport struct {
	MissingName         int
	MissingDisplayName  int
	MissingType         int
	DocumentCount       int
	MissingTemplates    []string
	MissingContent      []string
	EmptyBriefDesc      int
	EmptyLongDesc       int
}

// HasErrors reports whether any must-fix problem was found
func (v *ValidationReport) HasErrors() bool {
	return v.MissingName > 0 || v.MissingDisplayName > 0 || v.MissingType > 0 ||
		len(v.MissingTemplates) > 0 || len(v.MissingContent) > 0
}

// MapFields reshapes the enriched export into the fixed destination schema,
// appending the helper columns the packager needs.
func MapFields(log *RunLog, inputCSV, outputCSV string, opts MapOptions) error {
	log.Banner("MDSF FIELDS MAPPER")

	log.Infof("Reading CSV: %s", inputCSV)
	src, err := table.Read(inputCSV)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d products", len(src.Rows))

	if opts.TestMode {
		limit := opts.TestLimit
		if limit <= 0 {
			limit = 1
		}
		log.Infof("TEST MODE: Processing only %d product(s)", limit)
		src.Head(limit)
	}

	log.Infof("Mapping fields...")
	for srcCol := range fieldMapping {
		if !src.HasColumn(srcCol) {
			log.Warnf("Column %q not found in source CSV", srcCol)
		}
	}

	out := &table.Table{Columns: append([]string{}, mdsfColumns...)}
	preserved := 0
	for _, col := range helperColumns {
		if src.HasColumn(col) {
			out.Columns = append(out.Columns, col)
			preserved++
		}
	}
	log.Infof("Preserved %d helper columns", preserved)

	defaults := make(map[string]string, len(builtinDefaults))
	for col, val := range builtinDefaults {
		defaults[col] = val
	}
	for col, val := range opts.Defaults {
		defaults[col] = val
	}

	mapped := make(map[string]string, len(fieldMapping)) // destination -> source
	for srcCol, dstCol := range fieldMapping {
		mapped[dstCol] = srcCol
	}

	for _, srcRow := range src.Rows {
		row := make(table.Row, len(out.Columns))
		for _, dstCol := range mdsfColumns {
			if srcCol, ok := mapped[dstCol]; ok && src.HasColumn(srcCol) {
				row[dstCol] = srcRow[srcCol]
			} else {
				row[dstCol] = defaults[dstCol]
			}
		}
		for _, col := range helperColumns {
			if src.HasColumn(col) {
				row[col] = srcRow[col]
			}
		}
		if opts.UseAutoThumbnail {
			row["Icon"] = AutoThumbnail
			row["DetailImage"] = AutoThumbnail
		}
		out.Rows = append(out.Rows, row)
	}

	if opts.UseAutoThumbnail {
		log.Infof("Using AutoThumbnail for Icon and DetailImage")
	}

	if err := out.Write(outputCSV); err != nil {
		return err
	}

	report := validateMapped(out)
	logValidation(log, out, report)

	log.Banner("MAPPING COMPLETE")
	log.Infof("Output saved to: %s", outputCSV)
	return nil
}

// validateMapped checks destination-schema requirements on the mapped table
func validateMapped(t *table.Table) *ValidationReport {
	report := &ValidationReport{}
	for _, row := range t.Rows {
		if row["Name"] == "" {
			report.MissingName++
		}
		if row["DisplayName"] == "" {
			report.MissingDisplayName++
		}
		if row["Type"] == "" {
			report.MissingType++
		}
		if row["Type"] == "Document" {
			report.DocumentCount++
			if row["TicketTemplate"] == "" {
				report.MissingTemplates = append(report.MissingTemplates, row["Name"])
			}
			if row["ContentFile"] == "" {
				report.MissingContent = append(report.MissingContent, row["Name"])
			}
		}
		if row["BriefDescription"] == "" {
			report.EmptyBriefDesc++
		}
		if row["LongDescription"] == "" {
			report.EmptyLongDesc++
		}
	}
	return report
}

func logValidation(log *RunLog, t *table.Table, report *ValidationReport) {
	log.Banner("VALIDATION REPORT")

	if report.HasErrors() {
		log.Errorf("Errors (must fix before import):")
		if report.MissingName > 0 {
			log.Errorf("  - %d products missing Name (REQUIRED)", report.MissingName)
		}
		if report.MissingDisplayName > 0 {
			log.Errorf("  - %d products missing DisplayName (REQUIRED)", report.MissingDisplayName)
		}
		if report.MissingType > 0 {
			log.Errorf("  - %d products missing Type (REQUIRED)", report.MissingType)
		}
		if len(report.MissingTemplates) > 0 {
			log.Errorf("  - %d Document products missing TicketTemplate", len(report.MissingTemplates))
			if len(report.MissingTemplates) <= 3 {
				for _, name := range report.MissingTemplates {
					log.Errorf("      %s", name)
				}
			}
		}
		if len(report.MissingContent) > 0 {
			log.Errorf("  - %d Document products missing ContentFile", len(report.MissingContent))
			if len(report.MissingContent) <= 3 {
				for _, name := range report.MissingContent {
					log.Errorf("      %s", name)
				}
			}
		}
	} else {
		log.Infof("No critical errors found!")
	}

	if report.EmptyBriefDesc > 0 {
		log.Warnf("%d products have empty BriefDescription", report.EmptyBriefDesc)
	}
	if report.EmptyLongDesc > 0 {
		log.Warnf("%d products have empty LongDescription", report.EmptyLongDesc)
	}

	log.Infof("Product summary:")
	log.Infof("  Total products: %d", len(t.Rows))
	log.Infof("  Static Documents: %d", report.DocumentCount)
	log.Infof("  Columns: %d", len(t.Columns))
}
