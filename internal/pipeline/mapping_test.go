package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"catalog-migrate/internal/table"
)

func mappedFixture(t *testing.T, opts MapOptions) *table.Table {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")

	csv := "uStore_ProductID,uStore_StoreID,uStore_StoreName,Name,DisplayName,Type,SKU/ProductId,StoreFront/Categories,Icon,DetailImage,TicketTemplate,ContentFile\n" +
		"101,70,AFC Urgent Care,Business Card,Business Card,Document,SKU-101,Marketing/Cards,page1.jpg,page1.jpg,Standard,card.pdf\n" +
		"102,70,AFC Urgent Care,Flier,Flier,Document,SKU-102,,,,,\n"
	if err := os.WriteFile(in, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	if err := MapFields(ConsoleLog(), in, out, opts); err != nil {
		t.Fatalf("MapFields: %v", err)
	}
	result, err := table.Read(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return result
}

func TestMapFieldsColumnOrder(t *testing.T) {
	result := mappedFixture(t, MapOptions{})

	// destination template first, in exact order, then the helper columns
	want := append(append([]string{}, mdsfColumns...), helperColumns...)
	if len(result.Columns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(result.Columns), len(want))
	}
	for i, col := range want {
		if result.Columns[i] != col {
			t.Fatalf("column %d = %q, want %q", i, result.Columns[i], col)
		}
	}
}

func TestMapFieldsRenamesAndDefaults(t *testing.T) {
	result := mappedFixture(t, MapOptions{})
	row := result.Rows[0]

	if row["ProductId"] != "SKU-101" {
		t.Fatalf("SKU/ProductId not renamed: %q", row["ProductId"])
	}
	if row["Storefront/Categories"] != "Marketing/Cards" {
		t.Fatalf("category column not renamed: %q", row["Storefront/Categories"])
	}
	if row["BuyerDeliverableType"] != "Print" {
		t.Fatalf("BuyerDeliverableType default = %q", row["BuyerDeliverableType"])
	}
	if row["AllowBuyerToEditMultipleQuantity"] != "FALSE" {
		t.Fatalf("boolean default = %q", row["AllowBuyerToEditMultipleQuantity"])
	}
	// unmapped columns with no default stay empty
	if row["Barcode"] != "" {
		t.Fatalf("Barcode = %q, want empty", row["Barcode"])
	}
	// helper columns survive for the packager
	if row["uStore_ProductID"] != "101" || row["uStore_StoreID"] != "70" {
		t.Fatalf("helper columns lost: %v", row)
	}
}

func TestMapFieldsDefaultOverrides(t *testing.T) {
	result := mappedFixture(t, MapOptions{
		Defaults: map[string]string{"BuyerDeliverableType": "Digital", "WareHouseName": "Main"},
	})
	row := result.Rows[0]
	if row["BuyerDeliverableType"] != "Digital" {
		t.Fatalf("override lost: %q", row["BuyerDeliverableType"])
	}
	if row["WareHouseName"] != "Main" {
		t.Fatalf("custom default lost: %q", row["WareHouseName"])
	}
}

func TestMapFieldsAutoThumbnail(t *testing.T) {
	result := mappedFixture(t, MapOptions{UseAutoThumbnail: true})
	for i, row := range result.Rows {
		if row["Icon"] != AutoThumbnail || row["DetailImage"] != AutoThumbnail {
			t.Fatalf("row %d: Icon = %q, DetailImage = %q", i, row["Icon"], row["DetailImage"])
		}
	}
}

func TestMapFieldsTestMode(t *testing.T) {
	result := mappedFixture(t, MapOptions{TestMode: true, TestLimit: 1})
	if len(result.Rows) != 1 {
		t.Fatalf("test mode kept %d rows, want 1", len(result.Rows))
	}
}

func TestValidateMapped(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"Name", "DisplayName", "Type", "TicketTemplate", "ContentFile", "BriefDescription", "LongDescription"},
		Rows: []table.Row{
			{"Name": "Card", "DisplayName": "Card", "Type": "Document", "TicketTemplate": "T", "ContentFile": "c.pdf"},
			{"Name": "", "DisplayName": "Flier", "Type": "Document"},
		},
	}
	report := validateMapped(tbl)
	if !report.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if report.MissingName != 1 {
		t.Fatalf("MissingName = %d", report.MissingName)
	}
	if report.DocumentCount != 2 {
		t.Fatalf("DocumentCount = %d", report.DocumentCount)
	}
	if len(report.MissingTemplates) != 1 || len(report.MissingContent) != 1 {
		t.Fatalf("missing template/content counts: %v / %v", report.MissingTemplates, report.MissingContent)
	}
}
