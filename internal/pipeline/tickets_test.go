package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"catalog-migrate/internal/table"
)

func TestPickBestPricingElement(t *testing.T) {
	cases := []struct {
		name     string
		elements []string
		want     string
	}{
		{"empty", nil, ""},
		{"only base", []string{"Base"}, "Base"},
		{"dimensions win", []string{"Base", "Glossy", "3.5x2 Standard"}, "3.5x2 Standard"},
		{"digits win", []string{"Base", "Glossy", "100# Cover"}, "100# Cover"},
		{"first non-base fallback", []string{"Base", "Matte", "Glossy"}, "Matte"},
	}
	for _, c := range cases {
		if got := pickBestPricingElement(c.elements); got != c.want {
			t.Errorf("%s: pickBestPricingElement(%v) = %q, want %q", c.name, c.elements, got, c.want)
		}
	}
}

func TestMergeTickets(t *testing.T) {
	dir := t.TempDir()
	productCSV := filepath.Join(dir, "products.csv")
	pricingCSV := filepath.Join(dir, "pricing.csv")
	out := filepath.Join(dir, "merged.csv")

	products := "uStore_ProductID,Name,TicketTemplate\n" +
		"101,Business Card,\n" +
		"102,Flier,Existing Template\n" +
		"103,Poster,\n"
	pricing := "ProductID,PricingElement\n" +
		"101,Base\n" +
		"101,Note for billing dept\n" +
		"101,3.5x2 Standard\n" +
		"102,Glossy\n"
	if err := os.WriteFile(productCSV, []byte(products), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pricingCSV, []byte(pricing), 0644); err != nil {
		t.Fatal(err)
	}

	if err := MergeTickets(ConsoleLog(), productCSV, pricingCSV, out); err != nil {
		t.Fatalf("MergeTickets: %v", err)
	}

	result, err := table.Read(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got := result.Rows[0]["TicketTemplate"]; got != "3.5x2 Standard" {
		t.Fatalf("product 101 template = %q, want 3.5x2 Standard", got)
	}
	// populated templates are never overwritten
	if got := result.Rows[1]["TicketTemplate"]; got != "Existing Template" {
		t.Fatalf("product 102 template = %q, want Existing Template", got)
	}
	// products with no pricing rows stay empty
	if got := result.Rows[2]["TicketTemplate"]; got != "" {
		t.Fatalf("product 103 template = %q, want empty", got)
	}
}

func TestMergeTicketsMissingPricingColumns(t *testing.T) {
	dir := t.TempDir()
	productCSV := filepath.Join(dir, "products.csv")
	pricingCSV := filepath.Join(dir, "pricing.csv")
	if err := os.WriteFile(productCSV, []byte("uStore_ProductID,Name\n101,Card\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pricingCSV, []byte("ID,Element\n101,Base\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := MergeTickets(ConsoleLog(), productCSV, pricingCSV, filepath.Join(dir, "out.csv"))
	if err == nil {
		t.Fatal("expected error for pricing CSV without required columns")
	}
}
