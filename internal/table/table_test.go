package table

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadCommaDelimited(t *testing.T) {
	path := writeTemp(t, "in.csv", "Name,uStore_StoreID\nCard,70\nFlyer,71\n")
	tab, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(tab.Columns) != 2 || tab.Columns[0] != "Name" {
		t.Fatalf("unexpected columns: %v", tab.Columns)
	}
	if len(tab.Rows) != 2 || tab.Rows[0]["uStore_StoreID"] != "70" {
		t.Fatalf("unexpected rows: %v", tab.Rows)
	}
}

func TestReadTabDelimited(t *testing.T) {
	path := writeTemp(t, "in.tsv", "Name\tuStore_StoreID\nCard\t70\n")
	tab, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(tab.Columns) != 2 {
		t.Fatalf("tab sniffing failed, columns: %v", tab.Columns)
	}
	if tab.Rows[0]["Name"] != "Card" {
		t.Fatalf("unexpected row: %v", tab.Rows[0])
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadShortRecordPadsEmpty(t *testing.T) {
	path := writeTemp(t, "in.csv", "A,B,C\n1,2\n")
	tab, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if tab.Rows[0]["C"] != "" {
		t.Fatalf("expected empty pad, got %q", tab.Rows[0]["C"])
	}
}

func TestWriteRoundTripKeepsColumnOrder(t *testing.T) {
	tab := &Table{
		Columns: []string{"B", "A"},
		Rows:    []Row{{"A": "1", "B": "2"}},
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := tab.Write(path); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	back, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if back.Columns[0] != "B" || back.Columns[1] != "A" {
		t.Fatalf("column order not preserved: %v", back.Columns)
	}
	if back.Rows[0]["B"] != "2" {
		t.Fatalf("unexpected value: %v", back.Rows[0])
	}
}

func TestDropColumns(t *testing.T) {
	tab := &Table{
		Columns: []string{"Name", "uStore_ProductID", "Type"},
		Rows:    []Row{{"Name": "Card", "uStore_ProductID": "5", "Type": "Document"}},
	}
	removed := tab.DropColumns("uStore_ProductID", "uStore_StoreID")
	if len(removed) != 1 || removed[0] != "uStore_ProductID" {
		t.Fatalf("unexpected removed set: %v", removed)
	}
	if tab.HasColumn("uStore_ProductID") {
		t.Fatal("column still declared after drop")
	}
	if _, ok := tab.Rows[0]["uStore_ProductID"]; ok {
		t.Fatal("row value still present after drop")
	}
}

func TestHead(t *testing.T) {
	tab := &Table{Columns: []string{"A"}, Rows: []Row{{"A": "1"}, {"A": "2"}, {"A": "3"}}}
	tab.Head(1)
	if len(tab.Rows) != 1 || tab.Rows[0]["A"] != "1" {
		t.Fatalf("unexpected head result: %v", tab.Rows)
	}
}
