package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"catalog-migrate/internal/table"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindContentFiles(t *testing.T) {
	assets := t.TempDir()
	touch(t, filepath.Join(assets, "Product_101", "card_front.pdf"))
	touch(t, filepath.Join(assets, "Product_101", "card_back.PDF"))
	touch(t, filepath.Join(assets, "Product_101", "card_proof.pdf"))
	touch(t, filepath.Join(assets, "Product_101", "notes.txt"))

	files := findContentFiles("101", assets)
	if len(files) != 2 {
		t.Fatalf("got %v, want front and back only", files)
	}
	for _, f := range files {
		if f == "card_proof.pdf" {
			t.Fatal("proof file must be excluded")
		}
	}
}

func TestFindContentFilesMissingFolder(t *testing.T) {
	if files := findContentFiles("999", t.TempDir()); files != nil {
		t.Fatalf("missing product folder should yield nil, got %v", files)
	}
}

func TestFindThumbnailFiles(t *testing.T) {
	thumbs := t.TempDir()
	pages := filepath.Join(thumbs, "Product_101", "Pages", "Thumbnails")
	touch(t, filepath.Join(pages, "page1.jpg"))
	touch(t, filepath.Join(pages, "page2.PNG"))
	touch(t, filepath.Join(pages, "page1.tmp"))

	files := findThumbnailFiles("101", thumbs)
	if len(files) != 2 {
		t.Fatalf("got %v, want the two images", files)
	}
}

func TestLinkAssets(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, "assets")
	thumbs := filepath.Join(dir, "thumbnails")
	touch(t, filepath.Join(assets, "Product_101", "card.pdf"))
	touch(t, filepath.Join(thumbs, "Product_101", "Pages", "Thumbnails", "page1.jpg"))
	if err := os.MkdirAll(filepath.Join(assets, "Product_102"), 0755); err != nil {
		t.Fatal(err)
	}

	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")
	csv := "uStore_ProductID,Name\n101,Business Card\n102,Flier\n"
	if err := os.WriteFile(in, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LinkAssets(ConsoleLog(), in, out, assets, thumbs); err != nil {
		t.Fatalf("LinkAssets: %v", err)
	}

	result, err := table.Read(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if result.Rows[0]["ContentFile"] != "card.pdf" {
		t.Fatalf("ContentFile = %q", result.Rows[0]["ContentFile"])
	}
	if result.Rows[0]["Icon"] != "page1.jpg" || result.Rows[0]["DetailImage"] != "page1.jpg" {
		t.Fatalf("thumbnail columns = %q / %q", result.Rows[0]["Icon"], result.Rows[0]["DetailImage"])
	}
	// missing assets are recorded as empty values, never an error
	if result.Rows[1]["ContentFile"] != "" || result.Rows[1]["Icon"] != "" {
		t.Fatalf("product without assets should have empty columns: %v", result.Rows[1])
	}
}

func TestLinkAssetsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(in, []byte("uStore_ProductID\n101\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := LinkAssets(ConsoleLog(), in, filepath.Join(dir, "out.csv"),
		filepath.Join(dir, "nope"), filepath.Join(dir, "also-nope"))
	if err == nil {
		t.Fatal("expected error for missing assets directory")
	}
}
