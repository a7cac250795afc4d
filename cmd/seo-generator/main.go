package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-migrate/internal/model"
	"catalog-migrate/internal/pipeline"
)

var (
	titleLimit   = flag.Int("title-limit", 70, "Maximum SEO title length")
	keywordLimit = flag.Int("keyword-limit", 500, "Maximum keyword string length")
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: seo-generator [flags] <input_csv> [output_csv]")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  seo-generator raw_export.csv with_seo.csv")
		os.Exit(1)
	}

	inputCSV := args[0]
	outputCSV := ""
	if len(args) >= 2 {
		outputCSV = args[1]
	} else {
		ext := filepath.Ext(inputCSV)
		outputCSV = strings.TrimSuffix(inputCSV, ext) + "_with_seo" + ext
	}

	cfg := model.SEOConfig{TitleLimit: *titleLimit, KeywordLimit: *keywordLimit}
	if err := pipeline.GenerateSEO(pipeline.ConsoleLog(), inputCSV, outputCSV, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("FAILED")
		os.Exit(1)
	}
	fmt.Println("SUCCESS")
}
