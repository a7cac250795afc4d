package main

import (
	"flag"
	"fmt"
	"os"

	"catalog-migrate/internal/pipeline"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 4 {
		fmt.Println("Usage: asset-linker <input_csv> <output_csv> <assets_dir> <thumbnails_dir>")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  asset-linker with_seo.csv with_assets.csv ./static_assets ./static_assets_thumbnails")
		os.Exit(1)
	}

	if err := pipeline.LinkAssets(pipeline.ConsoleLog(), args[0], args[1], args[2], args[3]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("FAILED")
		os.Exit(1)
	}
	fmt.Println("SUCCESS")
}
