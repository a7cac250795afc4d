package main

import (
	"flag"
	"fmt"
	"os"

	"catalog-migrate/internal/pipeline"
	"catalog-migrate/pkg/utils"
)

var stagingDir = flag.String("staging", "MDSF_Import_Package", "Staging directory for package contents")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 3 {
		fmt.Println("Usage: packager [flags] <input_csv> <assets_dir> <thumbnails_dir> [test_mode]")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  packager mdsf_import.csv ./static_assets ./static_assets_thumbnails false")
		os.Exit(1)
	}

	opts := pipeline.PackageOptions{
		StagingDir: *stagingDir,
		ZipPath:    *stagingDir + ".zip",
	}
	if len(args) > 3 {
		opts.TestMode = utils.ParseBool(args[3])
	}

	if err := pipeline.CreatePackage(pipeline.ConsoleLog(), args[0], args[1], args[2], opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("FAILED")
		os.Exit(1)
	}
	fmt.Println("SUCCESS")
}
