package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"catalog-migrate/internal/pipeline"
	"catalog-migrate/pkg/utils"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		fmt.Println("Usage: fields-mapper <input_csv> <output_csv> [use_auto_thumbnail] [test_mode] [test_limit]")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  fields-mapper with_assets.csv mdsf_import.csv true false 1")
		fmt.Println()
		fmt.Println("Arguments:")
		fmt.Println("  use_auto_thumbnail: true/false (default: true)")
		fmt.Println("  test_mode: true/false (default: false)")
		fmt.Println("  test_limit: number (default: 1)")
		os.Exit(1)
	}

	opts := pipeline.MapOptions{UseAutoThumbnail: true, TestLimit: 1}
	if len(args) > 2 {
		opts.UseAutoThumbnail = utils.ParseBool(args[2])
	}
	if len(args) > 3 {
		opts.TestMode = utils.ParseBool(args[3])
	}
	if len(args) > 4 {
		if n, err := strconv.Atoi(args[4]); err == nil {
			opts.TestLimit = n
		} else {
			fmt.Printf("WARNING: Invalid test_limit %q, using default: 1\n", args[4])
		}
	}

	if err := pipeline.MapFields(pipeline.ConsoleLog(), args[0], args[1], opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("FAILED")
		os.Exit(1)
	}
	fmt.Println("SUCCESS")
}
