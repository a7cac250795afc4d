package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"catalog-migrate/internal/pipeline"
)

func usage() {
	fmt.Println("Usage: store-filter <input_csv> <output_csv> <store_id OR store_name>")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Filter by Store ID")
	fmt.Println("  store-filter uStore_Complete_Export.csv AFC_Export.csv 70")
	fmt.Println()
	fmt.Println("  # Filter by Store Name")
	fmt.Println("  store-filter uStore_Complete_Export.csv AFC_Export.csv 'AFC Urgent Care'")
	fmt.Println()
	fmt.Println("  # Show all stores")
	fmt.Println("  store-filter uStore_Complete_Export.csv - list")
	os.Exit(1)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 3 {
		usage()
	}

	inputCSV, outputCSV, filterValue := args[0], args[1], args[2]
	log := pipeline.ConsoleLog()

	if filterValue == "list" {
		if err := pipeline.ListStores(log, inputCSV); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	storeID := 0
	storeName := ""
	if id, err := strconv.Atoi(filterValue); err == nil {
		storeID = id
	} else {
		storeName = filterValue
	}

	if err := pipeline.FilterByStore(log, inputCSV, outputCSV, storeID, storeName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("FAILED")
		os.Exit(1)
	}
	fmt.Println("SUCCESS")
}
