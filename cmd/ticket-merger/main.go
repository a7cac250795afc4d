package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-migrate/internal/pipeline"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		fmt.Println("Usage: ticket-merger <product_csv> <pricing_csv> [output_csv]")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  ticket-merger with_assets.csv Product_Ticket_Templates.csv with_tickets.csv")
		os.Exit(1)
	}

	productCSV, pricingCSV := args[0], args[1]
	outputCSV := ""
	if len(args) >= 3 {
		outputCSV = args[2]
	} else {
		ext := filepath.Ext(productCSV)
		outputCSV = strings.TrimSuffix(productCSV, ext) + "_with_tickets" + ext
	}

	if err := pipeline.MergeTickets(pipeline.ConsoleLog(), productCSV, pricingCSV, outputCSV); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("FAILED")
		os.Exit(1)
	}
	fmt.Println("SUCCESS")
}
