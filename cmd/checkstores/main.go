package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"storecheck/database"
	"storecheck/exporter"
	"storecheck/importer"
	"storecheck/matching"
)

// checkstores runs a batch duplicate check from the command line: one
// new-store workbook in, one results workbook out. Useful for operators
// working outside the web UI.
func main() {
	dbPath := flag.String("db", "storecheck.db", "path to the store database")
	inPath := flag.String("in", "", "path to the new-store workbook (required)")
	outPath := flag.String("out", "duplicates.xlsx", "path for the results workbook")
	permissive := flag.Bool("permissive", true, "include near-matches (score >= 50) in addition to likely duplicates (>= 70)")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := database.NewStoreDB(*dbPath, database.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to open store database: %v", err)
	}
	defer db.Close()

	in, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("Failed to open input workbook: %v", err)
	}
	defer in.Close()

	records, err := importer.ParseNewStores(in)
	if err != nil {
		log.Fatalf("Invalid input workbook: %v", err)
	}

	ctx := context.Background()
	candidates, err := db.StoresByRegion(ctx, records[0].Region)
	if err != nil {
		log.Fatalf("Failed to load master stores: %v", err)
	}
	if len(candidates) == 0 {
		log.Fatalf("No existing stores found in region %q", records[0].Region)
	}

	engine := matching.NewEngine()
	perQuery := engine.FindMatchesBatch(records, candidates, *permissive)

	var all []matching.MatchResult
	for _, matches := range perQuery {
		all = append(all, matches...)
	}
	matching.SortByScore(all)

	if len(all) == 0 {
		fmt.Printf("Checked %d stores against %d candidates: no possible duplicates.\n",
			len(records), len(candidates))
		return
	}

	custIDs := make([]string, 0, len(all))
	seen := make(map[string]bool)
	for _, r := range all {
		if !seen[r.Store.CustID] {
			seen[r.Store.CustID] = true
			custIDs = append(custIDs, r.Store.CustID)
		}
	}
	sellThrough, months, err := db.MonthlySellThrough(ctx, custIDs, database.SellThroughCutoff(time.Now()))
	if err != nil {
		log.Fatalf("Failed to load sell-through data: %v", err)
	}

	f, err := exporter.BuildResultsWorkbook(all, sellThrough, months)
	if err != nil {
		log.Fatalf("Failed to build results workbook: %v", err)
	}
	defer f.Close()

	if err := f.SaveAs(*outPath); err != nil {
		log.Fatalf("Failed to save results workbook: %v", err)
	}

	fmt.Printf("Checked %d stores against %d candidates: %d possible duplicates written to %s\n",
		len(records), len(candidates), len(all), *outPath)
}
