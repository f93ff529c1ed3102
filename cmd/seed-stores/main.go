package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"storecheck/database"
	"storecheck/matching"
)

var regions = []string{
	"Jawa Barat", "Jawa Tengah", "Jawa Timur", "DKI Jakarta",
	"Sumatera Utara", "Sulawesi Selatan", "Bali",
}

var namePrefixes = []string{"Toko", "Warung", "Kios", "Mini Market"}

// seed-stores fills a store database with synthetic master data for local
// testing of the duplicate checker.
func main() {
	dbPath := flag.String("db", "storecheck.db", "path to the store database")
	count := flag.Int("count", 1000, "number of master stores to generate")
	seed := flag.Int64("seed", 0, "random seed for reproducible data")
	flag.Parse()

	gofakeit.Seed(*seed)

	db, err := database.NewStoreDB(*dbPath, database.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to open store database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	stores := make([]matching.MasterStore, *count)
	for i := range stores {
		stores[i] = matching.MasterStore{
			CustID:    fmt.Sprintf("C%06d", i+1),
			StoreName: fmt.Sprintf("%s %s", namePrefixes[i%len(namePrefixes)], gofakeit.LastName()),
			Region:    regions[i%len(regions)],
			City:      gofakeit.City(),
			Address:   fmt.Sprintf("Jalan %s No. %d", gofakeit.LastName(), gofakeit.Number(1, 200)),
			Latitude:  fmt.Sprintf("%.6f", gofakeit.Float64Range(-8.8, 5.5)),
			Longitude: fmt.Sprintf("%.6f", gofakeit.Float64Range(95.0, 141.0)),
			NIK:       gofakeit.DigitN(16),
			NPWP:      gofakeit.DigitN(15),
			RefIDSKT:  fmt.Sprintf("SKT-%s", gofakeit.DigitN(6)),
		}
	}

	if err := db.UpsertStores(ctx, stores); err != nil {
		log.Fatalf("Failed to insert master stores: %v", err)
	}

	// Six months of sell-through history for a subset of stores.
	now := time.Now()
	seeded := 0
	for i, s := range stores {
		if i%3 != 0 {
			continue
		}
		for m := 1; m <= 6; m++ {
			month := now.AddDate(0, -m, 0).Format("2006-01")
			value := gofakeit.Float64Range(100, 25000)
			if err := db.UpsertSellThrough(ctx, s.CustID, month, value); err != nil {
				log.Fatalf("Failed to insert sell-through: %v", err)
			}
		}
		seeded++
	}

	fmt.Printf("Seeded %d master stores (%d with sell-through history) into %s\n",
		len(stores), seeded, *dbPath)
}
