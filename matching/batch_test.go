package matching

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestFindMatchesBatch_MatchesSequential(t *testing.T) {
	gofakeit.Seed(23)
	engine := NewEngine()

	candidates := make([]MasterStore, 50)
	for i := range candidates {
		candidates[i] = MasterStore{
			CustID:    fmt.Sprintf("C%02d", i),
			StoreName: gofakeit.Company(),
			City:      gofakeit.City(),
			Address:   gofakeit.Street(),
		}
	}

	queries := make([]QueryRecord, 20)
	for i := range queries {
		// Reuse master names so a good share of queries actually match.
		src := candidates[i%len(candidates)]
		queries[i] = QueryRecord{
			StoreName: src.StoreName,
			City:      src.City,
			Address:   src.Address,
		}
	}

	batch := engine.FindMatchesBatch(queries, candidates, true)
	if len(batch) != len(queries) {
		t.Fatalf("batch returned %d slots, want %d", len(batch), len(queries))
	}

	for i, query := range queries {
		sequential := engine.FindMatches(query, candidates, true)
		if !reflect.DeepEqual(batch[i], sequential) {
			t.Errorf("query %d: batch result differs from sequential", i)
		}
	}
}

func TestFindMatchesBatch_Empty(t *testing.T) {
	engine := NewEngine()
	if got := engine.FindMatchesBatch(nil, nil, true); len(got) != 0 {
		t.Errorf("batch over no queries returned %d slots", len(got))
	}
}
