package matching

import (
	"runtime"
	"sort"
	"sync"
)

// FindMatchesBatch evaluates many query records against the same candidate
// set, fanning queries out over a bounded worker pool. Every candidate
// evaluation is side-effect-free, so workers share the read-only candidate
// slice without locking. Results come back indexed by query so the output
// order is deterministic regardless of scheduling.
func (e *Engine) FindMatchesBatch(queries []QueryRecord, candidates []MasterStore, permissive bool) [][]MatchResult {
	results := make([][]MatchResult, len(queries))
	if len(queries) == 0 {
		return results
	}

	workers := runtime.NumCPU()
	if workers > len(queries) {
		workers = len(queries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.FindMatches(queries[i], candidates, permissive)
			}
		}()
	}

	for i := range queries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// SortByScore orders results by total score descending. The sort is
// stable, so equal scores keep the engine's candidate iteration order.
func SortByScore(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
