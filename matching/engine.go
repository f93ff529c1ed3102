package matching

import (
	"fmt"
	"strconv"
	"strings"

	"storecheck/matching/algorithms"
)

// Engine scores query records against master-list candidates. It holds no
// mutable state beyond the weight table, so a single Engine is safe for
// concurrent use.
type Engine struct {
	weights Weights
}

// NewEngine creates an engine with the production weight table.
func NewEngine() *Engine {
	return &Engine{weights: DefaultWeights()}
}

// NewEngineWithWeights creates an engine with a custom weight table.
func NewEngineWithWeights(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &Engine{weights: w}, nil
}

// Weights returns the engine's weight table.
func (e *Engine) Weights() Weights {
	return e.weights
}

// FindMatches scores every candidate against the query and returns those
// that clear the inclusion threshold: total score >= 70 in strict mode,
// or additionally >= 50 when permissive. Candidate iteration order is
// preserved; the engine does not sort (see SortByScore). Candidates are
// never mutated.
func (e *Engine) FindMatches(query QueryRecord, candidates []MasterStore, permissive bool) []MatchResult {
	var results []MatchResult
	for _, cand := range candidates {
		score, signals, rationale := e.scoreCandidate(query, cand)
		if score >= e.weights.StrictThreshold || (permissive && score >= e.weights.PermissiveThreshold) {
			results = append(results, MatchResult{
				Store:        cand,
				Score:        score,
				Signals:      signals,
				Rationale:    rationale,
				QueryName:    query.StoreName,
				QueryAddress: query.Address,
			})
		}
	}
	return results
}

// scoreCandidate computes the total score for one (query, candidate) pair
// together with the structured contributions and the human-readable
// rationale trace. Every signal degrades to a zero contribution on
// missing or unparseable input; nothing here can fail the whole pair.
func (e *Engine) scoreCandidate(query QueryRecord, cand MasterStore) (float64, []SignalScore, []string) {
	w := e.weights
	var (
		total     float64
		signals   []SignalScore
		rationale []string
	)

	record := func(s SignalScore, line string) {
		total += s.Points
		signals = append(signals, s)
		rationale = append(rationale, line)
	}

	// Name signal.
	nameRaw := algorithms.BestRatio(
		Normalize(query.StoreName, FieldStoreName),
		Normalize(cand.StoreName, FieldStoreName),
	)
	namePts := float64(nameRaw) / 100 * w.Name
	record(
		SignalScore{Signal: "name", Raw: float64(nameRaw), Points: namePts, Budget: w.Name},
		fmt.Sprintf("Name similarity: %d (%.1f / %.0f)", nameRaw, namePts, w.Name),
	)

	// Address and city signals. The 25-point budget is split 20/10 only
	// when both sides carry a city; otherwise the address alone gets the
	// full budget and the city signal is skipped entirely.
	bothCities := strings.TrimSpace(query.City) != "" && strings.TrimSpace(cand.City) != ""
	addrRaw := algorithms.BestRatio(
		Normalize(query.Address, FieldAddress),
		Normalize(cand.Address, FieldAddress),
	)
	if bothCities {
		addrPts := float64(addrRaw) / 100 * w.Address
		record(
			SignalScore{Signal: "address", Raw: float64(addrRaw), Points: addrPts, Budget: w.Address},
			fmt.Sprintf("Address similarity: %d (%.1f / %.0f)", addrRaw, addrPts, w.Address),
		)

		cityRaw := algorithms.BestRatio(
			Normalize(query.City, FieldCity),
			Normalize(cand.City, FieldCity),
		)
		cityPts := float64(cityRaw) / 100 * w.City
		record(
			SignalScore{Signal: "city", Raw: float64(cityRaw), Points: cityPts, Budget: w.City},
			fmt.Sprintf("City similarity: %d (%.1f / %.0f)", cityRaw, cityPts, w.City),
		)
	} else {
		addrPts := float64(addrRaw) / 100 * w.AddressSolo
		record(
			SignalScore{Signal: "address", Raw: float64(addrRaw), Points: addrPts, Budget: w.AddressSolo, Note: "city missing"},
			fmt.Sprintf("Address similarity: %d (%.1f / %.0f, city missing)", addrRaw, addrPts, w.AddressSolo),
		)
	}

	// Geographic signal: all or nothing inside the gate radius.
	if dist, ok := e.distanceMeters(query, cand); ok {
		if dist < w.GeoRadiusM {
			record(
				SignalScore{Signal: "distance", Raw: dist, Points: w.Geo, Budget: w.Geo},
				fmt.Sprintf("Distance: %.2f m (+%.0f)", dist, w.Geo),
			)
		} else {
			record(
				SignalScore{Signal: "distance", Raw: dist, Points: 0, Budget: w.Geo},
				fmt.Sprintf("Distance: %.2f m (+0)", dist),
			)
		}
	} else {
		record(
			SignalScore{Signal: "distance", Points: 0, Budget: w.Geo, Note: "N/A"},
			"Distance: N/A",
		)
	}

	// NIK and NPWP: exact match on the identifier suffix.
	record(e.idSuffixSignal("NIK", query.NIK, cand.NIK, w.NIK))
	record(e.idSuffixSignal("NPWP", query.NPWP, cand.NPWP, w.NPWP))

	// Reference ID: case-insensitive match against any of the candidate's
	// three source-system IDs.
	record(e.referenceIDSignal(query.ReferenceID, cand))

	rationale = append(rationale, fmt.Sprintf("Total score: %.1f", total))
	return total, signals, rationale
}

// distanceMeters parses both coordinate pairs and returns the great-circle
// distance. Missing or non-numeric values report !ok, never an error.
func (e *Engine) distanceMeters(query QueryRecord, cand MasterStore) (float64, bool) {
	qLat, ok1 := parseCoord(query.Latitude)
	qLon, ok2 := parseCoord(query.Longitude)
	cLat, ok3 := parseCoord(cand.Latitude)
	cLon, ok4 := parseCoord(cand.Longitude)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}
	return algorithms.HaversineMeters(qLat, qLon, cLat, cLon), true
}

func parseCoord(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// idSuffixSignal awards the full budget when the trailing IDSuffixLen
// characters of both identifiers agree. Both sides must be non-empty
// after trimming.
func (e *Engine) idSuffixSignal(name, queryID, candID string, budget float64) (SignalScore, string) {
	q := strings.TrimSpace(queryID)
	c := strings.TrimSpace(candID)
	if q == "" || c == "" {
		return SignalScore{Signal: strings.ToLower(name), Points: 0, Budget: budget, Note: "N/A"},
			fmt.Sprintf("%s match: N/A", name)
	}
	if lastChars(q, e.weights.IDSuffixLen) == lastChars(c, e.weights.IDSuffixLen) {
		return SignalScore{Signal: strings.ToLower(name), Raw: 100, Points: budget, Budget: budget},
			fmt.Sprintf("%s match (+%.0f)", name, budget)
	}
	return SignalScore{Signal: strings.ToLower(name), Points: 0, Budget: budget},
		fmt.Sprintf("%s mismatch (+0)", name)
}

// referenceIDSignal awards the full budget when the query's reference ID
// equals any of the candidate's three stored reference IDs, ignoring case
// and surrounding whitespace.
func (e *Engine) referenceIDSignal(queryRef string, cand MasterStore) (SignalScore, string) {
	w := e.weights
	ref := strings.ToUpper(strings.TrimSpace(queryRef))
	if ref == "" {
		return SignalScore{Signal: "reference_id", Points: 0, Budget: w.ReferenceID, Note: "N/A"},
			"Reference ID match: N/A"
	}
	candidates := []string{cand.RefIDSKT, cand.RefIDG2G, cand.RefIDTPH}
	for _, c := range candidates {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" && c == ref {
			return SignalScore{Signal: "reference_id", Raw: 100, Points: w.ReferenceID, Budget: w.ReferenceID},
				fmt.Sprintf("Reference ID match (+%.0f)", w.ReferenceID)
		}
	}
	return SignalScore{Signal: "reference_id", Points: 0, Budget: w.ReferenceID},
		"Reference ID mismatch (+0)"
}

// lastChars returns the trailing n runes of s, or all of s when shorter.
func lastChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
