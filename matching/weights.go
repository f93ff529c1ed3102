package matching

import "fmt"

// Weights is the explicit constants table for the match engine: per-signal
// point budgets, the geographic gate radius, identifier suffix length and
// the two inclusion thresholds. The production split (20+10) exceeds the
// solo address budget (25), so a full-identity candidate with both cities
// present tops out above the solo-branch maximum; see MaxScore.
type Weights struct {
	Name        float64 `json:"name"`
	Address     float64 `json:"address"`
	City        float64 `json:"city"`
	AddressSolo float64 `json:"address_solo"`
	Geo         float64 `json:"geo"`
	GeoRadiusM  float64 `json:"geo_radius_m"`
	NIK         float64 `json:"nik"`
	NPWP        float64 `json:"npwp"`
	ReferenceID float64 `json:"reference_id"`

	StrictThreshold     float64 `json:"strict_threshold"`
	PermissiveThreshold float64 `json:"permissive_threshold"`
	IDSuffixLen         int     `json:"id_suffix_len"`
}

// DefaultWeights returns the production weight table.
func DefaultWeights() Weights {
	return Weights{
		Name:        35,
		Address:     20,
		City:        10,
		AddressSolo: 25,
		Geo:         20,
		GeoRadiusM:  50,
		NIK:         5,
		NPWP:        5,
		ReferenceID: 10,

		StrictThreshold:     70,
		PermissiveThreshold: 50,
		IDSuffixLen:         8,
	}
}

// Validate rejects weight tables that would break the score invariants:
// negative budgets, a non-positive geo radius or suffix length, or a
// permissive threshold above the strict one. The address/city split and
// the solo address budget are independent; the production table uses
// 20+10 against a solo 25.
func (w Weights) Validate() error {
	budgets := []struct {
		name  string
		value float64
	}{
		{"name", w.Name},
		{"address", w.Address},
		{"city", w.City},
		{"address_solo", w.AddressSolo},
		{"geo", w.Geo},
		{"nik", w.NIK},
		{"npwp", w.NPWP},
		{"reference_id", w.ReferenceID},
	}
	for _, b := range budgets {
		if b.value < 0 {
			return fmt.Errorf("weight %s must not be negative, got %g", b.name, b.value)
		}
	}
	if w.GeoRadiusM <= 0 {
		return fmt.Errorf("geo radius must be positive, got %g", w.GeoRadiusM)
	}
	if w.IDSuffixLen <= 0 {
		return fmt.Errorf("id suffix length must be positive, got %d", w.IDSuffixLen)
	}
	if w.PermissiveThreshold > w.StrictThreshold {
		return fmt.Errorf("permissive threshold (%g) must not exceed strict threshold (%g)",
			w.PermissiveThreshold, w.StrictThreshold)
	}
	return nil
}

// MaxScore returns the highest total a candidate can reach under this
// weight table: the larger of the two address branches plus every other
// budget. Under the production table that is 105, via the split branch.
func (w Weights) MaxScore() float64 {
	addr := w.AddressSolo
	if split := w.Address + w.City; split > addr {
		addr = split
	}
	return w.Name + addr + w.Geo + w.NIK + w.NPWP + w.ReferenceID
}
