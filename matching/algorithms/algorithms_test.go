package algorithms

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"identical", "toko abadi jaya", "toko abadi jaya", 100},
		{"both empty", "", "", 100},
		{"left empty", "", "toko", 0},
		{"right empty", "toko", "", 0},
		{"single edit", "abcd", "abce", 75},
		{"disjoint", "abc", "xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.expected {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestRatio_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"toko abadi", "abadi toko jaya"},
		{"jl mawar 5", "mawar 5"},
		{"a", "aaaaaaaaaaaaaaaa"},
	}
	for _, p := range pairs {
		got := Ratio(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Ratio(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"reordered tokens", "toko abadi jaya", "jaya abadi toko", 100},
		{"duplicate tokens", "toko toko abadi", "toko abadi", 100},
		{"identical", "warung makmur", "warung makmur", 100},
		{"both empty", "", "", 100},
		{"one empty", "", "toko", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSetRatio(tt.a, tt.b); got != tt.expected {
				t.Errorf("TokenSetRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestTokenSetRatio_ExtraTokens(t *testing.T) {
	// One side carrying extra tokens should still score high: the shared
	// token base matches one of the recombined strings closely.
	got := TokenSetRatio("toko abadi jaya", "toko abadi jaya cabang kedua")
	if got < 90 {
		t.Errorf("TokenSetRatio with extra tokens = %d, want >= 90", got)
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"exact substring", "toko abadi", "toko abadi jaya cabang 2", 100},
		{"substring either side", "toko abadi jaya cabang 2", "toko abadi", 100},
		{"identical", "warung", "warung", 100},
		{"both empty", "", "", 100},
		{"one empty", "warung", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartialRatio(tt.a, tt.b); got != tt.expected {
				t.Errorf("PartialRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestBestRatio_BlankSidesScoreZero(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"both blank", "", ""},
		{"whitespace only", "   ", "   "},
		{"left blank", "", "toko abadi"},
		{"right blank", "toko abadi", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestRatio(tt.a, tt.b); got != 0 {
				t.Errorf("BestRatio(%q, %q) = %d, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestBestRatio_Identity(t *testing.T) {
	inputs := []string{"toko abadi jaya", "a", "mawar 5 jakarta selatan"}
	for _, s := range inputs {
		if got := BestRatio(s, s); got != 100 {
			t.Errorf("BestRatio(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestBestRatio_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"toko abadi jaya", "abadi jaya"},
		{"warung sejahtera", "warung makmur sejahtera"},
		{"mawar 5", "melati 7"},
		{"toko abadi", ""},
	}
	for _, p := range pairs {
		ab := BestRatio(p[0], p[1])
		ba := BestRatio(p[1], p[0])
		if ab != ba {
			t.Errorf("BestRatio not symmetric for (%q, %q): %d vs %d", p[0], p[1], ab, ba)
		}
	}
}

func TestBestRatio_TakesMaximum(t *testing.T) {
	a, b := "toko abadi", "abadi toko jaya cabang"
	best := BestRatio(a, b)
	for _, score := range []int{Ratio(a, b), TokenSetRatio(a, b), PartialRatio(a, b)} {
		if best < score {
			t.Errorf("BestRatio(%q, %q) = %d, below component score %d", a, b, best, score)
		}
	}
}

func TestHaversineMeters_ZeroDistance(t *testing.T) {
	if d := HaversineMeters(-6.2, 106.8, -6.2, 106.8); d != 0 {
		t.Errorf("HaversineMeters for identical points = %f, want 0", d)
	}
}

func TestHaversineMeters_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude is ~111.19 km on the mean-radius sphere.
	d := HaversineMeters(0, 0, 1, 0)
	expected := math.Pi * earthRadiusMeters / 180
	if math.Abs(d-expected) > 1 {
		t.Errorf("HaversineMeters(0,0,1,0) = %f, want %f", d, expected)
	}
}

func TestHaversineMeters_Symmetry(t *testing.T) {
	d1 := HaversineMeters(-6.1754, 106.8272, -6.9147, 107.6098)
	d2 := HaversineMeters(-6.9147, 107.6098, -6.1754, 106.8272)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("HaversineMeters not symmetric: %f vs %f", d1, d2)
	}
}
