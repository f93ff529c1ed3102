package matching

import "testing"

func TestNormalize_StoreName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "TOKO ABADI JAYA", "toko abadi jaya"},
		{"trims", "  Toko Abadi  ", "toko abadi"},
		{"keeps punctuation", "Toko H&M", "toko h&m"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input, FieldStoreName); got != tt.expected {
				t.Errorf("Normalize(%q, FieldStoreName) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Address(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"street prefix with period", "Jl. Mawar No. 5", "mawar 5"},
		{"full street word", "Jalan Sudirman No.12", "sudirman 12"},
		{"bare abbreviations", "jl mawar no 5", "mawar 5"},
		{"jln variant", "Jln. Melati 7", "melati 7"},
		{"rt rw removed", "Mawar 5 RT 3 RW 7", "mawar 5 3 7"},
		{"rt rw only standalone", "kartini 9", "kartini 9"},
		{"punctuation stripped", "Mawar, Blok C-2", "mawar blok c 2"},
		{"whitespace collapsed", "mawar   5", "mawar 5"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input, FieldAddress); got != tt.expected {
				t.Errorf("Normalize(%q, FieldAddress) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_City(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jakarta Selatan!", "jakarta selatan"},
		{"  Bandung ", "bandung"},
		{"Kab. Bogor", "kab bogor"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input, FieldCity); got != tt.expected {
			t.Errorf("Normalize(%q, FieldCity) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalize_RegionSharesCityRule(t *testing.T) {
	inputs := []string{"Jawa Barat", "SUMATERA-UTARA", "  Bali  "}
	for _, in := range inputs {
		if city, region := Normalize(in, FieldCity), Normalize(in, FieldRegion); city != region {
			t.Errorf("Normalize(%q) differs between city (%q) and region (%q)", in, city, region)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Jl. Mawar No. 5, RT 3 RW 7, Jakarta",
		"TOKO ABADI JAYA",
		"Kab. Bogor",
		"jalan jalan no no",
		"",
	}
	kinds := []FieldKind{FieldStoreName, FieldAddress, FieldCity, FieldRegion}

	for _, in := range inputs {
		for _, kind := range kinds {
			once := Normalize(in, kind)
			twice := Normalize(once, kind)
			if once != twice {
				t.Errorf("Normalize(%q, %v) not idempotent: %q then %q", in, kind, once, twice)
			}
		}
	}
}

func TestNormalize_UnknownKind(t *testing.T) {
	if got := Normalize("anything", FieldKind(99)); got != "" {
		t.Errorf("Normalize with unknown kind = %q, want empty", got)
	}
}
