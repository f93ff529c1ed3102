package matching

// QueryRecord is a newly submitted store being checked for duplicates.
// Latitude and Longitude are kept as entered; unparseable coordinates
// degrade the geographic signal instead of failing the match run.
type QueryRecord struct {
	StoreName   string `json:"store_name"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
	ReferenceID string `json:"reference_id"`
	NIK         string `json:"nik"`
	NPWP        string `json:"npwp"`
}

// MasterStore is an existing store from the master list. The three
// reference-ID fields come from different source systems.
type MasterStore struct {
	CustID    string `json:"cust_id"`
	StoreName string `json:"store_name"`
	Region    string `json:"region"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	NIK       string `json:"nik"`
	NPWP      string `json:"npwp"`
	RefIDSKT  string `json:"reference_id_skt"`
	RefIDG2G  string `json:"reference_id_g2g"`
	RefIDTPH  string `json:"reference_id_tph"`
}

// SignalScore is one per-signal contribution to a total match score.
type SignalScore struct {
	Signal string  `json:"signal"`
	Raw    float64 `json:"raw"`
	Points float64 `json:"points"`
	Budget float64 `json:"budget"`
	Note   string  `json:"note,omitempty"`
}

// MatchResult is one candidate that cleared the inclusion threshold,
// with the full rationale for human audit. Created transiently per match
// run; the caller owns serialization.
type MatchResult struct {
	Store        MasterStore   `json:"store"`
	Score        float64       `json:"score"`
	Signals      []SignalScore `json:"signals"`
	Rationale    []string      `json:"rationale"`
	QueryName    string        `json:"input_store_name"`
	QueryAddress string        `json:"input_address"`
}
