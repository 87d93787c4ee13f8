package domain

// SourceKind tags the shape of one upstream feed.
type SourceKind string

const (
	SourceKindTerminalJSON SourceKind = "terminal-json"
	SourceKindCSV          SourceKind = "csv"
	SourceKindBrand        SourceKind = "brand"
)

// SourceRef names one feed to ingest. The position of a ref in the
// manifest is its trust precedence: earlier sources win dedup collisions
// (curated per-terminal exports before bulk CSV dumps before brand
// feeds).
type SourceRef struct {
	Kind SourceKind `json:"kind"`
	Name string     `json:"name"` // terminal name, CSV export name, or brand feed name
}
