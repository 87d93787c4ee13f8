package domain

import "context"

type CatalogRepository interface {
	// Write paths
	ReplaceCanonical(ctx context.Context, airportCode string, amenities []Amenity) error
	LogSkips(ctx context.Context, runID string, skips []SkippedRecord) error

	// Read paths
	ListCanonical(ctx context.Context, airportCode string) ([]Amenity, error)
	GetAmenity(ctx context.Context, slug, terminalCode string) (Amenity, error)
}

// ExportClient fetches the raw source feeds. Records arrive already
// parsed; the catalog core never sees wire formats.
type ExportClient interface {
	GetTerminalExport(ctx context.Context, terminal string) ([]map[string]any, error)
	GetBulkCSV(ctx context.Context, name string) ([]map[string]string, error)
	GetBrandDefinitions(ctx context.Context, feed string) ([]BrandDefinition, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
