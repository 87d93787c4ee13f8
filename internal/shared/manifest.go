package shared

import "terminal_plus/internal/domain"

// SourceManifest lists every feed one ingestion run pulls, in trust
// order: curated per-terminal exports first, then the bulk CSV dump,
// then brand feeds. Position decides who wins dedup collisions.
var SourceManifest = []domain.SourceRef{
	{Kind: domain.SourceKindTerminalJSON, Name: "SIN-T1"},
	{Kind: domain.SourceKindTerminalJSON, Name: "SIN-T2"},
	{Kind: domain.SourceKindTerminalJSON, Name: "SIN-T3"},
	{Kind: domain.SourceKindTerminalJSON, Name: "SIN-T4"},
	{Kind: domain.SourceKindCSV, Name: "master-dump"},
	{Kind: domain.SourceKindBrand, Name: "chains"},
}
