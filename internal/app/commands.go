package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"terminal_plus/internal/catalog"
	"terminal_plus/internal/domain"
)

// IngestionService runs the canonicalization pipeline: fetch each source
// feed, adapt it to the canonical shape, merge all batches in manifest
// order, and replace the stored canonical set. The merge is a batch,
// re-run-from-scratch operation, never an incremental upsert.
type IngestionService struct {
	exports domain.ExportClient
	repo    domain.CatalogRepository
	cache   domain.Cache
}

func NewIngestionService(e domain.ExportClient, r domain.CatalogRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{exports: e, repo: r, cache: cache}
}

// FetchBatch pulls and adapts one source feed. A feed that is missing or
// inaccessible upstream (404/401/403) yields an empty batch and a log
// line, not an error — one dead feed must not abort the run. Anything
// else (network, 5xx, decode) bubbles up.
func (s *IngestionService) FetchBatch(ctx context.Context, airportCode string, src domain.SourceRef) ([]domain.Amenity, []domain.SkippedRecord, error) {
	switch src.Kind {
	case domain.SourceKindTerminalJSON:
		raw, err := s.exports.GetTerminalExport(ctx, src.Name)
		if err != nil {
			return nil, nil, s.classifyFetchErr(src, err)
		}
		batch, skipped := catalog.AdaptTerminalJSON(raw, airportCode)
		return batch, skipped, nil

	case domain.SourceKindCSV:
		rows, err := s.exports.GetBulkCSV(ctx, src.Name)
		if err != nil {
			return nil, nil, s.classifyFetchErr(src, err)
		}
		batch, skipped := catalog.AdaptCSVRows(rows, airportCode)
		return batch, skipped, nil

	case domain.SourceKindBrand:
		brands, err := s.exports.GetBrandDefinitions(ctx, src.Name)
		if err != nil {
			return nil, nil, s.classifyFetchErr(src, err)
		}
		batch, skipped := catalog.ExpandBrands(brands, airportCode)
		return batch, skipped, nil

	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", src.Kind)
	}
}

// classifyFetchErr turns a known "feed unavailable" error into a clean
// empty batch; everything else is surfaced.
func (s *IngestionService) classifyFetchErr(src domain.SourceRef, err error) error {
	low := strings.ToLower(err.Error())
	if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") ||
		strings.Contains(low, "401") || strings.Contains(low, "unauthorized") ||
		strings.Contains(low, "403") || strings.Contains(low, "forbidden") {
		log.Warn().Str("source", src.Name).Str("kind", string(src.Kind)).Err(err).Msg("source feed unavailable, skipping")
		return nil
	}
	return fmt.Errorf("fetch %s/%s: %w", src.Kind, src.Name, err)
}

// Run executes one full ingestion: fetch every manifest source
// concurrently (bounded by workers), then merge and store in manifest
// order. A feed the upstream reports missing yields an empty batch, but
// any other source failure aborts the run before the store is touched:
// replacing the canonical set from a partial fetch would silently erase
// the failed feed's terminal until the next successful run.
func (s *IngestionService) Run(ctx context.Context, airportCode, runID string, manifest []domain.SourceRef, workers int) (domain.MergeResult, error) {
	if workers < 1 {
		workers = 1
	}

	// Results land at their manifest position: the merge is
	// order-sensitive and earlier sources must win collisions.
	batches := make([][]domain.Amenity, len(manifest))
	skips := make([][]domain.SkippedRecord, len(manifest))
	errs := make([]error, len(manifest))

	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	for i, src := range manifest {
		i, src := i, src

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return domain.MergeResult{}, err
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			batch, skipped, err := s.FetchBatch(ctx, airportCode, src)
			if err != nil {
				errs[i] = err
				return
			}
			batches[i] = batch
			skips[i] = skipped
			log.Info().Str("source", src.Name).Int("records", len(batch)).Int("skipped", len(skipped)).Msg("fetch ok")
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return domain.MergeResult{}, fmt.Errorf("run %s aborted, source %s failed: %w", runID, manifest[i].Name, err)
		}
	}

	var adaptSkips []domain.SkippedRecord
	for _, sk := range skips {
		adaptSkips = append(adaptSkips, sk...)
	}
	return s.MergeAndStore(ctx, airportCode, runID, batches, adaptSkips)
}

// MergeAndStore canonicalizes the ordered batches, replaces the stored
// set for the airport, persists the skip log, and evicts the caches the
// run invalidated. Batches must already be in manifest precedence order.
func (s *IngestionService) MergeAndStore(ctx context.Context, airportCode, runID string, batches [][]domain.Amenity, adaptSkips []domain.SkippedRecord) (domain.MergeResult, error) {
	res := catalog.Merge(batches)
	res.Skipped = append(adaptSkips, res.Skipped...)

	if err := s.repo.ReplaceCanonical(ctx, airportCode, res.Canonical); err != nil {
		return domain.MergeResult{}, fmt.Errorf("replace canonical set for %s: %w", airportCode, err)
	}
	if len(res.Skipped) > 0 {
		// Best effort: the skip log is diagnostics, not data integrity.
		if err := s.repo.LogSkips(ctx, runID, res.Skipped); err != nil {
			log.Error().Err(err).Str("run", runID).Msg("persist skip log failed")
		}
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, canonicalKey(airportCode))
	}

	log.Info().
		Str("airport", airportCode).
		Int("canonical", len(res.Canonical)).
		Int("skipped", len(res.Skipped)).
		Msg("merge run completed")
	return res, nil
}

func canonicalKey(airportCode string) string {
	return fmt.Sprintf("canonical:%s", strings.ToLower(airportCode))
}
