package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"terminal_plus/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valJSON(v any) any {
	b, err := json.Marshal(v)
	if err != nil || len(b) == 0 {
		return "[]"
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ReplaceCanonical swaps the airport's whole canonical set in one
// transaction: readers see either the previous run or this one, never a
// half-written mix.
func (r *Repo) ReplaceCanonical(ctx context.Context, airportCode string, amenities []domain.Amenity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteCanonicalSQL, airportCode); err != nil {
		return err
	}

	if len(amenities) > 0 {
		values := make([]string, 0, len(amenities))
		args := make([]any, 0, len(amenities)*14) // 14 params per row
		for _, a := range amenities {
			values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
			var lat, lng any
			if a.Coordinates != nil {
				lat, lng = a.Coordinates.Lat, a.Coordinates.Lng
			}
			args = append(args,
				a.Slug,
				a.TerminalCode,
				a.AirportCode,
				a.Name,
				valStr(a.Category),
				valStr(a.AmenityType),
				valStr(a.PriceTier),
				valJSON(a.VibeTags),
				a.Status,
				a.AvailableInTransit,
				lat,
				lng,
				valStr(a.Source),
				valJSON(a.Tags),
			)
		}
		sqlStr := insertAmenitiesPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LogSkips appends one diagnostics row per skipped record. Raw payloads
// that fail to marshal are stored as null rather than failing the run.
func (r *Repo) LogSkips(ctx context.Context, runID string, skips []domain.SkippedRecord) error {
	if len(skips) == 0 {
		return nil
	}
	values := make([]string, 0, len(skips))
	args := make([]any, 0, len(skips)*4)
	for _, s := range skips {
		values = append(values, "(?,?,?,?)")
		var raw any
		if b, err := json.Marshal(s.Raw); err == nil && string(b) != "null" {
			raw = string(b)
		}
		args = append(args, runID, s.Reason, valStr(s.Source), raw)
	}
	sqlStr := insertSkipsPrefix + strings.Join(values, ",")
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) ListCanonical(ctx context.Context, airportCode string) ([]domain.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, listCanonicalSQL, airportCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Amenity
	for rows.Next() {
		a, err := scanAmenity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetAmenity(ctx context.Context, slug, terminalCode string) (domain.Amenity, error) {
	row := r.db.QueryRowContext(ctx, getAmenitySQL, slug, terminalCode)
	a, err := scanAmenity(row)
	if err == sql.ErrNoRows {
		return domain.Amenity{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Amenity{}, err
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAmenity(row rowScanner) (domain.Amenity, error) {
	var a domain.Amenity
	var category, amenityType, priceTier, source sql.NullString
	var vibeTagsJSON, tagsJSON []byte
	var lat, lng sql.NullFloat64

	if err := row.Scan(
		&a.Slug,
		&a.TerminalCode,
		&a.AirportCode,
		&a.Name,
		&category,
		&amenityType,
		&priceTier,
		&vibeTagsJSON,
		&a.Status,
		&a.AvailableInTransit,
		&lat,
		&lng,
		&source,
		&tagsJSON,
	); err != nil {
		return domain.Amenity{}, err
	}

	a.Category = category.String
	a.AmenityType = amenityType.String
	a.PriceTier = priceTier.String
	a.Source = source.String
	if lat.Valid && lng.Valid {
		a.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}

	a.VibeTags = []string{}
	_ = json.Unmarshal(vibeTagsJSON, &a.VibeTags)
	a.Tags = []string{}
	_ = json.Unmarshal(tagsJSON, &a.Tags)
	return a, nil
}
