package mysql

const deleteCanonicalSQL = `
DELETE FROM amenities WHERE airport_code = ?
`

// Note: the canonical set is replaced wholesale per run, so plain INSERT
// is enough — the preceding DELETE guarantees no key collisions.
const insertAmenitiesPrefix = "INSERT INTO amenities\n  (slug, terminal_code, airport_code, name, category, amenity_type, price_tier, vibe_tags, status, available_in_transit, lat, lng, source, tags)\nVALUES "

const insertSkipsPrefix = "INSERT INTO ingest_skips\n  (run_id, reason, source, raw)\nVALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listCanonicalSQL = `
SELECT
  slug,
  terminal_code,
  airport_code,
  name,
  category,
  amenity_type,
  price_tier,
  vibe_tags,
  status,
  available_in_transit,
  lat,
  lng,
  source,
  tags
FROM amenities
WHERE airport_code = ?
ORDER BY terminal_code, name
`

const getAmenitySQL = `
SELECT
  slug,
  terminal_code,
  airport_code,
  name,
  category,
  amenity_type,
  price_tier,
  vibe_tags,
  status,
  available_in_transit,
  lat,
  lng,
  source,
  tags
FROM amenities
WHERE slug = ? AND terminal_code = ?
`
