//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "terminal_plus/internal/adapters/http_server"
	redisad "terminal_plus/internal/adapters/redis"
	"terminal_plus/internal/app"
	"terminal_plus/internal/catalog"
	"terminal_plus/internal/domain"
	"terminal_plus/internal/shared"
	mysqlrepo "terminal_plus/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func seed(name, terminal string, vibes ...string) domain.Amenity {
	slug, _ := catalog.NormalizeSlug(name, terminal)
	return domain.Amenity{
		Slug:         slug,
		Name:         name,
		TerminalCode: terminal,
		AirportCode:  "SIN",
		Category:     "Dining",
		Status:       domain.StatusActive,
		VibeTags:     vibes,
		Source:       "terminal-json",
		Tags:         []string{},
	}
}

// ---------- the test ----------

func TestHTTP_EndToEnd_CollectionView(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=terminalplus",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "terminalplus")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// Apply the real migrations
	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	// Seed through the real ingestion path: batch merge, not upserts.
	// The second batch duplicates one record; the merge must drop it.
	ing := app.NewIngestionService(nil, repo, cache)
	kopitiam := seed("Killiney Kopitiam", "SIN-T3", "Coffee", "Refuel")
	batches := [][]domain.Amenity{
		{kopitiam, seed("Ya Kun Kaya Toast", "SIN-T2", "Chill")},
		{kopitiam},
	}
	if _, err := ing.MergeAndStore(ctx, "SIN", "e2e-run", batches, nil); err != nil {
		t.Fatalf("MergeAndStore: %v", err)
	}

	// Spin up the real router with the real query service
	q := app.NewQueryService(repo, cache, 60, shared.Collections)
	srv := server.New()
	srv.MountHandlers(&server.Handlers{Q: q, DefaultAirport: "SIN"})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Hit the collection endpoint
	res, err := http.Get(fmt.Sprintf("%s/v1/collections/hawker-heaven?airport=SIN&terminal=SIN-T3&hour=7", ts.URL))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag header")
	}

	var view domain.CollectionView
	if err := json.NewDecoder(res.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !view.Applicable || view.ID != "hawker-heaven" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.TotalCount != 2 || view.InTerminalCount != 1 {
		t.Fatalf("counts: total=%d inTerminal=%d", view.TotalCount, view.InTerminalCount)
	}
	// 7am ranking puts the kopitiam ahead of the toast shop only if both
	// match; either way the members list carries both records.
	if len(view.Members) != 2 {
		t.Fatalf("members: %+v", view.Members)
	}

	// Conditional revalidation round-trips the ETag
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v1/collections/hawker-heaven?airport=SIN&terminal=SIN-T3&hour=7", ts.URL), nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET(304): %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}

	// Unknown collection id is a typed 404
	res3, err := http.Get(fmt.Sprintf("%s/v1/collections/nope", ts.URL))
	if err != nil {
		t.Fatalf("GET(404): %v", err)
	}
	defer res3.Body.Close()
	if res3.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res3.StatusCode)
	}
}
