// Package catalog keeps a SQLite history of stability evaluations.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/submoonsim/internal/catalog/migrations"
	"github.com/san-kum/submoonsim/internal/physics"
	"github.com/san-kum/submoonsim/internal/stability"
	"github.com/san-kum/submoonsim/internal/storage"
	_ "modernc.org/sqlite"
)

const DefaultLimit = 20

// Evaluation is one recorded stability verdict.
type Evaluation struct {
	ID          int64
	Preset      string
	Fingerprint string
	Params      physics.Params
	Score       int
	Tier        stability.Tier
	Lifetime    stability.Lifetime
	Tidal       stability.Tidal
	Critical    []string
	RecordedAt  time.Time
}

type Catalog struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the history database at path, creating the schema if needed.
func Open(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Catalog{sqlDB: sqlDB, now: time.Now}, nil
}

func (c *Catalog) Close() error {
	if c == nil || c.sqlDB == nil {
		return nil
	}
	return c.sqlDB.Close()
}

// Record appends an evaluation and returns its row id.
func (c *Catalog) Record(ctx context.Context, preset string, p physics.Params, stats stability.Stats) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c == nil || c.sqlDB == nil {
		return 0, fmt.Errorf("catalog is not open")
	}

	params, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("encode params: %w", err)
	}
	critical := stats.CriticalParameters
	if critical == nil {
		critical = []string{}
	}
	criticalJSON, err := json.Marshal(critical)
	if err != nil {
		return 0, fmt.Errorf("encode critical parameters: %w", err)
	}

	res, err := c.sqlDB.ExecContext(
		ctx,
		`INSERT INTO evaluations (
		   preset,
		   fingerprint,
		   params,
		   score,
		   tier,
		   lifetime,
		   tidal,
		   critical,
		   recorded_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		preset,
		storage.Fingerprint(p),
		string(params),
		stats.Score,
		stats.Tier.String(),
		stats.Lifetime.String(),
		stats.Tidal.String(),
		string(criticalJSON),
		toMillis(c.now()),
	)
	if err != nil {
		return 0, fmt.Errorf("insert evaluation: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit evaluations, newest first.
func (c *Catalog) Recent(ctx context.Context, limit int) ([]Evaluation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return c.query(ctx,
		`SELECT id, preset, fingerprint, params, score, tier, lifetime, tidal, critical, recorded_at
		   FROM evaluations
		  ORDER BY recorded_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
}

// ByFingerprint returns every evaluation of one parameter set, newest first.
func (c *Catalog) ByFingerprint(ctx context.Context, fingerprint string) ([]Evaluation, error) {
	return c.query(ctx,
		`SELECT id, preset, fingerprint, params, score, tier, lifetime, tidal, critical, recorded_at
		   FROM evaluations
		  WHERE fingerprint = ?
		  ORDER BY recorded_at DESC, id DESC`,
		fingerprint,
	)
}

func (c *Catalog) query(ctx context.Context, q string, args ...any) ([]Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil || c.sqlDB == nil {
		return nil, fmt.Errorf("catalog is not open")
	}

	rows, err := c.sqlDB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]Evaluation, 0)
	for rows.Next() {
		var (
			e                     Evaluation
			params, critical      string
			tier, lifetime, tidal string
			recordedAt            int64
		)
		if err := rows.Scan(&e.ID, &e.Preset, &e.Fingerprint, &params, &e.Score, &tier, &lifetime, &tidal, &critical, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &e.Params); err != nil {
			return nil, fmt.Errorf("decode params of evaluation %d: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(critical), &e.Critical); err != nil {
			return nil, fmt.Errorf("decode critical parameters of evaluation %d: %w", e.ID, err)
		}
		if err := e.Tier.UnmarshalText([]byte(tier)); err != nil {
			return nil, err
		}
		if err := e.Lifetime.UnmarshalText([]byte(lifetime)); err != nil {
			return nil, err
		}
		if err := e.Tidal.UnmarshalText([]byte(tidal)); err != nil {
			return nil, err
		}
		e.RecordedAt = fromMillis(recordedAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, nil
}

const migrationTable = "schema_migrations"

// applyMigrations runs each embedded .sql file once, in name order.
func applyMigrations(sqlDB *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := sqlDB.Exec(createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range sqlFiles {
		var applied int
		if err := sqlDB.QueryRow(
			fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE name = ?", migrationTable), file,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("exec migration %s: %w", file, err)
		}
		if _, err := sqlDB.Exec(
			fmt.Sprintf("INSERT INTO %s (name, applied_at) VALUES (?, ?)", migrationTable),
			file, toMillis(time.Now()),
		); err != nil {
			return fmt.Errorf("record migration %s: %w", file, err)
		}
	}
	return nil
}
