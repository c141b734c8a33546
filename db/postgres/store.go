// Package postgres loads a validated catalog into the plans_v2 table the
// search backend reads. The load is a full refresh: truncate plus insert in
// one transaction, so readers never observe a partial catalog.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"plan-catalog/pkg/catalog"
)

// Config holds connection settings.
type Config struct {
	// URL is a libpq connection string or postgres:// URL.
	URL string
}

// Store is a Postgres-backed catalog store.
type Store struct {
	db *sql.DB
}

// NewStore opens and pings the connection.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("postgres URL is required")
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const createTableDDL = `
CREATE TABLE IF NOT EXISTS plans_v2 (
	id            TEXT PRIMARY KEY,
	provider      TEXT NOT NULL,
	name          TEXT NOT NULL,
	name_en       TEXT NOT NULL,
	category      TEXT NOT NULL,
	country       TEXT NOT NULL,
	base_price    NUMERIC(14,2) NOT NULL,
	currency      TEXT NOT NULL,
	external_link TEXT NOT NULL,
	brochure_link TEXT,
	benefits      JSONB NOT NULL,
	benefits_en   JSONB NOT NULL,
	min_age       NUMERIC,
	max_age       NUMERIC,
	tags          JSONB NOT NULL DEFAULT '[]'
)`

const insertPlanSQL = `
INSERT INTO plans_v2 (
	id, provider, name, name_en, category, country,
	base_price, currency, external_link, brochure_link,
	benefits, benefits_en, min_age, max_age, tags
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

// EnsureSchema creates the plans_v2 table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableDDL); err != nil {
		return fmt.Errorf("create plans_v2 table: %w", err)
	}
	return nil
}

// Refresh replaces the table contents with the given plans atomically.
func (s *Store) Refresh(ctx context.Context, plans []catalog.Plan) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "TRUNCATE plans_v2"); err != nil {
		return fmt.Errorf("truncate plans_v2: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertPlanSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range plans {
		if err = insertPlan(ctx, stmt, &plans[i]); err != nil {
			return fmt.Errorf("insert plan %s: %w", plans[i].ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh: %w", err)
	}
	return nil
}

func insertPlan(ctx context.Context, stmt *sql.Stmt, p *catalog.Plan) error {
	benefits, err := json.Marshal(p.Benefits)
	if err != nil {
		return err
	}
	benefitsEN, err := json.Marshal(p.BenefitsEN)
	if err != nil {
		return err
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(ctx,
		p.ID,
		p.Provider,
		p.Name,
		p.NameEN,
		string(p.Category),
		string(p.Country),
		p.BasePrice,
		string(p.Currency),
		p.ExternalLink,
		nullString(p.BrochureLink),
		benefits,
		benefitsEN,
		nullFloat(p.MinAge),
		nullFloat(p.MaxAge),
		tagsJSON,
	)
	return err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
