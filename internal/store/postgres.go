package store

import (
	"context"
	"errors"
	"fmt"

	"lumidex/internal/parser"
	"lumidex/internal/textutil"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
)

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var postgresSchema = []string{
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`CREATE TABLE IF NOT EXISTS dex_records (
		id          UUID PRIMARY KEY,
		dex_num     INTEGER NOT NULL,
		species     TEXT NOT NULL,
		species_key TEXT NOT NULL UNIQUE,
		doc         JSONB NOT NULL,
		stats       vector(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dex_moves (
		species_key TEXT NOT NULL REFERENCES dex_records(species_key) ON DELETE CASCADE,
		move_key    TEXT NOT NULL,
		move        TEXT NOT NULL,
		method      TEXT NOT NULL,
		level       INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS dex_moves_move_key_idx ON dex_moves(move_key)`,
}

// PostgresStore keeps records in PostgreSQL with a pgvector column of
// current base stats for similarity search.
type PostgresStore struct {
	q  Querier
	sb squirrel.StatementBuilderType
}

// NewPostgresStore wraps an existing pool or mock.
func NewPostgresStore(q Querier) *PostgresStore {
	return &PostgresStore{
		q:  q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// OpenPostgres connects to databaseURL and ensures the schema exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	s := NewPostgresStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Msg("Connected to PostgreSQL")
	return s, nil
}

// EnsureSchema creates the vector extension and tables if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create postgres schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) FindBySpecies(ctx context.Context, species string) (*parser.Record, error) {
	query, args, err := findBySpeciesQuery(s.sb, species).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build species query: %w", err)
	}

	var doc []byte
	err = s.q.QueryRow(ctx, query, args...).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find species %s: %w", species, err)
	}

	rec, err := decodeRecord(doc)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec parser.Record) error {
	row, err := newRecordRow(rec)
	if err != nil {
		return err
	}

	recordSQL, recordArgs, err := s.sb.Insert(recordsTable).
		Columns("id", "dex_num", "species", "species_key", "doc", "stats").
		Values(row.ID, row.DexNum, row.Species, row.SpeciesKey, row.Doc, pgvector.NewVector(statVector(rec))).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	tx, err := s.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, recordSQL, recordArgs...); err != nil {
		return fmt.Errorf("insert record %s: %w", rec.Species, err)
	}

	if moves := moveRows(rec); len(moves) > 0 {
		movesSQL, movesArgs, err := insertMovesQuery(s.sb, row.SpeciesKey, moves).ToSql()
		if err != nil {
			return fmt.Errorf("build move insert: %w", err)
		}
		if _, err := tx.Exec(ctx, movesSQL, movesArgs...); err != nil {
			return fmt.Errorf("insert moves for %s: %w", rec.Species, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit record %s: %w", rec.Species, err)
	}
	return nil
}

func (s *PostgresStore) FindByMove(ctx context.Context, move string) ([]parser.Record, error) {
	query, args, err := findByMoveQuery(s.sb, move).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build move query: %w", err)
	}
	return s.queryDocs(ctx, query, args...)
}

func (s *PostgresStore) All(ctx context.Context) ([]parser.Record, error) {
	query, args, err := selectDocs(s.sb).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return s.queryDocs(ctx, query, args...)
}

// SimilarStats returns up to k other records whose current base stats are
// closest to rec's by L2 distance.
func (s *PostgresStore) SimilarStats(ctx context.Context, rec parser.Record, k int) ([]parser.Record, error) {
	if k <= 0 {
		return []parser.Record{}, nil
	}

	query, args, err := s.sb.Select("doc").From(recordsTable).
		Where(squirrel.NotEq{"species_key": textutil.FoldKey(rec.Species)}).
		OrderByClause("stats <-> ?", pgvector.NewVector(statVector(rec))).
		Limit(uint64(k)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build similarity query: %w", err)
	}
	return s.queryDocs(ctx, query, args...)
}

func (s *PostgresStore) queryDocs(ctx context.Context, query string, args ...any) ([]parser.Record, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []parser.Record{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := decodeRecord(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying pool when the store owns one.
func (s *PostgresStore) Close() error {
	if c, ok := s.q.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

func statVector(rec parser.Record) []float32 {
	current := rec.Stats.Current()
	v := make([]float32, len(current))
	for i, n := range current {
		v[i] = float32(n)
	}
	return v
}
