package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lumidex/internal/parser"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS dex_records (
	id          TEXT PRIMARY KEY,
	dex_num     INTEGER NOT NULL,
	species     TEXT NOT NULL,
	species_key TEXT NOT NULL UNIQUE,
	doc         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS dex_moves (
	species_key TEXT NOT NULL REFERENCES dex_records(species_key) ON DELETE CASCADE,
	move_key    TEXT NOT NULL,
	move        TEXT NOT NULL,
	method      TEXT NOT NULL,
	level       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS dex_moves_move_key_idx ON dex_moves(move_key);
`

// SQLiteStore keeps records in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("Opened sqlite store")
	return s, nil
}

// EnsureSchema creates the record and move tables if missing.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create sqlite schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindBySpecies(ctx context.Context, species string) (*parser.Record, error) {
	query, args, err := findBySpeciesQuery(s.sb, species).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build species query: %w", err)
	}

	var doc []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
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

func (s *SQLiteStore) Insert(ctx context.Context, rec parser.Record) error {
	row, err := newRecordRow(rec)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	_, err = s.sb.Insert(recordsTable).
		Columns("id", "dex_num", "species", "species_key", "doc").
		Values(row.ID, row.DexNum, row.Species, row.SpeciesKey, string(row.Doc)).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert record %s: %w", rec.Species, err)
	}

	if moves := moveRows(rec); len(moves) > 0 {
		_, err = insertMovesQuery(s.sb, row.SpeciesKey, moves).RunWith(tx).ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert moves for %s: %w", rec.Species, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record %s: %w", rec.Species, err)
	}
	return nil
}

func (s *SQLiteStore) FindByMove(ctx context.Context, move string) ([]parser.Record, error) {
	query, args, err := findByMoveQuery(s.sb, move).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build move query: %w", err)
	}
	return s.queryDocs(ctx, query, args...)
}

func (s *SQLiteStore) All(ctx context.Context) ([]parser.Record, error) {
	query, args, err := selectDocs(s.sb).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	return s.queryDocs(ctx, query, args...)
}

func (s *SQLiteStore) queryDocs(ctx context.Context, query string, args ...any) ([]parser.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
