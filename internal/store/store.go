package store

import (
	"context"
	"encoding/json"
	"fmt"

	"lumidex/internal/parser"
	"lumidex/internal/textutil"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Store persists parsed dex records.
type Store interface {
	// FindBySpecies looks a record up by case-insensitive species name. It
	// returns nil without error when no record matches.
	FindBySpecies(ctx context.Context, species string) (*parser.Record, error)
	// Insert stores a new record and its move index.
	Insert(ctx context.Context, rec parser.Record) error
	// FindByMove returns records that learn the move by level, TM or egg,
	// ordered by dex number.
	FindByMove(ctx context.Context, move string) ([]parser.Record, error)
	// All returns every record ordered by dex number.
	All(ctx context.Context) ([]parser.Record, error)
	Close() error
}

// SimilarityFinder is implemented by stores that can rank records by how
// close their stats are.
type SimilarityFinder interface {
	SimilarStats(ctx context.Context, rec parser.Record, k int) ([]parser.Record, error)
}

const (
	recordsTable = "dex_records"
	movesTable   = "dex_moves"
)

type recordRow struct {
	ID         string
	DexNum     uint32
	Species    string
	SpeciesKey string
	Doc        []byte
}

type moveRow struct {
	MoveKey string
	Move    string
	Method  string
	Level   int
}

func newRecordRow(rec parser.Record) (recordRow, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return recordRow{}, fmt.Errorf("encode record %s: %w", rec.Species, err)
	}
	return recordRow{
		ID:         uuid.NewString(),
		DexNum:     rec.DexNum,
		Species:    rec.Species,
		SpeciesKey: textutil.FoldKey(rec.Species),
		Doc:        doc,
	}, nil
}

func decodeRecord(doc []byte) (parser.Record, error) {
	var rec parser.Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return parser.Record{}, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func moveRows(rec parser.Record) []moveRow {
	learnset := rec.Learnset()
	rows := make([]moveRow, 0, len(learnset))
	for _, l := range learnset {
		rows = append(rows, moveRow{MoveKey: textutil.FoldKey(l.Move), Move: l.Move, Method: l.Method, Level: l.Num})
	}
	return rows
}

// Query builders shared by both stores; only the placeholder format differs.

func selectDocs(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select("doc").From(recordsTable).OrderBy("dex_num", "species")
}

func findBySpeciesQuery(sb squirrel.StatementBuilderType, species string) squirrel.SelectBuilder {
	return sb.Select("doc").From(recordsTable).
		Where(squirrel.Eq{"species_key": textutil.FoldKey(species)}).
		Limit(1)
}

func findByMoveQuery(sb squirrel.StatementBuilderType, move string) squirrel.SelectBuilder {
	return selectDocs(sb).
		Where(squirrel.Expr("species_key IN (SELECT species_key FROM "+movesTable+" WHERE move_key = ?)", textutil.FoldKey(move)))
}

func insertMovesQuery(sb squirrel.StatementBuilderType, speciesKey string, rows []moveRow) squirrel.InsertBuilder {
	q := sb.Insert(movesTable).Columns("species_key", "move_key", "move", "method", "level")
	for _, r := range rows {
		q = q.Values(speciesKey, r.MoveKey, r.Move, r.Method, r.Level)
	}
	return q
}
