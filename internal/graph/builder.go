package graph

import (
	"context"
	"fmt"

	"lumidex/internal/parser"
	"lumidex/internal/textutil"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Builder writes dex records into the Neo4j learnset graph.
type Builder struct {
	driver neo4j.DriverWithContext
}

// NewBuilder creates a new graph builder.
func NewBuilder(driver neo4j.DriverWithContext) *Builder {
	return &Builder{driver: driver}
}

// EnsureSchema creates constraints on the Neo4j database.
func (b *Builder) EnsureSchema(ctx context.Context) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:Species) REQUIRE s.key IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (m:Move) REQUIRE m.key IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Ability) REQUIRE a.key IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Type) REQUIRE t.name IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (l:Location) REQUIRE l.name IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

const (
	upsertSpeciesCypher = `
		MERGE (s:Species {key: $key})
		SET s.name = $name,
		    s.dex_num = $dex_num,
		    s.bst = $bst`

	linkTypesCypher = `
		MATCH (s:Species {key: $key})
		UNWIND $types AS name
		MERGE (t:Type {name: name})
		MERGE (s)-[:HAS_TYPE]->(t)`

	linkAbilitiesCypher = `
		MATCH (s:Species {key: $key})
		UNWIND $abilities AS a
		MERGE (ab:Ability {key: a.key})
		SET ab.name = a.name
		MERGE (s)-[:HAS_ABILITY]->(ab)`

	linkLocationsCypher = `
		MATCH (s:Species {key: $key})
		UNWIND $locations AS name
		MERGE (l:Location {name: name})
		MERGE (s)-[:FOUND_AT]->(l)`

	linkMovesCypher = `
		MATCH (s:Species {key: $key})
		UNWIND $moves AS m
		MERGE (mv:Move {key: m.key})
		SET mv.name = m.name
		MERGE (s)-[:LEARNS {method: m.method, level: m.level}]->(mv)`
)

// UpsertRecord creates or updates the Species node for rec and links it to
// its types, abilities, locations and moves. Link failures are logged and
// do not fail the upsert.
func (b *Builder) UpsertRecord(ctx context.Context, rec parser.Record) error {
	session := b.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	params := recordParams(rec)
	if _, err := session.Run(ctx, upsertSpeciesCypher, params); err != nil {
		return fmt.Errorf("upsert species %s: %w", rec.Species, err)
	}

	links := []struct {
		rel, cypher string
	}{
		{"HAS_TYPE", linkTypesCypher},
		{"HAS_ABILITY", linkAbilitiesCypher},
		{"FOUND_AT", linkLocationsCypher},
		{"LEARNS", linkMovesCypher},
	}
	for _, l := range links {
		if _, err := session.Run(ctx, l.cypher, params); err != nil {
			log.Warn().Err(err).
				Str("species", rec.Species).
				Str("rel", l.rel).
				Msg("Failed to create relationship")
		}
	}

	log.Debug().Str("species", rec.Species).Msg("Upserted species node")
	return nil
}

// recordParams builds the Cypher parameters shared by every upsert statement.
func recordParams(rec parser.Record) map[string]any {
	typing := rec.Type
	if rec.NewType != nil {
		typing = *rec.NewType
	}
	types := []any{typing.Primary}
	if typing.Secondary != "" {
		types = append(types, typing.Secondary)
	}

	abilities := make([]any, 0, len(rec.Abilities))
	for _, a := range rec.Abilities {
		abilities = append(abilities, map[string]any{
			"key":  textutil.FoldKey(a),
			"name": a,
		})
	}

	locations := make([]any, 0, len(rec.Locations))
	for _, l := range rec.Locations {
		locations = append(locations, l)
	}

	learnset := rec.Learnset()
	moves := make([]any, 0, len(learnset))
	for _, l := range learnset {
		moves = append(moves, map[string]any{
			"key":    textutil.FoldKey(l.Move),
			"name":   l.Move,
			"method": l.Method,
			"level":  int64(l.Num),
		})
	}

	return map[string]any{
		"key":       textutil.FoldKey(rec.Species),
		"name":      rec.Species,
		"dex_num":   int64(rec.DexNum),
		"bst":       int64(parser.Total(rec.Stats.Current())),
		"types":     types,
		"abilities": abilities,
		"locations": locations,
		"moves":     moves,
	}
}
