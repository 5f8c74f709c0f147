package graph

import (
	"context"
	"fmt"

	"lumidex/internal/textutil"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Learner is a species that learns a move, with how it learns it.
type Learner struct {
	Species string
	DexNum  int64
	Method  string
	Level   int64
}

// Querier reads the learnset graph.
type Querier struct {
	driver neo4j.DriverWithContext
}

// NewQuerier creates a new graph querier.
func NewQuerier(driver neo4j.DriverWithContext) *Querier {
	return &Querier{driver: driver}
}

// LearnersOf lists every species that learns move, one row per learn method,
// ordered by dex number.
func (q *Querier) LearnersOf(ctx context.Context, move string) ([]Learner, error) {
	session := q.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Species)-[l:LEARNS]->(m:Move {key: $key})
		RETURN s.name AS species, s.dex_num AS dex_num, l.method AS method, l.level AS level
		ORDER BY s.dex_num, s.name, l.method, l.level
	`, map[string]any{"key": textutil.FoldKey(move)})
	if err != nil {
		return nil, fmt.Errorf("query learners of %s: %w", move, err)
	}

	learners := []Learner{}
	for result.Next(ctx) {
		learners = append(learners, learnerFrom(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read learners of %s: %w", move, err)
	}

	log.Debug().Str("move", move).Int("learners", len(learners)).Msg("Graph query complete")
	return learners, nil
}

// SpeciesWithAbility lists species names that can have ability.
func (q *Querier) SpeciesWithAbility(ctx context.Context, ability string) ([]string, error) {
	session := q.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Species)-[:HAS_ABILITY]->(a:Ability {key: $key})
		RETURN s.name AS species
		ORDER BY s.dex_num, s.name
	`, map[string]any{"key": textutil.FoldKey(ability)})
	if err != nil {
		return nil, fmt.Errorf("query species with %s: %w", ability, err)
	}

	species := []string{}
	for result.Next(ctx) {
		name, _ := result.Record().Get("species")
		species = append(species, fmt.Sprintf("%v", name))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read species with %s: %w", ability, err)
	}
	return species, nil
}

func learnerFrom(record *neo4j.Record) Learner {
	species, _ := record.Get("species")
	dexNum, _ := record.Get("dex_num")
	method, _ := record.Get("method")
	level, _ := record.Get("level")

	l := Learner{
		Species: fmt.Sprintf("%v", species),
		Method:  fmt.Sprintf("%v", method),
	}
	if n, ok := dexNum.(int64); ok {
		l.DexNum = n
	}
	if n, ok := level.(int64); ok {
		l.Level = n
	}
	return l
}
