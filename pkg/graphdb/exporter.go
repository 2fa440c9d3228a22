// Package graphdb exports a computed relation table to Neo4j so
// families can be inspected and queried with Cypher. This is a one-way
// handoff surface; nothing in the harness reads the database back.
package graphdb

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sony/gobreaker"

	"github.com/soundprediction/kinship/pkg/familygraph"
	"github.com/soundprediction/kinship/pkg/types"
)

// Config holds the Neo4j connection settings.
type Config struct {
	URI      string `json:"uri" mapstructure:"uri"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// Exporter writes individuals and kinship edges to Neo4j. Writes run
// through a circuit breaker so a dead database fails fast instead of
// stalling a whole benchmark batch.
type Exporter struct {
	client   neo4j.DriverWithContext
	database string
	breaker  *gobreaker.CircuitBreaker
}

// NewExporter connects to Neo4j with the given settings.
func NewExporter(cfg Config) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	return &Exporter{
		client:   driver,
		database: cfg.Database,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "neo4j-export",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}, nil
}

// ExportTree writes every individual of g as a Person node and every
// relation pair of table as a typed edge, all tagged with treeID so
// multiple trees coexist in one database.
func (e *Exporter) ExportTree(ctx context.Context, treeID string, g *familygraph.Graph, table types.Table) error {
	if err := e.write(ctx, `
		MATCH (p:Person {tree_id: $tree_id})
		DETACH DELETE p
	`, map[string]any{"tree_id": treeID}); err != nil {
		return fmt.Errorf("failed to clear tree %s: %w", treeID, err)
	}

	if err := e.write(ctx, `
		UNWIND $names AS name
		CREATE (:Person {name: name, tree_id: $tree_id})
	`, map[string]any{"names": g.Names(), "tree_id": treeID}); err != nil {
		return fmt.Errorf("failed to create individuals for %s: %w", treeID, err)
	}

	for _, kind := range types.Kinds {
		pairs := table[kind]
		if len(pairs) == 0 {
			continue
		}
		rows := make([]map[string]any, len(pairs))
		for i, p := range pairs {
			rows[i] = map[string]any{"a": p.A, "b": p.B}
		}
		query := fmt.Sprintf(`
			UNWIND $rows AS row
			MATCH (a:Person {name: row.a, tree_id: $tree_id})
			MATCH (b:Person {name: row.b, tree_id: $tree_id})
			CREATE (a)-[:%s]->(b)
		`, kind)
		if err := e.write(ctx, query, map[string]any{"rows": rows, "tree_id": treeID}); err != nil {
			return fmt.Errorf("failed to create %s edges for %s: %w", kind, treeID, err)
		}
	}
	return nil
}

// write runs one write transaction through the breaker.
func (e *Exporter) write(ctx context.Context, query string, params map[string]any) error {
	_, err := e.breaker.Execute(func() (interface{}, error) {
		session := e.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
		defer session.Close(ctx)
		return session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, query, params)
		})
	})
	return err
}

// Close releases the underlying driver.
func (e *Exporter) Close(ctx context.Context) error {
	return e.client.Close(ctx)
}
