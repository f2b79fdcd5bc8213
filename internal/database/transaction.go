package database

// Batched writes for SurrealDB.
//
// Statements accumulate in memory and are sent as one
// BEGIN TRANSACTION / COMMIT TRANSACTION block, so they succeed or fail
// together:
//
//	batch := NewAtomicBatch()
//	for _, rec := range records {
//	    batch.Add("UPSERT type::thing($tb, $id) CONTENT $rec", vars)
//	}
//	batch.Execute(ctx, db)
//
// Every statement's variables are namespaced ($rec -> $v1_rec) so
// statements built from the same template do not collide.

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TxBuilder builds a transaction block with namespaced variables
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCounter uint64
}

// NewTxBuilder creates a new transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add adds a statement, renaming each of its variables to a unique name.
// Longer names are replaced first so $id never clobbers part of $id_key.
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	newQuery := query
	for _, name := range names {
		tb.varCounter++
		newName := fmt.Sprintf("v%d_%s", tb.varCounter, name)
		newQuery = strings.ReplaceAll(newQuery, "$"+name, "$"+newName)
		tb.vars[newName] = vars[name]
	}

	tb.statements = append(tb.statements, newQuery)
}

// Len returns the number of statements
func (tb *TxBuilder) Len() int {
	return len(tb.statements)
}

// Build returns the complete transaction query and merged variables
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// AtomicBatch collects statements that must be applied together
type AtomicBatch struct {
	builder *TxBuilder
}

// NewAtomicBatch creates a new atomic batch
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{builder: NewTxBuilder()}
}

// Add adds a query to the batch
func (ab *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	ab.builder.Add(query, vars)
	return ab
}

// Execute runs all queries as a single transaction
func (ab *AtomicBatch) Execute(ctx context.Context, db Database) error {
	query, vars := ab.builder.Build()
	if query == "" {
		return nil
	}
	return db.Execute(ctx, query, vars)
}

// Len returns the number of queries in the batch
func (ab *AtomicBatch) Len() int {
	return ab.builder.Len()
}
