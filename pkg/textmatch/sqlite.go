package textmatch

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteMatcher matches residual text with an in-memory SQLite FTS5 table,
// rebuilt per call. Terms combine with FTS5's implicit AND; the trailing
// term matches as a prefix so partially typed words still find their
// completions. Scores come from bm25 with per-field weights, negated so
// higher means a better match.
type SQLiteMatcher struct {
	fields []FieldWeight
}

// NewSQLiteMatcher creates a matcher over the given searchable fields.
func NewSQLiteMatcher(fields []FieldWeight) *SQLiteMatcher {
	return &SQLiteMatcher{fields: fields}
}

// Match indexes docs into a fresh FTS5 table and queries it with text.
func (m *SQLiteMatcher) Match(ctx context.Context, docs []Doc, text string) ([]Score, error) {
	match := buildMatchExpr(text)
	if match == "" || len(docs) == 0 {
		return nil, nil
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	columns := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		columns = append(columns, quoteIdent(f.Name))
	}
	createStmt := fmt.Sprintf(
		"CREATE VIRTUAL TABLE docs USING fts5(id UNINDEXED, %s)",
		strings.Join(columns, ", "),
	)
	if _, err := db.ExecContext(ctx, createStmt); err != nil {
		return nil, fmt.Errorf("creating index table: %w", err)
	}

	insertStmt := fmt.Sprintf(
		"INSERT INTO docs (id, %s) VALUES (?%s)",
		strings.Join(columns, ", "),
		strings.Repeat(", ?", len(columns)),
	)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning index transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("preparing index statement: %w", err)
	}
	for _, doc := range docs {
		args := make([]any, 0, len(m.fields)+1)
		args = append(args, doc.ID)
		for _, f := range m.fields {
			args = append(args, doc.Fields[f.Name])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return nil, fmt.Errorf("indexing doc %s: %w", doc.ID, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("closing index statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing index: %w", err)
	}

	// bm25 weight arguments follow the table's column order; the
	// unindexed id column gets weight 0.
	weights := make([]string, 0, len(m.fields)+1)
	weights = append(weights, "0.0")
	for _, f := range m.fields {
		weights = append(weights, fmt.Sprintf("%g", f.Weight))
	}
	queryStmt := fmt.Sprintf(
		"SELECT id, bm25(docs, %s) AS rank FROM docs WHERE docs MATCH ? ORDER BY rank, rowid",
		strings.Join(weights, ", "),
	)

	rows, err := db.QueryContext(ctx, queryStmt, match)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var scores []Score
	for rows.Next() {
		var id string
		var rank float64
		if err := rows.Scan(&id, &rank); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		// bm25 ranks better matches more negative; flip the sign so
		// callers can treat higher as better.
		scores = append(scores, Score{ID: id, Score: -rank})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}
	return scores, nil
}

// buildMatchExpr turns free text into an FTS5 MATCH expression: each term
// is double-quoted to neutralize FTS5 operators, and the final term gets a
// prefix star.
func buildMatchExpr(text string) string {
	terms := strings.Fields(text)
	if len(terms) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(terms))
	for i, term := range terms {
		term = strings.ReplaceAll(term, `"`, "")
		if term == "" {
			continue
		}
		expr := `"` + term + `"`
		if i == len(terms)-1 {
			expr += "*"
		}
		quoted = append(quoted, expr)
	}
	return strings.Join(quoted, " ")
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
