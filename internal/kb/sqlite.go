// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/kbcheck/pkg/types"
)

const dbFile = "kbcheck.db"

// SQLiteStore is a local FTS5-backed knowledge base. It implements both
// Storage and Agent, which makes offline runs and deterministic tests
// possible without a remote server.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dataDir/kbcheck.db and
// creates the schema if it does not exist.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			abstract TEXT,
			category TEXT,
			research_field TEXT,
			citation_count INTEGER,
			journal TEXT,
			paper_type TEXT,
			arxiv_id TEXT,
			published_date TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_category ON papers(category)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_field ON papers(research_field)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, research_field, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract, research_field)
				VALUES (new.rowid, new.title, new.abstract, new.research_field);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, research_field)
				VALUES('delete', old.rowid, old.title, old.abstract, old.research_field);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract, research_field)
				VALUES('delete', old.rowid, old.title, old.abstract, old.research_field);
				INSERT INTO papers_fts(rowid, title, abstract, research_field)
				VALUES (new.rowid, new.title, new.abstract, new.research_field);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return nil
}

// BulkInsert writes one batch in a single transaction.
func (s *SQLiteStore) BulkInsert(ctx context.Context, records []types.PaperRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO papers
			(id, title, authors, abstract, category, research_field,
			 citation_count, journal, paper_type, arxiv_id, published_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		authorsJSON, _ := json.Marshal(r.Authors)
		dateStr := ""
		if !r.PublishedDate.IsZero() {
			dateStr = r.PublishedDate.Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Title, string(authorsJSON), r.Abstract, r.Category,
			r.ResearchField, r.CitationCount, r.Journal, r.PaperType,
			r.ArxivID, dateStr,
		); err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Query runs an FTS5 match over title, abstract, and field, ordered by
// relevance. Relevance scores are position-based: the top hit scores 1.0
// and the last hit 0.1.
func (s *SQLiteStore) Query(ctx context.Context, text string, filters map[string]string, topK int) ([]types.SearchHit, error) {
	if topK <= 0 {
		topK = 10
	}

	match := ftsQuery(text)
	if match == "" {
		return nil, fmt.Errorf("empty search query")
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT p.id, p.title, p.authors, p.abstract, p.category, p.research_field,
			p.citation_count, p.journal, p.paper_type, p.arxiv_id, p.published_date
		FROM papers_fts
		JOIN papers p ON p.rowid = papers_fts.rowid
		WHERE papers_fts MATCH ?`)
	args = append(args, match)

	if v, ok := filters["category"]; ok {
		qb.WriteString(` AND p.category = ?`)
		args = append(args, v)
	}
	if v, ok := filters["research_field"]; ok {
		qb.WriteString(` AND p.research_field = ?`)
		args = append(args, v)
	}

	qb.WriteString(` ORDER BY papers_fts.rank LIMIT ?`)
	args = append(args, topK)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge base: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}

	hits := make([]types.SearchHit, len(records))
	total := len(records)
	for i, r := range records {
		score := 1.0
		if total > 1 {
			score = 1.0 - float64(i)/float64(total-1)*0.9
		}
		hits[i] = types.SearchHit{Record: r, Score: score}
	}
	return hits, nil
}

// ScanAll returns every resident record.
func (s *SQLiteStore) ScanAll(ctx context.Context) ([]types.PaperRecord, error) {
	return s.scan(ctx, 0)
}

// Sample returns up to n records drawn without order guarantees.
func (s *SQLiteStore) Sample(ctx context.Context, n int) ([]types.PaperRecord, error) {
	return s.scan(ctx, n)
}

func (s *SQLiteStore) scan(ctx context.Context, limit int) ([]types.PaperRecord, error) {
	q := `SELECT id, title, authors, abstract, category, research_field,
			citation_count, journal, paper_type, arxiv_id, published_date
		FROM papers`
	var args []any
	if limit > 0 {
		q += ` ORDER BY random() LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("scanning papers: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Ask answers a question from the local corpus: it searches for the
// question's terms and composes a summary of the top hits. The response
// is a stand-in for a hosted agent, adequate for offline harness runs.
func (s *SQLiteStore) Ask(ctx context.Context, question string) (string, error) {
	hits, err := s.Query(ctx, question, nil, 5)
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return "No relevant papers were found in the knowledge base for this question.", nil
	}

	fields := map[string]bool{}
	var b strings.Builder
	fmt.Fprintf(&b, "Based on %d relevant papers in the knowledge base, ", len(hits))
	for _, h := range hits {
		fields[h.Record.ResearchField] = true
	}
	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)
	fmt.Fprintf(&b, "current research spans %s. ", strings.Join(names, ", "))

	for i, h := range hits {
		if i >= 3 {
			break
		}
		r := h.Record
		fmt.Fprintf(&b, "%q (%s, %d, %d citations) reports: %s ",
			r.Title, r.Journal, r.PublishedDate.Year(), r.CitationCount,
			firstSentence(r.Abstract))
	}
	return strings.TrimSpace(b.String()), nil
}

func scanRecords(rows *sql.Rows) ([]types.PaperRecord, error) {
	var records []types.PaperRecord
	for rows.Next() {
		var (
			r           types.PaperRecord
			authorsJSON sql.NullString
			dateStr     sql.NullString
		)
		if err := rows.Scan(
			&r.ID, &r.Title, &authorsJSON, &r.Abstract, &r.Category,
			&r.ResearchField, &r.CitationCount, &r.Journal, &r.PaperType,
			&r.ArxivID, &dateStr,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if authorsJSON.Valid {
			json.Unmarshal([]byte(authorsJSON.String), &r.Authors)
		}
		if dateStr.Valid && dateStr.String != "" {
			if t, err := time.Parse(time.RFC3339, dateStr.String); err == nil {
				r.PublishedDate = t
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ftsQuery converts free text into an FTS5 OR-query of quoted terms so
// punctuation in natural-language questions cannot break the match syntax.
func ftsQuery(text string) string {
	var terms []string
	for _, f := range strings.Fields(text) {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
		})
		if t == "" {
			continue
		}
		terms = append(terms, `"`+t+`"`)
	}
	return strings.Join(terms, " OR ")
}

func firstSentence(text string) string {
	if i := strings.Index(text, ". "); i >= 0 {
		return text[:i+1]
	}
	return text
}
