// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a local SQLite FTS5 index over fetched
// article documents so a corpus can be searched offline.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litfetch/pkg/types"
)

// Store manages the article index SQLite database.
type Store struct {
	db          *sql.DB
	articlesDir string
	maxResults  int
}

// NewStore opens or creates the index database at cfg.DBPath, creating
// the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:          db,
		articlesDir: cfg.ArticlesDir,
		maxResults:  maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			pmid TEXT NOT NULL UNIQUE,
			title TEXT,
			journal TEXT,
			doi TEXT,
			path TEXT,
			body TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			pmid TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, body, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, body) VALUES (new.rowid, new.title, new.body);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, body) VALUES('delete', old.rowid, old.title, old.body);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, body) VALUES('delete', old.rowid, old.title, old.body);
				INSERT INTO articles_fts(rowid, title, body) VALUES (new.rowid, new.title, new.body);
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

// IngestSummary holds counts from one indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest scans the articles directory for rendered documents and
// populates the index. Unchanged files (by modification time) are
// skipped so repeated runs are incremental.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.articlesDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading articles directory %s: %w", s.articlesDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "PMID_") || !strings.HasSuffix(name, ".txt") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		pmid := pmidFromName(name)
		if pmid == "" {
			continue
		}
		path := filepath.Join(s.articlesDir, name)

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", pmid, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE pmid = ?`, pmid,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", pmid)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", pmid, err)
			summary.Failed++
			continue
		}
		doc := parseDocument(string(data))

		if err := s.upsert(ctx, pmid, doc, path, string(data), modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", pmid, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", pmid)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", pmid)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// documentFields holds header fields parsed back out of a rendered document.
type documentFields struct {
	Title   string
	Journal string
	DOI     string
}

// parseDocument reads the fixed header lines of a rendered article
// document. The body is indexed whole; only title, journal, and DOI are
// pulled out as columns.
func parseDocument(content string) documentFields {
	var doc documentFields
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "Title: "):
			doc.Title = strings.TrimPrefix(line, "Title: ")
		case strings.HasPrefix(line, "Journal: "):
			doc.Journal = strings.TrimPrefix(line, "Journal: ")
		case strings.HasPrefix(line, "DOI: "):
			doc.DOI = strings.TrimPrefix(line, "DOI: ")
		case strings.HasPrefix(line, "="):
			return doc
		}
	}
	return doc
}

// pmidFromName extracts the PMID from a "PMID_<id>_<title>.txt" filename.
func pmidFromName(name string) string {
	rest := strings.TrimPrefix(name, "PMID_")
	if i := strings.IndexByte(rest, '_'); i > 0 {
		return rest[:i]
	}
	return strings.TrimSuffix(rest, ".txt")
}

func (s *Store) upsert(ctx context.Context, pmid string, doc documentFields, path, body, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		_, err = tx.ExecContext(ctx,
			`UPDATE articles SET title = ?, journal = ?, doi = ?, path = ?, body = ? WHERE pmid = ?`,
			doc.Title, doc.Journal, doc.DOI, path, body, pmid)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO articles (pmid, title, journal, doi, path, body) VALUES (?, ?, ?, ?, ?, ?)`,
			pmid, doc.Title, doc.Journal, doc.DOI, path, body)
	}
	if err != nil {
		return fmt.Errorf("upserting article: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO indexing_status (pmid, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(pmid) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		pmid, modTime); err != nil {
		return fmt.Errorf("recording indexing status: %w", err)
	}

	return tx.Commit()
}

// QueryResult is one ranked match from the article index.
type QueryResult struct {
	PMID    string
	Title   string
	Journal string
	DOI     string
	Path    string
	Snippet string
}

// Query runs an FTS5 full-text search over indexed articles and returns
// ranked matches with a context snippet.
func (s *Store) Query(ctx context.Context, query string, maxResults int) ([]QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT a.pmid, a.title, a.journal, a.doi, a.path,
			snippet(articles_fts, 1, '[', ']', '...', 12)
		FROM articles_fts
		JOIN articles a ON a.rowid = articles_fts.rowid
		WHERE articles_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var r QueryResult
		if err := rows.Scan(&r.PMID, &r.Title, &r.Journal, &r.DOI, &r.Path, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
