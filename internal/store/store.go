// Package store persists a translation memory so a repeated
// foreign-language message does not cost another model call. Only
// deduplicated source-to-translation pairs are kept; inbound messages
// themselves are never recorded.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		target_lang TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(source_text, target_lang)
	);

	CREATE INDEX IF NOT EXISTS idx_memory_lookup ON translation_memory(source_text, target_lang);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached translation for sourceText, if any, and bumps
// its usage counter.
func (s *Store) Get(ctx context.Context, sourceText, targetLang string) (string, bool, error) {
	key := normalizeText(sourceText)

	var translated string
	err := s.db.QueryRowContext(ctx,
		`SELECT translated_text FROM translation_memory WHERE source_text = ? AND target_lang = ?`,
		key, targetLang).Scan(&translated)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE translation_memory SET usage_count = usage_count + 1, last_used = ? WHERE source_text = ? AND target_lang = ?`,
		time.Now(), key, targetLang)

	return translated, true, err
}

// Save records a translation, replacing any previous entry for the same
// source text and target language.
func (s *Store) Save(ctx context.Context, sourceText, targetLang, translatedText string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translation_memory (id, source_text, target_lang, translated_text, usage_count, last_used, created_at) VALUES (?, ?, ?, ?, 1, ?, ?)`,
		uuid.NewString(), normalizeText(sourceText), targetLang, translatedText, time.Now(), time.Now())
	return err
}

// Stats summarises translation memory usage.
type Stats struct {
	TotalEntries int
	TotalUsage   int
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(usage_count), 0) FROM translation_memory`).
		Scan(&st.TotalEntries, &st.TotalUsage)
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// Clear removes all translation memory entries and reports how many
// were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText canonicalizes lookup keys so visually identical strings
// with different Unicode compositions share one cache entry.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
