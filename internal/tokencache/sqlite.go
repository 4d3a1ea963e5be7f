// Package tokencache persists the Qingping access token between workflow
// invocations, so a token is fetched roughly once per expiry window instead
// of once per keystroke.
package tokencache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Tan4ek/alfred-qingping-monitor/internal/qingping"
)

//go:embed sql/create-schema.sql
var createSchemaSQL string

//go:embed sql/get-token.sql
var getTokenSQL string

//go:embed sql/put-token.sql
var putTokenSQL string

//go:embed sql/delete-token.sql
var deleteTokenSQL string

// SQLiteStore keeps the token in a single-row sqlite table under the workflow
// cache directory. It implements qingping.TokenStore.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open token cache %q: %w", path, err)
	}
	s, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already-open database, creating the schema if needed.
func New(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(createSchemaSQL); err != nil {
		return nil, fmt.Errorf("create token cache schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (*qingping.Token, error) {
	var accessToken, expiresAt string
	err := s.db.QueryRowContext(ctx, getTokenSQL).Scan(&accessToken, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token cache: %w", err)
	}
	exp, err := time.Parse(time.RFC3339Nano, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("parse token expiry %q: %w", expiresAt, err)
	}
	tok := &qingping.Token{AccessToken: accessToken, ExpiresAt: exp}
	if !tok.Valid(s.now()) {
		return nil, nil
	}
	return tok, nil
}

func (s *SQLiteStore) Put(ctx context.Context, t qingping.Token) error {
	_, err := s.db.ExecContext(ctx, putTokenSQL, t.AccessToken, t.ExpiresAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, deleteTokenSQL); err != nil {
		return fmt.Errorf("clear token cache: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
