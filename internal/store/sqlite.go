package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/mintarena/internal/engine"
)

// SQLite persists engine records in a SQLite database: one kind/key table
// of JSON-encoded records plus a counters table. Every method is a single
// statement or transaction, matching the engine's guards-then-writes
// discipline.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	kind TEXT NOT NULL,
	key  TEXT NOT NULL,
	data BLOB NOT NULL,
	PRIMARY KEY (kind, key)
);
CREATE TABLE IF NOT EXISTS counters (
	name  TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);`

// OpenSQLite opens (and creates if needed) a SQLite-backed store.
// Use ":memory:" for an ephemeral database.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

const (
	kindPlayer = "player"
	kindCard   = "card"
	kindBattle = "battle"
	kindOffer  = "offer"
)

func (s *SQLite) get(kind, key string, out any) error {
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM records WHERE kind = ? AND key = ?`, kind, key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s %s: %w", kind, key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", kind, key, err)
	}
	return nil
}

func (s *SQLite) put(kind, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", kind, key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO records (kind, key, data) VALUES (?, ?, ?)
		 ON CONFLICT (kind, key) DO UPDATE SET data = excluded.data`,
		kind, key, data,
	)
	if err != nil {
		return fmt.Errorf("put %s %s: %w", kind, key, err)
	}
	return nil
}

func tokenKey(id uint64) string { return strconv.FormatUint(id, 10) }

func (s *SQLite) GetPlayer(id string) (engine.Player, error) {
	var p engine.Player
	if err := s.get(kindPlayer, id, &p); err != nil {
		return engine.Player{}, err
	}
	return p, nil
}

func (s *SQLite) PutPlayer(p engine.Player) error {
	return s.put(kindPlayer, p.ID, p)
}

func (s *SQLite) GetCard(tokenID uint64) (engine.Card, error) {
	var c engine.Card
	if err := s.get(kindCard, tokenKey(tokenID), &c); err != nil {
		return engine.Card{}, err
	}
	return c, nil
}

func (s *SQLite) PutCard(c engine.Card) error {
	return s.put(kindCard, tokenKey(c.TokenID), c)
}

func (s *SQLite) GetBattle(battleID uint64) (engine.Battle, error) {
	var b engine.Battle
	if err := s.get(kindBattle, tokenKey(battleID), &b); err != nil {
		return engine.Battle{}, err
	}
	return b, nil
}

func (s *SQLite) PutBattle(b engine.Battle) error {
	return s.put(kindBattle, tokenKey(b.ID), b)
}

func (s *SQLite) GetOffer(offerID uint64) (engine.TradingOffer, error) {
	var o engine.TradingOffer
	if err := s.get(kindOffer, tokenKey(offerID), &o); err != nil {
		return engine.TradingOffer{}, err
	}
	return o, nil
}

func (s *SQLite) PutOffer(o engine.TradingOffer) error {
	return s.put(kindOffer, tokenKey(o.ID), o)
}

// NextID returns the counter's current value and advances it, atomically.
func (s *SQLite) NextID(c engine.Counter) (uint64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("next id %s: %w", c, err)
	}
	defer tx.Rollback()

	var value int64
	err = tx.QueryRow(`SELECT value FROM counters WHERE name = ?`, c.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		value = 0
	} else if err != nil {
		return 0, fmt.Errorf("next id %s: %w", c, err)
	}

	_, err = tx.Exec(
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET value = excluded.value`,
		c.String(), value+1,
	)
	if err != nil {
		return 0, fmt.Errorf("next id %s: %w", c, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("next id %s: %w", c, err)
	}
	return uint64(value), nil
}

// Counter reads a counter without advancing it.
func (s *SQLite) Counter(c engine.Counter) (uint64, error) {
	var value int64
	err := s.db.QueryRow(`SELECT value FROM counters WHERE name = ?`, c.String()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", c, err)
	}
	return uint64(value), nil
}

var _ engine.Store = (*SQLite)(nil)
