// Package store provides record-store bindings for the engine: an
// in-memory store for tests and single-process servers, and a SQLite store
// for durable deployments.
package store

import (
	"sync"

	"github.com/peterkuimelis/mintarena/internal/engine"
)

// Memory is an in-memory engine.Store. Records are copied in and out so
// callers never share mutable state with the store.
type Memory struct {
	mu       sync.RWMutex
	players  map[string]engine.Player
	cards    map[uint64]engine.Card
	battles  map[uint64]engine.Battle
	offers   map[uint64]engine.TradingOffer
	counters map[engine.Counter]uint64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		players:  make(map[string]engine.Player),
		cards:    make(map[uint64]engine.Card),
		battles:  make(map[uint64]engine.Battle),
		offers:   make(map[uint64]engine.TradingOffer),
		counters: make(map[engine.Counter]uint64),
	}
}

func (m *Memory) GetPlayer(id string) (engine.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	if !ok {
		return engine.Player{}, engine.ErrNotFound
	}
	return p, nil
}

func (m *Memory) PutPlayer(p engine.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
	return nil
}

func (m *Memory) GetCard(tokenID uint64) (engine.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cards[tokenID]
	if !ok {
		return engine.Card{}, engine.ErrNotFound
	}
	c.Moves = append([]engine.Move(nil), c.Moves...)
	return c, nil
}

func (m *Memory) PutCard(c engine.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Moves = append([]engine.Move(nil), c.Moves...)
	m.cards[c.TokenID] = c
	return nil
}

func (m *Memory) GetBattle(battleID uint64) (engine.Battle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.battles[battleID]
	if !ok {
		return engine.Battle{}, engine.ErrNotFound
	}
	b.Player1Team = append([]uint64(nil), b.Player1Team...)
	b.Player2Team = append([]uint64(nil), b.Player2Team...)
	return b, nil
}

func (m *Memory) PutBattle(b engine.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.Player1Team = append([]uint64(nil), b.Player1Team...)
	b.Player2Team = append([]uint64(nil), b.Player2Team...)
	m.battles[b.ID] = b
	return nil
}

func (m *Memory) GetOffer(offerID uint64) (engine.TradingOffer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.offers[offerID]
	if !ok {
		return engine.TradingOffer{}, engine.ErrNotFound
	}
	o.OfferedCards = append([]uint64(nil), o.OfferedCards...)
	o.RequestedCards = append([]uint64(nil), o.RequestedCards...)
	return o, nil
}

func (m *Memory) PutOffer(o engine.TradingOffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.OfferedCards = append([]uint64(nil), o.OfferedCards...)
	o.RequestedCards = append([]uint64(nil), o.RequestedCards...)
	m.offers[o.ID] = o
	return nil
}

// NextID returns the counter's current value and advances it.
func (m *Memory) NextID(c engine.Counter) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.counters[c]
	m.counters[c] = id + 1
	return id, nil
}

// Counter reads a counter without advancing it.
func (m *Memory) Counter(c engine.Counter) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[c], nil
}

var _ engine.Store = (*Memory)(nil)
