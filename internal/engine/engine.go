package engine

import (
	"errors"
	"sync"

	"github.com/peterkuimelis/mintarena/internal/log"
)

// Config holds the collaborators for creating an Engine.
type Config struct {
	Store  Store
	Clock  Clock           // nil = system clock
	Logger log.EventLogger // nil = in-memory logger
}

// Engine is the authoritative game-state engine: it mints cards, runs
// battles, and brokers trades, enforcing every rule through state
// transition guards.
//
// Operations are serialized by a single mutex. Each call runs guards first
// and writes only after every guard has passed, so a failed call leaves no
// visible side effect.
type Engine struct {
	mu     sync.Mutex
	store  Store
	clock  Clock
	logger log.EventLogger
	cfg    *EconomyConfig // nil until Initialize
}

// New creates an engine from the given config.
func New(cfg Config) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Engine{
		store:  cfg.Store,
		clock:  clock,
		logger: logger,
	}
}

// Initialize sets the economy tunables to their defaults, exactly once.
func (e *Engine) Initialize() error {
	return e.InitializeWith(DefaultEconomyConfig())
}

// InitializeWith sets the economy tunables from the given config, exactly
// once. Fails with ErrAlreadyInitialized on a second call.
func (e *Engine) InitializeWith(cfg EconomyConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg != nil {
		return ErrAlreadyInitialized
	}
	e.cfg = &cfg
	e.logger.Log(log.NewInitializedEvent())
	return nil
}

// Config returns the economy config, or ErrNotInitialized.
func (e *Engine) Config() (EconomyConfig, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cfg == nil {
		return EconomyConfig{}, ErrNotInitialized
	}
	return *e.cfg, nil
}

// Totals returns the process-wide counters: total cards minted, total
// battles, total trades.
func (e *Engine) Totals() (cards, battles, trades uint64, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cards, err = e.store.Counter(CounterCards); err != nil {
		return 0, 0, 0, err
	}
	if battles, err = e.store.Counter(CounterBattles); err != nil {
		return 0, 0, 0, err
	}
	if trades, err = e.store.Counter(CounterTrades); err != nil {
		return 0, 0, 0, err
	}
	return cards, battles, trades, nil
}

// config returns the economy config without locking. Callers hold e.mu.
func (e *Engine) config() (EconomyConfig, error) {
	if e.cfg == nil {
		return EconomyConfig{}, ErrNotInitialized
	}
	return *e.cfg, nil
}

// --- Player registry ---

// EnsurePlayer returns the existing player record or creates one with
// zeroed counters. Idempotent.
func (e *Engine) EnsurePlayer(id string) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, found, err := e.playerOrZero(id)
	if err != nil {
		return Player{}, err
	}
	if !found {
		if err := e.store.PutPlayer(p); err != nil {
			return Player{}, err
		}
	}
	return p, nil
}

// GetPlayer returns the player record, or ErrNotFound.
func (e *Engine) GetPlayer(id string) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetPlayer(id)
}

// ExitBattle clears the player's active battle. Called by the caller after
// a battle reaches Finished or Cancelled.
func (e *Engine) ExitBattle(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.GetPlayer(id)
	if err != nil {
		return err
	}
	p.ActiveBattleID = 0
	return e.store.PutPlayer(p)
}

// RecordOutcome increments the player's win or loss count.
func (e *Engine) RecordOutcome(id string, won bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.store.GetPlayer(id)
	if err != nil {
		return err
	}
	if won {
		p.Wins++
	} else {
		p.Losses++
	}
	return e.store.PutPlayer(p)
}

// playerOrZero loads a player record, falling back to a zeroed record when
// none exists yet. The zeroed record is NOT persisted: operations that use
// it must only write it after all their guards pass. Callers hold e.mu.
func (e *Engine) playerOrZero(id string) (Player, bool, error) {
	p, err := e.store.GetPlayer(id)
	if err == nil {
		return p, true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return Player{ID: id}, false, nil
	}
	return Player{}, false, err
}

// enterBattle marks a player as a participant of the given battle.
func enterBattle(p *Player, battleID uint64) error {
	if p.ActiveBattleID != 0 {
		return ErrPlayerAlreadyInBattle
	}
	p.ActiveBattleID = battleID
	return nil
}

// spendEnergy debits energy from a player.
func spendEnergy(p *Player, amount uint64) error {
	if p.Energy < amount {
		return ErrInsufficientEnergy
	}
	p.Energy -= amount
	return nil
}

// canMint reports whether the player is under the card limit.
func canMint(p Player, cfg EconomyConfig) bool {
	return p.CardCount < cfg.MaxCardsPerPlayer
}
