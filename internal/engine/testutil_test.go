package engine_test

import (
	"testing"

	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
	"github.com/peterkuimelis/mintarena/internal/store"
)

// fakeClock is a manually advanced clock for deterministic tests.
type fakeClock struct {
	now int64
}

func (c *fakeClock) Now() int64 { return c.now }

func newTestEngine(t *testing.T) (*engine.Engine, *fakeClock, *log.MemoryLogger) {
	t.Helper()
	return newTestEngineWith(t, engine.DefaultEconomyConfig())
}

func newTestEngineWith(t *testing.T, econ engine.EconomyConfig) (*engine.Engine, *fakeClock, *log.MemoryLogger) {
	t.Helper()
	clock := &fakeClock{now: 1000}
	logger := log.NewMemoryLogger()
	eng := engine.New(engine.Config{
		Store:  store.NewMemory(),
		Clock:  clock,
		Logger: logger,
	})
	if err := eng.InitializeWith(econ); err != nil {
		t.Fatalf("InitializeWith: %v", err)
	}
	return eng, clock, logger
}

// --- Test card helpers ---

func freeMove(name string, power uint64) engine.Move {
	return engine.Move{Name: name, Category: engine.MovePhysical, Power: power, Accuracy: 100}
}

func costMove(name string, power, cost uint64) engine.Move {
	return engine.Move{Name: name, Category: engine.MoveSpecial, Power: power, Accuracy: 100, EnergyCost: cost}
}

func basicSpec(name string, hp, attack, defense uint64, moves ...engine.Move) engine.CardSpec {
	return engine.CardSpec{
		Name:    name,
		HP:      hp,
		Attack:  attack,
		Defense: defense,
		Speed:   50,
		Rarity:  1,
		Moves:   moves,
	}
}

// mintFor mints a card paying exactly the mint price.
func mintFor(t *testing.T, eng *engine.Engine, owner string, spec engine.CardSpec) engine.Card {
	t.Helper()
	cfg, err := eng.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	card, err := eng.MintCard(owner, spec, cfg.MintPrice)
	if err != nil {
		t.Fatalf("MintCard(%s, %s): %v", owner, spec.Name, err)
	}
	return card
}

// startDuel mints one card per player and runs a battle to the Active state.
// Returns the battle and the two cards (alice's, then bob's).
func startDuel(t *testing.T, eng *engine.Engine, aliceSpec, bobSpec engine.CardSpec) (engine.Battle, engine.Card, engine.Card) {
	t.Helper()
	cfg, err := eng.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}

	aliceCard := mintFor(t, eng, "alice", aliceSpec)
	bobCard := mintFor(t, eng, "bob", bobSpec)

	battle, err := eng.CreateBattle("alice", []uint64{aliceCard.TokenID}, cfg.BattleReward)
	if err != nil {
		t.Fatalf("CreateBattle: %v", err)
	}
	battle, err = eng.JoinBattle(battle.ID, "bob", []uint64{bobCard.TokenID})
	if err != nil {
		t.Fatalf("JoinBattle: %v", err)
	}
	return battle, aliceCard, bobCard
}
