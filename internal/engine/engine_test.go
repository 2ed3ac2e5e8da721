package engine_test

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
	"github.com/peterkuimelis/mintarena/internal/store"
)

func TestInitializeExactlyOnce(t *testing.T) {
	eng := engine.New(engine.Config{Store: store.NewMemory()})

	if err := eng.Initialize(); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if err := eng.Initialize(); !errors.Is(err, engine.ErrAlreadyInitialized) {
		t.Errorf("second Initialize: got %v, want ErrAlreadyInitialized", err)
	}

	cfg, err := eng.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg != engine.DefaultEconomyConfig() {
		t.Errorf("Config = %+v, want defaults", cfg)
	}
}

func TestOperationsRequireInitialize(t *testing.T) {
	eng := engine.New(engine.Config{Store: store.NewMemory()})

	_, err := eng.MintCard("alice", basicSpec("Emberling", 100, 50, 50), 1000000)
	if !errors.Is(err, engine.ErrNotInitialized) {
		t.Errorf("MintCard before Initialize: got %v, want ErrNotInitialized", err)
	}
	_, err = eng.CreateBattle("alice", []uint64{0}, 500000)
	if !errors.Is(err, engine.ErrNotInitialized) {
		t.Errorf("CreateBattle before Initialize: got %v, want ErrNotInitialized", err)
	}
	_, err = eng.CreateOffer("alice", []uint64{0}, []uint64{1}, "", 100000)
	if !errors.Is(err, engine.ErrNotInitialized) {
		t.Errorf("CreateOffer before Initialize: got %v, want ErrNotInitialized", err)
	}
}

func TestInitializeEmitsEvent(t *testing.T) {
	_, _, logger := newTestEngine(t)

	events := logger.EventsOfType(log.EventInitialized)
	if len(events) != 1 {
		t.Fatalf("got %d Initialized events, want 1", len(events))
	}
}

func TestEnsurePlayerIdempotent(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	p1, err := eng.EnsurePlayer("alice")
	if err != nil {
		t.Fatalf("first EnsurePlayer: %v", err)
	}
	if p1.ID != "alice" || p1.CardCount != 0 || p1.Energy != 0 {
		t.Errorf("new player = %+v, want zeroed record", p1)
	}

	mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))

	p2, err := eng.EnsurePlayer("alice")
	if err != nil {
		t.Fatalf("second EnsurePlayer: %v", err)
	}
	if p2.CardCount != 1 {
		t.Errorf("EnsurePlayer reset CardCount to %d, want 1", p2.CardCount)
	}
}

func TestRecordOutcome(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	if _, err := eng.EnsurePlayer("alice"); err != nil {
		t.Fatalf("EnsurePlayer: %v", err)
	}

	if err := eng.RecordOutcome("alice", true); err != nil {
		t.Fatalf("RecordOutcome(won): %v", err)
	}
	if err := eng.RecordOutcome("alice", false); err != nil {
		t.Fatalf("RecordOutcome(lost): %v", err)
	}

	p, err := eng.GetPlayer("alice")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if p.Wins != 1 || p.Losses != 1 {
		t.Errorf("record = %d-%d, want 1-1", p.Wins, p.Losses)
	}

	if err := eng.RecordOutcome("nobody", true); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("RecordOutcome for unknown player: got %v, want ErrNotFound", err)
	}
}

func TestExitBattleClearsActiveBattle(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	// Burn battle id 0 so the ids under test are distinguishable from the
	// idle sentinel.
	mintFor(t, eng, "zed", basicSpec("Filler", 100, 50, 50))
	if _, err := eng.CreateBattle("zed", []uint64{0}, 500000); err != nil {
		t.Fatalf("CreateBattle(zed): %v", err)
	}

	card := mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))
	battle, err := eng.CreateBattle("alice", []uint64{card.TokenID}, 500000)
	if err != nil {
		t.Fatalf("CreateBattle: %v", err)
	}

	p, _ := eng.GetPlayer("alice")
	if p.ActiveBattleID != battle.ID {
		t.Fatalf("ActiveBattleID = %d, want %d", p.ActiveBattleID, battle.ID)
	}

	if err := eng.ExitBattle("alice"); err != nil {
		t.Fatalf("ExitBattle: %v", err)
	}
	p, _ = eng.GetPlayer("alice")
	if p.ActiveBattleID != 0 {
		t.Errorf("ActiveBattleID = %d after ExitBattle, want 0", p.ActiveBattleID)
	}
}

func TestTotalsTrackCounters(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))
	mintFor(t, eng, "bob", basicSpec("Pebblor", 100, 50, 50))
	if _, err := eng.CreateBattle("alice", []uint64{0}, 500000); err != nil {
		t.Fatalf("CreateBattle: %v", err)
	}
	if _, err := eng.CreateOffer("alice", []uint64{0}, []uint64{1}, "", 100000); err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}

	cards, battles, trades, err := eng.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if cards != 2 || battles != 1 || trades != 1 {
		t.Errorf("Totals = (%d, %d, %d), want (2, 1, 1)", cards, battles, trades)
	}
}
