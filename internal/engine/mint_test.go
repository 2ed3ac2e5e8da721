package engine_test

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
)

func TestMintCardAssignsSequentialTokenIDs(t *testing.T) {
	eng, _, logger := newTestEngine(t)

	for want := uint64(0); want < 3; want++ {
		card := mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))
		if card.TokenID != want {
			t.Errorf("token id = %d, want %d", card.TokenID, want)
		}
	}

	events := logger.EventsOfType(log.EventCardMinted)
	if len(events) != 3 {
		t.Fatalf("got %d CardMinted events, want 3", len(events))
	}
	if events[2].TokenID != 2 || events[2].Player != "alice" {
		t.Errorf("last mint event = %+v, want token 2 for alice", events[2])
	}
}

func TestMintCardRecordsSpec(t *testing.T) {
	eng, clock, _ := newTestEngine(t)
	clock.now = 42

	spec := basicSpec("Voltwing", 95, 95, 35, freeMove("Static Jab", 55), costMove("Thunderfall", 180, 35))
	spec.TypeTag = 3
	spec.Rarity = 4

	card := mintFor(t, eng, "alice", spec)

	if card.Owner != "alice" || card.Name != "Voltwing" || card.TypeTag != 3 || card.Rarity != 4 {
		t.Errorf("card = %+v, does not match spec", card)
	}
	if card.HP != 95 || card.Attack != 95 || card.Defense != 35 {
		t.Errorf("stat block = %d/%d/%d, want 95/95/35", card.HP, card.Attack, card.Defense)
	}
	if len(card.Moves) != 2 || card.Moves[1].Name != "Thunderfall" {
		t.Errorf("moves = %+v, want 2 moves ending in Thunderfall", card.Moves)
	}
	if !card.IsActive {
		t.Error("minted card should be active")
	}
	if card.MintedAt != 42 {
		t.Errorf("MintedAt = %d, want 42", card.MintedAt)
	}

	p, err := eng.GetPlayer("alice")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if p.CardCount != 1 {
		t.Errorf("CardCount = %d, want 1", p.CardCount)
	}
}

func TestMintInsufficientPaymentLeavesNoTrace(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	cfg, _ := eng.Config()

	_, err := eng.MintCard("alice", basicSpec("Emberling", 100, 50, 50), cfg.MintPrice-1)
	if !errors.Is(err, engine.ErrInsufficientPayment) {
		t.Fatalf("got %v, want ErrInsufficientPayment", err)
	}

	// The rejected attempt must not create a player record or burn an id.
	if _, err := eng.GetPlayer("alice"); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("GetPlayer after failed mint: got %v, want ErrNotFound", err)
	}
	card := mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))
	if card.TokenID != 0 {
		t.Errorf("token id after failed attempt = %d, want 0", card.TokenID)
	}
}

func TestMintCardLimitBoundary(t *testing.T) {
	econ := engine.DefaultEconomyConfig()
	econ.MaxCardsPerPlayer = 2
	eng, _, _ := newTestEngineWith(t, econ)

	mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))
	mintFor(t, eng, "alice", basicSpec("Pebblor", 100, 50, 50))

	_, err := eng.MintCard("alice", basicSpec("Mistfin", 100, 50, 50), econ.MintPrice)
	if !errors.Is(err, engine.ErrMaxCardsExceeded) {
		t.Fatalf("third mint: got %v, want ErrMaxCardsExceeded", err)
	}

	p, _ := eng.GetPlayer("alice")
	if p.CardCount != 2 {
		t.Errorf("CardCount = %d after rejected mint, want 2", p.CardCount)
	}

	// The limit is per player: another player can still mint.
	mintFor(t, eng, "bob", basicSpec("Mistfin", 100, 50, 50))
}

func TestGetCardUnknown(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	if _, err := eng.GetCard(99); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("GetCard(99): got %v, want ErrNotFound", err)
	}
}

func TestTransferOwnership(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	card := mintFor(t, eng, "alice", basicSpec("Emberling", 100, 50, 50))

	if err := eng.TransferOwnership(card.TokenID, "bob"); err != nil {
		t.Fatalf("TransferOwnership: %v", err)
	}

	got, err := eng.GetCard(card.TokenID)
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if got.Owner != "bob" {
		t.Errorf("owner = %q, want bob", got.Owner)
	}

	// Transfers move the token only; per-player card counts are untouched.
	alice, _ := eng.GetPlayer("alice")
	if alice.CardCount != 1 {
		t.Errorf("alice CardCount = %d after transfer, want 1", alice.CardCount)
	}

	if err := eng.TransferOwnership(99, "bob"); !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("TransferOwnership(99): got %v, want ErrNotFound", err)
	}
}
