package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/peterkuimelis/mintarena/internal/catalog"
	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/store"
)

const testCatalogYAML = `
cards:
  - name: Emberling
    hp: 120
    attack: 80
    defense: 40
    rarity: 2
    moves:
      - name: Strike
        category: Physical
        power: 60
        accuracy: 100
      - name: Nova
        category: Special
        power: 250
        accuracy: 70
  - name: Pebblor
    hp: 150
    attack: 60
    defense: 60
    rarity: 1
    moves:
      - name: Strike
        category: Physical
        power: 60
        accuracy: 100
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	srv, err := NewServer(store.NewMemory(), cat, engine.DefaultEconomyConfig())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws"
	return srv, wsURL
}

func dialTest(t *testing.T, ctx context.Context, url, player string) *Client {
	t.Helper()
	client, err := Dial(ctx, url, player)
	if err != nil {
		t.Fatalf("Dial(%s): %v", player, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestHandshakeAssignsSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, url := newTestServer(t)

	alice := dialTest(t, ctx, url, "alice")
	bob := dialTest(t, ctx, url, "bob")

	if alice.SessionID() == "" || bob.SessionID() == "" {
		t.Fatal("session ids should be assigned at handshake")
	}
	if alice.SessionID() == bob.SessionID() {
		t.Errorf("both sessions got id %q", alice.SessionID())
	}
}

func TestMintOverWebSocket(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, url := newTestServer(t)

	alice := dialTest(t, ctx, url, "alice")

	resp, err := alice.Call(ctx, Request{Type: "mint_card", Card: "Emberling", Payment: 1000000})
	if err != nil {
		t.Fatalf("mint_card: %v", err)
	}
	if resp.Card == nil || resp.Card.Name != "Emberling" || resp.Card.TokenID != 0 {
		t.Errorf("card = %+v, want Emberling token 0", resp.Card)
	}
	if resp.Card.Owner != "alice" {
		t.Errorf("owner = %q, want the session identity", resp.Card.Owner)
	}

	resp, err = alice.Call(ctx, Request{Type: "get_player"})
	if err != nil {
		t.Fatalf("get_player: %v", err)
	}
	if resp.Status == nil || resp.Status.CardCount != 1 {
		t.Errorf("player = %+v, want CardCount 1", resp.Status)
	}
}

func TestEngineErrorsSurfaceVerbatim(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, url := newTestServer(t)

	alice := dialTest(t, ctx, url, "alice")

	_, err := alice.Call(ctx, Request{Type: "mint_card", Card: "Emberling", Payment: 1})
	if err == nil || !strings.Contains(err.Error(), engine.ErrInsufficientPayment.Error()) {
		t.Errorf("underpaid mint: got %v, want insufficient payment", err)
	}

	_, err = alice.Call(ctx, Request{Type: "mint_card", Card: "Missingno", Payment: 1000000})
	if err == nil || !strings.Contains(err.Error(), "unknown catalog card") {
		t.Errorf("unknown card: got %v", err)
	}

	_, err = alice.Call(ctx, Request{Type: "frobnicate"})
	if err == nil || !strings.Contains(err.Error(), "unknown request type") {
		t.Errorf("unknown type: got %v", err)
	}
}

func TestBattleAndNotifyFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, url := newTestServer(t)

	alice := dialTest(t, ctx, url, "alice")
	bob := dialTest(t, ctx, url, "bob")

	mint, err := alice.Call(ctx, Request{Type: "mint_card", Card: "Emberling", Payment: 1000000})
	if err != nil {
		t.Fatalf("alice mint: %v", err)
	}
	aliceToken := mint.Card.TokenID

	mint, err = bob.Call(ctx, Request{Type: "mint_card", Card: "Pebblor", Payment: 1000000})
	if err != nil {
		t.Fatalf("bob mint: %v", err)
	}
	bobToken := mint.Card.TokenID

	created, err := alice.Call(ctx, Request{Type: "create_battle", Team: []uint64{aliceToken}, Payment: 500000})
	if err != nil {
		t.Fatalf("create_battle: %v", err)
	}
	joined, err := bob.Call(ctx, Request{Type: "join_battle", BattleID: created.Battle.BattleID, Team: []uint64{bobToken}})
	if err != nil {
		t.Fatalf("join_battle: %v", err)
	}
	if joined.Battle.Status != "Active" {
		t.Errorf("status = %q, want Active", joined.Battle.Status)
	}

	// Nova one-shots Pebblor: 250*80/110 = 181 >= 150.
	move, err := alice.Call(ctx, Request{
		Type: "execute_move", BattleID: created.Battle.BattleID,
		MoveIndex: 1, AttackerID: aliceToken, DefenderID: bobToken,
	})
	if err != nil {
		t.Fatalf("execute_move: %v", err)
	}
	if move.Move == nil || !move.Move.Finished || move.Move.Winner != "alice" {
		t.Errorf("move = %+v, want finished with winner alice", move.Move)
	}

	// Engine events were pushed to the session while the calls ran.
	totals, err := alice.Call(ctx, Request{Type: "totals"})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Totals.CardsMinted != 2 || totals.Totals.Battles != 1 {
		t.Errorf("totals = %+v, want 2 cards and 1 battle", totals.Totals)
	}

	events := alice.Events()
	if len(events) == 0 {
		t.Fatal("no notify events buffered")
	}
	var sawFinish bool
	for _, e := range events {
		if e.Type == "BattleFinished" {
			sawFinish = true
		}
	}
	if !sawFinish {
		t.Errorf("notify stream missing BattleFinished: %+v", events)
	}
}
