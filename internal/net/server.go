package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/peterkuimelis/mintarena/internal/catalog"
	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
)

// Server exposes the engine operations over a WebSocket JSON protocol and
// pushes every emitted engine event to all connected sessions.
type Server struct {
	engine  *engine.Engine
	catalog *catalog.Catalog
	hub     *hub
	mux     *http.ServeMux
}

// NewServer builds a server around a fresh engine using the given store,
// catalog, and economy config.
func NewServer(st engine.Store, cat *catalog.Catalog, econ engine.EconomyConfig) (*Server, error) {
	h := newHub()
	eng := engine.New(engine.Config{Store: st, Logger: &broadcastLogger{hub: h}})
	// A durable store may already hold an initialized economy.
	if err := eng.InitializeWith(econ); err != nil && !errors.Is(err, engine.ErrAlreadyInitialized) {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}

	s := &Server{
		engine:  eng,
		catalog: cat,
		hub:     h,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /api/cards", s.handleCatalog)
	s.mux.HandleFunc("GET /api/totals", s.handleTotals)
	return s, nil
}

// Engine returns the server's engine.
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var cards []engine.CardSpec
	for _, name := range s.catalog.Names() {
		spec, _ := s.catalog.Lookup(name)
		cards = append(cards, spec)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	cards, battles, trades, err := s.engine.Totals()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TotalsView{CardsMinted: cards, Battles: battles, Trades: trades})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		stdlog.Printf("websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	// Handshake: the first message must declare the player identity.
	// Identity verification happens upstream; the server trusts it.
	var hello Request
	if err := readJSON(ctx, conn, &hello); err != nil {
		return
	}
	if hello.Type != "hello" || hello.Player == "" {
		conn.Close(websocket.StatusPolicyViolation, "expected hello with player")
		return
	}

	sess := &session{
		id:     uuid.NewString(),
		player: hello.Player,
		conn:   conn,
	}
	s.hub.add(sess)
	defer s.hub.remove(sess.id)

	if err := sess.send(ctx, Response{Type: "session", SessionID: sess.id, Player: sess.player}); err != nil {
		return
	}

	for {
		var req Request
		if err := readJSON(ctx, conn, &req); err != nil {
			return
		}
		resp := s.dispatch(sess, req)
		if err := sess.send(ctx, resp); err != nil {
			return
		}
	}
}

// dispatch maps one request to the corresponding engine operation. Engine
// errors are surfaced verbatim to the client.
func (s *Server) dispatch(sess *session, req Request) Response {
	switch req.Type {
	case "mint_card":
		spec, ok := s.catalog.Lookup(req.Card)
		if !ok {
			return errorResponse(fmt.Errorf("unknown catalog card %q", req.Card))
		}
		card, err := s.engine.MintCard(sess.player, spec, req.Payment)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Card: cardView(card)}

	case "get_card":
		card, err := s.engine.GetCard(req.TokenID)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Card: cardView(card)}

	case "get_player":
		id := req.ID
		if id == "" {
			id = sess.player
		}
		p, err := s.engine.GetPlayer(id)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Status: playerView(p)}

	case "create_battle":
		battle, err := s.engine.CreateBattle(sess.player, req.Team, req.Payment)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Battle: battleView(battle)}

	case "join_battle":
		battle, err := s.engine.JoinBattle(req.BattleID, sess.player, req.Team)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Battle: battleView(battle)}

	case "get_battle":
		battle, err := s.engine.GetBattle(req.BattleID)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Battle: battleView(battle)}

	case "execute_move":
		result, err := s.engine.ExecuteMove(req.BattleID, sess.player, req.MoveIndex, req.AttackerID, req.DefenderID)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Move: &MoveView{
			Damage:   result.Damage,
			Finished: result.Finished,
			Winner:   result.Winner,
		}}

	case "create_offer":
		offer, err := s.engine.CreateOffer(sess.player, req.Offered, req.Requested, req.Target, req.Payment)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Offer: offerView(offer)}

	case "accept_offer":
		offer, err := s.engine.AcceptOffer(req.OfferID, sess.player, req.Payment)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Offer: offerView(offer)}

	case "get_offer":
		offer, err := s.engine.GetOffer(req.OfferID)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Offer: offerView(offer)}

	case "totals":
		cards, battles, trades, err := s.engine.Totals()
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "result", Totals: &TotalsView{CardsMinted: cards, Battles: battles, Trades: trades}}

	default:
		return errorResponse(fmt.Errorf("unknown request type %q", req.Type))
	}
}

func errorResponse(err error) Response {
	return Response{Type: "error", Error: err.Error()}
}

func readJSON(ctx context.Context, conn *websocket.Conn, out any) error {
	_, data, err := conn.Read(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// --- Sessions ---

type session struct {
	id     string
	player string
	conn   *websocket.Conn
	mu     sync.Mutex
}

func (s *session) send(ctx context.Context, resp Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageText, data)
}

type hub struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newHub() *hub {
	return &hub{sessions: make(map[string]*session)}
}

func (h *hub) add(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.id] = s
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// broadcast pushes an event to every connected session. Failures are
// ignored: event delivery never affects engine state.
func (h *hub) broadcast(e log.Event) {
	h.mu.Lock()
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	resp := Response{Type: "notify", Event: eventView(e)}
	for _, s := range sessions {
		_ = s.send(context.Background(), resp)
	}
}

// broadcastLogger records events like a MemoryLogger and forwards each one
// to the hub.
type broadcastLogger struct {
	log.MemoryLogger
	hub *hub
}

func (l *broadcastLogger) Log(e log.Event) {
	l.MemoryLogger.Log(e)
	l.hub.broadcast(l.LastEvent())
}

var _ log.EventLogger = (*broadcastLogger)(nil)

// --- View builders ---

func cardView(c engine.Card) *CardView {
	v := &CardView{
		TokenID:        c.TokenID,
		Owner:          c.Owner,
		Name:           c.Name,
		TypeTag:        c.TypeTag,
		HP:             c.HP,
		Attack:         c.Attack,
		Defense:        c.Defense,
		Speed:          c.Speed,
		Rarity:         c.Rarity,
		EvolutionStage: c.EvolutionStage,
		IsActive:       c.IsActive,
		MintedAt:       c.MintedAt,
	}
	for _, m := range c.Moves {
		v.Moves = append(v.Moves, MoveSpec{
			Name:       m.Name,
			Category:   m.Category.String(),
			Power:      m.Power,
			Accuracy:   m.Accuracy,
			EnergyCost: m.EnergyCost,
		})
	}
	return v
}

func battleView(b engine.Battle) *BattleView {
	return &BattleView{
		BattleID:      b.ID,
		Player1:       b.Player1,
		Player2:       b.Player2,
		Player1Team:   b.Player1Team,
		Player2Team:   b.Player2Team,
		Status:        b.Status.String(),
		TurnNumber:    b.TurnNumber,
		CurrentPlayer: b.CurrentPlayer,
		CreatedAt:     b.CreatedAt,
		FinishedAt:    b.FinishedAt,
	}
}

func offerView(o engine.TradingOffer) *OfferView {
	return &OfferView{
		OfferID:        o.ID,
		Offerer:        o.Offerer,
		OfferedCards:   o.OfferedCards,
		RequestedCards: o.RequestedCards,
		TargetPlayer:   o.TargetPlayer,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
		ExpiresAt:      o.ExpiresAt,
	}
}

func playerView(p engine.Player) *PlayerView {
	return &PlayerView{
		ID:             p.ID,
		CardCount:      p.CardCount,
		ActiveBattleID: p.ActiveBattleID,
		Energy:         p.Energy,
		Wins:           p.Wins,
		Losses:         p.Losses,
	}
}

func eventView(e log.Event) *EventView {
	return &EventView{
		Seq:      e.Seq,
		Type:     e.Type.String(),
		Player:   e.Player,
		TokenID:  e.TokenID,
		BattleID: e.BattleID,
		OfferID:  e.OfferID,
		Card:     e.Card,
		Damage:   e.Damage,
		Details:  e.Details,
	}
}
