package net

// Message types for the JSON protocol over WebSocket.
//
// Every connection starts with a "hello" request naming the player
// identity; authentication happens upstream of this server, which trusts
// the declared identity. Payment amounts on requests are already-settled
// funds reported by the payment layer.

// --- Client → Server messages ---

// Request is the envelope for all client-to-server messages.
type Request struct {
	Type string `json:"type"`

	// For "hello"
	Player string `json:"player,omitempty"`

	// For "mint_card": catalog card name
	Card    string `json:"card,omitempty"`
	Payment uint64 `json:"payment,omitempty"`

	// For battle operations
	BattleID   uint64   `json:"battle_id,omitempty"`
	Team       []uint64 `json:"team,omitempty"`
	MoveIndex  int      `json:"move_index,omitempty"`
	AttackerID uint64   `json:"attacker_id,omitempty"`
	DefenderID uint64   `json:"defender_id,omitempty"`

	// For trading operations
	OfferID   uint64   `json:"offer_id,omitempty"`
	Offered   []uint64 `json:"offered,omitempty"`
	Requested []uint64 `json:"requested,omitempty"`
	Target    string   `json:"target,omitempty"`

	// For "get_card" / "get_player"
	TokenID uint64 `json:"token_id,omitempty"`
	ID      string `json:"id,omitempty"`
}

// --- Server → Client messages ---

// Response is the envelope for all server-to-client messages.
type Response struct {
	Type string `json:"type"` // "session", "result", "error", "notify"

	// For "session"
	SessionID string `json:"session_id,omitempty"`
	Player    string `json:"player,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "result"
	Card   *CardView   `json:"card,omitempty"`
	Battle *BattleView `json:"battle,omitempty"`
	Offer  *OfferView  `json:"offer,omitempty"`
	Status *PlayerView `json:"player_state,omitempty"`
	Move   *MoveView   `json:"move,omitempty"`
	Totals *TotalsView `json:"totals,omitempty"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`
}

// CardView is the JSON representation of a minted card.
type CardView struct {
	TokenID        uint64     `json:"token_id"`
	Owner          string     `json:"owner"`
	Name           string     `json:"name"`
	TypeTag        uint8      `json:"type"`
	HP             uint64     `json:"hp"`
	Attack         uint64     `json:"attack"`
	Defense        uint64     `json:"defense"`
	Speed          uint64     `json:"speed"`
	Rarity         uint8      `json:"rarity"`
	EvolutionStage uint8      `json:"evolution_stage"`
	Moves          []MoveSpec `json:"moves,omitempty"`
	IsActive       bool       `json:"is_active"`
	MintedAt       int64      `json:"minted_at"`
}

// MoveSpec describes one move on a card.
type MoveSpec struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Power      uint64 `json:"power"`
	Accuracy   uint64 `json:"accuracy"`
	EnergyCost uint64 `json:"energy_cost"`
}

// BattleView is the JSON representation of a battle.
type BattleView struct {
	BattleID      uint64   `json:"battle_id"`
	Player1       string   `json:"player1"`
	Player2       string   `json:"player2,omitempty"`
	Player1Team   []uint64 `json:"player1_team"`
	Player2Team   []uint64 `json:"player2_team,omitempty"`
	Status        string   `json:"status"`
	TurnNumber    uint64   `json:"turn_number"`
	CurrentPlayer string   `json:"current_player"`
	CreatedAt     int64    `json:"created_at"`
	FinishedAt    int64    `json:"finished_at,omitempty"`
}

// OfferView is the JSON representation of a trading offer.
type OfferView struct {
	OfferID        uint64   `json:"offer_id"`
	Offerer        string   `json:"offerer"`
	OfferedCards   []uint64 `json:"offered_cards"`
	RequestedCards []uint64 `json:"requested_cards"`
	TargetPlayer   string   `json:"target_player,omitempty"`
	IsActive       bool     `json:"is_active"`
	CreatedAt      int64    `json:"created_at"`
	ExpiresAt      int64    `json:"expires_at"`
}

// PlayerView is the JSON representation of a player record.
type PlayerView struct {
	ID             string `json:"id"`
	CardCount      uint64 `json:"card_count"`
	ActiveBattleID uint64 `json:"active_battle_id"`
	Energy         uint64 `json:"energy"`
	Wins           uint64 `json:"wins"`
	Losses         uint64 `json:"losses"`
}

// MoveView reports the outcome of an executed move.
type MoveView struct {
	Damage   uint64 `json:"damage"`
	Finished bool   `json:"finished"`
	Winner   string `json:"winner,omitempty"`
}

// TotalsView reports the process-wide counters.
type TotalsView struct {
	CardsMinted uint64 `json:"cards_minted"`
	Battles     uint64 `json:"battles"`
	Trades      uint64 `json:"trades"`
}

// EventView is a pushed engine event.
type EventView struct {
	Seq      int    `json:"seq"`
	Type     string `json:"type"`
	Player   string `json:"player,omitempty"`
	TokenID  uint64 `json:"token_id,omitempty"`
	BattleID uint64 `json:"battle_id,omitempty"`
	OfferID  uint64 `json:"offer_id,omitempty"`
	Card     string `json:"card,omitempty"`
	Damage   uint64 `json:"damage,omitempty"`
	Details  string `json:"details"`
}
