package engine

import "fmt"

// --- Enums ---

// BattleStatus is the battle state machine. Transitions are monotonic:
// Waiting → Active → Finished, or → Cancelled. Cancelled is reachable in the
// type but no operation currently produces it.
type BattleStatus int

const (
	BattleWaiting BattleStatus = iota
	BattleActive
	BattleFinished
	BattleCancelled
)

func (s BattleStatus) String() string {
	switch s {
	case BattleWaiting:
		return "Waiting"
	case BattleActive:
		return "Active"
	case BattleFinished:
		return "Finished"
	case BattleCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

type MoveCategory int

const (
	MovePhysical MoveCategory = iota
	MoveSpecial
	MoveStatus
)

func (c MoveCategory) String() string {
	switch c {
	case MovePhysical:
		return "Physical"
	case MoveSpecial:
		return "Special"
	case MoveStatus:
		return "Status"
	default:
		return "Unknown"
	}
}

// UnmarshalYAML accepts the category by name, so catalog files can say
// "Physical" instead of an enum ordinal.
func (c *MoveCategory) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	switch name {
	case "Physical":
		*c = MovePhysical
	case "Special":
		*c = MoveSpecial
	case "Status":
		*c = MoveStatus
	default:
		return fmt.Errorf("unknown move category %q", name)
	}
	return nil
}

// --- Move ---

// Move is a single attack or ability on a card. Moves are owned by exactly
// one card's move list and have no independent lifecycle.
type Move struct {
	Name        string       `yaml:"name"`
	TypeTag     uint8        `yaml:"type"`
	Category    MoveCategory `yaml:"category"`
	Power       uint64       `yaml:"power"`
	Accuracy    uint64       `yaml:"accuracy"`
	EnergyCost  uint64       `yaml:"energy_cost"`
	Description string       `yaml:"description"`
}

// --- Card ---

// CardSpec is the caller-supplied card definition for minting.
type CardSpec struct {
	Name           string `yaml:"name"`
	TypeTag        uint8  `yaml:"type"`
	HP             uint64 `yaml:"hp"`
	Attack         uint64 `yaml:"attack"`
	Defense        uint64 `yaml:"defense"`
	Speed          uint64 `yaml:"speed"`
	Rarity         uint8  `yaml:"rarity"`
	EvolutionStage uint8  `yaml:"evolution_stage"`
	EvolutionCost  uint64 `yaml:"evolution_cost"`
	Moves          []Move `yaml:"moves"`
	ImageURI       string `yaml:"image_uri"`
	Description    string `yaml:"description"`
}

// Card is a minted card. The stat block is immutable after minting; only
// Owner (through trades) and IsActive may change.
type Card struct {
	TokenID        uint64
	Owner          string
	Name           string
	TypeTag        uint8
	HP             uint64
	Attack         uint64
	Defense        uint64
	Speed          uint64
	Rarity         uint8
	EvolutionStage uint8
	EvolutionCost  uint64
	Moves          []Move
	ImageURI       string
	Description    string
	IsActive       bool
	MintedAt       int64 // unix seconds
}

// --- Player ---

// Player holds per-identity counters. Created lazily on first mint.
type Player struct {
	ID             string
	CardCount      uint64
	ActiveBattleID uint64 // 0 = not in a battle
	Energy         uint64
	Wins           uint64
	Losses         uint64
}

// --- Battle ---

// Battle is a turn-based combat between two players.
type Battle struct {
	ID            uint64
	Player1       string
	Player2       string // empty until joined
	Player1Team   []uint64
	Player2Team   []uint64
	Status        BattleStatus
	TurnNumber    uint64
	CurrentPlayer string
	CreatedAt     int64 // unix seconds
	FinishedAt    int64 // 0 until finished
}

// Opponent returns the other participant, or "" if id is not a participant.
func (b *Battle) Opponent(id string) string {
	switch id {
	case b.Player1:
		return b.Player2
	case b.Player2:
		return b.Player1
	default:
		return ""
	}
}

// MoveResult reports the outcome of a single executed move.
type MoveResult struct {
	Damage   uint64
	Finished bool
	Winner   string // set only when Finished
}

// --- TradingOffer ---

// TradingOffer is a card-exchange proposal. Once IsActive becomes false it
// never reverts to true.
type TradingOffer struct {
	ID             uint64
	Offerer        string
	OfferedCards   []uint64
	TargetPlayer   string // empty = public offer
	RequestedCards []uint64
	IsActive       bool
	CreatedAt      int64
	ExpiresAt      int64 // CreatedAt + offer expiration time
}
