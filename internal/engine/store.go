package engine

import "time"

// Counter identifies a process-wide monotonic sequence. Each counter is the
// next-id generator for its entity kind; it only ever increases.
type Counter int

const (
	CounterCards Counter = iota
	CounterBattles
	CounterTrades
)

func (c Counter) String() string {
	switch c {
	case CounterCards:
		return "cards"
	case CounterBattles:
		return "battles"
	case CounterTrades:
		return "trades"
	default:
		return "unknown"
	}
}

// Store is the record-store contract the engine consumes. Records are
// passed by value; implementations must not share mutable state with the
// caller. Absent records are reported as ErrNotFound.
//
// NextID returns the current counter value and advances it. The engine only
// calls NextID after every guard has passed, so ids are gap-free and failed
// operations never advance a counter.
type Store interface {
	GetPlayer(id string) (Player, error)
	PutPlayer(p Player) error

	GetCard(tokenID uint64) (Card, error)
	PutCard(c Card) error

	GetBattle(battleID uint64) (Battle, error)
	PutBattle(b Battle) error

	GetOffer(offerID uint64) (TradingOffer, error)
	PutOffer(o TradingOffer) error

	NextID(c Counter) (uint64, error)
	Counter(c Counter) (uint64, error)
}

// Clock supplies the current timestamp in unix seconds. Monotonic
// non-decreasing; seconds resolution is sufficient for every deadline the
// engine evaluates.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().Unix() }
