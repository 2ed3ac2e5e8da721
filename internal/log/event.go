package log

// EventType enumerates all observable engine events.
type EventType int

const (
	EventInitialized EventType = iota
	EventCardMinted
	EventBattleCreated
	EventBattleJoined
	EventBattleStarted
	EventMoveExecuted
	EventBattleFinished
	EventTradingOfferCreated
	EventTradingOfferAccepted
)

func (e EventType) String() string {
	switch e {
	case EventInitialized:
		return "Initialized"
	case EventCardMinted:
		return "CardMinted"
	case EventBattleCreated:
		return "BattleCreated"
	case EventBattleJoined:
		return "BattleJoined"
	case EventBattleStarted:
		return "BattleStarted"
	case EventMoveExecuted:
		return "MoveExecuted"
	case EventBattleFinished:
		return "BattleFinished"
	case EventTradingOfferCreated:
		return "TradingOfferCreated"
	case EventTradingOfferAccepted:
		return "TradingOfferAccepted"
	default:
		return "Unknown"
	}
}

// Event represents a single observable event in the engine.
// Delivery is fire-and-forget: engine state never depends on an event
// having been observed.
type Event struct {
	Seq      int       // monotonic sequence number, assigned by the logger
	Type     EventType // event type
	Player   string    // acting identity (if applicable)
	TokenID  uint64    // card token id (if applicable)
	BattleID uint64    // battle id (if applicable)
	OfferID  uint64    // trading offer id (if applicable)
	Card     string    // card or move name (if applicable)
	Damage   uint64    // damage dealt (MoveExecuted only)
	Details  string    // human-readable detail string
}
