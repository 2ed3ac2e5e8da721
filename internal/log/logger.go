package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for recording engine events.
type EventLogger interface {
	Log(event Event)
	Events() []Event
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []Event
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []Event {
	var result []Event
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() Event {
	events := l.Events()
	if len(events) == 0 {
		return Event{}
	}
	return events[len(events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event Event) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e Event) string {
	name := e.Type.String()
	// Pad event name to 20 chars for alignment
	for len(name) < 20 {
		name += " "
	}
	return fmt.Sprintf("%s| %s", name, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for engine events ---

func NewInitializedEvent() Event {
	return Event{
		Type:    EventInitialized,
		Details: "engine initialized with default economy",
	}
}

func NewCardMintedEvent(tokenID uint64, owner, name string, typeTag, rarity uint8) Event {
	return Event{
		Type:    EventCardMinted,
		Player:  owner,
		TokenID: tokenID,
		Card:    name,
		Details: fmt.Sprintf("%s mints %s (token %d, type %d, rarity %d)", owner, name, tokenID, typeTag, rarity),
	}
}

func NewBattleCreatedEvent(battleID uint64, player1 string) Event {
	return Event{
		Type:     EventBattleCreated,
		Player:   player1,
		BattleID: battleID,
		Details:  fmt.Sprintf("%s opens battle %d", player1, battleID),
	}
}

func NewBattleJoinedEvent(battleID uint64, player2 string) Event {
	return Event{
		Type:     EventBattleJoined,
		Player:   player2,
		BattleID: battleID,
		Details:  fmt.Sprintf("%s joins battle %d", player2, battleID),
	}
}

func NewBattleStartedEvent(battleID uint64) Event {
	return Event{
		Type:     EventBattleStarted,
		BattleID: battleID,
		Details:  fmt.Sprintf("battle %d started", battleID),
	}
}

func NewMoveExecutedEvent(battleID uint64, player, moveName string, damage uint64) Event {
	return Event{
		Type:     EventMoveExecuted,
		Player:   player,
		BattleID: battleID,
		Card:     moveName,
		Damage:   damage,
		Details:  fmt.Sprintf("%s uses %s for %d damage in battle %d", player, moveName, damage, battleID),
	}
}

func NewBattleFinishedEvent(battleID uint64, winner string) Event {
	return Event{
		Type:     EventBattleFinished,
		Player:   winner,
		BattleID: battleID,
		Details:  fmt.Sprintf("battle %d finished, winner %s", battleID, winner),
	}
}

func NewTradingOfferCreatedEvent(offerID uint64, offerer string, target string) Event {
	details := fmt.Sprintf("%s opens public offer %d", offerer, offerID)
	if target != "" {
		details = fmt.Sprintf("%s opens offer %d for %s", offerer, offerID, target)
	}
	return Event{
		Type:    EventTradingOfferCreated,
		Player:  offerer,
		OfferID: offerID,
		Details: details,
	}
}

func NewTradingOfferAcceptedEvent(offerID uint64, accepter string) Event {
	return Event{
		Type:    EventTradingOfferAccepted,
		Player:  accepter,
		OfferID: offerID,
		Details: fmt.Sprintf("%s accepts offer %d", accepter, offerID),
	}
}
