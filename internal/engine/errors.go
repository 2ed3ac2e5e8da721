package engine

import "errors"

// All rule violations and structural failures are named error values,
// surfaced to the caller verbatim. Every failure aborts the whole operation
// with no partial writes.
var (
	ErrAlreadyInitialized    = errors.New("already initialized")
	ErrNotInitialized        = errors.New("engine not initialized")
	ErrInsufficientPayment   = errors.New("insufficient payment")
	ErrMaxCardsExceeded      = errors.New("max cards per player exceeded")
	ErrPlayerAlreadyInBattle = errors.New("player already in active battle")
	ErrInvalidTeamSize       = errors.New("invalid team size")
	ErrBattleNotAvailable    = errors.New("battle not available")
	ErrBattleNotActive       = errors.New("battle not active")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrBattleTimeout         = errors.New("battle timeout")
	ErrInvalidMove           = errors.New("invalid move")
	ErrInsufficientEnergy    = errors.New("insufficient energy")
	ErrInvalidTradingOffer   = errors.New("invalid trading offer")
	ErrOfferNotActive        = errors.New("offer not active")
	ErrOfferExpired          = errors.New("offer expired")
	ErrOfferNotTargetedToYou = errors.New("offer not targeted to you")
	ErrNotFound              = errors.New("record not found")
)
