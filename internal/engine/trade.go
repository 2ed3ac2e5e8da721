package engine

import "github.com/peterkuimelis/mintarena/internal/log"

// CreateOffer opens a trading offer. Both card lists must be non-empty and
// the payment must cover the trading fee. An empty target means the offer
// is public: any identity may accept it.
func (e *Engine) CreateOffer(offerer string, offered, requested []uint64, target string, payment uint64) (TradingOffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.config()
	if err != nil {
		return TradingOffer{}, err
	}

	if payment < cfg.TradingFee {
		return TradingOffer{}, ErrInsufficientPayment
	}
	if len(offered) == 0 || len(requested) == 0 {
		return TradingOffer{}, ErrInvalidTradingOffer
	}

	offerID, err := e.store.NextID(CounterTrades)
	if err != nil {
		return TradingOffer{}, err
	}

	now := e.clock.Now()
	offer := TradingOffer{
		ID:             offerID,
		Offerer:        offerer,
		OfferedCards:   append([]uint64(nil), offered...),
		TargetPlayer:   target,
		RequestedCards: append([]uint64(nil), requested...),
		IsActive:       true,
		CreatedAt:      now,
		ExpiresAt:      now + cfg.OfferExpirationTime,
	}
	if err := e.store.PutOffer(offer); err != nil {
		return TradingOffer{}, err
	}

	e.logger.Log(log.NewTradingOfferCreatedEvent(offer.ID, offer.Offerer, offer.TargetPlayer))
	return offer, nil
}

// AcceptOffer settles a trading offer. The offer must be active, not yet
// expired (now == expires_at still succeeds), paid for, and either public
// or targeted at the accepter.
//
// Acceptance only deactivates the offer; the card exchange itself is the
// caller's responsibility via TransferOwnership.
func (e *Engine) AcceptOffer(offerID uint64, accepter string, payment uint64) (TradingOffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.config()
	if err != nil {
		return TradingOffer{}, err
	}

	offer, err := e.store.GetOffer(offerID)
	if err != nil {
		return TradingOffer{}, err
	}
	if !offer.IsActive {
		return TradingOffer{}, ErrOfferNotActive
	}
	if e.clock.Now() > offer.ExpiresAt {
		return TradingOffer{}, ErrOfferExpired
	}
	if payment < cfg.TradingFee {
		return TradingOffer{}, ErrInsufficientPayment
	}
	if offer.TargetPlayer != "" && offer.TargetPlayer != accepter {
		return TradingOffer{}, ErrOfferNotTargetedToYou
	}

	offer.IsActive = false
	if err := e.store.PutOffer(offer); err != nil {
		return TradingOffer{}, err
	}

	e.logger.Log(log.NewTradingOfferAcceptedEvent(offer.ID, accepter))
	return offer, nil
}

// GetOffer returns the trading offer with the given id, or ErrNotFound.
func (e *Engine) GetOffer(offerID uint64) (TradingOffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetOffer(offerID)
}
