package engine

import "github.com/peterkuimelis/mintarena/internal/log"

// MintCard mints a new card for owner from the given spec. The payment
// amount is already-settled funds supplied by the caller; the engine only
// compares it against the mint price.
//
// The token id is the card counter's current value. The counter advances
// only on success, so token ids are gap-free and never reused even across
// rejected attempts.
func (e *Engine) MintCard(owner string, spec CardSpec, payment uint64) (Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.config()
	if err != nil {
		return Card{}, err
	}

	player, _, err := e.playerOrZero(owner)
	if err != nil {
		return Card{}, err
	}

	if payment < cfg.MintPrice {
		return Card{}, ErrInsufficientPayment
	}
	if !canMint(player, cfg) {
		return Card{}, ErrMaxCardsExceeded
	}

	tokenID, err := e.store.NextID(CounterCards)
	if err != nil {
		return Card{}, err
	}

	card := Card{
		TokenID:        tokenID,
		Owner:          owner,
		Name:           spec.Name,
		TypeTag:        spec.TypeTag,
		HP:             spec.HP,
		Attack:         spec.Attack,
		Defense:        spec.Defense,
		Speed:          spec.Speed,
		Rarity:         spec.Rarity,
		EvolutionStage: spec.EvolutionStage,
		EvolutionCost:  spec.EvolutionCost,
		Moves:          append([]Move(nil), spec.Moves...),
		ImageURI:       spec.ImageURI,
		Description:    spec.Description,
		IsActive:       true,
		MintedAt:       e.clock.Now(),
	}
	if err := e.store.PutCard(card); err != nil {
		return Card{}, err
	}

	player.CardCount++
	if err := e.store.PutPlayer(player); err != nil {
		return Card{}, err
	}

	e.logger.Log(log.NewCardMintedEvent(card.TokenID, card.Owner, card.Name, card.TypeTag, card.Rarity))
	return card, nil
}

// GetCard returns the card with the given token id, or ErrNotFound.
func (e *Engine) GetCard(tokenID uint64) (Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetCard(tokenID)
}

// TransferOwnership reassigns a card to a new owner. Unconditional: the
// caller is responsible for having authorized the transfer (the trading
// engine invokes this once an accepted offer is settled).
func (e *Engine) TransferOwnership(tokenID uint64, newOwner string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	card, err := e.store.GetCard(tokenID)
	if err != nil {
		return err
	}
	card.Owner = newOwner
	return e.store.PutCard(card)
}
