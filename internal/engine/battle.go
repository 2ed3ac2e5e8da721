package engine

import "github.com/peterkuimelis/mintarena/internal/log"

// CreateBattle opens a battle in the Waiting state with player1's team.
// Team size must be 1-6 token ids. The payment amount must cover the battle
// reward stake.
func (e *Engine) CreateBattle(player1 string, team []uint64, payment uint64) (Battle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.config()
	if err != nil {
		return Battle{}, err
	}

	if payment < cfg.BattleReward {
		return Battle{}, ErrInsufficientPayment
	}

	player, _, err := e.playerOrZero(player1)
	if err != nil {
		return Battle{}, err
	}
	if player.ActiveBattleID != 0 {
		return Battle{}, ErrPlayerAlreadyInBattle
	}
	if len(team) == 0 || len(team) > 6 {
		return Battle{}, ErrInvalidTeamSize
	}

	// Guards done; the counter may advance now.
	battleID, err := e.store.NextID(CounterBattles)
	if err != nil {
		return Battle{}, err
	}
	player.ActiveBattleID = battleID

	battle := Battle{
		ID:            battleID,
		Player1:       player1,
		Player1Team:   append([]uint64(nil), team...),
		Status:        BattleWaiting,
		TurnNumber:    0,
		CurrentPlayer: player1,
		CreatedAt:     e.clock.Now(),
		FinishedAt:    0,
	}
	if err := e.store.PutBattle(battle); err != nil {
		return Battle{}, err
	}
	if err := e.store.PutPlayer(player); err != nil {
		return Battle{}, err
	}

	e.logger.Log(log.NewBattleCreatedEvent(battle.ID, battle.Player1))
	return battle, nil
}

// JoinBattle fills the second seat of a Waiting battle and activates it.
func (e *Engine) JoinBattle(battleID uint64, player2 string, team []uint64) (Battle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.config(); err != nil {
		return Battle{}, err
	}

	battle, err := e.store.GetBattle(battleID)
	if err != nil {
		return Battle{}, err
	}
	if battle.Status != BattleWaiting {
		return Battle{}, ErrBattleNotAvailable
	}

	player, _, err := e.playerOrZero(player2)
	if err != nil {
		return Battle{}, err
	}
	if err := enterBattle(&player, battle.ID); err != nil {
		return Battle{}, err
	}
	if len(team) == 0 || len(team) > 6 {
		return Battle{}, ErrInvalidTeamSize
	}

	battle.Player2 = player2
	battle.Player2Team = append([]uint64(nil), team...)
	battle.Status = BattleActive

	if err := e.store.PutBattle(battle); err != nil {
		return Battle{}, err
	}
	if err := e.store.PutPlayer(player); err != nil {
		return Battle{}, err
	}

	e.logger.Log(log.NewBattleJoinedEvent(battle.ID, player2))
	e.logger.Log(log.NewBattleStartedEvent(battle.ID))
	return battle, nil
}

// ExecuteMove resolves one attack in an Active battle. The actor must hold
// the turn, the move index must exist on the attacker card, and the actor
// must have the energy to pay for it.
//
// When the defender card's HP is exhausted the battle transitions to
// Finished; win/loss bookkeeping and active-battle release are left to the
// caller (RecordOutcome, ExitBattle). Otherwise the turn passes to the
// opponent.
func (e *Engine) ExecuteMove(battleID uint64, actor string, moveIndex int, attackerID, defenderID uint64) (MoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg, err := e.config()
	if err != nil {
		return MoveResult{}, err
	}

	battle, err := e.store.GetBattle(battleID)
	if err != nil {
		return MoveResult{}, err
	}
	if battle.Status != BattleActive {
		return MoveResult{}, ErrBattleNotActive
	}
	if battle.CurrentPlayer != actor {
		return MoveResult{}, ErrNotYourTurn
	}

	// Lazy timeout check: no background timer exists, and the battle is not
	// auto-transitioned to a terminal state here.
	now := e.clock.Now()
	if now > battle.CreatedAt+cfg.MaxBattleDuration {
		return MoveResult{}, ErrBattleTimeout
	}

	attacker, err := e.store.GetCard(attackerID)
	if err != nil {
		return MoveResult{}, err
	}
	defender, err := e.store.GetCard(defenderID)
	if err != nil {
		return MoveResult{}, err
	}

	if moveIndex < 0 || moveIndex >= len(attacker.Moves) {
		return MoveResult{}, ErrInvalidMove
	}
	mv := attacker.Moves[moveIndex]

	player, err := e.store.GetPlayer(actor)
	if err != nil {
		return MoveResult{}, err
	}
	if err := spendEnergy(&player, mv.EnergyCost); err != nil {
		return MoveResult{}, err
	}
	if err := e.store.PutPlayer(player); err != nil {
		return MoveResult{}, err
	}

	damage := calculateDamage(attacker, defender, mv)
	e.logger.Log(log.NewMoveExecutedEvent(battle.ID, actor, mv.Name, damage))

	if damage >= defender.HP {
		battle.Status = BattleFinished
		battle.FinishedAt = now
		if err := e.store.PutBattle(battle); err != nil {
			return MoveResult{}, err
		}
		e.logger.Log(log.NewBattleFinishedEvent(battle.ID, actor))
		return MoveResult{Damage: damage, Finished: true, Winner: actor}, nil
	}

	battle.CurrentPlayer = battle.Opponent(actor)
	battle.TurnNumber++
	if err := e.store.PutBattle(battle); err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Damage: damage}, nil
}

// GetBattle returns the battle with the given id, or ErrNotFound.
func (e *Engine) GetBattle(battleID uint64) (Battle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetBattle(battleID)
}

// calculateDamage computes attack damage. Always at least 1, even for a
// zero-power move against a heavy defender.
func calculateDamage(attacker, defender Card, mv Move) uint64 {
	damage := mv.Power * attacker.Attack / (defender.Defense + 50)
	if damage == 0 {
		return 1
	}
	return damage
}
