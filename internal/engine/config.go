package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EconomyConfig holds the global tunable parameters. It is set once at
// bootstrap and never mutated afterwards.
type EconomyConfig struct {
	MintPrice           uint64 `yaml:"mint_price"`
	BattleReward        uint64 `yaml:"battle_reward"`
	TradingFee          uint64 `yaml:"trading_fee"`
	MaxCardsPerPlayer   uint64 `yaml:"max_cards_per_player"`
	MaxBattleDuration   int64  `yaml:"max_battle_duration"` // seconds
	MaxEnergy           uint64 `yaml:"max_energy"`
	EnergyPerTurn       uint64 `yaml:"energy_per_turn"`
	OfferExpirationTime int64  `yaml:"offer_expiration_time"` // seconds
}

// DefaultEconomyConfig returns the bootstrap defaults.
func DefaultEconomyConfig() EconomyConfig {
	return EconomyConfig{
		MintPrice:           1000000,
		BattleReward:        500000,
		TradingFee:          100000,
		MaxCardsPerPlayer:   1000,
		MaxBattleDuration:   3600,   // 1 hour
		MaxEnergy:           100,
		EnergyPerTurn:       10,
		OfferExpirationTime: 604800, // 7 days
	}
}

// LoadEconomyConfig parses an economy YAML file.
func LoadEconomyConfig(path string) (EconomyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EconomyConfig{}, err
	}

	cfg := DefaultEconomyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EconomyConfig{}, fmt.Errorf("parse economy YAML: %w", err)
	}
	if cfg.MaxBattleDuration < 0 || cfg.OfferExpirationTime < 0 {
		return EconomyConfig{}, fmt.Errorf("economy durations must be non-negative")
	}
	return cfg, nil
}
