package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/peterkuimelis/mintarena/internal/catalog"
	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
	"github.com/peterkuimelis/mintarena/internal/net"
	"github.com/peterkuimelis/mintarena/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe()
	case "demo":
		err = runDemo()
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  mintarena serve    Run the WebSocket server (configured via env)")
	fmt.Println("  mintarena demo     Run a scripted in-memory session and print events")
	fmt.Println()
	fmt.Println("serve environment:")
	fmt.Println("  MINTARENA_ADDR     listen address (default :8080)")
	fmt.Println("  MINTARENA_CATALOG  card catalog YAML file (default cards.yaml)")
	fmt.Println("  MINTARENA_DB       SQLite database path (empty for in-memory)")
	fmt.Println("  MINTARENA_ECONOMY  economy config YAML file (empty for defaults)")
}

// serveConfig is populated from the environment.
type serveConfig struct {
	Addr        string `env:"MINTARENA_ADDR" envDefault:":8080"`
	CatalogFile string `env:"MINTARENA_CATALOG" envDefault:"cards.yaml"`
	DBPath      string `env:"MINTARENA_DB"`
	EconomyFile string `env:"MINTARENA_ECONOMY"`
}

func runServe() error {
	var cfg serveConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	var st engine.Store
	if cfg.DBPath != "" {
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		st = db
	} else {
		st = store.NewMemory()
	}

	econ := engine.DefaultEconomyConfig()
	if cfg.EconomyFile != "" {
		econ, err = engine.LoadEconomyConfig(cfg.EconomyFile)
		if err != nil {
			return err
		}
	}

	srv, err := net.NewServer(st, cat, econ)
	if err != nil {
		return err
	}

	fmt.Printf("mintarena listening on %s (catalog: %d cards)\n", cfg.Addr, cat.Len())
	return srv.ListenAndServe(cfg.Addr)
}

// runDemo plays out a short session against an in-memory engine: two
// players mint cards, fight one battle to the end, then trade.
func runDemo() error {
	econ := engine.DefaultEconomyConfig()
	eng := engine.New(engine.Config{
		Store:  store.NewMemory(),
		Logger: log.NewTextLogger(os.Stdout),
	})
	if err := eng.InitializeWith(econ); err != nil {
		return err
	}

	// Fresh players hold zero energy, so the demo decks carry free moves.
	strike := engine.Move{Name: "Strike", Category: engine.MovePhysical, Power: 60, Accuracy: 100, EnergyCost: 0}
	nova := engine.Move{Name: "Nova", Category: engine.MoveSpecial, Power: 250, Accuracy: 70, EnergyCost: 0}

	ember, err := eng.MintCard("alice", engine.CardSpec{
		Name: "Emberling", HP: 120, Attack: 80, Defense: 40, Speed: 70,
		Rarity: 2, Moves: []engine.Move{strike, nova},
	}, econ.MintPrice)
	if err != nil {
		return err
	}

	pebble, err := eng.MintCard("bob", engine.CardSpec{
		Name: "Pebblor", HP: 150, Attack: 60, Defense: 60, Speed: 40,
		Rarity: 1, Moves: []engine.Move{strike},
	}, econ.MintPrice)
	if err != nil {
		return err
	}

	battle, err := eng.CreateBattle("alice", []uint64{ember.TokenID}, econ.BattleReward)
	if err != nil {
		return err
	}
	if _, err := eng.JoinBattle(battle.ID, "bob", []uint64{pebble.TokenID}); err != nil {
		return err
	}

	// One exchange of strikes, then Emberling's Nova ends it.
	if _, err := eng.ExecuteMove(battle.ID, "alice", 0, ember.TokenID, pebble.TokenID); err != nil {
		return err
	}
	if _, err := eng.ExecuteMove(battle.ID, "bob", 0, pebble.TokenID, ember.TokenID); err != nil {
		return err
	}
	result, err := eng.ExecuteMove(battle.ID, "alice", 1, ember.TokenID, pebble.TokenID)
	if err != nil {
		return err
	}
	if !result.Finished {
		return fmt.Errorf("expected battle %d to finish", battle.ID)
	}

	offer, err := eng.CreateOffer("alice", []uint64{ember.TokenID}, []uint64{pebble.TokenID}, "bob", econ.TradingFee)
	if err != nil {
		return err
	}
	if _, err := eng.AcceptOffer(offer.ID, "bob", econ.TradingFee); err != nil {
		return err
	}

	cards, battles, trades, err := eng.Totals()
	if err != nil {
		return err
	}
	fmt.Printf("\ntotals: %d cards minted, %d battles, %d trades\n", cards, battles, trades)
	return nil
}
