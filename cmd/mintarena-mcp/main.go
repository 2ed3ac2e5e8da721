package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/mintarena/internal/catalog"
	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
	mintmcp "github.com/peterkuimelis/mintarena/internal/mcp"
	"github.com/peterkuimelis/mintarena/internal/store"
)

func main() {
	catalogFile := flag.String("catalog", "cards.yaml", "path to card catalog YAML file")
	dbPath := flag.String("db", "", "SQLite database path (empty for in-memory state)")
	economyFile := flag.String("economy", "", "economy config YAML file (empty for defaults)")
	flag.Parse()

	cat, err := catalog.Load(*catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var st engine.Store
	if *dbPath != "" {
		db, err := store.OpenSQLite(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		st = db
	} else {
		st = store.NewMemory()
	}

	econ := engine.DefaultEconomyConfig()
	if *economyFile != "" {
		econ, err = engine.LoadEconomyConfig(*economyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger := log.NewMemoryLogger()
	eng := engine.New(engine.Config{Store: st, Logger: logger})
	if err := eng.InitializeWith(econ); err != nil && !errors.Is(err, engine.ErrAlreadyInitialized) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mintmcp.Setup(eng, cat, logger)

	s := server.NewMCPServer("mintarena", "1.0.0")
	mintmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
