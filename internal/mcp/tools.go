// Package mcp exposes the engine operations as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/mintarena/internal/catalog"
	"github.com/peterkuimelis/mintarena/internal/engine"
	"github.com/peterkuimelis/mintarena/internal/log"
)

// Package-level singletons (one engine per stdio process), set by Setup.
var (
	activeEngine *engine.Engine
	cardCatalog  *catalog.Catalog
	eventLog     *log.MemoryLogger
	eventCursor  int
)

// Setup wires the engine, catalog, and event log used by all tool handlers.
func Setup(eng *engine.Engine, cat *catalog.Catalog, logger *log.MemoryLogger) {
	activeEngine = eng
	cardCatalog = cat
	eventLog = logger
	eventCursor = 0
}

// RegisterTools adds all engine tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(mintCardTool(), handleMintCard)
	s.AddTool(createBattleTool(), handleCreateBattle)
	s.AddTool(joinBattleTool(), handleJoinBattle)
	s.AddTool(executeMoveTool(), handleExecuteMove)
	s.AddTool(createOfferTool(), handleCreateOffer)
	s.AddTool(acceptOfferTool(), handleAcceptOffer)
	s.AddTool(getStateTool(), handleGetState)
}

// --- Tool definitions ---

func mintCardTool() mcp.Tool {
	return mcp.NewTool("mint_card",
		mcp.WithDescription("Mint a new card from the catalog for a player. Payment must cover the mint price."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Player identity to mint for")),
		mcp.WithString("card", mcp.Required(), mcp.Description("Catalog card name (see get_state for the catalog)")),
		mcp.WithNumber("payment", mcp.Required(), mcp.Description("Payment amount in base units")),
	)
}

func createBattleTool() mcp.Tool {
	return mcp.NewTool("create_battle",
		mcp.WithDescription("Create a battle waiting for an opponent. The creator's team is 1-6 card token ids."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Creator identity")),
		mcp.WithString("team", mcp.Required(), mcp.Description("Space-separated card token ids (e.g. '0 1 2')")),
		mcp.WithNumber("payment", mcp.Required(), mcp.Description("Payment amount in base units")),
	)
}

func joinBattleTool() mcp.Tool {
	return mcp.NewTool("join_battle",
		mcp.WithDescription("Join a waiting battle as the second player. Starts the battle."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Joiner identity")),
		mcp.WithNumber("battle_id", mcp.Required(), mcp.Description("Battle id to join")),
		mcp.WithString("team", mcp.Required(), mcp.Description("Space-separated card token ids (e.g. '3 4')")),
	)
}

func executeMoveTool() mcp.Tool {
	return mcp.NewTool("execute_move",
		mcp.WithDescription("Execute one move in an active battle. Only the current player may move. "+
			"Reports damage dealt and whether the battle finished."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Acting player identity")),
		mcp.WithNumber("battle_id", mcp.Required(), mcp.Description("Battle id")),
		mcp.WithNumber("move_index", mcp.Required(), mcp.Description("0-based index into the attacker card's move list")),
		mcp.WithNumber("attacker_id", mcp.Required(), mcp.Description("Token id of the attacking card")),
		mcp.WithNumber("defender_id", mcp.Required(), mcp.Description("Token id of the defending card")),
	)
}

func createOfferTool() mcp.Tool {
	return mcp.NewTool("create_trading_offer",
		mcp.WithDescription("Create a trading offer. Payment must cover the trading fee. "+
			"Leave target empty for a public offer anyone may accept."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Offerer identity")),
		mcp.WithString("offered", mcp.Required(), mcp.Description("Space-separated token ids offered")),
		mcp.WithString("requested", mcp.Required(), mcp.Description("Space-separated token ids requested in return")),
		mcp.WithString("target", mcp.Description("Target player identity, or empty for a public offer")),
		mcp.WithNumber("payment", mcp.Required(), mcp.Description("Payment amount in base units")),
	)
}

func acceptOfferTool() mcp.Tool {
	return mcp.NewTool("accept_trading_offer",
		mcp.WithDescription("Accept an active, unexpired trading offer. Payment must cover the trading fee."),
		mcp.WithString("player", mcp.Required(), mcp.Description("Accepter identity")),
		mcp.WithNumber("offer_id", mcp.Required(), mcp.Description("Offer id to accept")),
		mcp.WithNumber("payment", mcp.Required(), mcp.Description("Payment amount in base units")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get global counters, the card catalog, new events since the last call, and "+
			"optionally one player, battle, or offer. Read-only."),
		mcp.WithString("player", mcp.Description("Player identity to include, if any")),
		mcp.WithNumber("battle_id", mcp.Description("Battle id to include, if any (-1 to omit)")),
		mcp.WithNumber("offer_id", mcp.Description("Offer id to include, if any (-1 to omit)")),
	)
}

// --- Tool handlers ---

func handleMintCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	player := request.GetString("player", "")
	name := request.GetString("card", "")
	payment := uint64(request.GetInt("payment", 0))

	spec, ok := cardCatalog.Lookup(name)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown catalog card %q. Available: %s", name, strings.Join(cardCatalog.Names(), ", ")), nil
	}

	card, err := activeEngine.MintCard(player, spec, payment)
	if err != nil {
		return mcp.NewToolResultErrorf("Mint failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(card)), nil
}

func handleCreateBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	player := request.GetString("player", "")
	team, err := parseTokenIDs(request.GetString("team", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid team: %v", err), nil
	}
	payment := uint64(request.GetInt("payment", 0))

	battle, err := activeEngine.CreateBattle(player, team, payment)
	if err != nil {
		return mcp.NewToolResultErrorf("Create battle failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(battle)), nil
}

func handleJoinBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	player := request.GetString("player", "")
	battleID := uint64(request.GetInt("battle_id", 0))
	team, err := parseTokenIDs(request.GetString("team", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid team: %v", err), nil
	}

	battle, err := activeEngine.JoinBattle(battleID, player, team)
	if err != nil {
		return mcp.NewToolResultErrorf("Join battle failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(battle)), nil
}

func handleExecuteMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	player := request.GetString("player", "")
	battleID := uint64(request.GetInt("battle_id", 0))
	moveIndex := request.GetInt("move_index", -1)
	attackerID := uint64(request.GetInt("attacker_id", 0))
	defenderID := uint64(request.GetInt("defender_id", 0))

	result, err := activeEngine.ExecuteMove(battleID, player, moveIndex, attackerID, defenderID)
	if err != nil {
		return mcp.NewToolResultErrorf("Execute move failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(result)), nil
}

func handleCreateOffer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	player := request.GetString("player", "")
	offered, err := parseTokenIDs(request.GetString("offered", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid offered list: %v", err), nil
	}
	requested, err := parseTokenIDs(request.GetString("requested", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid requested list: %v", err), nil
	}
	target := request.GetString("target", "")
	payment := uint64(request.GetInt("payment", 0))

	offer, err := activeEngine.CreateOffer(player, offered, requested, target, payment)
	if err != nil {
		return mcp.NewToolResultErrorf("Create offer failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(offer)), nil
}

func handleAcceptOffer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	player := request.GetString("player", "")
	offerID := uint64(request.GetInt("offer_id", 0))
	payment := uint64(request.GetInt("payment", 0))

	offer, err := activeEngine.AcceptOffer(offerID, player, payment)
	if err != nil {
		return mcp.NewToolResultErrorf("Accept offer failed: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(offer)), nil
}

// stateResponse is the get_state payload.
type stateResponse struct {
	CardsMinted uint64               `json:"cards_minted"`
	Battles     uint64               `json:"battles"`
	Trades      uint64               `json:"trades"`
	Catalog     []string             `json:"catalog"`
	Player      *engine.Player       `json:"player,omitempty"`
	Battle      *engine.Battle       `json:"battle,omitempty"`
	Offer       *engine.TradingOffer `json:"offer,omitempty"`
	Events      []string             `json:"events"`
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeEngine == nil {
		return mcp.NewToolResultError("Engine is not configured."), nil
	}

	cards, battles, trades, err := activeEngine.Totals()
	if err != nil {
		return mcp.NewToolResultErrorf("Read totals failed: %v", err), nil
	}

	resp := &stateResponse{
		CardsMinted: cards,
		Battles:     battles,
		Trades:      trades,
		Catalog:     cardCatalog.Names(),
		Events:      drainEvents(),
	}

	if id := request.GetString("player", ""); id != "" {
		p, err := activeEngine.GetPlayer(id)
		if err != nil {
			return mcp.NewToolResultErrorf("Get player failed: %v", err), nil
		}
		resp.Player = &p
	}
	if id := request.GetInt("battle_id", -1); id >= 0 {
		b, err := activeEngine.GetBattle(uint64(id))
		if err != nil {
			return mcp.NewToolResultErrorf("Get battle failed: %v", err), nil
		}
		resp.Battle = &b
	}
	if id := request.GetInt("offer_id", -1); id >= 0 {
		o, err := activeEngine.GetOffer(uint64(id))
		if err != nil {
			return mcp.NewToolResultErrorf("Get offer failed: %v", err), nil
		}
		resp.Offer = &o
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// drainEvents formats the events logged since the previous get_state call.
func drainEvents() []string {
	lines := []string{}
	if eventLog == nil {
		return lines
	}
	events := eventLog.Events()
	for ; eventCursor < len(events); eventCursor++ {
		lines = append(lines, log.FormatEvent(events[eventCursor]))
	}
	return lines
}

func parseTokenIDs(s string) ([]uint64, error) {
	var ids []uint64
	for _, part := range strings.Fields(s) {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("token id %q: must be a non-negative integer", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
