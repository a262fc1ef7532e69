package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/battleship/game/engine"
	"github.com/wricardo/battleship/game/service"
	"github.com/wricardo/battleship/game/view"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Battleship",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Battleship - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Two players hide four ships each on their own board and take turns firing at
the opponent's board. Sink every opposing ship to win.

AVAILABLE TOOLS:
- create_session: Create new match session
- place_ship: Place one ship for a player during the lobby
- randomize_fleet: Fill the remaining fleet of both players at random
- start_match: Start the match (unplaced ships are placed at random)
- fire: Fire at a cell of the opponent's board
- match_state: Get both boards and whose turn it is
- match_stats: Shots fired and ships sunk per player
- restart_match: Throw the match away and return to the lobby
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get the complete rules
- describe_cell: Get detailed info about one cell of a board

Cells are given either as a label such as "C4" (column letter, row number)
or as zero-based row and col numbers.`),
	)

	// Register all tools
	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// coordinateProperties adds the cell/row/col inputs shared by fire, place_ship and describe_cell
func coordinateProperties(props map[string]interface{}) map[string]interface{} {
	props["cell"] = map[string]interface{}{
		"type":        "string",
		"description": "Cell label such as \"C4\" (column letter, 1-based row)",
	}
	props["row"] = map[string]interface{}{
		"type":        "integer",
		"description": "Zero-based row, used when cell is not given",
	}
	props["col"] = map[string]interface{}{
		"type":        "integer",
		"description": "Zero-based column, used when cell is not given",
	}
	return props
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new match session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, e.g. classic (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active match sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Lobby
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_ship",
		Description: "Place a ship on a player's board. Only allowed before the match starts.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: coordinateProperties(map[string]interface{}{
				"session_id": sessionProperty(),
				"player": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.PlayerOne), string(engine.PlayerTwo)},
					"description": "Owner of the board",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.Line), string(engine.Box), string(engine.LShape)},
					"description": "Ship shape. The anchor is the top-left cell of the shape.",
				},
			}),
			Required: []string{"session_id", "player", "kind"},
		},
	}, c.handlePlaceShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "randomize_fleet",
		Description: "Place every ship that is still missing, for both players, at random",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRandomizeFleet)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_match",
		Description: "Start the match. Player 1 fires first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartMatch)

	// Play
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fire",
		Description: "Fire at a cell of the opponent's board on behalf of the player whose turn it is",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: coordinateProperties(map[string]interface{}{
				"session_id": sessionProperty(),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why you chose this cell (serves as a rubber duck to help explain your reasoning)",
				},
			}),
			Required: []string{"session_id"},
		},
	}, c.handleFire)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_match",
		Description: "Discard the current match and return the session to the lobby",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestartMatch)

	// Match state
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_state",
		Description: "Get both boards, the phase and whose turn it is",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleMatchState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_stats",
		Description: "Get shots fired and ships sunk for each player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleMatchStats)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available match configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one cell of a player's board as it is currently displayed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: coordinateProperties(map[string]interface{}{
				"session_id": sessionProperty(),
				"board": map[string]interface{}{
					"type":        "string",
					"enum":        []string{string(engine.PlayerOne), string(engine.PlayerTwo)},
					"description": "Owner of the board to inspect",
				},
			}),
			Required: []string{"session_id", "board"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

// coordinateArg reads a cell label or row/col pair from tool arguments
func coordinateArg(args map[string]interface{}) (engine.Coordinate, error) {
	if cell, ok := args["cell"].(string); ok && cell != "" {
		return view.ParseCoordinateLabel(cell)
	}
	row, rowOK := args["row"].(float64)
	col, colOK := args["col"].(float64)
	if !rowOK || !colOK {
		return engine.Coordinate{}, fmt.Errorf("either cell (e.g. \"C4\") or both row and col are required")
	}
	return engine.Coordinate{Row: int(row), Col: int(col)}, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_id"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.Match != nil {
		result += "\n" + view.FormatMatch(session.Match)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		phase := "unknown"
		if s.Match != nil {
			phase = string(s.Match.Phase)
		}
		result += fmt.Sprintf("- %s (Config: %s, Phase: %s, Created: %s)\n",
			s.ID, s.ConfigName, phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handlePlaceShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	player, _ := args["player"].(string)
	kind, _ := args["kind"].(string)

	anchor, err := coordinateArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{
		"player": player,
		"kind":   kind,
		"row":    anchor.Row,
		"col":    anchor.Col,
	}

	var result service.ActionResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/ships", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleRandomizeFleet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.ActionResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/randomize", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.ActionResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleFire(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	target, err := coordinateArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]int{"row": target.Row, "col": target.Col}

	var result service.FireResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/fire", sessionID), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatFireResult(&result)), nil
}

func (c *Client) handleRestartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.ActionResult
	if err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/restart", sessionID), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Match restarted.\n\n" + formatActionResult(&result)), nil
}

func (c *Client) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var match view.MatchView
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &match); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(view.FormatMatch(&match)), nil
}

func (c *Client) handleMatchStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var stats service.StatsResponse
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/stats", sessionID), nil, &stats); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStats(&stats)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Board: %dx%d\n\n",
			config.Name, config.ConfigID, config.Description, config.Height, config.Width)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Battleship - Complete Instructions

GAME OBJECTIVE:
Sink all four of your opponent's ships before they sink yours.

FLEET:
Every player places exactly four ships of four cells each:
• 2 x Line Ship - four cells in a single column
• 1 x Box Ship  - a 2x2 square
• 1 x L Ship    - three cells down a column plus one to the right of the last
Ships are placed by their anchor, the top-left cell of the shape. Ships may
not overlap and must fit entirely on the board.

PHASES:
• lobby   - place ships with place_ship or randomize_fleet
• playing - players take turns with fire
• ended   - one fleet is fully sunk; use restart_match to play again

TURNS:
Player 1 fires first. Every shot that lands on a new cell passes the turn,
hit or miss. Firing at a cell that was already shot does not count and the
same player fires again.

BOARD LEGEND:
• . - water, or a hidden ship on the board you are firing at
• S - ship (only shown on the board of the player whose turn it is)
• X - hit
• o - miss

Only the board of the player being fired at is the target. Its ships are
never shown to the shooter.

CELLS:
Columns are letters starting at A, rows are numbers starting at 1, so "C4"
is column C, row 4. Tools also accept zero-based row and col numbers.

STRATEGY HINTS:
- After a hit, try the neighbouring cells: every ship is four cells long
- Box Ships fill 2x2 squares, Line Ships run vertically
- Keep track of which cells are already resolved with match_state
- describe_cell tells you exactly what a single cell shows

SESSION MANAGEMENT:
- Multiple matches can run simultaneously
- Each session has a unique 4-character ID
- Sessions survive server restarts

Good luck, admiral!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	owner, _ := args["board"].(string)

	coord, err := coordinateArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var match view.MatchView
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &match); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var board *view.BoardView
	for i := range match.Boards {
		if string(match.Boards[i].Owner) == owner {
			board = &match.Boards[i]
		}
	}
	if board == nil {
		return mcp.NewToolResultError(fmt.Sprintf("unknown board %q: use %s or %s", owner, engine.PlayerOne, engine.PlayerTwo)), nil
	}

	if coord.Row < 0 || coord.Row >= board.Height || coord.Col < 0 || coord.Col >= board.Width {
		return mcp.NewToolResultError(fmt.Sprintf("Cell (%d, %d) is out of bounds. Board is %d rows by %d columns (A1 to %s)",
			coord.Row, coord.Col, board.Height, board.Width,
			view.CoordinateLabel(engine.Coordinate{Row: board.Height - 1, Col: board.Width - 1}))), nil
	}

	style := board.Cells[coord.Row][coord.Col]
	result := fmt.Sprintf(`Cell %s on %s's board (row %d, col %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Character: %c
Shows: %s
Description: %s
Board is the current target: %v`,
		view.CoordinateLabel(coord), board.OwnerName, coord.Row, coord.Col,
		view.Glyph(style),
		style,
		describeStyle(style, board.Targetable),
		board.Targetable)

	return mcp.NewToolResultText(result), nil
}

func describeStyle(style view.Style, targetable bool) string {
	switch style {
	case view.StyleHit:
		return "A ship was hit here. Firing again is wasted."
	case view.StyleMiss:
		return "A shot landed in open water here. Firing again is wasted."
	case view.StyleShip:
		return "One of this player's own ships, not yet hit."
	default:
		if targetable {
			return "Unresolved cell. It may hide a ship; a good target."
		}
		return "Open water, or a cell whose contents are hidden."
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"))
	if session.Match == nil {
		return result + "No match state available"
	}
	return result + view.FormatMatch(session.Match)
}

func formatNotification(n view.Notification) string {
	if n.Title == "" {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n\n", n.Title, n.Body)
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Notification != nil {
		b.WriteString(formatNotification(*result.Notification))
	}
	for _, event := range result.Events {
		b.WriteString("• " + event.Message + "\n")
	}
	if len(result.Events) > 0 {
		b.WriteString("\n")
	}
	if result.Match != nil {
		b.WriteString(view.FormatMatch(result.Match))
	}
	return b.String()
}

func formatFireResult(result *service.FireResult) string {
	var b strings.Builder

	if shot := result.Shot; shot != nil {
		outcome := string(shot.Outcome.Result)
		if shot.Outcome.Sunk() {
			outcome += ", sunk " + shot.Outcome.SunkKind.DisplayName()
		}
		fmt.Fprintf(&b, "%s fired at %s: %s\n\n", shot.Shooter.DisplayName(), view.CoordinateLabel(shot.Target), outcome)
	}

	b.WriteString(formatNotification(result.Notification))

	if len(result.Summary) > 0 {
		b.WriteString("Final statistics:\n")
		for _, s := range result.Summary {
			fmt.Fprintf(&b, "  %s: %d shots fired, %d ships sunk\n", s.Name, s.ShotsFired, s.ShipsSunk)
		}
		b.WriteString("\n")
	}

	if result.Match != nil {
		b.WriteString(view.FormatMatch(result.Match))
	}
	return b.String()
}

func formatStats(stats *service.StatsResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Phase: %s\n", stats.Phase)
	if stats.Winner != nil {
		fmt.Fprintf(&b, "Winner: %s\n", stats.Winner.DisplayName())
	}
	b.WriteString("\n")
	for _, s := range stats.Stats {
		fmt.Fprintf(&b, "%s: %d shots fired, %d ships sunk, %d ships remaining\n",
			s.Player.DisplayName(), s.ShotsFired, s.ShipsSunk, s.ShipsRemaining)
	}
	return b.String()
}
