package net

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coder/websocket"
)

// Client is a WebSocket client for the server protocol. It handles the
// hello handshake and buffers pushed notify events so callers can read
// them between calls.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	player    string

	mu     sync.Mutex
	events []EventView
}

// Dial connects to a server, performs the hello handshake, and returns a
// ready client.
func Dial(ctx context.Context, url, player string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{conn: conn, player: player}
	if err := c.write(ctx, Request{Type: "hello", Player: player}); err != nil {
		conn.CloseNow()
		return nil, fmt.Errorf("send hello: %w", err)
	}

	resp, err := c.read(ctx)
	if err != nil {
		conn.CloseNow()
		return nil, fmt.Errorf("read session: %w", err)
	}
	if resp.Type != "session" || resp.SessionID == "" {
		conn.CloseNow()
		return nil, fmt.Errorf("handshake failed: got %q response", resp.Type)
	}
	c.sessionID = resp.SessionID
	return c, nil
}

// SessionID returns the id assigned by the server.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Player returns the identity declared at handshake.
func (c *Client) Player() string {
	return c.player
}

// Call sends one request and returns the server's reply. Notify pushes
// arriving before the reply are buffered; a reply of type "error" is
// returned as a Go error.
func (c *Client) Call(ctx context.Context, req Request) (Response, error) {
	if err := c.write(ctx, req); err != nil {
		return Response{}, fmt.Errorf("send %s: %w", req.Type, err)
	}
	for {
		resp, err := c.read(ctx)
		if err != nil {
			return Response{}, fmt.Errorf("read reply to %s: %w", req.Type, err)
		}
		if resp.Type == "notify" {
			c.mu.Lock()
			if resp.Event != nil {
				c.events = append(c.events, *resp.Event)
			}
			c.mu.Unlock()
			continue
		}
		if resp.Type == "error" {
			return resp, fmt.Errorf("%s: %s", req.Type, resp.Error)
		}
		return resp, nil
	}
}

// Events drains the buffered notify events.
func (c *Client) Events() []EventView {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := c.events
	c.events = nil
	return events
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

func (c *Client) write(ctx context.Context, req Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return c.conn.Write(ctx, websocket.MessageText, data)
}

func (c *Client) read(ctx context.Context) (Response, error) {
	_, data, err := c.conn.Read(ctx)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
