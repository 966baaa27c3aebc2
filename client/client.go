// Package client talks to a sheetcalc evaluation server over websocket.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/coder/websocket"
)

const (
	defaultDialTimeout = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBaseBackoff = 200 * time.Millisecond
	defaultMaxBackoff  = 2 * time.Second
	maxReplyBytes      = 64 << 20
)

// Client is a sheetcalc server client.
type Client struct {
	BaseURL string

	dialTimeout time.Duration
	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration
	sleep       func(time.Duration)
	randInt63n  func(int64) int64
}

// New creates a client for the server at baseURL (ws://, wss://, http://,
// or https://).
func New(baseURL string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		dialTimeout: defaultDialTimeout,
		maxAttempts: defaultMaxAttempts,
		baseBackoff: defaultBaseBackoff,
		maxBackoff:  defaultMaxBackoff,
		sleep:       time.Sleep,
		randInt63n:  rand.Int63n,
	}
}

// envelope mirrors the server reply shape.
type envelope struct {
	Ok     bool   `json:"ok"`
	Output string `json:"output"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Eval sends one grid to the server and returns the evaluated CSV text.
// Per-cell errors come back rendered inside the output; only request-level
// failures return an error.
func (c *Client) Eval(ctx context.Context, input []byte) ([]byte, error) {
	conn, err := c.dialWithRetry(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close(websocket.StatusInternalError, "client error")
	conn.SetReadLimit(maxReplyBytes)

	if err := conn.Write(ctx, websocket.MessageText, input); err != nil {
		return nil, fmt.Errorf("sending grid: %w", err)
	}
	_, data, err := conn.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}
	conn.Close(websocket.StatusNormalClosure, "")

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing server reply: %w", err)
	}
	if !env.Ok {
		if env.Error != nil {
			return nil, fmt.Errorf("server rejected grid (%s): %s", env.Error.Code, env.Error.Message)
		}
		return nil, fmt.Errorf("server rejected grid")
	}
	return []byte(env.Output), nil
}

// dialWithRetry dials the eval endpoint, retrying transient failures with
// exponential backoff and full jitter.
func (c *Client) dialWithRetry(ctx context.Context) (*websocket.Conn, error) {
	maxAttempts := c.maxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	url := c.BaseURL + "/v0/eval"

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
		conn, _, err := websocket.Dial(dialCtx, url, nil)
		cancel()
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if attempt < maxAttempts {
			c.sleepWithBackoff(attempt)
		}
	}
	return nil, fmt.Errorf("connecting to %s after %d attempt(s): %w", url, maxAttempts, lastErr)
}

func (c *Client) sleepWithBackoff(attempt int) {
	base := c.baseBackoff
	if base <= 0 {
		base = defaultBaseBackoff
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay <= 0 {
			delay = defaultMaxBackoff
			break
		}
	}

	maxBackoff := c.maxBackoff
	if maxBackoff <= 0 {
		maxBackoff = defaultMaxBackoff
	}
	if delay > maxBackoff {
		delay = maxBackoff
	}
	if delay <= 0 {
		return
	}

	// Full jitter in [0, delay).
	if c.randInt63n != nil {
		delay = time.Duration(c.randInt63n(int64(delay)))
	}
	c.sleep(delay)
}
