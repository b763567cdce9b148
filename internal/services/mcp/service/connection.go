package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const exchangeResultBuffer = 10

var exchangeCounter int64

// exchangeConn is a single-use in-memory connection. The inbound queue is
// fixed at construction time; responses written by the server are routed to
// the results channel for the exchange driver to collect.
type exchangeConn struct {
	sessionID string
	inbox     chan jsonrpc.Message
	results   chan *jsonrpc.Response

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newExchangeConn(queue []jsonrpc.Message) *exchangeConn {
	inbox := make(chan jsonrpc.Message, len(queue))
	for _, msg := range queue {
		inbox <- msg
	}
	return &exchangeConn{
		sessionID: generateExchangeID(),
		inbox:     inbox,
		results:   make(chan *jsonrpc.Response, exchangeResultBuffer),
		done:      make(chan struct{}),
	}
}

func (c *exchangeConn) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case msg := <-c.inbox:
		return msg, nil
	case <-c.done:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *exchangeConn) Write(ctx context.Context, msg jsonrpc.Message) error {
	resp, ok := msg.(*jsonrpc.Response)
	if !ok {
		// Server-initiated requests and notifications have no recipient
		// on a one-shot exchange.
		return nil
	}
	select {
	case c.results <- resp:
		return nil
	case <-c.done:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *exchangeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
	return nil
}

func (c *exchangeConn) SessionID() string {
	return c.sessionID
}

// exchangeTransport hands the prepared connection to the protocol server.
type exchangeTransport struct {
	conn *exchangeConn
}

func (t exchangeTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	return t.conn, nil
}

func generateExchangeID() string {
	buf := make([]byte, 8)
	counter := atomic.AddInt64(&exchangeCounter, 1)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("exchange_%d_%d", time.Now().UnixNano(), counter)
	}
	return fmt.Sprintf("%s_%d", hex.EncodeToString(buf), counter)
}

// syntheticID returns a request ID that cannot collide with client-chosen
// IDs within one exchange.
func syntheticID(prefix string) (jsonrpc.ID, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return jsonrpc.MakeID(fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()))
	}
	return jsonrpc.MakeID(fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(buf)))
}
