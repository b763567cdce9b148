package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const protocolVersion = "2025-06-18"

// Engine adapts a protocol server to one-shot HTTP exchanges. Each exchange
// opens a fresh in-memory session, replays the initialization handshake
// ahead of the caller's message, and tears the session down once the
// response has been collected.
type Engine struct {
	server *mcp.Server
}

func NewEngine(server *mcp.Server) *Engine {
	return &Engine{server: server}
}

// NewSession returns an exchange session bound to the engine's server.
func (e *Engine) NewSession() exchangeSession {
	return &engineSession{server: e.server}
}

type engineSession struct {
	server *mcp.Server
	conn   *exchangeConn
}

func (s *engineSession) Handle(ctx context.Context, scope Scope, receive receiveFunc, send sendFunc) error {
	if scope.Method != http.MethodPost {
		return sendErrorDoc(ctx, send, http.StatusMethodNotAllowed, -32000, "Method not allowed")
	}

	event, err := receive(ctx)
	if err != nil {
		return err
	}
	for event.MoreBody {
		next, err := receive(ctx)
		if err != nil {
			return err
		}
		event.Body = append(event.Body, next.Body...)
		event.MoreBody = next.MoreBody
	}

	msg, err := jsonrpc.DecodeMessage(event.Body)
	if err != nil {
		return sendErrorDoc(ctx, send, http.StatusBadRequest, -32700, "Parse error")
	}
	req, ok := msg.(*jsonrpc.Request)
	if !ok {
		return sendErrorDoc(ctx, send, http.StatusBadRequest, -32600, "Invalid Request")
	}
	isNotification := req.ID == jsonrpc.ID{}

	queue, waitID, err := buildExchangeQueue(req, isNotification)
	if err != nil {
		return fmt.Errorf("build exchange queue: %w", err)
	}

	conn := newExchangeConn(queue)
	s.conn = conn
	if _, err := s.server.Connect(ctx, exchangeTransport{conn: conn}, nil); err != nil {
		return fmt.Errorf("connect exchange session: %w", err)
	}

	for {
		select {
		case resp := <-conn.results:
			if resp.ID != waitID {
				// Replies to the replayed handshake are not surfaced.
				continue
			}
			if isNotification {
				return sendAccepted(ctx, send)
			}
			data, err := jsonrpc.EncodeMessage(resp)
			if err != nil {
				return fmt.Errorf("encode response: %w", err)
			}
			return sendJSON(ctx, send, http.StatusOK, data)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *engineSession) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// buildExchangeQueue prepends the initialization handshake to the caller's
// message. A caller-sent initialize is the handshake, so it is forwarded
// alone. Notifications produce no reply of their own, so a trailing ping
// serves as the barrier proving the server has consumed the queue.
func buildExchangeQueue(msg *jsonrpc.Request, isNotification bool) ([]jsonrpc.Message, jsonrpc.ID, error) {
	if msg.Method == "initialize" && !isNotification {
		return []jsonrpc.Message{msg}, msg.ID, nil
	}

	initID, err := syntheticID("init")
	if err != nil {
		return nil, jsonrpc.ID{}, err
	}
	initParams, err := json.Marshal(map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "stockroom-http",
			"version": "1.0",
		},
	})
	if err != nil {
		return nil, jsonrpc.ID{}, err
	}

	queue := []jsonrpc.Message{
		&jsonrpc.Request{ID: initID, Method: "initialize", Params: initParams},
	}
	if msg.Method != "notifications/initialized" {
		queue = append(queue, &jsonrpc.Request{Method: "notifications/initialized"})
	}
	queue = append(queue, msg)
	if !isNotification {
		return queue, msg.ID, nil
	}

	pingID, err := syntheticID("ping")
	if err != nil {
		return nil, jsonrpc.ID{}, err
	}
	queue = append(queue, &jsonrpc.Request{ID: pingID, Method: "ping"})
	return queue, pingID, nil
}

func sendJSON(ctx context.Context, send sendFunc, status int, body []byte) error {
	start := responseStart{
		Status: status,
		Headers: [][2][]byte{
			headerPair("content-type", "application/json"),
			headerPair("content-length", strconv.Itoa(len(body))),
		},
	}
	if err := send(ctx, start); err != nil {
		return err
	}
	return send(ctx, responseChunk{Body: body})
}

func sendAccepted(ctx context.Context, send sendFunc) error {
	start := responseStart{
		Status:  http.StatusAccepted,
		Headers: [][2][]byte{headerPair("content-length", "0")},
	}
	if err := send(ctx, start); err != nil {
		return err
	}
	return send(ctx, responseChunk{})
}

func sendErrorDoc(ctx context.Context, send sendFunc, status, code int, message string) error {
	return sendJSON(ctx, send, status, errorDoc(code, message))
}

func errorDoc(code int, message string) []byte {
	payload := map[string]any{
		"jsonrpc": "2.0",
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
		"id": nil,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return []byte(`{"jsonrpc":"2.0","error":{"code":-32603,"message":"Internal server error"},"id":null}`)
	}
	return data
}
