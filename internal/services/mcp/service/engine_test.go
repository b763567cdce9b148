package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/louisbranch/stockroom/internal/inventory/storage/sqlite"
)

type openSettings struct{}

func (openSettings) RequireAuth(ctx context.Context) (bool, error) {
	return false, nil
}

// newExchangeHandler wires a real protocol server over a seeded store and
// returns the handler plus the id of one seeded part.
func newExchangeHandler(t *testing.T) (*Handler, int64) {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	ctx := context.Background()
	category, err := store.CreateCategory(ctx, storage.NewCategory{Name: "Electronics"})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	part, err := store.CreatePart(ctx, storage.NewPart{
		Name:       "Ceramic Capacitor 100nF",
		CategoryID: category.ID,
		Active:     true,
		Component:  true,
	})
	if err != nil {
		t.Fatalf("seed part: %v", err)
	}

	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return NewHandler(NewEngine(server), openSettings{}), part.ID
}

func postMessage(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/mcp/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestExchangeInitialize(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	w := postMessage(t, handler, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"smoke-client","version":"1"}}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}
	var resp struct {
		ID     int64 `json:"id"`
		Result struct {
			ServerInfo struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 1 {
		t.Fatalf("id = %d, want 1", resp.ID)
	}
	if resp.Result.ServerInfo.Name != "stockroom" {
		t.Fatalf("server name = %q", resp.Result.ServerInfo.Name)
	}
}

func TestExchangeToolsListWithoutPriorHandshake(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	w := postMessage(t, handler, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, tool := range []string{"list_parts", "adjust_stock", "get_category_tree", "stock_by_category_and_location"} {
		if !strings.Contains(body, tool) {
			t.Fatalf("tools/list missing %q: %s", tool, body)
		}
	}
}

func TestExchangeToolCallReadsStore(t *testing.T) {
	t.Parallel()

	handler, partID := newExchangeHandler(t)
	body := fmt.Sprintf(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_part","arguments":{"part_id":%d}}}`, partID)
	w := postMessage(t, handler, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Ceramic Capacitor 100nF") {
		t.Fatalf("response does not carry the part: %s", w.Body.String())
	}
}

func TestExchangesAreIndependent(t *testing.T) {
	t.Parallel()

	handler, partID := newExchangeHandler(t)
	body := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_part","arguments":{"part_id":%d}}}`, partID)

	// No session state survives between calls, so a repeat of the same
	// request must succeed without any handshake in between.
	for i := 0; i < 2; i++ {
		w := postMessage(t, handler, body)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d status = %d, body = %s", i, w.Code, w.Body.String())
		}
	}
}

func TestExchangeNotificationAccepted(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	w := postMessage(t, handler, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202, body = %s", w.Code, w.Body.String())
	}
	if w.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", w.Body.String())
	}
}

func TestExchangeMalformedJSONRejected(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	w := postMessage(t, handler, `{"jsonrpc":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	code, message := decodeEnvelope(t, w.Body.String())
	if code != -32700 || message != "Parse error" {
		t.Fatalf("envelope = %d %q", code, message)
	}
}

func TestExchangeBatchRejected(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	w := postMessage(t, handler, `[{"jsonrpc":"2.0","id":1,"method":"ping"}]`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for batch payloads", w.Code)
	}
	code, _ := decodeEnvelope(t, w.Body.String())
	if code != -32700 {
		t.Fatalf("code = %d, want -32700", code)
	}
}

func TestExchangeRejectsNonPOST(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/mcp/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	code, message := decodeEnvelope(t, w.Body.String())
	if code != -32000 || message != "Method not allowed" {
		t.Fatalf("envelope = %d %q", code, message)
	}
}

func TestExchangeRejectsResponseMessage(t *testing.T) {
	t.Parallel()

	handler, _ := newExchangeHandler(t)
	w := postMessage(t, handler, `{"jsonrpc":"2.0","id":5,"result":{}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	code, message := decodeEnvelope(t, w.Body.String())
	if code != -32600 || message != "Invalid Request" {
		t.Fatalf("envelope = %d %q", code, message)
	}
}
