package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/stockroom/internal/platform/requestctx"
)

const defaultExchangeTimeout = 60 * time.Second

const exchangeSpanName = "mcp.exchange"

// exchangeTracer resolves through the global provider on each call so spans
// land on whatever provider the binary registered at startup.
func exchangeTracer() trace.Tracer {
	return otel.Tracer("github.com/louisbranch/stockroom/internal/services/mcp/service")
}

// SettingsReader exposes the runtime settings the transport consults per
// request.
type SettingsReader interface {
	// RequireAuth reports whether unauthenticated callers must be
	// rejected.
	RequireAuth(ctx context.Context) (bool, error)
}

// Handler serves the JSON-RPC endpoint over plain HTTP POST. Every request
// is processed by a fresh exchange session and bounded by the exchange
// timeout.
type Handler struct {
	newSession sessionFactory
	settings   SettingsReader
	timeout    time.Duration
}

type HandlerOption func(*Handler)

// WithExchangeTimeout overrides the per-request deadline.
func WithExchangeTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		if timeout > 0 {
			h.timeout = timeout
		}
	}
}

func NewHandler(engine *Engine, settings SettingsReader, opts ...HandlerOption) *Handler {
	return newHandler(engine.NewSession, settings, opts...)
}

func newHandler(factory sessionFactory, settings SettingsReader, opts ...HandlerOption) *Handler {
	h := &Handler{
		newSession: factory,
		settings:   settings,
		timeout:    defaultExchangeTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Failed to read request body: %v", err)
		writeEnvelope(w, http.StatusBadRequest, -32700, "Failed to read request body")
		return
	}
	defer r.Body.Close()

	scope := buildScope(r, body)
	acc := &responseAccumulator{}
	session := h.newSession()

	spanCtx, span := exchangeTracer().Start(r.Context(), exchangeSpanName)
	defer span.End()

	runCtx, cancel := context.WithTimeout(spanCtx, h.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- session.Handle(runCtx, scope, singleBodyReceiver(body), acc.send)
	}()

	var handleErr error
	select {
	case handleErr = <-done:
	case <-runCtx.Done():
		cancel()
		handleErr = <-done
	}
	if closeErr := session.Close(); closeErr != nil {
		log.Printf("Failed to close exchange session: %v", closeErr)
	}

	// An expired deadline outranks whatever the session reported, even a
	// clean finish that raced the timer.
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		span.SetStatus(codes.Error, "exchange timed out")
		message := fmt.Sprintf("Request timed out after %ds", int(h.timeout.Seconds()))
		writeEnvelope(w, http.StatusGatewayTimeout, -32000, message)
	case handleErr == nil:
		acc.flush(w)
	case errors.Is(handleErr, context.Canceled):
		// Client disconnected; nothing left to write.
	default:
		span.RecordError(handleErr)
		span.SetStatus(codes.Error, "exchange failed")
		log.Printf("Exchange failed: %v", handleErr)
		writeEnvelope(w, http.StatusInternalServerError, -32603, "Internal server error")
	}
}

// authorize enforces the auth requirement setting. A settings read failure
// counts as auth required.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	required, err := h.settings.RequireAuth(r.Context())
	if err != nil {
		log.Printf("Failed to read auth setting: %v", err)
		required = true
	}
	if !required {
		return true
	}
	if requestctx.PrincipalFromContext(r.Context()).Authenticated() {
		return true
	}
	writeEnvelope(w, http.StatusUnauthorized, -32000,
		"Authentication required. Provide a valid API token or log in before calling this endpoint.")
	return false
}

// singleBodyReceiver hands the buffered body over once, then blocks until
// the exchange is cancelled.
func singleBodyReceiver(body []byte) receiveFunc {
	delivered := false
	return func(ctx context.Context) (requestEvent, error) {
		if !delivered {
			delivered = true
			return requestEvent{Body: body}, nil
		}
		<-ctx.Done()
		return requestEvent{}, ctx.Err()
	}
}

// responseAccumulator collects send events from an exchange session. Only
// the first start event takes effect; body chunks are concatenated in
// order. Access is serialized by the exchange goroutine and the flush
// happens only after that goroutine reports done.
type responseAccumulator struct {
	started bool
	status  int
	headers [][2][]byte
	body    bytes.Buffer
}

func (a *responseAccumulator) send(ctx context.Context, event sendEvent) error {
	switch e := event.(type) {
	case responseStart:
		if !a.started {
			a.started = true
			a.status = e.Status
			a.headers = e.Headers
		}
	case responseChunk:
		a.body.Write(e.Body)
	}
	return nil
}

func (a *responseAccumulator) flush(w http.ResponseWriter) {
	if !a.started {
		writeEnvelope(w, http.StatusInternalServerError, -32603, "Internal server error")
		return
	}
	for _, pair := range a.headers {
		w.Header().Add(decodeLatin1(pair[0]), decodeLatin1(pair[1]))
	}
	w.WriteHeader(a.status)
	if a.body.Len() > 0 {
		if _, err := w.Write(a.body.Bytes()); err != nil {
			log.Printf("Failed to write response body: %v", err)
		}
	}
}
