package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildScopeNormalizesHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/mcp/?fields=name&limit=5", strings.NewReader("{}"))
	req.Host = "inventory.local:8080"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", "9999")
	req.Header.Set("X-Request-ID", "abc123")

	scope := buildScope(req, []byte(`{"a":1}`))

	if scope.Method != http.MethodPost {
		t.Fatalf("method = %q", scope.Method)
	}
	if scope.Path != "/mcp/" {
		t.Fatalf("path = %q", scope.Path)
	}
	if string(scope.QueryString) != "fields=name&limit=5" {
		t.Fatalf("query = %q", scope.QueryString)
	}
	if scope.Scheme != "http" {
		t.Fatalf("scheme = %q", scope.Scheme)
	}

	headers := map[string]string{}
	for _, pair := range scope.Headers {
		headers[string(pair[0])] = string(pair[1])
	}
	if headers["host"] != "inventory.local:8080" {
		t.Fatalf("host header = %q", headers["host"])
	}
	if headers["x-request-id"] != "abc123" {
		t.Fatalf("x-request-id = %q", headers["x-request-id"])
	}
	if headers["content-length"] != "7" {
		t.Fatalf("content-length = %q, want recomputed body length", headers["content-length"])
	}
	for name := range headers {
		if name != strings.ToLower(name) {
			t.Fatalf("header name %q is not lowercase", name)
		}
	}
}

func TestLatin1Codec(t *testing.T) {
	t.Parallel()

	encoded := encodeLatin1("café")
	if len(encoded) != 4 || encoded[3] != 0xE9 {
		t.Fatalf("encoded = %v, want single byte per character", encoded)
	}
	if decoded := decodeLatin1(encoded); decoded != "café" {
		t.Fatalf("decoded = %q", decoded)
	}
	// The arrow is outside latin-1 and must be replaced.
	if got := decodeLatin1(encodeLatin1("naïve→")); got != "naïve?" {
		t.Fatalf("out of range rune handling = %q", got)
	}
}
