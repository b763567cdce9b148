package service

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Scope is the transport-neutral description of one inbound HTTP request as
// handed to an exchange session. Header names are lowercased and both names
// and values are encoded one byte per character.
type Scope struct {
	Method      string
	Path        string
	QueryString []byte
	Scheme      string
	Headers     [][2][]byte
	ClientAddr  string
	ServerAddr  string
}

// requestEvent carries the request body into an exchange session. MoreBody
// is false on the final chunk.
type requestEvent struct {
	Body     []byte
	MoreBody bool
}

// responseStart announces the response status and headers. Only the first
// start event of an exchange takes effect.
type responseStart struct {
	Status  int
	Headers [][2][]byte
}

// responseChunk carries one piece of the response body.
type responseChunk struct {
	Body     []byte
	MoreBody bool
}

type sendEvent interface {
	isSendEvent()
}

func (responseStart) isSendEvent() {}
func (responseChunk) isSendEvent() {}

// buildScope maps an HTTP request onto a Scope. The content-length header is
// recomputed from the buffered body so downstream consumers never see a
// stale value.
func buildScope(r *http.Request, body []byte) Scope {
	headers := make([][2][]byte, 0, len(r.Header)+2)
	if r.Host != "" {
		headers = append(headers, headerPair("host", r.Host))
	}
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lower := strings.ToLower(name)
		if lower == "content-length" {
			continue
		}
		for _, value := range r.Header[name] {
			headers = append(headers, headerPair(lower, value))
		}
	}
	headers = append(headers, headerPair("content-length", strconv.Itoa(len(body))))

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return Scope{
		Method:      r.Method,
		Path:        r.URL.Path,
		QueryString: encodeLatin1(r.URL.RawQuery),
		Scheme:      scheme,
		Headers:     headers,
		ClientAddr:  r.RemoteAddr,
		ServerAddr:  r.Host,
	}
}

func headerPair(name, value string) [2][]byte {
	return [2][]byte{encodeLatin1(name), encodeLatin1(value)}
}

// encodeLatin1 maps a string to one byte per character. Characters outside
// the latin-1 range are replaced with '?' so header byte pairs stay
// well-formed.
func encodeLatin1(value string) []byte {
	encoded := make([]byte, 0, len(value))
	for _, r := range value {
		if r > 0xFF {
			encoded = append(encoded, '?')
			continue
		}
		encoded = append(encoded, byte(r))
	}
	return encoded
}

func decodeLatin1(value []byte) string {
	runes := make([]rune, len(value))
	for i, b := range value {
		runes[i] = rune(b)
	}
	return string(runes)
}
