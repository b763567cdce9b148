package service

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeEnvelope emits a JSON-RPC error document as the full HTTP response.
// Envelope errors always carry a null id because they are produced before
// any request id is trusted.
func writeEnvelope(w http.ResponseWriter, status, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]interface{}{
		"jsonrpc": "2.0",
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
		"id": nil,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		_, _ = w.Write([]byte("{\"jsonrpc\":\"2.0\",\"error\":{\"code\":-32603,\"message\":\"Internal server error\"},\"id\":null}"))
		return
	}
	if _, err := w.Write(data); err != nil {
		log.Printf("Failed to write error envelope: %v", err)
	}
}
