// Package service exposes the inventory tool catalog over the Model Context
// Protocol and adapts it to one-shot HTTP exchanges.
package service

import (
	"context"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "stockroom"
	serverVersion = "0.1.0"
)

// NewServer builds the protocol server with the full inventory tool catalog
// registered against the given store.
func NewServer(store storage.Store) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})

	registrar := mcpServerRegistrationAdapter{server: server}
	for _, module := range newMCPRegistrationModules(store) {
		if err := module.register(registrar); err != nil {
			return nil, fmt.Errorf("register %s: %w", module.name, err)
		}
	}
	return server, nil
}

// completionHandler satisfies completion/complete requests with an empty
// candidate list. Tool arguments have no completion source here.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}
