package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LocationListInput represents the MCP tool input for location listings.
type LocationListInput struct {
	ParentID *int64   `json:"parent_id,omitempty" jsonschema:"restrict to direct children of one location"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset   int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields   []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// LocationListResult represents the MCP tool output for location listings.
type LocationListResult struct {
	Count     int              `json:"count" jsonschema:"number of returned locations"`
	Locations []map[string]any `json:"locations" jsonschema:"location records"`
}

// LocationGetInput represents the MCP tool input for a single location lookup.
type LocationGetInput struct {
	LocationID int64    `json:"location_id" jsonschema:"location identifier"`
	Fields     []string `json:"fields,omitempty" jsonschema:"restrict the record to these fields (id is always kept)"`
}

// LocationGetResult represents the MCP tool output for a single location
// lookup, including stock item and child counts.
type LocationGetResult struct {
	Location map[string]any `json:"location" jsonschema:"location record"`
}

// LocationListTool defines the MCP tool schema for listing stock locations.
func LocationListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_locations",
		Description: "Lists stock locations, optionally under one parent",
	}
}

// LocationGetTool defines the MCP tool schema for fetching one location.
func LocationGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_location",
		Description: "Fetches one stock location with item and sublocation counts",
	}
}

// LocationTreeTool defines the MCP tool schema for rendering the location tree.
func LocationTreeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_location_tree",
		Description: "Renders the stock location hierarchy as nested nodes",
	}
}

func locationRecord(location storage.Location) map[string]any {
	record := map[string]any{
		"id":          location.ID,
		"name":        location.Name,
		"description": location.Description,
		"parent":      nil,
		"pathstring":  location.PathString,
	}
	if location.ParentID != nil {
		record["parent"] = *location.ParentID
	}
	return record
}

// LocationListHandler executes a location listing request.
func LocationListHandler(store storage.LocationStore) mcp.ToolHandlerFor[LocationListInput, LocationListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationListInput) (*mcp.CallToolResult, LocationListResult, error) {
		locations, err := store.ListLocations(ctx, input.ParentID, listLimit(input.Limit), input.Offset)
		if err != nil {
			return nil, LocationListResult{}, fmt.Errorf("list locations failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(locations))
		for _, location := range locations {
			records = append(records, project.apply(locationRecord(location)))
		}
		return nil, LocationListResult{Count: len(records), Locations: records}, nil
	}
}

// LocationGetHandler executes a single location lookup.
func LocationGetHandler(store storage.LocationStore) mcp.ToolHandlerFor[LocationGetInput, LocationGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationGetInput) (*mcp.CallToolResult, LocationGetResult, error) {
		location, err := store.GetLocation(ctx, input.LocationID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, LocationGetResult{}, fmt.Errorf("location %d was not found", input.LocationID)
			}
			return nil, LocationGetResult{}, fmt.Errorf("get location failed: %w", err)
		}
		items, children, err := store.LocationCounts(ctx, input.LocationID)
		if err != nil {
			return nil, LocationGetResult{}, fmt.Errorf("count location contents failed: %w", err)
		}
		record := locationRecord(location)
		record["stock_item_count"] = items
		record["sublocation_count"] = children
		return nil, LocationGetResult{Location: newFieldSet(input.Fields).apply(record)}, nil
	}
}

// LocationTreeHandler renders the stock location hierarchy.
func LocationTreeHandler(store storage.LocationStore) mcp.ToolHandlerFor[TreeInput, TreeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreeInput) (*mcp.CallToolResult, TreeResult, error) {
		locations, err := store.AllLocations(ctx)
		if err != nil {
			return nil, TreeResult{}, fmt.Errorf("load locations failed: %w", err)
		}
		nodes := make([]treeSource, 0, len(locations))
		for _, location := range locations {
			nodes = append(nodes, treeSource{
				id:          location.ID,
				name:        location.Name,
				description: location.Description,
				parentID:    location.ParentID,
			})
		}
		roots, err := buildTree(nodes, input.RootID)
		if err != nil {
			return nil, TreeResult{}, err
		}
		return nil, TreeResult{Roots: roots}, nil
	}
}
