package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BuildListInput represents the MCP tool input for build order listings.
type BuildListInput struct {
	PartID *int64   `json:"part_id,omitempty" jsonschema:"restrict to builds of one part"`
	Active *bool    `json:"active,omitempty" jsonschema:"true keeps only pending and in-progress builds; false excludes them"`
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// BuildListResult represents the MCP tool output for build order listings.
type BuildListResult struct {
	Count  int              `json:"count" jsonschema:"number of returned builds"`
	Builds []map[string]any `json:"builds" jsonschema:"build order records"`
}

// BuildGetInput represents the MCP tool input for a single build order lookup.
type BuildGetInput struct {
	BuildID int64    `json:"build_id" jsonschema:"build order identifier"`
	Fields  []string `json:"fields,omitempty" jsonschema:"restrict the record to these fields (id is always kept)"`
}

// BuildGetResult represents the MCP tool output for a single build order.
type BuildGetResult struct {
	Build map[string]any `json:"build" jsonschema:"build order record"`
}

// BuildListTool defines the MCP tool schema for listing build orders.
func BuildListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_build_orders",
		Description: "Lists build orders with optional part and active filters",
	}
}

// BuildGetTool defines the MCP tool schema for fetching one build order.
func BuildGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_build_order",
		Description: "Fetches one build order by identifier",
	}
}

func buildRecord(build storage.Build) map[string]any {
	record := map[string]any{
		"id":              build.ID,
		"reference":       build.Reference,
		"part":            build.PartID,
		"part_name":       build.PartName,
		"quantity":        build.Quantity,
		"completed":       build.Completed,
		"status":          build.Status,
		"creation_date":   orNil(build.CreationDate),
		"target_date":     orNil(build.TargetDate),
		"completion_date": orNil(build.CompletionDate),
		"notes":           build.Notes,
		"destination":     nil,
	}
	if build.DestinationID != nil {
		record["destination"] = *build.DestinationID
	}
	return record
}

// BuildListHandler executes a build order listing request.
func BuildListHandler(store storage.BuildStore) mcp.ToolHandlerFor[BuildListInput, BuildListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BuildListInput) (*mcp.CallToolResult, BuildListResult, error) {
		builds, err := store.ListBuilds(ctx, storage.BuildFilter{
			PartID: input.PartID,
			Active: input.Active,
			Limit:  listLimit(input.Limit),
			Offset: input.Offset,
		})
		if err != nil {
			return nil, BuildListResult{}, fmt.Errorf("list build orders failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(builds))
		for _, build := range builds {
			records = append(records, project.apply(buildRecord(build)))
		}
		return nil, BuildListResult{Count: len(records), Builds: records}, nil
	}
}

// BuildGetHandler executes a single build order lookup.
func BuildGetHandler(store storage.BuildStore) mcp.ToolHandlerFor[BuildGetInput, BuildGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BuildGetInput) (*mcp.CallToolResult, BuildGetResult, error) {
		build, err := store.GetBuild(ctx, input.BuildID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, BuildGetResult{}, fmt.Errorf("build order %d was not found", input.BuildID)
			}
			return nil, BuildGetResult{}, fmt.Errorf("get build order failed: %w", err)
		}
		return nil, BuildGetResult{Build: newFieldSet(input.Fields).apply(buildRecord(build))}, nil
	}
}
