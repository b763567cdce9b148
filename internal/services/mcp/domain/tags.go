package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TagListInput represents the MCP tool input for tag listings.
type TagListInput struct {
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// TagSearchInput represents the MCP tool input for tag search.
type TagSearchInput struct {
	Query  string   `json:"query" jsonschema:"text matched against tag names and slugs"`
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Fields []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// TagListResult represents the MCP tool output for tag listings.
type TagListResult struct {
	Count int              `json:"count" jsonschema:"number of returned tags"`
	Tags  []map[string]any `json:"tags" jsonschema:"tag records"`
}

// TagListTool defines the MCP tool schema for listing tags.
func TagListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_tags",
		Description: "Lists part tags ordered by name",
	}
}

// TagSearchTool defines the MCP tool schema for searching tags.
func TagSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_tags",
		Description: "Searches tags by name or slug",
	}
}

// TagListHandler executes a tag listing request.
func TagListHandler(store storage.TagStore) mcp.ToolHandlerFor[TagListInput, TagListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagListInput) (*mcp.CallToolResult, TagListResult, error) {
		tags, err := store.ListTags(ctx, listLimit(input.Limit), input.Offset)
		if err != nil {
			return nil, TagListResult{}, fmt.Errorf("list tags failed: %w", err)
		}
		records := tagRecords(tags, input.Fields)
		return nil, TagListResult{Count: len(records), Tags: records}, nil
	}
}

// TagSearchHandler executes a tag search request.
func TagSearchHandler(store storage.TagStore) mcp.ToolHandlerFor[TagSearchInput, TagListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TagSearchInput) (*mcp.CallToolResult, TagListResult, error) {
		query := strings.TrimSpace(input.Query)
		if query == "" {
			return nil, TagListResult{}, fmt.Errorf("query is required")
		}
		tags, err := store.SearchTags(ctx, query, listLimit(input.Limit))
		if err != nil {
			return nil, TagListResult{}, fmt.Errorf("search tags failed: %w", err)
		}
		records := tagRecords(tags, input.Fields)
		return nil, TagListResult{Count: len(records), Tags: records}, nil
	}
}

func tagRecords(tags []storage.Tag, fields []string) []map[string]any {
	set := newFieldSet(fields)
	records := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		records = append(records, set.apply(map[string]any{
			"id":   tag.ID,
			"name": tag.Name,
			"slug": tag.Slug,
		}))
	}
	return records
}
