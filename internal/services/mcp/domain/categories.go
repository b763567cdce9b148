package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CategoryListInput represents the MCP tool input for category listings.
type CategoryListInput struct {
	ParentID *int64   `json:"parent_id,omitempty" jsonschema:"restrict to direct children of one category"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset   int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields   []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// CategoryListResult represents the MCP tool output for category listings.
type CategoryListResult struct {
	Count      int              `json:"count" jsonschema:"number of returned categories"`
	Categories []map[string]any `json:"categories" jsonschema:"category records"`
}

// CategoryGetInput represents the MCP tool input for a single category lookup.
type CategoryGetInput struct {
	CategoryID int64    `json:"category_id" jsonschema:"category identifier"`
	Fields     []string `json:"fields,omitempty" jsonschema:"restrict the record to these fields (id is always kept)"`
}

// CategoryGetResult represents the MCP tool output for a single category
// lookup, including part and child counts.
type CategoryGetResult struct {
	Category map[string]any `json:"category" jsonschema:"category record"`
}

// TreeInput represents the MCP tool input for tree rendering. The whole tree
// is returned when no root is given.
type TreeInput struct {
	RootID *int64 `json:"root_id,omitempty" jsonschema:"render only the subtree under this node"`
}

// TreeResult represents the MCP tool output for tree rendering. Each root is
// a record with id, name, description, and a nested children list of the same
// shape.
type TreeResult struct {
	Roots []map[string]any `json:"roots" jsonschema:"top level nodes"`
}

// CategoryListTool defines the MCP tool schema for listing categories.
func CategoryListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_categories",
		Description: "Lists part categories, optionally under one parent",
	}
}

// CategoryGetTool defines the MCP tool schema for fetching one category.
func CategoryGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_category",
		Description: "Fetches one category with part and subcategory counts",
	}
}

// CategoryTreeTool defines the MCP tool schema for rendering the category tree.
func CategoryTreeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_category_tree",
		Description: "Renders the part category hierarchy as nested nodes",
	}
}

func categoryRecord(category storage.Category) map[string]any {
	record := map[string]any{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"parent":      nil,
		"pathstring":  category.PathString,
	}
	if category.ParentID != nil {
		record["parent"] = *category.ParentID
	}
	return record
}

// CategoryListHandler executes a category listing request.
func CategoryListHandler(store storage.CategoryStore) mcp.ToolHandlerFor[CategoryListInput, CategoryListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CategoryListInput) (*mcp.CallToolResult, CategoryListResult, error) {
		categories, err := store.ListCategories(ctx, input.ParentID, listLimit(input.Limit), input.Offset)
		if err != nil {
			return nil, CategoryListResult{}, fmt.Errorf("list categories failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(categories))
		for _, category := range categories {
			records = append(records, project.apply(categoryRecord(category)))
		}
		return nil, CategoryListResult{Count: len(records), Categories: records}, nil
	}
}

// CategoryGetHandler executes a single category lookup.
func CategoryGetHandler(store storage.CategoryStore) mcp.ToolHandlerFor[CategoryGetInput, CategoryGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CategoryGetInput) (*mcp.CallToolResult, CategoryGetResult, error) {
		category, err := store.GetCategory(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, CategoryGetResult{}, fmt.Errorf("category %d was not found", input.CategoryID)
			}
			return nil, CategoryGetResult{}, fmt.Errorf("get category failed: %w", err)
		}
		parts, children, err := store.CategoryCounts(ctx, input.CategoryID)
		if err != nil {
			return nil, CategoryGetResult{}, fmt.Errorf("count category contents failed: %w", err)
		}
		record := categoryRecord(category)
		record["part_count"] = parts
		record["subcategory_count"] = children
		return nil, CategoryGetResult{Category: newFieldSet(input.Fields).apply(record)}, nil
	}
}

// CategoryTreeHandler renders the category hierarchy.
func CategoryTreeHandler(store storage.CategoryStore) mcp.ToolHandlerFor[TreeInput, TreeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreeInput) (*mcp.CallToolResult, TreeResult, error) {
		categories, err := store.AllCategories(ctx)
		if err != nil {
			return nil, TreeResult{}, fmt.Errorf("load categories failed: %w", err)
		}
		nodes := make([]treeSource, 0, len(categories))
		for _, category := range categories {
			nodes = append(nodes, treeSource{
				id:          category.ID,
				name:        category.Name,
				description: category.Description,
				parentID:    category.ParentID,
			})
		}
		roots, err := buildTree(nodes, input.RootID)
		if err != nil {
			return nil, TreeResult{}, err
		}
		return nil, TreeResult{Roots: roots}, nil
	}
}

type treeSource struct {
	id          int64
	name        string
	description string
	parentID    *int64
}

// buildTree assembles nested node records from flat parent references. Input
// order is preserved within each level.
func buildTree(sources []treeSource, rootID *int64) ([]map[string]any, error) {
	children := make(map[int64][]treeSource)
	byID := make(map[int64]treeSource, len(sources))
	for _, source := range sources {
		byID[source.id] = source
		if source.parentID != nil {
			children[*source.parentID] = append(children[*source.parentID], source)
		}
	}

	var build func(source treeSource) map[string]any
	build = func(source treeSource) map[string]any {
		nested := []map[string]any{}
		for _, child := range children[source.id] {
			nested = append(nested, build(child))
		}
		return map[string]any{
			"id":          source.id,
			"name":        source.name,
			"description": source.description,
			"children":    nested,
		}
	}

	if rootID != nil {
		source, ok := byID[*rootID]
		if !ok {
			return nil, fmt.Errorf("node %d was not found", *rootID)
		}
		return []map[string]any{build(source)}, nil
	}
	roots := []map[string]any{}
	for _, source := range sources {
		if source.parentID == nil {
			roots = append(roots, build(source))
		}
	}
	return roots, nil
}
