package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BomListInput represents the MCP tool input for BOM row listings.
type BomListInput struct {
	PartID    *int64   `json:"part_id,omitempty" jsonschema:"restrict to the bill of one assembly"`
	SubPartID *int64   `json:"sub_part_id,omitempty" jsonschema:"restrict to rows consuming one part"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset    int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields    []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// BomListResult represents the MCP tool output for BOM row listings.
type BomListResult struct {
	Count int              `json:"count" jsonschema:"number of returned rows"`
	Items []map[string]any `json:"items" jsonschema:"BOM row records"`
}

// BomForPartInput represents the MCP tool input for fetching one part's bill
// of materials.
type BomForPartInput struct {
	PartID int64 `json:"part_id" jsonschema:"assembly part identifier"`
}

// BomForPartResult represents the MCP tool output for one part's bill of
// materials.
type BomForPartResult struct {
	PartID   int64            `json:"part_id" jsonschema:"assembly part identifier"`
	PartName string           `json:"part_name" jsonschema:"assembly part name"`
	Count    int              `json:"count" jsonschema:"number of BOM rows"`
	Items    []map[string]any `json:"items" jsonschema:"BOM row records"`
}

// BomListTool defines the MCP tool schema for listing BOM rows.
func BomListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_bom_items",
		Description: "Lists bill-of-materials rows with optional assembly and sub-part filters",
	}
}

// BomForPartTool defines the MCP tool schema for one part's bill of materials.
func BomForPartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_bom_for_part",
		Description: "Fetches the full bill of materials for one assembly part",
	}
}

func bomRecord(item storage.BomItem) map[string]any {
	return map[string]any{
		"id":             item.ID,
		"part":           item.PartID,
		"part_name":      item.PartName,
		"sub_part":       item.SubPartID,
		"sub_part_name":  item.SubPartName,
		"quantity":       item.Quantity,
		"reference":      item.Reference,
		"optional":       item.Optional,
		"consumable":     item.Consumable,
		"allow_variants": item.AllowVariants,
		"inherited":      item.Inherited,
	}
}

// BomListHandler executes a BOM row listing request.
func BomListHandler(store storage.BomStore) mcp.ToolHandlerFor[BomListInput, BomListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BomListInput) (*mcp.CallToolResult, BomListResult, error) {
		items, err := store.ListBomItems(ctx, storage.BomFilter{
			PartID:    input.PartID,
			SubPartID: input.SubPartID,
			Limit:     listLimit(input.Limit),
			Offset:    input.Offset,
		})
		if err != nil {
			return nil, BomListResult{}, fmt.Errorf("list bom items failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(items))
		for _, item := range items {
			records = append(records, project.apply(bomRecord(item)))
		}
		return nil, BomListResult{Count: len(records), Items: records}, nil
	}
}

// BomForPartHandler fetches one assembly's full bill of materials.
func BomForPartHandler(bom storage.BomStore, parts storage.PartStore) mcp.ToolHandlerFor[BomForPartInput, BomForPartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BomForPartInput) (*mcp.CallToolResult, BomForPartResult, error) {
		part, err := parts.GetPart(ctx, input.PartID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, BomForPartResult{}, fmt.Errorf("part %d was not found", input.PartID)
			}
			return nil, BomForPartResult{}, fmt.Errorf("get part failed: %w", err)
		}
		items, err := bom.ListBomItems(ctx, storage.BomFilter{PartID: &input.PartID, Limit: 500})
		if err != nil {
			return nil, BomForPartResult{}, fmt.Errorf("load bom failed: %w", err)
		}
		records := make([]map[string]any, 0, len(items))
		for _, item := range items {
			records = append(records, bomRecord(item))
		}
		return nil, BomForPartResult{
			PartID:   part.ID,
			PartName: part.Name,
			Count:    len(records),
			Items:    records,
		}, nil
	}
}
