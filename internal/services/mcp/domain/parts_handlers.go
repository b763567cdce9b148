package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultListLimit = 50

	// Part listings page larger than the other catalogs.
	defaultPartListLimit = 100
)

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func partListLimit(limit int) int {
	if limit <= 0 {
		return defaultPartListLimit
	}
	return limit
}

func flagOrDefault(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}

// PartListHandler executes a part listing request.
func PartListHandler(store storage.PartStore) mcp.ToolHandlerFor[PartListInput, PartListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartListInput) (*mcp.CallToolResult, PartListResult, error) {
		parts, err := store.ListParts(ctx, storage.PartFilter{
			CategoryID: input.CategoryID,
			Active:     input.Active,
			Tags:       input.Tags,
			Limit:      partListLimit(input.Limit),
			Offset:     input.Offset,
		})
		if err != nil {
			return nil, PartListResult{}, fmt.Errorf("list parts failed: %w", err)
		}
		records := partRecords(parts, input.Fields)
		return nil, PartListResult{Count: len(records), Parts: records}, nil
	}
}

// PartGetHandler executes a single part lookup.
func PartGetHandler(store storage.PartStore) mcp.ToolHandlerFor[PartGetInput, PartGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartGetInput) (*mcp.CallToolResult, PartGetResult, error) {
		part, err := store.GetPart(ctx, input.PartID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, PartGetResult{}, fmt.Errorf("part %d was not found", input.PartID)
			}
			return nil, PartGetResult{}, fmt.Errorf("get part failed: %w", err)
		}
		record := newFieldSet(input.Fields).apply(partRecord(part))
		return nil, PartGetResult{Part: record}, nil
	}
}

// PartSearchHandler executes a part search request.
func PartSearchHandler(store storage.PartStore) mcp.ToolHandlerFor[PartSearchInput, PartListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartSearchInput) (*mcp.CallToolResult, PartListResult, error) {
		query := strings.TrimSpace(input.Query)
		if query == "" {
			return nil, PartListResult{}, fmt.Errorf("query is required")
		}
		parts, err := store.SearchParts(ctx, query, listLimit(input.Limit))
		if err != nil {
			return nil, PartListResult{}, fmt.Errorf("search parts failed: %w", err)
		}
		records := partRecords(parts, input.Fields)
		return nil, PartListResult{Count: len(records), Parts: records}, nil
	}
}

// PartCreateHandler executes a part creation request. The target category
// must already exist.
func PartCreateHandler(parts storage.PartStore, categories storage.CategoryStore) mcp.ToolHandlerFor[PartCreateInput, PartGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartCreateInput) (*mcp.CallToolResult, PartGetResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, PartGetResult{}, fmt.Errorf("name is required")
		}
		if _, err := categories.GetCategory(ctx, input.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, PartGetResult{}, fmt.Errorf("category %d was not found", input.CategoryID)
			}
			return nil, PartGetResult{}, fmt.Errorf("resolve category failed: %w", err)
		}
		part, err := parts.CreatePart(ctx, storage.NewPart{
			Name:        input.Name,
			Description: input.Description,
			CategoryID:  input.CategoryID,
			IPN:         input.IPN,
			Revision:    input.Revision,
			Units:       input.Units,
			Active:      flagOrDefault(input.Active, true),
			Assembly:    flagOrDefault(input.Assembly, false),
			Component:   flagOrDefault(input.Component, true),
			Purchasable: flagOrDefault(input.Purchasable, true),
			Salable:     flagOrDefault(input.Salable, false),
			Trackable:   flagOrDefault(input.Trackable, false),
			Virtual:     flagOrDefault(input.Virtual, false),
		})
		if err != nil {
			return nil, PartGetResult{}, fmt.Errorf("create part failed: %w", err)
		}
		return nil, PartGetResult{Part: partRecord(part)}, nil
	}
}

// PartUpdateHandler executes a part update request.
func PartUpdateHandler(store storage.PartStore) mcp.ToolHandlerFor[PartUpdateInput, PartGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartUpdateInput) (*mcp.CallToolResult, PartGetResult, error) {
		part, err := store.UpdatePart(ctx, input.PartID, storage.PartUpdate{
			Name:        input.Name,
			Description: input.Description,
			Active:      input.Active,
			IPN:         input.IPN,
			Revision:    input.Revision,
			Units:       input.Units,
		})
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, PartGetResult{}, fmt.Errorf("part %d was not found", input.PartID)
			}
			return nil, PartGetResult{}, fmt.Errorf("update part failed: %w", err)
		}
		return nil, PartGetResult{Part: partRecord(part)}, nil
	}
}
