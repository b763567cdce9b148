package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StockListHandler executes a stock item listing request.
func StockListHandler(store storage.StockStore) mcp.ToolHandlerFor[StockListInput, StockListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StockListInput) (*mcp.CallToolResult, StockListResult, error) {
		items, err := store.ListStockItems(ctx, storage.StockFilter{
			PartID:     input.PartID,
			LocationID: input.LocationID,
			Limit:      listLimit(input.Limit),
			Offset:     input.Offset,
		})
		if err != nil {
			return nil, StockListResult{}, fmt.Errorf("list stock items failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(items))
		for _, item := range items {
			records = append(records, project.apply(stockRecord(item)))
		}
		return nil, StockListResult{Count: len(records), Items: records}, nil
	}
}

// StockGetHandler executes a single stock item lookup.
func StockGetHandler(store storage.StockStore) mcp.ToolHandlerFor[StockGetInput, StockItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StockGetInput) (*mcp.CallToolResult, StockItemResult, error) {
		item, err := store.GetStockItem(ctx, input.StockItemID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, StockItemResult{}, fmt.Errorf("stock item %d was not found", input.StockItemID)
			}
			return nil, StockItemResult{}, fmt.Errorf("get stock item failed: %w", err)
		}
		return nil, StockItemResult{Item: newFieldSet(input.Fields).apply(stockRecord(item))}, nil
	}
}

// StockAdjustHandler executes a stock quantity adjustment.
func StockAdjustHandler(store storage.StockStore) mcp.ToolHandlerFor[StockAdjustInput, StockItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StockAdjustInput) (*mcp.CallToolResult, StockItemResult, error) {
		// A zero delta changes nothing and returns the item as it stands.
		if input.Quantity == 0 {
			item, err := store.GetStockItem(ctx, input.StockItemID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, StockItemResult{}, fmt.Errorf("stock item %d was not found", input.StockItemID)
				}
				return nil, StockItemResult{}, fmt.Errorf("get stock item failed: %w", err)
			}
			return nil, StockItemResult{Item: stockRecord(item)}, nil
		}
		item, err := store.AdjustStock(ctx, input.StockItemID, input.Quantity, input.Notes)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, StockItemResult{}, fmt.Errorf("stock item %d was not found", input.StockItemID)
			}
			return nil, StockItemResult{}, fmt.Errorf("adjust stock failed: %w", err)
		}
		return nil, StockItemResult{Item: stockRecord(item)}, nil
	}
}

// StockTransferHandler executes a stock transfer to another location.
func StockTransferHandler(store storage.StockStore) mcp.ToolHandlerFor[StockTransferInput, StockItemResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StockTransferInput) (*mcp.CallToolResult, StockItemResult, error) {
		item, err := store.TransferStock(ctx, input.StockItemID, input.LocationID, input.Notes)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, StockItemResult{}, fmt.Errorf("stock item %d or location %d was not found", input.StockItemID, input.LocationID)
			}
			return nil, StockItemResult{}, fmt.Errorf("transfer stock failed: %w", err)
		}
		return nil, StockItemResult{Item: stockRecord(item)}, nil
	}
}
