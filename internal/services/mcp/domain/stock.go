package domain

import (
	"time"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StockListInput represents the MCP tool input for stock item listings.
type StockListInput struct {
	PartID     *int64   `json:"part_id,omitempty" jsonschema:"restrict to one part"`
	LocationID *int64   `json:"location_id,omitempty" jsonschema:"restrict to one location"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset     int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields     []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// StockListResult represents the MCP tool output for stock item listings.
type StockListResult struct {
	Count int              `json:"count" jsonschema:"number of returned stock items"`
	Items []map[string]any `json:"items" jsonschema:"stock item records"`
}

// StockGetInput represents the MCP tool input for a single stock item lookup.
type StockGetInput struct {
	StockItemID int64    `json:"stock_item_id" jsonschema:"stock item identifier"`
	Fields      []string `json:"fields,omitempty" jsonschema:"restrict the record to these fields (id is always kept)"`
}

// StockItemResult represents the MCP tool output carrying one stock item.
type StockItemResult struct {
	Item map[string]any `json:"item" jsonschema:"stock item record"`
}

// StockAdjustInput represents the MCP tool input for stock adjustments.
type StockAdjustInput struct {
	StockItemID int64   `json:"stock_item_id" jsonschema:"stock item identifier"`
	Quantity    float64 `json:"quantity" jsonschema:"signed quantity delta; negative values remove stock"`
	Notes       string  `json:"notes,omitempty" jsonschema:"optional note recorded on the item"`
}

// StockTransferInput represents the MCP tool input for stock transfers.
type StockTransferInput struct {
	StockItemID int64  `json:"stock_item_id" jsonschema:"stock item identifier"`
	LocationID  int64  `json:"location_id" jsonschema:"destination location identifier"`
	Notes       string `json:"notes,omitempty" jsonschema:"optional note recorded on the item"`
}

// StockListTool defines the MCP tool schema for listing stock items.
func StockListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_stock_items",
		Description: "Lists stock items with optional part and location filters",
	}
}

// StockGetTool defines the MCP tool schema for fetching one stock item.
func StockGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_stock_item",
		Description: "Fetches one stock item by identifier",
	}
}

// StockAdjustTool defines the MCP tool schema for adjusting stock quantity.
func StockAdjustTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "adjust_stock",
		Description: "Adjusts a stock item's quantity by a signed delta, flooring at zero",
	}
}

// StockTransferTool defines the MCP tool schema for moving stock.
func StockTransferTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "transfer_stock",
		Description: "Moves a stock item to another location",
	}
}

func stockRecord(item storage.StockItem) map[string]any {
	record := map[string]any{
		"id":            item.ID,
		"part":          item.PartID,
		"part_name":     item.PartName,
		"location":      nil,
		"location_name": nil,
		"quantity":      item.Quantity,
		"serial":        item.Serial,
		"batch":         item.Batch,
		"status":        item.Status,
		"notes":         item.Notes,
		"updated":       item.Updated.Format(time.RFC3339),
	}
	if item.LocationID != nil {
		record["location"] = *item.LocationID
	}
	if item.LocationName != nil {
		record["location_name"] = *item.LocationName
	}
	return record
}
