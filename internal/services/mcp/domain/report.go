package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StockReportInput represents the MCP tool input for the stock pivot report.
type StockReportInput struct {
	CategoryID *int64 `json:"category_id,omitempty" jsonschema:"restrict the report to one category"`
}

// StockReportRow is one category/location cell of the pivot.
type StockReportRow struct {
	CategoryID   int64   `json:"category_id" jsonschema:"category identifier"`
	CategoryName string  `json:"category_name" jsonschema:"category name"`
	LocationID   *int64  `json:"location_id" jsonschema:"location identifier, null for unassigned stock"`
	LocationName string  `json:"location_name" jsonschema:"location name, Unassigned when stock has no location"`
	TotalStock   float64 `json:"total_stock" jsonschema:"summed stock quantity"`
}

// StockReportResult represents the MCP tool output for the stock pivot report.
type StockReportResult struct {
	Count int              `json:"count" jsonschema:"number of report rows"`
	Rows  []StockReportRow `json:"rows" jsonschema:"per category and location stock totals"`
}

// StockReportTool defines the MCP tool schema for the stock pivot report.
func StockReportTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stock_by_category_and_location",
		Description: "Reports total stock quantity per category and location pair",
	}
}

// StockReportHandler aggregates stock per category and location. Stock items
// without a location are grouped under the Unassigned label.
func StockReportHandler(store storage.StockStore) mcp.ToolHandlerFor[StockReportInput, StockReportResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StockReportInput) (*mcp.CallToolResult, StockReportResult, error) {
		totals, err := store.StockTotalsByCategoryLocation(ctx, input.CategoryID)
		if err != nil {
			return nil, StockReportResult{}, fmt.Errorf("stock report failed: %w", err)
		}
		rows := make([]StockReportRow, 0, len(totals))
		for _, total := range totals {
			name := total.LocationName
			if total.LocationID == nil {
				name = "Unassigned"
			}
			rows = append(rows, StockReportRow{
				CategoryID:   total.CategoryID,
				CategoryName: total.CategoryName,
				LocationID:   total.LocationID,
				LocationName: name,
				TotalStock:   total.TotalQuantity,
			})
		}
		return nil, StockReportResult{Count: len(rows), Rows: rows}, nil
	}
}
