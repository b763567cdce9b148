package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// OrderListInput represents the MCP tool input for order listings. The
// company filter matches suppliers for purchase orders and customers for
// sales orders.
type OrderListInput struct {
	CompanyID   *int64   `json:"company_id,omitempty" jsonschema:"restrict to one supplier or customer"`
	Outstanding *bool    `json:"outstanding,omitempty" jsonschema:"true keeps only pending and in-progress orders; false excludes them"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset      int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
	Fields      []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
}

// OrderListResult represents the MCP tool output for order listings.
type OrderListResult struct {
	Count  int              `json:"count" jsonschema:"number of returned orders"`
	Orders []map[string]any `json:"orders" jsonschema:"order records without lines"`
}

// OrderGetInput represents the MCP tool input for a single order lookup.
type OrderGetInput struct {
	OrderID int64    `json:"order_id" jsonschema:"order identifier"`
	Fields  []string `json:"fields,omitempty" jsonschema:"restrict the record to these fields (id is always kept)"`
}

// OrderGetResult represents the MCP tool output for a single order lookup,
// including lines.
type OrderGetResult struct {
	Order map[string]any `json:"order" jsonschema:"order record with lines"`
}

// PurchaseOrderListTool defines the MCP tool schema for listing purchase orders.
func PurchaseOrderListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_purchase_orders",
		Description: "Lists purchase orders with optional supplier and outstanding filters",
	}
}

// PurchaseOrderGetTool defines the MCP tool schema for fetching one purchase order.
func PurchaseOrderGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_purchase_order",
		Description: "Fetches one purchase order with its lines",
	}
}

// SalesOrderListTool defines the MCP tool schema for listing sales orders.
func SalesOrderListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_sales_orders",
		Description: "Lists sales orders with optional customer and outstanding filters",
	}
}

// SalesOrderGetTool defines the MCP tool schema for fetching one sales order.
func SalesOrderGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_sales_order",
		Description: "Fetches one sales order with its lines",
	}
}

// orNil maps empty strings to null in result records.
func orNil(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func purchaseOrderRecord(order storage.PurchaseOrder) map[string]any {
	return map[string]any{
		"id":            order.ID,
		"reference":     order.Reference,
		"supplier":      order.SupplierID,
		"supplier_name": order.SupplierName,
		"status":        order.Status,
		"description":   order.Description,
		"creation_date": orNil(order.CreationDate),
		"target_date":   orNil(order.TargetDate),
		"total_price":   orNil(order.TotalPrice),
	}
}

func salesOrderRecord(order storage.SalesOrder) map[string]any {
	return map[string]any{
		"id":            order.ID,
		"reference":     order.Reference,
		"customer":      order.CustomerID,
		"customer_name": order.CustomerName,
		"status":        order.Status,
		"description":   order.Description,
		"creation_date": orNil(order.CreationDate),
		"target_date":   orNil(order.TargetDate),
	}
}

func orderLineRecords(lines []storage.OrderLine, fulfilledKey string) []map[string]any {
	records := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		record := map[string]any{
			"id":         line.ID,
			"part":       nil,
			"part_name":  nil,
			"quantity":   line.Quantity,
			fulfilledKey: line.Fulfilled,
			"reference":  line.Reference,
		}
		if line.PartID != nil {
			record["part"] = *line.PartID
		}
		if line.PartName != nil {
			record["part_name"] = *line.PartName
		}
		records = append(records, record)
	}
	return records
}

// PurchaseOrderListHandler executes a purchase order listing request.
func PurchaseOrderListHandler(store storage.OrderStore) mcp.ToolHandlerFor[OrderListInput, OrderListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OrderListInput) (*mcp.CallToolResult, OrderListResult, error) {
		orders, err := store.ListPurchaseOrders(ctx, storage.OrderFilter{
			CompanyID:   input.CompanyID,
			Outstanding: input.Outstanding,
			Limit:       listLimit(input.Limit),
			Offset:      input.Offset,
		})
		if err != nil {
			return nil, OrderListResult{}, fmt.Errorf("list purchase orders failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(orders))
		for _, order := range orders {
			records = append(records, project.apply(purchaseOrderRecord(order)))
		}
		return nil, OrderListResult{Count: len(records), Orders: records}, nil
	}
}

// PurchaseOrderGetHandler executes a single purchase order lookup.
func PurchaseOrderGetHandler(store storage.OrderStore) mcp.ToolHandlerFor[OrderGetInput, OrderGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OrderGetInput) (*mcp.CallToolResult, OrderGetResult, error) {
		order, err := store.GetPurchaseOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, OrderGetResult{}, fmt.Errorf("purchase order %d was not found", input.OrderID)
			}
			return nil, OrderGetResult{}, fmt.Errorf("get purchase order failed: %w", err)
		}
		record := purchaseOrderRecord(order)
		record["lines"] = orderLineRecords(order.Lines, "received")
		return nil, OrderGetResult{Order: newFieldSet(input.Fields).apply(record)}, nil
	}
}

// SalesOrderListHandler executes a sales order listing request.
func SalesOrderListHandler(store storage.OrderStore) mcp.ToolHandlerFor[OrderListInput, OrderListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OrderListInput) (*mcp.CallToolResult, OrderListResult, error) {
		orders, err := store.ListSalesOrders(ctx, storage.OrderFilter{
			CompanyID:   input.CompanyID,
			Outstanding: input.Outstanding,
			Limit:       listLimit(input.Limit),
			Offset:      input.Offset,
		})
		if err != nil {
			return nil, OrderListResult{}, fmt.Errorf("list sales orders failed: %w", err)
		}
		project := newFieldSet(input.Fields)
		records := make([]map[string]any, 0, len(orders))
		for _, order := range orders {
			records = append(records, project.apply(salesOrderRecord(order)))
		}
		return nil, OrderListResult{Count: len(records), Orders: records}, nil
	}
}

// SalesOrderGetHandler executes a single sales order lookup.
func SalesOrderGetHandler(store storage.OrderStore) mcp.ToolHandlerFor[OrderGetInput, OrderGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input OrderGetInput) (*mcp.CallToolResult, OrderGetResult, error) {
		order, err := store.GetSalesOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, OrderGetResult{}, fmt.Errorf("sales order %d was not found", input.OrderID)
			}
			return nil, OrderGetResult{}, fmt.Errorf("get sales order failed: %w", err)
		}
		record := salesOrderRecord(order)
		record["lines"] = orderLineRecords(order.Lines, "shipped")
		return nil, OrderGetResult{Order: newFieldSet(input.Fields).apply(record)}, nil
	}
}
