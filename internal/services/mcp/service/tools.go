package service

import (
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/louisbranch/stockroom/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

func registerPartTools(registrar mcpRegistrationTarget, parts storage.PartStore, categories storage.CategoryStore) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.PartListTool(), handler: domain.PartListHandler(parts)},
		{tool: domain.PartGetTool(), handler: domain.PartGetHandler(parts)},
		{tool: domain.PartSearchTool(), handler: domain.PartSearchHandler(parts)},
		{tool: domain.PartCreateTool(), handler: domain.PartCreateHandler(parts, categories)},
		{tool: domain.PartUpdateTool(), handler: domain.PartUpdateHandler(parts)},
		{tool: domain.PartsDeleteTool(), handler: domain.PartsDeleteHandler(parts)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerStockTools(registrar mcpRegistrationTarget, stock storage.StockStore) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.StockListTool(), handler: domain.StockListHandler(stock)},
		{tool: domain.StockGetTool(), handler: domain.StockGetHandler(stock)},
		{tool: domain.StockAdjustTool(), handler: domain.StockAdjustHandler(stock)},
		{tool: domain.StockTransferTool(), handler: domain.StockTransferHandler(stock)},
		{tool: domain.StockReportTool(), handler: domain.StockReportHandler(stock)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerCategoryTools(registrar mcpRegistrationTarget, categories storage.CategoryStore) error {
	if err := registerTool(registrar, domain.CategoryListTool(), domain.CategoryListHandler(categories)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.CategoryGetTool(), domain.CategoryGetHandler(categories)); err != nil {
		return err
	}
	return registerTool(registrar, domain.CategoryTreeTool(), domain.CategoryTreeHandler(categories))
}

func registerLocationTools(registrar mcpRegistrationTarget, locations storage.LocationStore) error {
	if err := registerTool(registrar, domain.LocationListTool(), domain.LocationListHandler(locations)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.LocationGetTool(), domain.LocationGetHandler(locations)); err != nil {
		return err
	}
	return registerTool(registrar, domain.LocationTreeTool(), domain.LocationTreeHandler(locations))
}

func registerOrderTools(registrar mcpRegistrationTarget, orders storage.OrderStore) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.PurchaseOrderListTool(), handler: domain.PurchaseOrderListHandler(orders)},
		{tool: domain.PurchaseOrderGetTool(), handler: domain.PurchaseOrderGetHandler(orders)},
		{tool: domain.SalesOrderListTool(), handler: domain.SalesOrderListHandler(orders)},
		{tool: domain.SalesOrderGetTool(), handler: domain.SalesOrderGetHandler(orders)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerBuildTools(registrar mcpRegistrationTarget, builds storage.BuildStore) error {
	if err := registerTool(registrar, domain.BuildListTool(), domain.BuildListHandler(builds)); err != nil {
		return err
	}
	return registerTool(registrar, domain.BuildGetTool(), domain.BuildGetHandler(builds))
}

func registerBomTools(registrar mcpRegistrationTarget, bom storage.BomStore, parts storage.PartStore) error {
	if err := registerTool(registrar, domain.BomListTool(), domain.BomListHandler(bom)); err != nil {
		return err
	}
	return registerTool(registrar, domain.BomForPartTool(), domain.BomForPartHandler(bom, parts))
}

func registerTagTools(registrar mcpRegistrationTarget, tags storage.TagStore) error {
	if err := registerTool(registrar, domain.TagListTool(), domain.TagListHandler(tags)); err != nil {
		return err
	}
	return registerTool(registrar, domain.TagSearchTool(), domain.TagSearchHandler(tags))
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
