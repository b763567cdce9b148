package service

import (
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/louisbranch/stockroom/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

const (
	mcpPartToolsModuleName     = "part-tools"
	mcpStockToolsModuleName    = "stock-tools"
	mcpCategoryToolsModuleName = "category-tools"
	mcpLocationToolsModuleName = "location-tools"
	mcpOrderToolsModuleName    = "order-tools"
	mcpBuildToolsModuleName    = "build-tools"
	mcpBomToolsModuleName      = "bom-tools"
	mcpTagToolsModuleName      = "tag-tools"
)

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.PartListInput, domain.PartListResult](),
	newMCPToolRegistrar[domain.PartGetInput, domain.PartGetResult](),
	newMCPToolRegistrar[domain.PartSearchInput, domain.PartListResult](),
	newMCPToolRegistrar[domain.PartCreateInput, domain.PartGetResult](),
	newMCPToolRegistrar[domain.PartUpdateInput, domain.PartGetResult](),
	newMCPToolRegistrar[domain.PartsDeleteInput, domain.PartsDeleteResult](),
	newMCPToolRegistrar[domain.StockListInput, domain.StockListResult](),
	newMCPToolRegistrar[domain.StockGetInput, domain.StockItemResult](),
	newMCPToolRegistrar[domain.StockAdjustInput, domain.StockItemResult](),
	newMCPToolRegistrar[domain.StockTransferInput, domain.StockItemResult](),
	newMCPToolRegistrar[domain.StockReportInput, domain.StockReportResult](),
	newMCPToolRegistrar[domain.CategoryListInput, domain.CategoryListResult](),
	newMCPToolRegistrar[domain.CategoryGetInput, domain.CategoryGetResult](),
	newMCPToolRegistrar[domain.TreeInput, domain.TreeResult](),
	newMCPToolRegistrar[domain.LocationListInput, domain.LocationListResult](),
	newMCPToolRegistrar[domain.LocationGetInput, domain.LocationGetResult](),
	newMCPToolRegistrar[domain.OrderListInput, domain.OrderListResult](),
	newMCPToolRegistrar[domain.OrderGetInput, domain.OrderGetResult](),
	newMCPToolRegistrar[domain.BuildListInput, domain.BuildListResult](),
	newMCPToolRegistrar[domain.BuildGetInput, domain.BuildGetResult](),
	newMCPToolRegistrar[domain.BomListInput, domain.BomListResult](),
	newMCPToolRegistrar[domain.BomForPartInput, domain.BomForPartResult](),
	newMCPToolRegistrar[domain.TagListInput, domain.TagListResult](),
	newMCPToolRegistrar[domain.TagSearchInput, domain.TagListResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(store storage.Store) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpPartToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerPartTools(registrar, store, store)
			},
		},
		{
			name: mcpStockToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerStockTools(registrar, store)
			},
		},
		{
			name: mcpCategoryToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerCategoryTools(registrar, store)
			},
		},
		{
			name: mcpLocationToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerLocationTools(registrar, store)
			},
		},
		{
			name: mcpOrderToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerOrderTools(registrar, store)
			},
		},
		{
			name: mcpBuildToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerBuildTools(registrar, store)
			},
		},
		{
			name: mcpBomToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerBomTools(registrar, store, store)
			},
		},
		{
			name: mcpTagToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerTagTools(registrar, store)
			},
		},
	}
}
