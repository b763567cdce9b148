package domain

import "github.com/modelcontextprotocol/go-sdk/mcp"

// PartListInput represents the MCP tool input for part listings.
type PartListInput struct {
	CategoryID *int64   `json:"category_id,omitempty" jsonschema:"restrict to one category"`
	Active     *bool    `json:"active,omitempty" jsonschema:"filter by active flag"`
	Tags       []string `json:"tags,omitempty" jsonschema:"require parts carrying all of these tag names"`
	Fields     []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
	Offset     int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
}

// PartListResult represents the MCP tool output for part listings.
type PartListResult struct {
	Count int              `json:"count" jsonschema:"number of returned parts"`
	Parts []map[string]any `json:"parts" jsonschema:"part records"`
}

// PartGetInput represents the MCP tool input for a single part lookup.
type PartGetInput struct {
	PartID int64    `json:"part_id" jsonschema:"part identifier"`
	Fields []string `json:"fields,omitempty" jsonschema:"restrict the record to these fields (id is always kept)"`
}

// PartGetResult represents the MCP tool output for a single part lookup.
type PartGetResult struct {
	Part map[string]any `json:"part" jsonschema:"part record"`
}

// PartSearchInput represents the MCP tool input for part search.
type PartSearchInput struct {
	Query  string   `json:"query" jsonschema:"text matched against part names, descriptions and IPNs"`
	Fields []string `json:"fields,omitempty" jsonschema:"restrict result records to these fields (id is always kept)"`
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 50)"`
}

// PartCreateInput represents the MCP tool input for part creation. The flag
// fields are pointers so an omitted flag takes its default: new parts are
// active, purchasable components unless the caller says otherwise.
type PartCreateInput struct {
	Name        string `json:"name" jsonschema:"part name"`
	Description string `json:"description,omitempty" jsonschema:"part description"`
	CategoryID  int64  `json:"category_id" jsonschema:"category identifier"`
	IPN         string `json:"ipn,omitempty" jsonschema:"internal part number"`
	Revision    string `json:"revision,omitempty" jsonschema:"part revision"`
	Units       string `json:"units,omitempty" jsonschema:"unit of measure"`
	Active      *bool  `json:"active,omitempty" jsonschema:"part is active (default true)"`
	Assembly    *bool  `json:"assembly,omitempty" jsonschema:"part can be built from other parts (default false)"`
	Component   *bool  `json:"component,omitempty" jsonschema:"part can be used in assemblies (default true)"`
	Purchasable *bool  `json:"purchaseable,omitempty" jsonschema:"part can be purchased (default true)"`
	Salable     *bool  `json:"salable,omitempty" jsonschema:"part can be sold (default false)"`
	Trackable   *bool  `json:"trackable,omitempty" jsonschema:"part is serial tracked (default false)"`
	Virtual     *bool  `json:"virtual,omitempty" jsonschema:"part is not physical (default false)"`
}

// PartUpdateInput represents the MCP tool input for part updates. Omitted
// fields are left unchanged.
type PartUpdateInput struct {
	PartID      int64   `json:"part_id" jsonschema:"part identifier"`
	Name        *string `json:"name,omitempty" jsonschema:"new part name"`
	Description *string `json:"description,omitempty" jsonschema:"new part description"`
	Active      *bool   `json:"active,omitempty" jsonschema:"new active flag"`
	IPN         *string `json:"ipn,omitempty" jsonschema:"new internal part number"`
	Revision    *string `json:"revision,omitempty" jsonschema:"new part revision"`
	Units       *string `json:"units,omitempty" jsonschema:"new unit of measure"`
}

// PartListTool defines the MCP tool schema for listing parts.
func PartListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_parts",
		Description: "Lists inventory parts with optional category, active and tag filters",
	}
}

// PartGetTool defines the MCP tool schema for fetching one part.
func PartGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_part",
		Description: "Fetches one part by identifier",
	}
}

// PartSearchTool defines the MCP tool schema for searching parts.
func PartSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_parts",
		Description: "Searches parts by name, description or IPN",
	}
}

// PartCreateTool defines the MCP tool schema for creating a part.
func PartCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_part",
		Description: "Creates a new part in an existing category",
	}
}

// PartUpdateTool defines the MCP tool schema for updating a part.
func PartUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_part",
		Description: "Updates fields on an existing part",
	}
}
