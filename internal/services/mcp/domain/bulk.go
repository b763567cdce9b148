package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PartsDeleteInput represents the MCP tool input for bulk part deletion.
type PartsDeleteInput struct {
	PartIDs              []int64 `json:"part_ids" jsonschema:"identifiers of the parts to delete"`
	DeleteFromAssemblies bool    `json:"delete_from_assemblies,omitempty" jsonschema:"also delete parts that appear as sub-parts in assembly BOMs"`
}

// SkippedPart records why one part was not deleted. Name is empty when the
// part id did not resolve.
type SkippedPart struct {
	PartID int64  `json:"id" jsonschema:"part identifier"`
	Name   string `json:"name,omitempty" jsonschema:"part name when the part was found"`
	Reason string `json:"reason" jsonschema:"why the part was skipped"`
}

// PartsDeleteResult represents the MCP tool output for bulk part deletion.
type PartsDeleteResult struct {
	Deleted      []int64       `json:"deleted" jsonschema:"identifiers of deleted parts"`
	DeletedCount int           `json:"deleted_count" jsonschema:"number of parts deleted"`
	Skipped      []SkippedPart `json:"skipped" jsonschema:"parts left in place with the reason"`
	SkippedCount int           `json:"skipped_count" jsonschema:"number of parts skipped"`
}

// PartsDeleteTool defines the MCP tool schema for bulk part deletion.
func PartsDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_parts",
		Description: "Deletes parts in bulk, skipping locked parts and parts used in assemblies unless overridden",
	}
}

// PartsDeleteHandler deletes parts one by one. Each active part is
// deactivated before removal so a failed delete never leaves an active
// orphan. Missing, locked, and assembly-referenced parts are reported as
// skipped rather than failing the whole call.
func PartsDeleteHandler(store storage.PartStore) mcp.ToolHandlerFor[PartsDeleteInput, PartsDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PartsDeleteInput) (*mcp.CallToolResult, PartsDeleteResult, error) {
		if len(input.PartIDs) == 0 {
			return nil, PartsDeleteResult{}, fmt.Errorf("part_ids is required")
		}
		result := PartsDeleteResult{Deleted: []int64{}, Skipped: []SkippedPart{}}
		for _, id := range input.PartIDs {
			part, err := store.GetPart(ctx, id)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					result.Skipped = append(result.Skipped, SkippedPart{PartID: id, Reason: "Part not found"})
					continue
				}
				return nil, PartsDeleteResult{}, fmt.Errorf("get part %d failed: %w", id, err)
			}
			if part.Locked {
				result.Skipped = append(result.Skipped, SkippedPart{PartID: id, Name: part.Name, Reason: "Part is locked"})
				continue
			}
			if !input.DeleteFromAssemblies {
				used, err := store.PartUsedInAssemblies(ctx, id)
				if err != nil {
					return nil, PartsDeleteResult{}, fmt.Errorf("check part %d usage failed: %w", id, err)
				}
				if used {
					result.Skipped = append(result.Skipped, SkippedPart{PartID: id, Name: part.Name, Reason: "Part is used in assemblies"})
					continue
				}
			}
			if part.Active {
				inactive := false
				if _, err := store.UpdatePart(ctx, id, storage.PartUpdate{Active: &inactive}); err != nil {
					return nil, PartsDeleteResult{}, fmt.Errorf("deactivate part %d failed: %w", id, err)
				}
			}
			if err := store.DeletePart(ctx, id); err != nil {
				result.Skipped = append(result.Skipped, SkippedPart{PartID: id, Name: part.Name, Reason: err.Error()})
				continue
			}
			result.Deleted = append(result.Deleted, id)
		}
		result.DeletedCount = len(result.Deleted)
		result.SkippedCount = len(result.Skipped)
		return nil, result, nil
	}
}
