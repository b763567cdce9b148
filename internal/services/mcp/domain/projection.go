package domain

import "github.com/louisbranch/stockroom/internal/inventory/storage"

// fieldSet restricts result records to a caller-selected set of keys. A nil
// set keeps every key. The id key survives any projection so agents can chain
// follow-up calls.
type fieldSet map[string]struct{}

func newFieldSet(fields []string) fieldSet {
	if len(fields) == 0 {
		return nil
	}
	set := make(fieldSet, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

func (fs fieldSet) apply(record map[string]any) map[string]any {
	if fs == nil {
		return record
	}
	projected := make(map[string]any, len(fs)+1)
	if id, ok := record["id"]; ok {
		projected["id"] = id
	}
	for key := range fs {
		if value, ok := record[key]; ok {
			projected[key] = value
		}
	}
	return projected
}

func partRecord(part storage.Part) map[string]any {
	tags := part.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"id":             part.ID,
		"name":           part.Name,
		"description":    part.Description,
		"category":       part.CategoryID,
		"active":         part.Active,
		"ipn":            part.IPN,
		"revision":       part.Revision,
		"units":          part.Units,
		"assembly":       part.Assembly,
		"component":      part.Component,
		"purchaseable":   part.Purchasable,
		"salable":        part.Salable,
		"trackable":      part.Trackable,
		"virtual":        part.Virtual,
		"locked":         part.Locked,
		"total_in_stock": part.TotalStock,
		"tags":           tags,
	}
}

func partRecords(parts []storage.Part, fields []string) []map[string]any {
	set := newFieldSet(fields)
	records := make([]map[string]any, 0, len(parts))
	for _, part := range parts {
		records = append(records, set.apply(partRecord(part)))
	}
	return records
}
