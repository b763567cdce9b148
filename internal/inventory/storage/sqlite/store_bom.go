package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

// ListBomItems returns BOM rows matching the filter.
func (s *Store) ListBomItems(ctx context.Context, filter storage.BomFilter) ([]storage.BomItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT bi.id, bi.part_id, p.name, bi.sub_part_id, sp.name,
		 bi.quantity, bi.reference, bi.optional, bi.consumable, bi.allow_variants, bi.inherited
		 FROM bom_items bi
		 JOIN parts p ON p.id = bi.part_id
		 JOIN parts sp ON sp.id = bi.sub_part_id`
	var conditions []string
	var args []any
	if filter.PartID != nil {
		conditions = append(conditions, "bi.part_id = ?")
		args = append(args, *filter.PartID)
	}
	if filter.SubPartID != nil {
		conditions = append(conditions, "bi.sub_part_id = ?")
		args = append(args, *filter.SubPartID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY bi.id LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()

	var items []storage.BomItem
	for rows.Next() {
		var item storage.BomItem
		if err := rows.Scan(&item.ID, &item.PartID, &item.PartName,
			&item.SubPartID, &item.SubPartName, &item.Quantity, &item.Reference,
			&item.Optional, &item.Consumable, &item.AllowVariants, &item.Inherited); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	return items, nil
}

// CreateBomItem inserts one BOM row linking an assembly to a sub-part.
func (s *Store) CreateBomItem(ctx context.Context, item storage.NewBomItem) (storage.BomItem, error) {
	if err := ctx.Err(); err != nil {
		return storage.BomItem{}, err
	}
	if err := s.ready(); err != nil {
		return storage.BomItem{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `INSERT INTO bom_items (
		   part_id, sub_part_id, quantity, reference, optional, consumable, allow_variants, inherited
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.PartID, item.SubPartID, item.Quantity, strings.TrimSpace(item.Reference),
		item.Optional, item.Consumable, item.AllowVariants, item.Inherited)
	if err != nil {
		return storage.BomItem{}, fmt.Errorf("create bom item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.BomItem{}, fmt.Errorf("create bom item id: %w", err)
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT bi.id, bi.part_id, p.name, bi.sub_part_id, sp.name,
		 bi.quantity, bi.reference, bi.optional, bi.consumable, bi.allow_variants, bi.inherited
		 FROM bom_items bi
		 JOIN parts p ON p.id = bi.part_id
		 JOIN parts sp ON sp.id = bi.sub_part_id
		 WHERE bi.id = ?`, id)
	var created storage.BomItem
	if err := row.Scan(&created.ID, &created.PartID, &created.PartName,
		&created.SubPartID, &created.SubPartName, &created.Quantity, &created.Reference,
		&created.Optional, &created.Consumable, &created.AllowVariants, &created.Inherited); err != nil {
		return storage.BomItem{}, fmt.Errorf("get bom item: %w", err)
	}
	return created, nil
}
