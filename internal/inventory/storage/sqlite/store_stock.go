package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

const stockColumns = `si.id, si.part_id, p.name, si.location_id, sl.name,
	 si.quantity, si.serial, si.batch, si.status, si.notes, si.updated_at`

const stockJoins = ` FROM stock_items si
	 JOIN parts p ON p.id = si.part_id
	 LEFT JOIN stock_locations sl ON sl.id = si.location_id`

func scanStockItem(row interface{ Scan(...any) error }) (storage.StockItem, error) {
	var item storage.StockItem
	var locationID sql.NullInt64
	var locationName sql.NullString
	var updated int64
	err := row.Scan(
		&item.ID,
		&item.PartID,
		&item.PartName,
		&locationID,
		&locationName,
		&item.Quantity,
		&item.Serial,
		&item.Batch,
		&item.Status,
		&item.Notes,
		&updated,
	)
	if err != nil {
		return storage.StockItem{}, err
	}
	item.LocationID = idOrNil(locationID)
	if locationName.Valid {
		name := locationName.String
		item.LocationName = &name
	}
	item.Updated = fromMillis(updated)
	return item, nil
}

// ListStockItems returns stock items matching the filter, newest first.
func (s *Store) ListStockItems(ctx context.Context, filter storage.StockFilter) ([]storage.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT ` + stockColumns + stockJoins
	var conditions []string
	var args []any
	if filter.PartID != nil {
		conditions = append(conditions, "si.part_id = ?")
		args = append(args, *filter.PartID)
	}
	if filter.LocationID != nil {
		conditions = append(conditions, "si.location_id = ?")
		args = append(args, *filter.LocationID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY si.updated_at DESC, si.id DESC LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var items []storage.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	return items, nil
}

// GetStockItem returns one stock item by id.
func (s *Store) GetStockItem(ctx context.Context, id int64) (storage.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return storage.StockItem{}, err
	}
	if err := s.ready(); err != nil {
		return storage.StockItem{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+stockColumns+stockJoins+` WHERE si.id = ?`, id)
	item, err := scanStockItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.StockItem{}, storage.ErrNotFound
		}
		return storage.StockItem{}, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// CreateStockItem inserts one stock item and returns the stored record.
func (s *Store) CreateStockItem(ctx context.Context, item storage.NewStockItem) (storage.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return storage.StockItem{}, err
	}
	if err := s.ready(); err != nil {
		return storage.StockItem{}, err
	}
	if item.Quantity < 0 {
		return storage.StockItem{}, fmt.Errorf("stock quantity must not be negative")
	}
	status := item.Status
	if status == 0 {
		status = storage.StatusPending
	}
	result, err := s.sqlDB.ExecContext(ctx, `INSERT INTO stock_items (
		   part_id, location_id, quantity, serial, batch, status, notes, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.PartID,
		nullID(item.LocationID),
		item.Quantity,
		strings.TrimSpace(item.Serial),
		strings.TrimSpace(item.Batch),
		status,
		strings.TrimSpace(item.Notes),
		toMillis(time.Now()),
	)
	if err != nil {
		return storage.StockItem{}, fmt.Errorf("create stock item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.StockItem{}, fmt.Errorf("create stock item id: %w", err)
	}
	return s.GetStockItem(ctx, id)
}

// AdjustStock changes an item's quantity by delta, flooring at zero.
func (s *Store) AdjustStock(ctx context.Context, id int64, delta float64, notes string) (storage.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return storage.StockItem{}, err
	}
	if err := s.ready(); err != nil {
		return storage.StockItem{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE stock_items
		 SET quantity = MAX(0, quantity + ?),
		     notes = CASE WHEN ? != '' THEN ? ELSE notes END,
		     updated_at = ?
		 WHERE id = ?`,
		delta, notes, notes, toMillis(time.Now()), id)
	if err != nil {
		return storage.StockItem{}, fmt.Errorf("adjust stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.StockItem{}, fmt.Errorf("adjust stock rows: %w", err)
	}
	if affected == 0 {
		return storage.StockItem{}, storage.ErrNotFound
	}
	return s.GetStockItem(ctx, id)
}

// TransferStock moves an item to another location.
func (s *Store) TransferStock(ctx context.Context, id int64, locationID int64, notes string) (storage.StockItem, error) {
	if err := ctx.Err(); err != nil {
		return storage.StockItem{}, err
	}
	if err := s.ready(); err != nil {
		return storage.StockItem{}, err
	}
	if _, err := s.GetLocation(ctx, locationID); err != nil {
		return storage.StockItem{}, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE stock_items
		 SET location_id = ?,
		     notes = CASE WHEN ? != '' THEN ? ELSE notes END,
		     updated_at = ?
		 WHERE id = ?`,
		locationID, notes, notes, toMillis(time.Now()), id)
	if err != nil {
		return storage.StockItem{}, fmt.Errorf("transfer stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.StockItem{}, fmt.Errorf("transfer stock rows: %w", err)
	}
	if affected == 0 {
		return storage.StockItem{}, storage.ErrNotFound
	}
	return s.GetStockItem(ctx, id)
}

// StockTotalsByCategoryLocation aggregates stock quantity per category and
// location pair. Items without a location are reported with a nil location.
func (s *Store) StockTotalsByCategoryLocation(ctx context.Context, categoryID *int64) ([]storage.StockTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT pc.id, pc.name, si.location_id, COALESCE(sl.name, ''), SUM(si.quantity)
		 FROM stock_items si
		 JOIN parts p ON p.id = si.part_id
		 JOIN part_categories pc ON pc.id = p.category_id
		 LEFT JOIN stock_locations sl ON sl.id = si.location_id`
	var args []any
	if categoryID != nil {
		query += " WHERE pc.id = ?"
		args = append(args, *categoryID)
	}
	query += ` GROUP BY pc.id, si.location_id ORDER BY pc.name, sl.name`

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock totals: %w", err)
	}
	defer rows.Close()

	var totals []storage.StockTotal
	for rows.Next() {
		var total storage.StockTotal
		var locationID sql.NullInt64
		if err := rows.Scan(&total.CategoryID, &total.CategoryName, &locationID,
			&total.LocationName, &total.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan stock total: %w", err)
		}
		total.LocationID = idOrNil(locationID)
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stock totals: %w", err)
	}
	return totals, nil
}
