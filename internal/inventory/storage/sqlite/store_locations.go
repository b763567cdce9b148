package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

// ListLocations returns stock locations, optionally restricted to one parent.
func (s *Store) ListLocations(ctx context.Context, parentID *int64, limit, offset int) ([]storage.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT id, name, description, parent_id, pathstring FROM stock_locations`
	var args []any
	if parentID != nil {
		query += " WHERE parent_id = ?"
		args = append(args, *parentID)
	}
	query += " ORDER BY name, id LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(limit), offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// GetLocation returns one stock location by id.
func (s *Store) GetLocation(ctx context.Context, id int64) (storage.Location, error) {
	if err := ctx.Err(); err != nil {
		return storage.Location{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Location{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, description, parent_id, pathstring FROM stock_locations WHERE id = ?`, id)
	location, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Location{}, storage.ErrNotFound
		}
		return storage.Location{}, fmt.Errorf("get location: %w", err)
	}
	return location, nil
}

// LocationCounts returns the stock item count and direct child count for a
// location.
func (s *Store) LocationCounts(ctx context.Context, id int64) (int64, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	var exists bool
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM stock_locations WHERE id = ?)", id).Scan(&exists); err != nil {
		return 0, 0, fmt.Errorf("check location: %w", err)
	}
	if !exists {
		return 0, 0, storage.ErrNotFound
	}
	var items, children int64
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM stock_items WHERE location_id = ?", id).Scan(&items); err != nil {
		return 0, 0, fmt.Errorf("count location items: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM stock_locations WHERE parent_id = ?", id).Scan(&children); err != nil {
		return 0, 0, fmt.Errorf("count location children: %w", err)
	}
	return items, children, nil
}

// AllLocations returns every stock location ordered by name.
func (s *Store) AllLocations(ctx context.Context) ([]storage.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, description, parent_id, pathstring FROM stock_locations ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("all locations: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// CreateLocation inserts one stock location. The path string is derived from
// the parent's path.
func (s *Store) CreateLocation(ctx context.Context, location storage.NewLocation) (storage.Location, error) {
	if err := ctx.Err(); err != nil {
		return storage.Location{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Location{}, err
	}
	name := strings.TrimSpace(location.Name)
	if name == "" {
		return storage.Location{}, fmt.Errorf("location name is required")
	}
	pathstring := name
	if location.ParentID != nil {
		parent, err := s.GetLocation(ctx, *location.ParentID)
		if err != nil {
			return storage.Location{}, fmt.Errorf("resolve parent location: %w", err)
		}
		pathstring = parent.PathString + "/" + name
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO stock_locations (name, description, parent_id, pathstring) VALUES (?, ?, ?, ?)`,
		name, strings.TrimSpace(location.Description), nullID(location.ParentID), pathstring)
	if err != nil {
		return storage.Location{}, fmt.Errorf("create location: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Location{}, fmt.Errorf("create location id: %w", err)
	}
	return s.GetLocation(ctx, id)
}

func scanLocation(row interface{ Scan(...any) error }) (storage.Location, error) {
	var location storage.Location
	var parentID sql.NullInt64
	err := row.Scan(&location.ID, &location.Name, &location.Description, &parentID, &location.PathString)
	if err != nil {
		return storage.Location{}, err
	}
	location.ParentID = idOrNil(parentID)
	return location, nil
}

func collectLocations(rows *sql.Rows) ([]storage.Location, error) {
	var locations []storage.Location
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	return locations, nil
}
