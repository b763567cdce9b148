package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

// ListCategories returns categories, optionally restricted to one parent.
func (s *Store) ListCategories(ctx context.Context, parentID *int64, limit, offset int) ([]storage.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT id, name, description, parent_id, pathstring FROM part_categories`
	var args []any
	if parentID != nil {
		query += " WHERE parent_id = ?"
		args = append(args, *parentID)
	}
	query += " ORDER BY name, id LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(limit), offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// GetCategory returns one category by id.
func (s *Store) GetCategory(ctx context.Context, id int64) (storage.Category, error) {
	if err := ctx.Err(); err != nil {
		return storage.Category{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Category{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, name, description, parent_id, pathstring FROM part_categories WHERE id = ?`, id)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Category{}, storage.ErrNotFound
		}
		return storage.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// CategoryCounts returns the part count and direct child count for a category.
func (s *Store) CategoryCounts(ctx context.Context, id int64) (int64, int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if err := s.ready(); err != nil {
		return 0, 0, err
	}
	var exists bool
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM part_categories WHERE id = ?)", id).Scan(&exists); err != nil {
		return 0, 0, fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return 0, 0, storage.ErrNotFound
	}
	var parts, children int64
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM parts WHERE category_id = ?", id).Scan(&parts); err != nil {
		return 0, 0, fmt.Errorf("count category parts: %w", err)
	}
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM part_categories WHERE parent_id = ?", id).Scan(&children); err != nil {
		return 0, 0, fmt.Errorf("count category children: %w", err)
	}
	return parts, children, nil
}

// AllCategories returns every category ordered by name.
func (s *Store) AllCategories(ctx context.Context) ([]storage.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, description, parent_id, pathstring FROM part_categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("all categories: %w", err)
	}
	defer rows.Close()
	return collectCategories(rows)
}

// CreateCategory inserts one category. The path string is derived from the
// parent's path.
func (s *Store) CreateCategory(ctx context.Context, category storage.NewCategory) (storage.Category, error) {
	if err := ctx.Err(); err != nil {
		return storage.Category{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Category{}, err
	}
	name := strings.TrimSpace(category.Name)
	if name == "" {
		return storage.Category{}, fmt.Errorf("category name is required")
	}
	pathstring := name
	if category.ParentID != nil {
		parent, err := s.GetCategory(ctx, *category.ParentID)
		if err != nil {
			return storage.Category{}, fmt.Errorf("resolve parent category: %w", err)
		}
		pathstring = parent.PathString + "/" + name
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO part_categories (name, description, parent_id, pathstring) VALUES (?, ?, ?, ?)`,
		name, strings.TrimSpace(category.Description), nullID(category.ParentID), pathstring)
	if err != nil {
		return storage.Category{}, fmt.Errorf("create category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Category{}, fmt.Errorf("create category id: %w", err)
	}
	return s.GetCategory(ctx, id)
}

func scanCategory(row interface{ Scan(...any) error }) (storage.Category, error) {
	var category storage.Category
	var parentID sql.NullInt64
	err := row.Scan(&category.ID, &category.Name, &category.Description, &parentID, &category.PathString)
	if err != nil {
		return storage.Category{}, err
	}
	category.ParentID = idOrNil(parentID)
	return category, nil
}

func collectCategories(rows *sql.Rows) ([]storage.Category, error) {
	var categories []storage.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	return categories, nil
}
