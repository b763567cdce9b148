package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

// ListTags returns tags ordered by name.
func (s *Store) ListTags(ctx context.Context, limit, offset int) ([]storage.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, slug FROM tags ORDER BY name LIMIT ? OFFSET ?`,
		limitOrDefault(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

// SearchTags matches the query against tag names and slugs.
func (s *Store) SearchTags(ctx context.Context, query string, limit int) ([]storage.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, slug FROM tags WHERE name LIKE ? OR slug LIKE ? ORDER BY name LIMIT ?`,
		pattern, pattern, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("search tags: %w", err)
	}
	defer rows.Close()
	return collectTags(rows)
}

func collectTags(rows *sql.Rows) ([]storage.Tag, error) {
	var tags []storage.Tag
	for rows.Next() {
		var tag storage.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Slug); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	return tags, nil
}
