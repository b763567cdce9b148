package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

const partColumns = `p.id, p.name, p.description, p.category_id, p.active,
	 p.ipn, p.revision, p.units, p.assembly, p.component, p.purchasable,
	 p.salable, p.trackable, p.virtual, p.locked,
	 COALESCE((SELECT SUM(si.quantity) FROM stock_items si WHERE si.part_id = p.id), 0)`

func scanPart(row interface{ Scan(...any) error }) (storage.Part, error) {
	var part storage.Part
	err := row.Scan(
		&part.ID,
		&part.Name,
		&part.Description,
		&part.CategoryID,
		&part.Active,
		&part.IPN,
		&part.Revision,
		&part.Units,
		&part.Assembly,
		&part.Component,
		&part.Purchasable,
		&part.Salable,
		&part.Trackable,
		&part.Virtual,
		&part.Locked,
		&part.TotalStock,
	)
	return part, err
}

// ListParts returns parts matching the filter, ordered by name.
func (s *Store) ListParts(ctx context.Context, filter storage.PartFilter) ([]storage.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := `SELECT ` + partColumns + ` FROM parts p`
	var conditions []string
	var args []any
	if filter.CategoryID != nil {
		conditions = append(conditions, "p.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Active != nil {
		conditions = append(conditions, "p.active = ?")
		args = append(args, *filter.Active)
	}
	if len(filter.Tags) > 0 {
		placeholders := strings.Repeat("?, ", len(filter.Tags)-1) + "?"
		conditions = append(conditions, `p.id IN (
			SELECT pt.part_id FROM part_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE t.name IN (`+placeholders+`)
			GROUP BY pt.part_id
			HAVING COUNT(DISTINCT t.id) = ?)`)
		for _, tag := range filter.Tags {
			args = append(args, tag)
		}
		args = append(args, len(filter.Tags))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.name, p.id LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var parts []storage.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	if err := s.attachTags(ctx, parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// GetPart returns one part by id.
func (s *Store) GetPart(ctx context.Context, id int64) (storage.Part, error) {
	if err := ctx.Err(); err != nil {
		return storage.Part{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Part{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+partColumns+` FROM parts p WHERE p.id = ?`, id)
	part, err := scanPart(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Part{}, storage.ErrNotFound
		}
		return storage.Part{}, fmt.Errorf("get part: %w", err)
	}
	parts := []storage.Part{part}
	if err := s.attachTags(ctx, parts); err != nil {
		return storage.Part{}, err
	}
	return parts[0], nil
}

// SearchParts matches the query against part names, descriptions and IPNs.
func (s *Store) SearchParts(ctx context.Context, query string, limit int) ([]storage.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	pattern := "%" + strings.TrimSpace(query) + "%"
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+partColumns+` FROM parts p
		 WHERE p.name LIKE ? OR p.description LIKE ? OR p.ipn LIKE ?
		 ORDER BY p.name, p.id LIMIT ?`,
		pattern, pattern, pattern, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	defer rows.Close()

	var parts []storage.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search parts: %w", err)
	}
	if err := s.attachTags(ctx, parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// CreatePart inserts one part and returns the stored record.
func (s *Store) CreatePart(ctx context.Context, part storage.NewPart) (storage.Part, error) {
	if err := ctx.Err(); err != nil {
		return storage.Part{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Part{}, err
	}
	name := strings.TrimSpace(part.Name)
	if name == "" {
		return storage.Part{}, fmt.Errorf("part name is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `INSERT INTO parts (
		   name, description, category_id, active, ipn, revision, units,
		   assembly, component, purchasable, salable, trackable, virtual
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		name,
		strings.TrimSpace(part.Description),
		part.CategoryID,
		part.Active,
		strings.TrimSpace(part.IPN),
		strings.TrimSpace(part.Revision),
		strings.TrimSpace(part.Units),
		part.Assembly,
		part.Component,
		part.Purchasable,
		part.Salable,
		part.Trackable,
		part.Virtual,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Part{}, storage.ErrAlreadyExists
		}
		return storage.Part{}, fmt.Errorf("create part: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Part{}, fmt.Errorf("create part id: %w", err)
	}
	return s.GetPart(ctx, id)
}

// UpdatePart applies non-nil field changes and returns the stored record.
func (s *Store) UpdatePart(ctx context.Context, id int64, update storage.PartUpdate) (storage.Part, error) {
	if err := ctx.Err(); err != nil {
		return storage.Part{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Part{}, err
	}

	var assignments []string
	var args []any
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return storage.Part{}, fmt.Errorf("part name is required")
		}
		assignments = append(assignments, "name = ?")
		args = append(args, name)
	}
	if update.Description != nil {
		assignments = append(assignments, "description = ?")
		args = append(args, strings.TrimSpace(*update.Description))
	}
	if update.Active != nil {
		assignments = append(assignments, "active = ?")
		args = append(args, *update.Active)
	}
	if update.IPN != nil {
		assignments = append(assignments, "ipn = ?")
		args = append(args, strings.TrimSpace(*update.IPN))
	}
	if update.Revision != nil {
		assignments = append(assignments, "revision = ?")
		args = append(args, strings.TrimSpace(*update.Revision))
	}
	if update.Units != nil {
		assignments = append(assignments, "units = ?")
		args = append(args, strings.TrimSpace(*update.Units))
	}
	if len(assignments) == 0 {
		return s.GetPart(ctx, id)
	}
	args = append(args, id)
	result, err := s.sqlDB.ExecContext(ctx,
		"UPDATE parts SET "+strings.Join(assignments, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return storage.Part{}, fmt.Errorf("update part: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.Part{}, fmt.Errorf("update part rows: %w", err)
	}
	if affected == 0 {
		return storage.Part{}, storage.ErrNotFound
	}
	return s.GetPart(ctx, id)
}

// DeletePart removes one part. Stock items, builds, BOM rows and supplier
// links referencing it are removed by cascade; order lines keep their rows
// with the part reference cleared.
func (s *Store) DeletePart(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM parts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete part rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// PartUsedInAssemblies reports whether any BOM row consumes the part.
func (s *Store) PartUsedInAssemblies(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.ready(); err != nil {
		return false, err
	}
	var used bool
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM bom_items WHERE sub_part_id = ?)", id).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("check part usage: %w", err)
	}
	return used, nil
}

// AddPartTag attaches a tag to a part, creating the tag when needed.
func (s *Store) AddPartTag(ctx context.Context, partID int64, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	var exists bool
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM parts WHERE id = ?)", partID).Scan(&exists); err != nil {
		return fmt.Errorf("check part: %w", err)
	}
	if !exists {
		return storage.ErrNotFound
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (name, slug) VALUES (?, ?)", name, slugify(name)); err != nil {
		return fmt.Errorf("upsert tag: %w", err)
	}
	var tagID int64
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT id FROM tags WHERE name = ?", name).Scan(&tagID); err != nil {
		return fmt.Errorf("lookup tag: %w", err)
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		"INSERT OR IGNORE INTO part_tags (part_id, tag_id) VALUES (?, ?)", partID, tagID); err != nil {
		return fmt.Errorf("link tag: %w", err)
	}
	return nil
}

// LinkSupplierPart records that a company supplies a part under the given SKU.
func (s *Store) LinkSupplierPart(ctx context.Context, partID, companyID int64, sku string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO supplier_parts (part_id, company_id, sku) VALUES (?, ?, ?)",
		partID, companyID, strings.TrimSpace(sku)); err != nil {
		return fmt.Errorf("link supplier part: %w", err)
	}
	return nil
}

// attachTags fills the Tags slice for each part in place.
func (s *Store) attachTags(ctx context.Context, parts []storage.Part) error {
	if len(parts) == 0 {
		return nil
	}
	ids := make([]any, 0, len(parts))
	for _, part := range parts {
		ids = append(ids, part.ID)
	}
	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT pt.part_id, t.name
		 FROM part_tags pt JOIN tags t ON t.id = pt.tag_id
		 WHERE pt.part_id IN (`+placeholders+`)`, ids...)
	if err != nil {
		return fmt.Errorf("load part tags: %w", err)
	}
	defer rows.Close()

	tagsByPart := make(map[int64][]string)
	for rows.Next() {
		var partID int64
		var name string
		if err := rows.Scan(&partID, &name); err != nil {
			return fmt.Errorf("scan part tag: %w", err)
		}
		tagsByPart[partID] = append(tagsByPart[partID], name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load part tags: %w", err)
	}
	for i := range parts {
		tags := tagsByPart[parts[i].ID]
		sort.Strings(tags)
		parts[i].Tags = tags
	}
	return nil
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
