package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

const buildColumns = `b.id, b.reference, b.part_id, p.name, b.quantity, b.completed,
	 b.status, b.creation_date, b.target_date, b.completion_date, b.notes, b.destination_id`

func scanBuild(row interface{ Scan(...any) error }) (storage.Build, error) {
	var build storage.Build
	var creationDate, targetDate, completionDate sql.NullString
	var destinationID sql.NullInt64
	err := row.Scan(&build.ID, &build.Reference, &build.PartID, &build.PartName,
		&build.Quantity, &build.Completed, &build.Status,
		&creationDate, &targetDate, &completionDate, &build.Notes, &destinationID)
	if err != nil {
		return storage.Build{}, err
	}
	build.CreationDate = textOrEmpty(creationDate)
	build.TargetDate = textOrEmpty(targetDate)
	build.CompletionDate = textOrEmpty(completionDate)
	build.DestinationID = idOrNil(destinationID)
	return build, nil
}

// ListBuilds returns build orders matching the filter.
func (s *Store) ListBuilds(ctx context.Context, filter storage.BuildFilter) ([]storage.Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT ` + buildColumns + ` FROM builds b JOIN parts p ON p.id = b.part_id`
	var conditions []string
	var args []any
	if filter.PartID != nil {
		conditions = append(conditions, "b.part_id = ?")
		args = append(args, *filter.PartID)
	}
	if filter.Active != nil {
		if *filter.Active {
			conditions = append(conditions, "b.status IN (?, ?)")
		} else {
			conditions = append(conditions, "b.status NOT IN (?, ?)")
		}
		args = append(args, storage.StatusPending, storage.StatusInProgress)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.reference LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var builds []storage.Build
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		builds = append(builds, build)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return builds, nil
}

// GetBuild returns one build order by id.
func (s *Store) GetBuild(ctx context.Context, id int64) (storage.Build, error) {
	if err := ctx.Err(); err != nil {
		return storage.Build{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Build{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+buildColumns+` FROM builds b JOIN parts p ON p.id = b.part_id WHERE b.id = ?`, id)
	build, err := scanBuild(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Build{}, storage.ErrNotFound
		}
		return storage.Build{}, fmt.Errorf("get build: %w", err)
	}
	return build, nil
}

// CreateBuild inserts one build order and returns the stored record.
func (s *Store) CreateBuild(ctx context.Context, build storage.NewBuild) (storage.Build, error) {
	if err := ctx.Err(); err != nil {
		return storage.Build{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Build{}, err
	}
	reference := strings.TrimSpace(build.Reference)
	if reference == "" {
		return storage.Build{}, fmt.Errorf("build reference is required")
	}
	status := build.Status
	if status == 0 {
		status = storage.StatusPending
	}
	result, err := s.sqlDB.ExecContext(ctx, `INSERT INTO builds (
		   reference, part_id, quantity, completed, status,
		   creation_date, target_date, completion_date, notes, destination_id
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reference, build.PartID, build.Quantity, build.Completed, status,
		nullText(build.CreationDate), nullText(build.TargetDate), nullText(build.CompletionDate),
		strings.TrimSpace(build.Notes), nullID(build.DestinationID))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Build{}, storage.ErrAlreadyExists
		}
		return storage.Build{}, fmt.Errorf("create build: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Build{}, fmt.Errorf("create build id: %w", err)
	}
	return s.GetBuild(ctx, id)
}
