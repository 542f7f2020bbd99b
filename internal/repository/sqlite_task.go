package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/taskrange/internal/db"
	"github.com/alexanderramin/taskrange/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, uid, summary, status,
		dtstart, duration, due, completed, created,
		source, raw, imported_at,
		dtstart_tz, due_tz, completed_tz, created_tz`

const undatedPredicate = `dtstart IS NULL AND duration IS NULL AND due IS NULL
		AND completed IS NULL AND created IS NULL`

// SQLiteTaskRepo implements TaskRepo on SQLite. It accepts a db.DBTX so the
// same code runs inside a unit of work.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UID,
		t.Summary,
		string(t.Status),
		nullableInstant(t.Profile.Start),
		nullableDuration(t.Profile.Duration),
		nullableInstant(t.Profile.Due),
		nullableInstant(t.Profile.Completed),
		nullableInstant(t.Profile.Created),
		t.Source,
		t.Raw,
		t.ImportedAt.UTC().Format(time.RFC3339),
		nullableZone(t.Profile.Start),
		nullableZone(t.Profile.Due),
		nullableZone(t.Profile.Completed),
		nullableZone(t.Profile.Created),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListBySource(ctx context.Context, source string) ([]*domain.Task, error) {
	return r.query(ctx, "listing tasks by source",
		`SELECT `+taskColumns+` FROM tasks WHERE source = ? ORDER BY imported_at, id`, source)
}

func (r *SQLiteTaskRepo) List(ctx context.Context, includeUndated bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if !includeUndated {
		query += ` WHERE NOT (` + undatedPredicate + `)`
	}
	query += ` ORDER BY imported_at, id`
	return r.query(ctx, "listing tasks", query)
}

func (r *SQLiteTaskRepo) DeleteBySource(ctx context.Context, source string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE source = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks by source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting tasks by source: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, op string, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var status, importedAt string
	var start, duration, due, completed, created sql.NullString
	var startTZ, dueTZ, completedTZ, createdTZ sql.NullString

	err := s.Scan(
		&t.ID, &t.UID, &t.Summary, &status,
		&start, &duration, &due, &completed, &created,
		&t.Source, &t.Raw, &importedAt,
		&startTZ, &dueTZ, &completedTZ, &createdTZ,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	if t.Profile.Start, err = parseNullableInstant(start, startTZ, "dtstart"); err != nil {
		return nil, err
	}
	if t.Profile.Duration, err = parseNullableDuration(duration); err != nil {
		return nil, err
	}
	if t.Profile.Due, err = parseNullableInstant(due, dueTZ, "due"); err != nil {
		return nil, err
	}
	if t.Profile.Completed, err = parseNullableInstant(completed, completedTZ, "completed"); err != nil {
		return nil, err
	}
	if t.Profile.Created, err = parseNullableInstant(created, createdTZ, "created"); err != nil {
		return nil, err
	}
	if t.ImportedAt, err = time.Parse(time.RFC3339, importedAt); err != nil {
		return nil, fmt.Errorf("parsing imported_at: %w", err)
	}

	return &t, nil
}
