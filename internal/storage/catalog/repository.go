package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a workspace row does not exist.
var ErrNotFound = errors.New("workspace not found")

// Repository persists the recent-workspace catalog.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type Workspace struct {
	ID           int64
	Path         string
	DisplayName  string
	Tags         []string
	LastOpenedAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UpsertWorkspaceParams struct {
	Path        string
	DisplayName string
	Tags        []string
	LastOpened  *time.Time
}

const selectWorkspace = `
	SELECT id, path, display_name, tags, last_opened_at, created_at, updated_at
	FROM workspaces
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(row rowScanner) (Workspace, error) {
	var (
		w       Workspace
		display sql.NullString
		tags    sql.NullString
		last    sql.NullTime
	)
	if err := row.Scan(&w.ID, &w.Path, &display, &tags, &last, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return Workspace{}, err
	}
	if display.Valid {
		w.DisplayName = display.String
	}
	decoded, err := decodeTags(tags)
	if err != nil {
		return Workspace{}, fmt.Errorf("decode tags for workspace %s: %w", w.Path, err)
	}
	w.Tags = decoded
	if last.Valid {
		w.LastOpenedAt = last.Time
	}
	return w, nil
}

// ListWorkspaces returns workspaces, most recently opened first.
func (r *Repository) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	rows, err := r.db.QueryContext(ctx, selectWorkspace+`
		ORDER BY COALESCE(last_opened_at, updated_at) DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query workspaces: %w", err)
	}
	defer rows.Close()

	var out []Workspace
	for rows.Next() {
		w, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}
	return out, nil
}

// UpsertWorkspace inserts a workspace or refreshes the row with the same path.
// An existing last_opened_at survives when params.LastOpened is nil.
func (r *Repository) UpsertWorkspace(ctx context.Context, params UpsertWorkspaceParams) (Workspace, error) {
	tagPayload, err := encodeTags(params.Tags)
	if err != nil {
		return Workspace{}, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO workspaces (path, display_name, tags, last_opened_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			display_name = excluded.display_name,
			tags = excluded.tags,
			last_opened_at = COALESCE(excluded.last_opened_at, workspaces.last_opened_at),
			updated_at = CURRENT_TIMESTAMP
	`, params.Path, nullIfEmpty(params.DisplayName), tagPayload, params.LastOpened)
	if err != nil {
		return Workspace{}, fmt.Errorf("upsert workspace: %w", err)
	}

	return r.GetWorkspaceByPath(ctx, params.Path)
}

func (r *Repository) GetWorkspaceByPath(ctx context.Context, path string) (Workspace, error) {
	w, err := scanWorkspace(r.db.QueryRowContext(ctx, selectWorkspace+`WHERE path = ?`, path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workspace{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Workspace{}, fmt.Errorf("select workspace: %w", err)
	}
	return w, nil
}

// GetWorkspaceByID retrieves a workspace by numeric identifier.
func (r *Repository) GetWorkspaceByID(ctx context.Context, id int64) (Workspace, error) {
	w, err := scanWorkspace(r.db.QueryRowContext(ctx, selectWorkspace+`WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Workspace{}, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return Workspace{}, fmt.Errorf("select workspace by id: %w", err)
	}
	return w, nil
}

func (r *Repository) DeleteWorkspace(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

func (r *Repository) MarkWorkspaceOpened(ctx context.Context, id int64, openedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspaces
		SET last_opened_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, openedAt, id)
	if err != nil {
		return fmt.Errorf("update last_opened_at: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

func encodeTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	payload, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
