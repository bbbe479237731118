package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AreteDriver/Gorgon/internal/storage/migrate"
	"github.com/AreteDriver/Gorgon/internal/storage/sqlite"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sqlite.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := migrate.Up(db); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	return NewRepository(db)
}

func TestRepositoryUpsertAndRetrieve(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ws, err := repo.UpsertWorkspace(ctx, UpsertWorkspaceParams{
		Path:        "/tmp/gorgon",
		DisplayName: "Gorgon",
		Tags:        []string{"go", "desktop"},
	})
	if err != nil {
		t.Fatalf("upsert workspace: %v", err)
	}
	if ws.ID == 0 {
		t.Fatalf("expected persisted workspace to have ID, got 0")
	}
	if ws.DisplayName != "Gorgon" {
		t.Fatalf("unexpected display name: %s", ws.DisplayName)
	}

	loaded, err := repo.GetWorkspaceByID(ctx, ws.ID)
	if err != nil {
		t.Fatalf("get workspace by id: %v", err)
	}
	if loaded.Path != "/tmp/gorgon" || !equalStringSlices(loaded.Tags, []string{"go", "desktop"}) {
		t.Fatalf("unexpected workspace: %+v", loaded)
	}

	list, err := repo.ListWorkspaces(ctx)
	if err != nil {
		t.Fatalf("list workspaces: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 workspace, got %d", len(list))
	}
}

func TestRepositoryUpdatePreservesLastOpened(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ws, err := repo.UpsertWorkspace(ctx, UpsertWorkspaceParams{Path: "/tmp/two", Tags: []string{"initial"}})
	if err != nil {
		t.Fatalf("upsert workspace: %v", err)
	}

	markTime := time.Now().UTC().Truncate(time.Second)
	if err := repo.MarkWorkspaceOpened(ctx, ws.ID, markTime); err != nil {
		t.Fatalf("mark workspace opened: %v", err)
	}

	updated, err := repo.UpsertWorkspace(ctx, UpsertWorkspaceParams{
		Path:        "/tmp/two",
		DisplayName: "Two",
		Tags:        []string{"updated"},
	})
	if err != nil {
		t.Fatalf("upsert after mark: %v", err)
	}
	if updated.ID != ws.ID {
		t.Fatalf("expected same row %d, got %d", ws.ID, updated.ID)
	}
	if !markTime.Equal(updated.LastOpenedAt) {
		t.Fatalf("expected last opened %v, got %v", markTime, updated.LastOpenedAt)
	}
	if !equalStringSlices(updated.Tags, []string{"updated"}) {
		t.Fatalf("unexpected tags after update: %v", updated.Tags)
	}
}

func TestRepositoryDeleteAndMissingRows(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	ws, err := repo.UpsertWorkspace(ctx, UpsertWorkspaceParams{Path: "/tmp/delete-me"})
	if err != nil {
		t.Fatalf("upsert workspace: %v", err)
	}
	if err := repo.DeleteWorkspace(ctx, ws.ID); err != nil {
		t.Fatalf("delete workspace: %v", err)
	}
	if err := repo.DeleteWorkspace(ctx, ws.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := repo.GetWorkspaceByPath(ctx, "/tmp/delete-me"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.MarkWorkspaceOpened(ctx, 999, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when marking missing row, got %v", err)
	}
}

func TestRepositoryListRejectsCorruptTags(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.db.ExecContext(ctx, `INSERT INTO workspaces (path, tags) VALUES (?, ?)`, "/tmp/bad", "{not json"); err != nil {
		t.Fatalf("insert invalid workspace: %v", err)
	}
	_, err := repo.ListWorkspaces(ctx)
	if err == nil || !strings.Contains(err.Error(), "decode tags") {
		t.Fatalf("expected decode tags error, got %v", err)
	}
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
