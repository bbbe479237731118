// Package workspaces keeps the catalog of directories the user has opened.
package workspaces

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
	"github.com/AreteDriver/Gorgon/internal/logging"
	"github.com/AreteDriver/Gorgon/internal/pathguard"
	"github.com/AreteDriver/Gorgon/internal/storage/catalog"
)

// RepoProbe reports whether a directory lies inside a git work tree.
type RepoProbe interface {
	IsRepository(path string) bool
}

type Service struct {
	repo   *catalog.Repository
	guard  *pathguard.Guard
	probe  RepoProbe
	logger logging.Logger
	now    func() time.Time
}

func NewService(repo *catalog.Repository, guard *pathguard.Guard, probe RepoProbe, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{repo: repo, guard: guard, probe: probe, logger: logger, now: time.Now}
}

type WorkspaceDTO struct {
	ID           int64     `json:"id"`
	Path         string    `json:"path"`
	DisplayName  string    `json:"displayName,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	IsRepository bool      `json:"isRepository"`
	LastOpenedAt time.Time `json:"lastOpenedAt,omitempty" ts_type:"string"`
	CreatedAt    time.Time `json:"createdAt" ts_type:"string"`
	UpdatedAt    time.Time `json:"updatedAt" ts_type:"string"`
}

type RegisterWorkspaceRequest struct {
	Path        string   `json:"path"`
	DisplayName string   `json:"displayName,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (s *Service) List(ctx context.Context) ([]WorkspaceDTO, error) {
	records, err := s.repo.ListWorkspaces(ctx)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	list := make([]WorkspaceDTO, 0, len(records))
	for _, record := range records {
		list = append(list, s.mapWorkspace(record))
	}
	return list, nil
}

// Register records an existing directory under its absolute path. Registering
// the same directory again refreshes its name and tags.
func (s *Service) Register(ctx context.Context, req RegisterWorkspaceRequest) (WorkspaceDTO, error) {
	if strings.TrimSpace(req.Path) == "" {
		return WorkspaceDTO{}, apperrors.Custom("workspace path is required")
	}
	if err := s.guard.Check(req.Path); err != nil {
		return WorkspaceDTO{}, err
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		return WorkspaceDTO{}, apperrors.IO(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return WorkspaceDTO{}, apperrors.IO(err)
	}
	if !info.IsDir() {
		return WorkspaceDTO{}, apperrors.Customf("%s is not a directory", abs)
	}

	ws, err := s.repo.UpsertWorkspace(ctx, catalog.UpsertWorkspaceParams{
		Path:        abs,
		DisplayName: strings.TrimSpace(req.DisplayName),
		Tags:        req.Tags,
	})
	if err != nil {
		return WorkspaceDTO{}, apperrors.IO(err)
	}
	s.logger.Info("workspace registered", "id", ws.ID, "path", ws.Path)
	return s.mapWorkspace(ws), nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.repo.DeleteWorkspace(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return apperrors.Customf("workspace %d not found", id)
		}
		return apperrors.IO(err)
	}
	return nil
}

func (s *Service) MarkOpened(ctx context.Context, id int64) error {
	if err := s.repo.MarkWorkspaceOpened(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return apperrors.Customf("workspace %d not found", id)
		}
		return apperrors.IO(err)
	}
	return nil
}

func (s *Service) mapWorkspace(w catalog.Workspace) WorkspaceDTO {
	dto := WorkspaceDTO{
		ID:           w.ID,
		Path:         w.Path,
		DisplayName:  w.DisplayName,
		Tags:         w.Tags,
		LastOpenedAt: w.LastOpenedAt,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	if s.probe != nil {
		dto.IsRepository = s.probe.IsRepository(w.Path)
	}
	return dto
}
