package workspaces

import (
	"context"

	"github.com/AreteDriver/Gorgon/internal/logging"
)

// API exposes the workspace catalog to the frontend via Wails binding.
type API struct {
	svc *Service
	log logging.Logger
}

func NewAPI(svc *Service, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.Nop()
	}
	return &API{svc: svc, log: logger}
}

func (a *API) ListWorkspaces() ([]WorkspaceDTO, error) {
	done := logging.Track(a.log, "list_workspaces")
	list, err := a.svc.List(context.Background())
	return list, done(err)
}

func (a *API) RegisterWorkspace(req RegisterWorkspaceRequest) (WorkspaceDTO, error) {
	done := logging.Track(a.log, "register_workspace", "path", req.Path)
	ws, err := a.svc.Register(context.Background(), req)
	return ws, done(err)
}

func (a *API) DeleteWorkspace(id int64) error {
	done := logging.Track(a.log, "delete_workspace", "id", id)
	return done(a.svc.Remove(context.Background(), id))
}

func (a *API) MarkWorkspaceOpened(id int64) error {
	done := logging.Track(a.log, "mark_workspace_opened", "id", id)
	return done(a.svc.MarkOpened(context.Background(), id))
}
