package files

import (
	"github.com/AreteDriver/Gorgon/internal/logging"
)

// API exposes filesystem commands to the frontend via Wails binding.
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

func (a *API) ReadFile(path string) (string, error) {
	done := logging.Track(a.log, "read_file", "path", path)
	content, err := a.svc.Read(path)
	return content, done(err)
}

func (a *API) WriteFile(path string, content string) error {
	done := logging.Track(a.log, "write_file", "path", path, "bytes", len(content))
	return done(a.svc.Write(path, content))
}

func (a *API) ListDirectory(path string) ([]DirectoryEntry, error) {
	done := logging.Track(a.log, "list_directory", "path", path)
	entries, err := a.svc.List(path)
	return entries, done(err)
}

func (a *API) FileExists(path string) (bool, error) {
	done := logging.Track(a.log, "file_exists", "path", path)
	return a.svc.Exists(path), done(nil)
}

func (a *API) CreateDirectory(path string) error {
	done := logging.Track(a.log, "create_directory", "path", path)
	return done(a.svc.CreateDirectory(path))
}

func (a *API) DeleteFile(path string) error {
	done := logging.Track(a.log, "delete_file", "path", path)
	return done(a.svc.Delete(path))
}
