package ui

import (
	"context"
	"fmt"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/AreteDriver/Gorgon/internal/buildinfo"
	"github.com/AreteDriver/Gorgon/internal/logging"
)

// DirectoryPicker opens a native folder chooser bound to the window context.
type DirectoryPicker func(ctx context.Context, options wailsruntime.OpenDialogOptions) (string, error)

type API struct {
	ctxFn  func() context.Context
	picker DirectoryPicker
	log    logging.Logger
}

func NewAPI(ctxProvider func() context.Context, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.Nop()
	}
	return &API{ctxFn: ctxProvider, picker: wailsruntime.OpenDirectoryDialog, log: logger}
}

// GetAppInfo reports the product name and versions.
func (a *API) GetAppInfo() (buildinfo.AppInfo, error) {
	done := logging.Track(a.log, "get_app_info")
	return buildinfo.Info(), done(nil)
}

// SelectDirectory returns the chosen directory, or "" when the dialog is cancelled.
func (a *API) SelectDirectory(defaultDirectory string) (string, error) {
	done := logging.Track(a.log, "select_directory", "defaultDirectory", defaultDirectory)
	if a.ctxFn == nil {
		return "", done(fmt.Errorf("application context not initialised"))
	}
	ctx := a.ctxFn()
	if ctx == nil {
		return "", done(fmt.Errorf("application context not initialised"))
	}
	options := wailsruntime.OpenDialogOptions{Title: "Select a workspace directory"}
	if defaultDirectory != "" {
		options.DefaultDirectory = defaultDirectory
	}
	dir, err := a.picker(ctx, options)
	return dir, done(err)
}
