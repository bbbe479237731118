package main

import (
	"context"
	"sync"

	"github.com/AreteDriver/Gorgon/internal/bootstrap"
	"github.com/AreteDriver/Gorgon/internal/buildinfo"
)

// App owns the window lifecycle and the runtime behind the bound APIs.
type App struct {
	mu  sync.RWMutex
	ctx context.Context
	rt  *bootstrap.Runtime
}

func NewApp() *App {
	return &App{}
}

// Context returns the window context, or nil before startup.
func (a *App) Context() context.Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ctx
}

// startup is called when the window is created. The context is kept for
// runtime dialogs.
func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()
	if a.rt != nil {
		info := buildinfo.Info()
		a.rt.Logger.Info("app started", "version", info.Version, "runtime", info.RuntimeVersion)
	}
}

func (a *App) shutdown(ctx context.Context) {
	if a.rt == nil {
		return
	}
	a.rt.Logger.Info("app shutting down")
	_ = a.rt.Close()
}
