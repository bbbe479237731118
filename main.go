package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"

	"github.com/AreteDriver/Gorgon/internal/bootstrap"
	"github.com/AreteDriver/Gorgon/internal/buildinfo"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	app := NewApp()

	rt, err := bootstrap.New(bootstrap.Options{AppContext: app.Context})
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	app.rt = rt

	err = wails.Run(&options.App{
		Title:     buildinfo.AppName,
		Width:     1440,
		Height:    900,
		MinWidth:  960,
		MinHeight: 600,
		Linux: &linux.Options{
			WebviewGpuPolicy: linux.WebviewGpuPolicyAlways,
		},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind:             rt.Bindings(),
	})
	if err != nil {
		rt.Logger.Error("wails run failed", "error", err)
		println("Error:", err.Error())
	}
}
