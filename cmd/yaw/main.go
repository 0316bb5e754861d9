package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"yaw/internal/config"
	"yaw/internal/graphics/gpu"
	"yaw/internal/input"
	"yaw/internal/logx"
	"yaw/internal/window"
	"yaw/internal/world"

	"github.com/spf13/pflag"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a TOML config file")
	logLevel := pflag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logger, err := logx.Setup(os.Stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	config.SetWireframeMode(cfg.Render.Wireframe)

	var win *window.Window
	platform := world.PlatformFunc(func(cfg config.Config, cb *input.Callback) (world.Window, gpu.API, error) {
		w, api, err := window.Open(cfg, cb)
		if err != nil {
			return nil, nil, err
		}
		win = w
		return w, api, nil
	})

	w := world.New(platform, world.WithConfig(cfg), world.WithLogger(logger))
	if err := populate(w); err != nil {
		closer.Fatalln(err)
	}
	// handlers run on the render thread, after the window is open
	bindActions(w, func() { win.RequestClose() })

	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.Close(ctx); err != nil {
			logger.Error("close world", "err", err)
		}
	})

	go animate(w, cfg.FrameInterval())

	if err := w.Run(); err != nil {
		closer.Fatalln(err)
	}
	closer.Close()
}
