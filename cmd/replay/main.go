package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gowvp/replay/internal/app"
	"github.com/gowvp/replay/internal/conf"
	"github.com/ixugo/goddd/pkg/system"
)

// 构建时通过 -ldflags 注入
var buildVersion = "dev"

func main() {
	var confPath string
	flag.StringVar(&confPath, "conf", filepath.Join(system.Getwd(), "configs", "config.toml"), "配置文件路径")
	flag.Parse()

	bc, err := conf.Load(confPath)
	if err != nil {
		slog.Error("加载配置失败", "path", confPath, "err", err)
		os.Exit(1)
	}
	bc.BuildVersion = buildVersion

	level := slog.LevelInfo
	if bc.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, bc); err != nil {
		slog.Error("服务退出", "err", err)
		os.Exit(1)
	}
}
