package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gowvp/replay/internal/conf"
)

// Run 组装依赖并启动 HTTP 服务，阻塞到 ctx 取消后优雅退出
func Run(ctx context.Context, bc *conf.Bootstrap) error {
	handler, cleanup, err := wireApp(bc)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := http.Server{
		Addr:    fmt.Sprintf(":%d", bc.Server.HTTP.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server started", "addr", srv.Addr, "version", bc.BuildVersion)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http server shutdown", "err", err)
	}
	slog.Info("http server stopped")
	return nil
}
