package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"orgchart/pkg/log"
)

const shutdownTimeout = 5 * time.Second

// Run 启动 HTTP 服务，ctx 取消后优雅停机（最多等待 5 秒）。
// 监听失败时直接返回错误。
func Run(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h)
}

// Serve 在已有的 listener 上提供服务，便于测试使用随机端口。
func Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("服务启动于 %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("接收到停机信号，正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("服务已优雅关闭")
	return <-errCh
}
