package cli

import (
	"os/signal"
	"syscall"

	"orgchart/internal/app"
	"orgchart/internal/server"
	"orgchart/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// NewServeCommand 创建 serve 命令：启动 HTTP 服务，收到 SIGINT/SIGTERM 后优雅停机。
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the org tree over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts, false)
			if err != nil {
				return err
			}
			defer log.Sync()
			if port != "" {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				log.Error("Failed to initialize", err)
				return err
			}
			defer a.Close()

			gin.SetMode(cfg.Server.Mode)
			router := server.NewRouter(server.Deps{
				OrgService:  a.OrgService,
				AuthService: a.AuthService,
				Metrics:     a.Metrics,
				Gatherer:    a.Registry,
				HealthCheck: a.HealthCheck,
			})
			return server.Run(ctx, ":"+cfg.Server.Port, router)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides server.port)")
	return cmd
}
