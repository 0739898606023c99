package cli

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/deniskimskku/writing-hub/cmd/server"
	"github.com/deniskimskku/writing-hub/pkg/config"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				opts.cfg.Set(config.KeyServerPort, port)
			}
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port, overrides the config file")
	return cmd
}

// runServe 启动应用，收到 SIGINT/SIGTERM 时优雅退出
func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := server.NewApp(opts.cfg)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return err
	}
	app.PrintBanner()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Run() }()

	select {
	case err := <-errCh:
		app.Stop()
		return err
	case <-ctx.Done():
		log.Println("收到退出信号，正在关闭...")
		app.Stop()
		return <-errCh
	}
}
