package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"portfolio-gif/internal/config"
	"portfolio-gif/internal/server"
	"portfolio-gif/internal/store"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the public portfolio page, and the admin API on its own listener",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Public listen address, defaults to :$PORT",
			},
			&cli.StringFlag{
				Name:  "admin-addr",
				Usage: "Admin API listen address, defaults to $ADMIN_ADDR (127.0.0.1:8502)",
			},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr := c.String("admin-addr"); addr != "" {
		if err := config.ValidateAdminAddr(addr, cfg.Secrets.AdminPassword); err != nil {
			return err
		}
		cfg.Server.AdminAddr = addr
	}
	gin.SetMode(cfg.App.GinMode)

	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}

	addr := c.String("addr")
	if addr == "" {
		addr = ":" + cfg.Server.Port
	}
	deps := server.RouterDeps{Config: cfg, Store: s}
	servers := []*http.Server{
		{Addr: addr, Handler: server.BuildRouter(deps)},
		{Addr: cfg.Server.AdminAddr, Handler: server.BuildAdminRouter(deps)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			log.Printf("[info] listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range servers {
			_ = srv.Shutdown(shutdownCtx)
		}
		return nil
	})
	return g.Wait()
}
