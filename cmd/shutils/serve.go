package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/erazemk/shutils/internal/api"
	"github.com/erazemk/shutils/internal/tracker"
)

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "listen address (overrides server.addr)"},
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Value: defaultUser, Usage: "account name created on first run"},
		},
		Action: a.serve,
	}
}

func (a *app) serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if v := c.String("addr"); v != "" {
		a.cfg.Server.Addr = v
	}

	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	// First run: create the account and show its password once.
	hasAccount, err := s.HasAccount(ctx)
	if err != nil {
		return err
	}
	if !hasAccount {
		password, err := createAccount(ctx, s, c.String("user"))
		if err != nil {
			return err
		}
		printInitResult(a.stdout, a.cfg.Database.Path, c.String("user"), password)
		fmt.Fprintln(a.stdout)
	}

	secret, err := s.JWTSecret(ctx)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	reg, err := a.registry()
	if err != nil {
		return err
	}

	t := tracker.New(s, a.cfg.Tracker.Counters)
	if err := t.Load(ctx); err != nil {
		return err
	}

	server := &http.Server{
		Addr: a.cfg.Server.Addr,
		Handler: api.NewRouter(t, api.Config{
			JWTSecret:  secret,
			TokenTTL:   a.cfg.Auth.TokenTTL,
			LoginRate:  rate.Limit(a.cfg.Auth.LoginRate),
			LoginBurst: a.cfg.Auth.LoginBurst,
			Species:    reg,
		}),
		ReadHeaderTimeout: a.cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped, closing database")
	return nil
}
