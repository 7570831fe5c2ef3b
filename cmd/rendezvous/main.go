package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yago-123/burrow-rendez/cmd/common"
	"github.com/yago-123/burrow-rendez/pkg/config"
	"github.com/yago-123/burrow-rendez/pkg/rendez/directory"
	"github.com/yago-123/burrow-rendez/pkg/rendez/server"
	"github.com/yago-123/burrow-rendez/pkg/rendez/store"
)

const ShutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to YAML config file, defaults are used when empty")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "rendezvous: %v\n", err)
		os.Exit(1)
	}
}

// lifecycle is the part of the rendezvous server driven by serve
type lifecycle interface {
	Errors() <-chan error
	Stop(ctx context.Context) error
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logrusLogger, logger, err := common.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	if logrusLogger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, peerStore, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	defer peerStore.Close()

	// Graceful shutdown on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if errStart := srv.Start(cfg.Server.Addr()); errStart != nil {
		return errStart
	}
	logger.Info("Rendezvous server started", "address", cfg.Server.Addr(), "store", cfg.Store.Backend)

	return serve(ctx, srv, logger)
}

// newServer wires the store, the peer directory and the HTTP server from cfg. The caller
// owns the returned store and must close it once the server is stopped.
func newServer(cfg *config.Config, logger logr.Logger) (*server.RendezvousServer, store.Store, error) {
	// Setup store, entries live as long as the process
	peerStore, err := store.New(cfg.Store.Backend)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}

	peers := directory.New(peerStore, directory.WithLogger(logger.WithName("directory")))

	srv := server.NewRendezvous(peers,
		server.WithCodeField(cfg.Server.CodeField),
		server.WithCORS(server.CORSConfig{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
		}),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
		server.WithLogger(logger.WithName("server")),
	)

	return srv, peerStore, nil
}

// serve blocks until ctx ends or the server fails, then shuts the server down. A serve
// failure is returned even when the shutdown succeeds.
func serve(ctx context.Context, srv lifecycle, logger logr.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case errServe := <-srv.Errors():
			return errServe
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if errStop := srv.Stop(shutdownCtx); errStop != nil {
			return fmt.Errorf("server shutdown failed: %w", errStop)
		}

		logger.Info("Server gracefully stopped")
		return nil
	})

	return g.Wait()
}
