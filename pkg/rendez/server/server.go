package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"

	errors "github.com/yago-123/burrow-rendez/pkg/error"
)

type RendezvousServer struct {
	handlers   *Handler
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	errCh      chan error
	cfg        *config
	logger     logr.Logger
}

func NewRendezvous(d Directory, opts ...Option) *RendezvousServer {
	cfg := newDefaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	s := &RendezvousServer{
		handlers: NewHandler(d, cfg.codeField, cfg.logger),
		errCh:    make(chan error, 1),
		cfg:      cfg,
		logger:   cfg.logger,
	}
	s.engine = s.newEngine()

	return s
}

func (s *RendezvousServer) newEngine() *gin.Engine {
	r := gin.New()

	// Only the socket peer address is used, no proxy is allowed to rewrite it
	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Error(err, "failed to reset trusted proxies")
	}

	r.Use(gin.Recovery(), requestLogger(s.logger))
	r.Use(corsMiddleware(s.cfg.cors)...)

	// todo(): add API versioning
	r.POST("/register", s.handlers.RegisterHandler)
	r.GET("/lookup/:code", s.handlers.LookupHandler)
	r.GET("/", s.handlers.WelcomeHandler)
	r.HEAD("/", s.handlers.WelcomeHandler)

	return r
}

// Handler exposes the routed engine, mostly for tests and embedding
func (s *RendezvousServer) Handler() http.Handler {
	return s.engine
}

// Start binds addr and serves in the background. Bind failures are returned directly,
// failures while serving are delivered through Errors.
func (s *RendezvousServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrServerStart, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Addr:           addr,
		Handler:        s.engine,
		ReadTimeout:    s.cfg.readTimeout,
		WriteTimeout:   s.cfg.writeTimeout,
		IdleTimeout:    s.cfg.idleTimeout,
		MaxHeaderBytes: s.cfg.maxHeaderBytes,
	}

	s.logger.Info("Rendezvous server listening", "address", ln.Addr().String())

	go func() {
		if errServe := s.httpServer.Serve(ln); errServe != nil && !stderrors.Is(errServe, http.ErrServerClosed) {
			s.logger.Error(errServe, "rendezvous server stopped unexpectedly")
			s.errCh <- errServe
		}
	}()

	return nil
}

// Addr returns the bound listener address, nil before Start
func (s *RendezvousServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Errors delivers the error that made the server stop serving, if any
func (s *RendezvousServer) Errors() <-chan error {
	return s.errCh
}

func (s *RendezvousServer) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
