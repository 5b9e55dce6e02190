package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"github.com/julienschmidt/httprouter"
	"github.com/potuvera/crisma/server/auth"
	"github.com/potuvera/crisma/server/storage"
	"gorm.io/gorm"
)

type Server struct {
	Log logs.Log
	DB  *gorm.DB

	// If true, serve the frontend from the local filesystem instead of the
	// files embedded into the binary.
	HotReloadWWW bool

	auth       *auth.AuthServer
	store      storage.Store
	httpServer *http.Server
	httpRouter *httprouter.Router
	signalIn   chan os.Signal
}

func NewServer(logger logs.Log, cfg Config) (*Server, error) {
	db, err := openDB(logger, cfg.DB, 0)
	if err != nil {
		return nil, err
	}
	store, err := openStorage(logger, cfg.Storage)
	if err != nil {
		return nil, err
	}
	ttl := auth.DefaultSessionTTL
	if cfg.SessionTTLHours != 0 {
		ttl = time.Duration(cfg.SessionTTLHours) * time.Hour
	}
	s := &Server{
		Log:   logger,
		DB:    db,
		auth:  auth.NewAuthServer(db, logger, ttl),
		store: store,
	}
	if err := s.setupHttpRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func openStorage(logger logs.Log, cfg StorageConfig) (storage.Store, error) {
	switch {
	case cfg.GCS != nil:
		return storage.NewStoreGCS(logger, cfg.GCS.Bucket)
	case cfg.Filesystem != nil:
		return storage.NewStoreFS(logger, cfg.Filesystem.Root)
	}
	return nil, fmt.Errorf("No attachment storage configured")
}

// ListenHTTP blocks until the server is shut down.
func (s *Server) ListenHTTP(port string) error {
	s.Log.Infof("Listening on %v", port)
	s.httpServer = &http.Server{
		Addr:    port,
		Handler: s.httpRouter,
	}
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// ListenForInterruptSignal starts a goroutine that performs a clean shutdown
// when the process receives SIGINT or SIGTERM.
func (s *Server) ListenForInterruptSignal() {
	s.signalIn = make(chan os.Signal, 1)
	signal.Notify(s.signalIn, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-s.signalIn
		if !ok {
			return
		}
		s.Log.Infof("Received signal '%v'. Shutting down", sig)
		s.Shutdown()
	}()
}

func (s *Server) Shutdown() {
	s.Log.Infof("Shutdown")
	if s.signalIn != nil {
		signal.Stop(s.signalIn)
		close(s.signalIn)
		s.signalIn = nil
	}
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.Log.Warnf("httpServer.Shutdown error: %v", err)
		}
	}
	s.Log.Close()
}

// newTestServer is used by unit tests. It creates a server on top of a
// throwaway database, with attachments stored under tempDir.
func newTestServer(logger logs.Log, tempDir string) (*Server, error) {
	db, err := openDB(logger, tempDir+"/crisma.sqlite", dbh.DBConnectFlagWipeDB)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewStoreFS(logger, tempDir+"/arquivos")
	if err != nil {
		return nil, err
	}
	s := &Server{
		Log:   logger,
		DB:    db,
		auth:  auth.NewAuthServer(db, logger, auth.DefaultSessionTTL),
		store: store,
	}
	if err := s.setupHttpRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}
