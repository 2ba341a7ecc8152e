package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/mergington/activities-board/config"
	"github.com/mergington/activities-board/internal/apiclient"
	"github.com/mergington/activities-board/internal/service"
	"github.com/mergington/activities-board/internal/transport"
	"github.com/mergington/activities-board/internal/worker"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Backend API client
	backend := apiclient.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	logrus.Infof("Using activities backend at %s", cfg.Backend.BaseURL)

	// Initialize services
	clock := clockwork.NewRealClock()
	boardService := service.NewBoardService(backend, clock, cfg.Board.MessageTTL)

	// Initialize session janitor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := worker.NewSessionJanitor(boardService, clock, cfg.Board.JanitorInterval, cfg.Board.SessionTTL)
	go janitor.Start(ctx)
	logrus.Info("Session janitor started")

	// Initialize handlers
	boardHandler := transport.NewBoardHandler(boardService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(boardHandler, cfg.Server.TemplatesGlob)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
